/*
 * Copyright 2026 onStreetCloud Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package db

import (
	"context"

	"github.com/wassim-ahmad/onStreetCloud/pkg/models"
)

//go:generate mockgen -destination=mock_db.go -package=db github.com/wassim-ahmad/onStreetCloud/pkg/db Service

// Service represents all persistent-store operations consumed by the hub:
// the device catalog, the durable pending-command store, and the
// user/notification stores.
type Service interface {
	Close() error

	// Catalog operations.

	ListPoles(ctx context.Context) ([]models.Pole, error)
	PoleCount(ctx context.Context) (int, error)
	ListCameras(ctx context.Context) ([]models.Camera, error)
	ListCamerasByPoleCode(ctx context.Context, poleCode string) ([]models.Camera, error)
	CameraCount(ctx context.Context) (int, error)
	CameraCountByPoleCode(ctx context.Context, poleCode string) (int, error)

	// Pending-command operations.

	CreatePendingCommand(ctx context.Context, pending *models.PendingCommand) error
	GetPendingCommand(ctx context.Context, id string) (*models.PendingCommand, error)
	DeletePendingCommand(ctx context.Context, id string) error
	ListPendingCommands(ctx context.Context) ([]models.PendingCommand, error)

	// User and notification operations.

	UsersWithNotificationPermission(ctx context.Context) ([]models.User, error)
	CreateNotifications(ctx context.Context, notifications []*models.Notification) error
}
