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

package hub

import (
	"context"

	"github.com/wassim-ahmad/onStreetCloud/pkg/db"
	"github.com/wassim-ahmad/onStreetCloud/pkg/models"
)

// Aggregator merges the live registry with the persistent catalog to produce
// status snapshots. Totals always come from the catalog; registry entries
// with no catalog match never inflate the online count. Snapshots are
// recomputed fresh on every call, never cached across a blocking operation.
type Aggregator struct {
	db       db.Service
	registry *Registry
}

// NewAggregator creates a status aggregator over the catalog and registry.
func NewAggregator(database db.Service, registry *Registry) *Aggregator {
	return &Aggregator{db: database, registry: registry}
}

// PoleSnapshot reports status for all poles.
func (a *Aggregator) PoleSnapshot(ctx context.Context) (*models.StatusSnapshot, error) {
	total, err := a.db.PoleCount(ctx)
	if err != nil {
		return nil, err
	}

	poles, err := a.db.ListPoles(ctx)
	if err != nil {
		return nil, err
	}

	online := 0
	data := make([]models.PoleWithStatus, 0, len(poles))

	for _, p := range poles {
		status := 0
		if a.registry.Online(PoleIdentity{Code: p.Code}) {
			status = 1
			online++
		}

		data = append(data, models.PoleWithStatus{Pole: p, Status: status})
	}

	return &models.StatusSnapshot{
		Total:   total,
		Online:  online,
		Offline: total - online,
		Data:    data,
	}, nil
}

// CameraSnapshot reports status for the cameras of one pole.
func (a *Aggregator) CameraSnapshot(ctx context.Context, poleCode string) (*models.StatusSnapshot, error) {
	total, err := a.db.CameraCountByPoleCode(ctx, poleCode)
	if err != nil {
		return nil, err
	}

	cameras, err := a.db.ListCamerasByPoleCode(ctx, poleCode)
	if err != nil {
		return nil, err
	}

	return a.cameraSnapshot(total, cameras), nil
}

// AllCamerasSnapshot reports status for every camera in the catalog.
func (a *Aggregator) AllCamerasSnapshot(ctx context.Context) (*models.StatusSnapshot, error) {
	total, err := a.db.CameraCount(ctx)
	if err != nil {
		return nil, err
	}

	cameras, err := a.db.ListCameras(ctx)
	if err != nil {
		return nil, err
	}

	return a.cameraSnapshot(total, cameras), nil
}

// Statistics reports fleet-wide camera counts for the statistics dashboard.
func (a *Aggregator) Statistics(ctx context.Context) (*models.CameraStatistics, error) {
	total, err := a.db.CameraCount(ctx)
	if err != nil {
		return nil, err
	}

	cameras, err := a.db.ListCameras(ctx)
	if err != nil {
		return nil, err
	}

	online := 0

	for _, c := range cameras {
		if a.registry.Online(CameraIdentity{PoleCode: c.PoleCode, CameraIP: c.CameraIP}) {
			online++
		}
	}

	return &models.CameraStatistics{TotalCount: total, OnlineCount: online}, nil
}

func (a *Aggregator) cameraSnapshot(total int, cameras []models.Camera) *models.StatusSnapshot {
	online := 0
	data := make([]models.CameraWithStatus, 0, len(cameras))

	for _, c := range cameras {
		status := 0
		if a.registry.Online(CameraIdentity{PoleCode: c.PoleCode, CameraIP: c.CameraIP}) {
			status = 1
			online++
		}

		data = append(data, models.CameraWithStatus{Camera: c, Status: status})
	}

	return &models.StatusSnapshot{
		Total:   total,
		Online:  online,
		Offline: total - online,
		Data:    data,
	}
}
