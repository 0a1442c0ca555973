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

// Package db implements the PostgreSQL-backed stores for the device catalog,
// pending commands, users, and notifications.
package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wassim-ahmad/onStreetCloud/pkg/logger"
	"github.com/wassim-ahmad/onStreetCloud/pkg/models"
)

// DB implements Service on a pgx connection pool shared by all handlers.
type DB struct {
	pool   *pgxpool.Pool
	logger logger.Logger
}

// New connects to PostgreSQL and returns the store.
func New(ctx context.Context, cfg *models.DatabaseConfig, log logger.Logger) (*DB, error) {
	pool, err := NewPool(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	d := &DB{pool: pool, logger: log}

	if err := d.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return d, nil
}

// Close releases the connection pool.
func (d *DB) Close() error {
	if d.pool != nil {
		d.pool.Close()
	}

	return nil
}
