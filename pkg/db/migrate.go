package db

import (
	"context"
	"fmt"
)

// Schema statements are idempotent so every service start can run them.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS poles (
		id BIGSERIAL PRIMARY KEY,
		code TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL DEFAULT '',
		router_ip TEXT NOT NULL DEFAULT '',
		file_server_id TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS cameras (
		id BIGSERIAL PRIMARY KEY,
		pole_id BIGINT NOT NULL REFERENCES poles(id),
		pole_code TEXT NOT NULL,
		camera_ip TEXT NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		number_of_parking INT NOT NULL DEFAULT 0,
		deleted BOOLEAN NOT NULL DEFAULT FALSE,
		UNIQUE (pole_code, camera_ip)
	)`,
	`CREATE TABLE IF NOT EXISTS camera_executes (
		id UUID PRIMARY KEY,
		pole_id BIGINT NOT NULL,
		pole_code TEXT NOT NULL,
		type TEXT NOT NULL,
		camera_ip TEXT NOT NULL,
		old_camera_ip TEXT NOT NULL DEFAULT '',
		number_of_parking INT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS notifications (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL,
		pole_router_ip TEXT NOT NULL DEFAULT '',
		pole_code TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL,
		note TEXT NOT NULL DEFAULT '',
		read BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		active BOOLEAN NOT NULL DEFAULT TRUE,
		view_notifications BOOLEAN NOT NULL DEFAULT FALSE
	)`,
}

func (d *DB) migrate(ctx context.Context) error {
	for i, stmt := range migrations {
		if _, err := d.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", i, err)
		}
	}

	return nil
}
