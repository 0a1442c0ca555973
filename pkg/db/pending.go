package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/wassim-ahmad/onStreetCloud/pkg/models"
)

// CreatePendingCommand inserts one durable retry record. Losing this write
// breaks the dispatch durability guarantee, so failures surface as errors.
func (d *DB) CreatePendingCommand(ctx context.Context, pending *models.PendingCommand) error {
	if pending == nil {
		return ErrPendingCommandNil
	}

	if pending.ID == "" {
		pending.ID = uuid.New().String()
	}

	if pending.CreatedAt.IsZero() {
		pending.CreatedAt = time.Now().UTC()
	}

	_, err := d.pool.Exec(ctx, `
        INSERT INTO camera_executes
            (id, pole_id, pole_code, type, camera_ip, old_camera_ip, number_of_parking, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		pending.ID, pending.PoleID, pending.PoleCode, string(pending.Op),
		pending.CameraIP, pending.OldCameraIP, pending.ParkingSpaces, pending.CreatedAt)
	if err != nil {
		return fmt.Errorf("%w: pending command: %w", ErrFailedToInsert, err)
	}

	return nil
}

// GetPendingCommand loads one pending record by id.
func (d *DB) GetPendingCommand(ctx context.Context, id string) (*models.PendingCommand, error) {
	var p models.PendingCommand

	var op string

	err := d.pool.QueryRow(ctx, `
        SELECT id, pole_id, pole_code, type, camera_ip, old_camera_ip, number_of_parking, created_at
        FROM camera_executes
        WHERE id = $1`, id).
		Scan(&p.ID, &p.PoleID, &p.PoleCode, &op, &p.CameraIP, &p.OldCameraIP,
			&p.ParkingSpaces, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrPendingCommandNotFound, id)
		}

		return nil, fmt.Errorf("%w: %w", ErrFailedToQuery, err)
	}

	p.Op = models.CommandOp(op)

	return &p, nil
}

// DeletePendingCommand removes one pending record after a confirmed resync.
func (d *DB) DeletePendingCommand(ctx context.Context, id string) error {
	tag, err := d.pool.Exec(ctx, `DELETE FROM camera_executes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFailedToQuery, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrPendingCommandNotFound, id)
	}

	return nil
}

// ListPendingCommands returns the administrative pending list, newest first.
func (d *DB) ListPendingCommands(ctx context.Context) ([]models.PendingCommand, error) {
	rows, err := d.pool.Query(ctx, `
        SELECT id, pole_id, pole_code, type, camera_ip, old_camera_ip, number_of_parking, created_at
        FROM camera_executes
        ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToQuery, err)
	}
	defer rows.Close()

	var pendings []models.PendingCommand

	for rows.Next() {
		var p models.PendingCommand

		var op string

		if err := rows.Scan(&p.ID, &p.PoleID, &p.PoleCode, &op, &p.CameraIP,
			&p.OldCameraIP, &p.ParkingSpaces, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFailedToScan, err)
		}

		p.Op = models.CommandOp(op)
		pendings = append(pendings, p)
	}

	return pendings, rows.Err()
}
