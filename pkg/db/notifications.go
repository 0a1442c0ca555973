package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/wassim-ahmad/onStreetCloud/pkg/models"
)

// UsersWithNotificationPermission lists active users entitled to presence
// alerts.
func (d *DB) UsersWithNotificationPermission(ctx context.Context) ([]models.User, error) {
	rows, err := d.pool.Query(ctx, `
        SELECT id, name
        FROM users
        WHERE active AND view_notifications`)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToQuery, err)
	}
	defer rows.Close()

	var users []models.User

	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFailedToScan, err)
		}

		users = append(users, u)
	}

	return users, rows.Err()
}

// CreateNotifications inserts the fan-out as a single batch.
func (d *DB) CreateNotifications(ctx context.Context, notifications []*models.Notification) error {
	batch := &pgx.Batch{}

	now := time.Now().UTC()

	for _, n := range notifications {
		createdAt := n.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}

		batch.Queue(`
            INSERT INTO notifications
                (user_id, pole_router_ip, pole_code, description, note, read, created_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			n.UserID, n.PoleRouterIP, n.PoleCode, n.Description, n.Note, n.Read, createdAt)
	}

	return sendBatchExecAll(ctx, batch, d.pool.SendBatch, "notifications")
}

func sendBatchExecAll(ctx context.Context, batch *pgx.Batch,
	send func(context.Context, *pgx.Batch) pgx.BatchResults, operation string) (err error) {
	if batch == nil || batch.Len() == 0 {
		return nil
	}

	br := send(ctx, batch)
	defer func() {
		if closeErr := br.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("%s batch close: %w", operation, closeErr)
		}
	}()

	for i := 0; i < batch.Len(); i++ {
		if _, err = br.Exec(); err != nil {
			return fmt.Errorf("%s batch exec (command %d): %w", operation, i, err)
		}
	}

	return nil
}
