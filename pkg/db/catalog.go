package db

import (
	"context"
	"fmt"

	"github.com/wassim-ahmad/onStreetCloud/pkg/models"
)

// ListPoles retrieves the full pole catalog.
func (d *DB) ListPoles(ctx context.Context) ([]models.Pole, error) {
	rows, err := d.pool.Query(ctx, `
        SELECT id, code, name, router_ip, file_server_id, location
        FROM poles
        ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToQuery, err)
	}
	defer rows.Close()

	var poles []models.Pole

	for rows.Next() {
		var p models.Pole
		if err := rows.Scan(&p.ID, &p.Code, &p.Name, &p.RouterIP, &p.FileServerID, &p.Location); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFailedToScan, err)
		}

		poles = append(poles, p)
	}

	return poles, rows.Err()
}

// PoleCount returns the catalog pole total.
func (d *DB) PoleCount(ctx context.Context) (int, error) {
	var count int
	if err := d.pool.QueryRow(ctx, `SELECT COUNT(*) FROM poles`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrFailedToQuery, err)
	}

	return count, nil
}

// ListCameras retrieves all non-deleted cameras across every pole.
func (d *DB) ListCameras(ctx context.Context) ([]models.Camera, error) {
	return d.queryCameras(ctx, `
        SELECT id, pole_id, pole_code, camera_ip, name, number_of_parking, deleted
        FROM cameras
        WHERE NOT deleted
        ORDER BY pole_code, camera_ip`)
}

// ListCamerasByPoleCode retrieves the non-deleted cameras of one pole.
func (d *DB) ListCamerasByPoleCode(ctx context.Context, poleCode string) ([]models.Camera, error) {
	return d.queryCameras(ctx, `
        SELECT id, pole_id, pole_code, camera_ip, name, number_of_parking, deleted
        FROM cameras
        WHERE pole_code = $1 AND NOT deleted
        ORDER BY camera_ip`, poleCode)
}

// CameraCount returns the catalog camera total.
func (d *DB) CameraCount(ctx context.Context) (int, error) {
	var count int
	if err := d.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM cameras WHERE NOT deleted`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrFailedToQuery, err)
	}

	return count, nil
}

// CameraCountByPoleCode returns the camera total for one pole.
func (d *DB) CameraCountByPoleCode(ctx context.Context, poleCode string) (int, error) {
	var count int
	if err := d.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM cameras WHERE pole_code = $1 AND NOT deleted`,
		poleCode).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrFailedToQuery, err)
	}

	return count, nil
}

func (d *DB) queryCameras(ctx context.Context, sql string, args ...interface{}) ([]models.Camera, error) {
	rows, err := d.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToQuery, err)
	}
	defer rows.Close()

	var cameras []models.Camera

	for rows.Next() {
		var c models.Camera
		if err := rows.Scan(&c.ID, &c.PoleID, &c.PoleCode, &c.CameraIP,
			&c.Name, &c.ParkingSpaces, &c.Deleted); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFailedToScan, err)
		}

		cameras = append(cameras, c)
	}

	return cameras, rows.Err()
}
