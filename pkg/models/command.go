package models

import (
	"errors"
	"fmt"
	"time"
)

// CommandOp identifies a camera configuration operation pushed to a pole.
type CommandOp string

const (
	CommandCreate  CommandOp = "create"
	CommandEdit    CommandOp = "edit"
	CommandDelete  CommandOp = "delete"
	CommandRestore CommandOp = "restore"
)

var (
	ErrUnknownCommandOp    = errors.New("unknown command operation")
	ErrMissingPoleCode     = errors.New("pole code is required")
	ErrMissingCameraIP     = errors.New("camera ip is required")
	ErrMissingOldCameraIP  = errors.New("old camera ip is required for edit")
	ErrUnexpectedOldCamera = errors.New("old camera ip is only valid for edit")
)

// CameraCommand is a tagged camera configuration command. Only edits carry
// OldCameraIP; validation rejects the field on every other operation.
type CameraCommand struct {
	PoleID        int64     `json:"pole_id"`
	PoleCode      string    `json:"pole_code"`
	Op            CommandOp `json:"type"`
	CameraIP      string    `json:"camera_ip"`
	OldCameraIP   string    `json:"old_camera_id,omitempty"`
	ParkingSpaces int       `json:"number_of_parking"`
}

// Validate checks that the command carries exactly the fields its operation
// requires.
func (c *CameraCommand) Validate() error {
	switch c.Op {
	case CommandCreate, CommandEdit, CommandDelete, CommandRestore:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommandOp, c.Op)
	}

	if c.PoleCode == "" {
		return ErrMissingPoleCode
	}

	if c.CameraIP == "" {
		return ErrMissingCameraIP
	}

	if c.Op == CommandEdit && c.OldCameraIP == "" {
		return ErrMissingOldCameraIP
	}

	if c.Op != CommandEdit && c.OldCameraIP != "" {
		return ErrUnexpectedOldCamera
	}

	return nil
}

// PendingCommand is the durable record of a command whose delivery could not
// be confirmed. Created exactly once per failed dispatch attempt; deleted only
// by a confirmed resync.
type PendingCommand struct {
	ID            string    `json:"id"`
	PoleID        int64     `json:"pole_id"`
	PoleCode      string    `json:"pole_code"`
	Op            CommandOp `json:"type"`
	CameraIP      string    `json:"camera_ip"`
	OldCameraIP   string    `json:"old_camera_id,omitempty"`
	ParkingSpaces int       `json:"number_of_parking"`
	CreatedAt     time.Time `json:"created_at"`
}

// Command reconstructs the original dispatch payload from a pending record.
func (p *PendingCommand) Command() CameraCommand {
	return CameraCommand{
		PoleID:        p.PoleID,
		PoleCode:      p.PoleCode,
		Op:            p.Op,
		CameraIP:      p.CameraIP,
		OldCameraIP:   p.OldCameraIP,
		ParkingSpaces: p.ParkingSpaces,
	}
}
