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
	"fmt"
	"time"

	"github.com/wassim-ahmad/onStreetCloud/pkg/db"
	"github.com/wassim-ahmad/onStreetCloud/pkg/logger"
	"github.com/wassim-ahmad/onStreetCloud/pkg/models"
)

// DefaultAckTimeout bounds the acknowledgement wait for a command push.
const DefaultAckTimeout = 5000 * time.Millisecond

// Dispatcher pushes camera commands to pole groups. Every dispatch attempt
// ends in ack-true or exactly one durable pending record; an attempt is never
// dropped without a trace.
type Dispatcher struct {
	db      db.Service
	groups  *Groups
	timeout time.Duration
	logger  logger.Logger
}

// NewDispatcher creates a dispatcher with the given acknowledgement bound.
// A zero timeout selects DefaultAckTimeout.
func NewDispatcher(database db.Service, groups *Groups, timeout time.Duration, log logger.Logger) *Dispatcher {
	if timeout <= 0 {
		timeout = DefaultAckTimeout
	}

	return &Dispatcher{db: database, groups: groups, timeout: timeout, logger: log}
}

// Dispatch multicasts cmd to the target pole's group and waits for the first
// acknowledgement. On ack-true nothing is persisted and the returned pending
// id is empty. On timeout, ack-false, or no reachable target it creates one
// pending record and returns its id; a failure of that write is a hard error
// because it would break the durability guarantee.
//
// The caller's catalog mutation is deliberately not transactional with this
// outcome: a delivery failure never rolls back a catalog write.
func (d *Dispatcher) Dispatch(ctx context.Context, cmd *models.CameraCommand) (bool, string, error) {
	if err := cmd.Validate(); err != nil {
		return false, "", err
	}

	if d.send(ctx, cmd) {
		d.logger.Info().
			Str("pole_code", cmd.PoleCode).
			Str("camera_ip", cmd.CameraIP).
			Str("type", string(cmd.Op)).
			Msg("camera command acknowledged")

		return true, "", nil
	}

	pending := &models.PendingCommand{
		PoleID:        cmd.PoleID,
		PoleCode:      cmd.PoleCode,
		Op:            cmd.Op,
		CameraIP:      cmd.CameraIP,
		OldCameraIP:   cmd.OldCameraIP,
		ParkingSpaces: cmd.ParkingSpaces,
	}

	if err := d.db.CreatePendingCommand(ctx, pending); err != nil {
		return false, "", fmt.Errorf("failed to persist pending command: %w", err)
	}

	d.logger.Warn().
		Str("pole_code", cmd.PoleCode).
		Str("camera_ip", cmd.CameraIP).
		Str("type", string(cmd.Op)).
		Str("pending_id", pending.ID).
		Msg("camera command not delivered, pending record created")

	return false, pending.ID, nil
}

// Resync re-issues the dispatch for one stored pending record. On ack-true
// the record is deleted; on failure it is left untouched and no duplicate is
// created. Retry is operator-triggered only.
func (d *Dispatcher) Resync(ctx context.Context, pendingID string) (bool, error) {
	pending, err := d.db.GetPendingCommand(ctx, pendingID)
	if err != nil {
		return false, err
	}

	cmd := pending.Command()

	if !d.send(ctx, &cmd) {
		d.logger.Info().
			Str("pending_id", pendingID).
			Str("pole_code", cmd.PoleCode).
			Msg("resync not acknowledged, record kept")

		return false, nil
	}

	if err := d.db.DeletePendingCommand(ctx, pendingID); err != nil {
		// Delivered but not cleaned up; the next resync will re-send.
		return true, fmt.Errorf("failed to delete pending command after resync: %w", err)
	}

	return true, nil
}

// send multicasts the command and returns the first acknowledgement value,
// or false when the group is empty or the wait times out.
func (d *Dispatcher) send(ctx context.Context, cmd *models.CameraCommand) bool {
	conns := d.groups.Members(cmd.PoleCode)
	if len(conns) == 0 {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	payload := cmd.ExecutePayload()
	results := make(chan bool, len(conns))

	for _, c := range conns {
		go func(c Conn) {
			ok, err := c.SendWithAck(ctx, models.EventExecuteCameraCommand, payload)
			if err != nil {
				d.logger.Debug().
					Err(err).
					Str("conn_id", c.ID()).
					Str("pole_code", cmd.PoleCode).
					Msg("command push failed")
			}

			results <- ok && err == nil
		}(c)
	}

	select {
	case ok := <-results:
		return ok
	case <-ctx.Done():
		return false
	}
}
