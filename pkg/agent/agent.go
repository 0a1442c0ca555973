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

// Package agent implements the edge pole client: it dials the cloud, announces
// the pole and its cameras, applies pushed camera commands against its local
// inventory, and answers resource requests.
package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gorilla/websocket"

	"github.com/wassim-ahmad/onStreetCloud/pkg/logger"
	"github.com/wassim-ahmad/onStreetCloud/pkg/models"
)

const (
	defaultReconnectMin = time.Second
	defaultReconnectMax = 30 * time.Second
	handshakeTimeout    = 10 * time.Second
)

var errRestartOrdered = errors.New("restart ordered by cloud")

// Agent is one pole's cloud session driver.
type Agent struct {
	cfg       *models.PoleAgentConfig
	logger    logger.Logger
	cameras   *CameraTable
	resources *ResourceMonitor
}

// New validates the configuration and builds an agent.
func New(cfg *models.PoleAgentConfig, log logger.Logger) (*Agent, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid agent config: %w", err)
	}

	return &Agent{
		cfg:       cfg,
		logger:    log,
		cameras:   NewCameraTable(cfg.Cameras),
		resources: NewResourceMonitor(time.Duration(cfg.ResourcePeriod), log.WithComponent("resources")),
	}, nil
}

// Cameras exposes the local inventory, mainly for tests.
func (a *Agent) Cameras() *CameraTable {
	return a.cameras
}

// Run dials the cloud and keeps the session alive until the context is
// canceled, reconnecting with capped exponential backoff on every drop.
func (a *Agent) Run(ctx context.Context) error {
	go a.resources.Run(ctx)

	minBackoff := time.Duration(a.cfg.ReconnectMin)
	if minBackoff <= 0 {
		minBackoff = defaultReconnectMin
	}

	maxBackoff := time.Duration(a.cfg.ReconnectMax)
	if maxBackoff < minBackoff {
		maxBackoff = defaultReconnectMax
	}

	backoff := minBackoff

	for {
		err := a.session(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		switch {
		case errors.Is(err, errRestartOrdered):
			// Restart resets the backoff: the drop was ordered, not a fault.
			backoff = minBackoff
		case err != nil:
			a.logger.Warn().Err(err).Dur("backoff", backoff).Msg("session ended, reconnecting")
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}

		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
}

// session runs one connection lifecycle: dial, announce, serve events until
// the connection drops.
func (a *Agent) session(ctx context.Context) error {
	dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}

	ws, resp, err := dialer.DialContext(ctx, a.cfg.CloudURL, nil)
	if err != nil {
		return fmt.Errorf("failed to dial cloud: %w", err)
	}

	if resp != nil {
		_ = resp.Body.Close()
	}

	defer func() { _ = ws.Close() }()

	a.logger.Info().Str("cloud_url", a.cfg.CloudURL).Str("pole_code", a.cfg.PoleCode).
		Msg("connected to cloud")

	if err := a.announce(ws); err != nil {
		return err
	}

	for {
		var env models.Envelope
		if err := ws.ReadJSON(&env); err != nil {
			return fmt.Errorf("connection lost: %w", err)
		}

		if err := a.handleEvent(ws, &env); err != nil {
			return err
		}
	}
}

// announce declares the pole identity and every active camera.
func (a *Agent) announce(ws *websocket.Conn) error {
	if err := writeEvent(ws, models.EventOnlineDevice, models.OnlineDevicePayload{
		Code:         a.cfg.PoleCode,
		RouterIP:     a.cfg.RouterIP,
		FileServerID: a.cfg.FileServerID,
	}); err != nil {
		return fmt.Errorf("failed to announce pole: %w", err)
	}

	for _, ip := range a.cameras.Active() {
		if err := writeEvent(ws, models.EventCameraOnline, models.CameraPresencePayload{
			PoleCode: a.cfg.PoleCode,
			CameraIP: ip,
		}); err != nil {
			return fmt.Errorf("failed to announce camera %s: %w", ip, err)
		}
	}

	return nil
}

func (a *Agent) handleEvent(ws *websocket.Conn, env *models.Envelope) error {
	switch env.Event {
	case models.EventExecuteCameraCommand:
		var push models.ExecuteCameraPayload
		if err := json.Unmarshal(env.Data, &push); err != nil {
			a.logger.Warn().Err(err).Msg("malformed command push")
			return a.ack(ws, env.AckID, false)
		}

		applied := a.cameras.Apply(&push)

		a.logger.Info().
			Str("type", string(push.Type)).
			Str("camera_ip", push.Data.CameraIP).
			Bool("applied", applied).
			Msg("camera command received")

		return a.ack(ws, env.AckID, applied)
	case models.EventGetServerResources:
		var req models.OrderResourcesPayload
		if err := json.Unmarshal(env.Data, &req); err != nil {
			a.logger.Warn().Err(err).Msg("malformed resource request")
			return nil
		}

		return writeEvent(ws, models.EventServerResources,
			a.resources.report(a.cfg.PoleCode, req.SocketID))
	case models.EventRestart:
		a.logger.Info().Msg("restart ordered")
		return errRestartOrdered
	default:
		// Snapshots and other dashboard traffic are not for us.
		return nil
	}
}

// ack answers a command push. A zero ack id means the cloud is not waiting.
func (a *Agent) ack(ws *websocket.Conn, ackID uint64, value bool) error {
	if ackID == 0 {
		return nil
	}

	env, err := models.NewEnvelope(models.EventAck, []bool{value})
	if err != nil {
		return err
	}

	env.AckID = ackID

	if err := ws.WriteJSON(env); err != nil {
		return fmt.Errorf("failed to send ack: %w", err)
	}

	return nil
}

func writeEvent(ws *websocket.Conn, event string, data interface{}) error {
	env, err := models.NewEnvelope(event, data)
	if err != nil {
		return err
	}

	return ws.WriteJSON(env)
}
