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

// Package hub implements the presence-tracking and reliable-dispatch core:
// connection registry, multicast groups, presence protocol, command
// dispatcher, status aggregator, and the notification side effect.
package hub

import (
	"context"
	"sync"
	"time"

	"github.com/wassim-ahmad/onStreetCloud/pkg/db"
	"github.com/wassim-ahmad/onStreetCloud/pkg/logger"
	"github.com/wassim-ahmad/onStreetCloud/pkg/models"
)

// Hub is the composition root for the core. It owns the observer table (all
// live connections) and implements Broadcaster on top of it.
type Hub struct {
	mu    sync.RWMutex
	conns map[string]Conn

	registry   *Registry
	groups     *Groups
	aggregator *Aggregator
	notifier   *Notifier
	presence   *Presence
	dispatcher *Dispatcher

	db     db.Service
	logger logger.Logger
}

// Option configures optional hub behavior.
type Option func(*options)

type options struct {
	ackTimeout time.Duration
	events     EventPublisher
}

// WithAckTimeout overrides the command acknowledgement bound.
func WithAckTimeout(timeout time.Duration) Option {
	return func(o *options) { o.ackTimeout = timeout }
}

// WithEventPublisher enables presence event export.
func WithEventPublisher(events EventPublisher) Option {
	return func(o *options) { o.events = events }
}

// New wires the hub components around the persistent store.
func New(database db.Service, log logger.Logger, opts ...Option) *Hub {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	h := &Hub{
		conns:    make(map[string]Conn),
		registry: NewRegistry(),
		groups:   NewGroups(),
		db:       database,
		logger:   log,
	}

	h.aggregator = NewAggregator(database, h.registry)
	h.notifier = NewNotifier(database, h, log.WithComponent("notifier"))
	h.presence = NewPresence(h.registry, h.groups, h.aggregator, h.notifier,
		h, o.events, log.WithComponent("presence"))
	h.dispatcher = NewDispatcher(database, h.groups, o.ackTimeout, log.WithComponent("dispatcher"))

	return h
}

// AddConn registers a new live connection as an observer.
func (h *Hub) AddConn(conn Conn) {
	h.mu.Lock()
	h.conns[conn.ID()] = conn
	h.mu.Unlock()
}

// RemoveConn handles a transport-level disconnect: the connection leaves the
// observer table, the registry, and all groups; identities it was the last
// connection for go through the offline workflow.
func (h *Hub) RemoveConn(ctx context.Context, connID string) {
	h.mu.Lock()
	delete(h.conns, connID)
	h.mu.Unlock()

	h.presence.Disconnect(ctx, connID)
}

// BroadcastAll implements Broadcaster.
func (h *Hub) BroadcastAll(event string, data interface{}) {
	h.mu.RLock()
	conns := make([]Conn, 0, len(h.conns))

	for _, c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	for _, c := range conns {
		if err := c.Send(event, data); err != nil {
			h.logger.Debug().Err(err).Str("conn_id", c.ID()).Str("event", event).
				Msg("broadcast send failed")
		}
	}
}

// BroadcastGroup implements Broadcaster.
func (h *Hub) BroadcastGroup(group, event string, data interface{}) {
	h.groups.Broadcast(group, event, data)
}

// SendTo implements Broadcaster.
func (h *Hub) SendTo(connID, event string, data interface{}) bool {
	h.mu.RLock()
	conn, ok := h.conns[connID]
	h.mu.RUnlock()

	if !ok {
		return false
	}

	if err := conn.Send(event, data); err != nil {
		h.logger.Debug().Err(err).Str("conn_id", connID).Str("event", event).
			Msg("direct send failed")

		return false
	}

	return true
}

// PoleOnline handles the onlineDevice announce.
func (h *Hub) PoleOnline(ctx context.Context, conn Conn, announce models.OnlineDevicePayload) {
	h.presence.PoleOnline(ctx, conn, announce)
}

// CameraOnline handles the cameraOnline announce.
func (h *Hub) CameraOnline(ctx context.Context, conn Conn, announce models.CameraPresencePayload) {
	h.presence.CameraOnline(ctx, conn, announce)
}

// CameraOffline handles the cameraOffline announce.
func (h *Hub) CameraOffline(ctx context.Context, conn Conn, announce models.CameraPresencePayload) {
	h.presence.CameraOffline(ctx, conn, announce)
}

// JoinGroup subscribes a dashboard connection to one pole's group.
func (h *Hub) JoinGroup(conn Conn, group string) {
	h.groups.Join(group, conn)
	h.logger.Debug().Str("conn_id", conn.ID()).Str("group", group).Msg("joined group")
}

// OrderResources relays a resource request to the pole's group.
func (h *Hub) OrderResources(payload models.OrderResourcesPayload) {
	h.BroadcastGroup(payload.PoleCode, models.EventGetServerResources, payload)
}

// ServerResources relays a pole's resource report back to the requesting
// connection.
func (h *Hub) ServerResources(payload models.ServerResourcesPayload) {
	if !h.SendTo(payload.SocketID, models.EventShowServerResources, payload) {
		h.logger.Debug().
			Str("socket_id", payload.SocketID).
			Str("pole_code", payload.PoleCode).
			Msg("resource report requester gone")
	}
}

// RestartOrder relays a restart command to the pole's group.
func (h *Hub) RestartOrder(payload models.RestartOrderPayload) {
	h.BroadcastGroup(payload.PoleCode, models.EventRestart, payload)
}

// Alert fans an application-level pole alert out to entitled users.
func (h *Hub) Alert(ctx context.Context, alert models.AlertPayload) {
	h.notifier.Alert(ctx, alert)
}

// DevicesWithStatus returns the pole snapshot for the HTTP API.
func (h *Hub) DevicesWithStatus(ctx context.Context) (*models.StatusSnapshot, error) {
	return h.aggregator.PoleSnapshot(ctx)
}

// CamerasWithStatus returns one pole's camera snapshot.
func (h *Hub) CamerasWithStatus(ctx context.Context, poleCode string) (*models.StatusSnapshot, error) {
	return h.aggregator.CameraSnapshot(ctx, poleCode)
}

// AllCamerasWithStatus returns the fleet-wide camera snapshot.
func (h *Hub) AllCamerasWithStatus(ctx context.Context) (*models.StatusSnapshot, error) {
	return h.aggregator.AllCamerasSnapshot(ctx)
}

// Statistics returns fleet-wide camera statistics.
func (h *Hub) Statistics(ctx context.Context) (*models.CameraStatistics, error) {
	return h.aggregator.Statistics(ctx)
}

// Dispatch pushes a camera command to its target pole. The string is the id
// of the pending record created on a failed delivery, empty on ack-true.
func (h *Hub) Dispatch(ctx context.Context, cmd *models.CameraCommand) (bool, string, error) {
	return h.dispatcher.Dispatch(ctx, cmd)
}

// Resync replays one stored pending command.
func (h *Hub) Resync(ctx context.Context, pendingID string) (bool, error) {
	return h.dispatcher.Resync(ctx, pendingID)
}

// PendingCommands returns the administrative pending list.
func (h *Hub) PendingCommands(ctx context.Context) ([]models.PendingCommand, error) {
	return h.db.ListPendingCommands(ctx)
}
