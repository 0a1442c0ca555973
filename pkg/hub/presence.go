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

	"github.com/wassim-ahmad/onStreetCloud/pkg/logger"
	"github.com/wassim-ahmad/onStreetCloud/pkg/models"
)

// Presence drives identity state transitions from connection and
// application-level announce events. Registry mutation happens synchronously
// in the handler; the status snapshot is always recomputed fresh at
// broadcast time, never carried across a blocking call.
type Presence struct {
	registry    *Registry
	groups      *Groups
	aggregator  *Aggregator
	notifier    *Notifier
	broadcaster Broadcaster
	events      EventPublisher
	logger      logger.Logger
}

// NewPresence wires the presence protocol. events may be nil.
func NewPresence(registry *Registry, groups *Groups, aggregator *Aggregator,
	notifier *Notifier, broadcaster Broadcaster, events EventPublisher, log logger.Logger) *Presence {
	return &Presence{
		registry:    registry,
		groups:      groups,
		aggregator:  aggregator,
		notifier:    notifier,
		broadcaster: broadcaster,
		events:      events,
		logger:      log,
	}
}

// PoleOnline handles a pole announcing itself after connect: register the
// identity, join the pole's group, broadcast the pole snapshot.
func (p *Presence) PoleOnline(ctx context.Context, conn Conn, announce models.OnlineDevicePayload) {
	identity := PoleIdentity{
		Code:         announce.Code,
		RouterIP:     announce.RouterIP,
		FileServerID: announce.FileServerID,
	}

	p.registry.Register(conn, identity)
	p.groups.Join(announce.Code, conn)

	p.logger.Info().
		Str("pole_code", announce.Code).
		Str("conn_id", conn.ID()).
		Msg("pole online")

	p.publishEvent(ctx, KindPole, announce.Code, "online")
	p.broadcastPoleSnapshot(ctx)
}

// CameraOnline handles a pole announcing one of its cameras as reachable.
func (p *Presence) CameraOnline(ctx context.Context, conn Conn, announce models.CameraPresencePayload) {
	identity := CameraIdentity{PoleCode: announce.PoleCode, CameraIP: announce.CameraIP}

	p.registry.Register(conn, identity)
	p.groups.Join(announce.PoleCode, conn)

	p.logger.Info().
		Str("pole_code", announce.PoleCode).
		Str("camera_ip", announce.CameraIP).
		Msg("camera online")

	p.publishEvent(ctx, KindCamera, identity.Key(), "online")
	p.broadcastCameraSnapshots(ctx, announce.PoleCode)
}

// CameraOffline handles a pole announcing one of its cameras as unreachable.
// The notification side effect runs only when the camera was previously
// online: a live disconnect, not a boot-time absence.
func (p *Presence) CameraOffline(ctx context.Context, conn Conn, announce models.CameraPresencePayload) {
	identity := CameraIdentity{PoleCode: announce.PoleCode, CameraIP: announce.CameraIP}

	if p.registry.Online(identity) {
		var routerIP, fileServerID string
		if pole, ok := p.poleForCode(announce.PoleCode); ok {
			routerIP = pole.RouterIP
			fileServerID = pole.FileServerID
		}

		p.notifier.CameraDisconnected(ctx, identity, routerIP, fileServerID)
	}

	p.registry.Deregister(conn.ID(), identity)
	p.groups.Join(announce.PoleCode, conn)

	p.logger.Info().
		Str("pole_code", announce.PoleCode).
		Str("camera_ip", announce.CameraIP).
		Msg("camera offline")

	p.publishEvent(ctx, KindCamera, identity.Key(), "offline")
	p.broadcastCameraSnapshots(ctx, announce.PoleCode)
}

// Disconnect handles a transport-level close without an explicit offline
// announce. Identities for which this was the last remaining connection go
// through the full offline workflow, notifications included.
func (p *Presence) Disconnect(ctx context.Context, connID string) {
	gone := p.registry.DropConn(connID)
	p.groups.LeaveAll(connID)

	cameraPoles := make(map[string]struct{})

	for _, identity := range gone {
		switch id := identity.(type) {
		case PoleIdentity:
			p.logger.Info().
				Str("pole_code", id.Code).
				Str("conn_id", connID).
				Msg("pole disconnected")

			p.notifier.PoleDisconnected(ctx, id)
			p.publishEvent(ctx, KindPole, id.Code, "offline")
		case CameraIdentity:
			var routerIP, fileServerID string
			if pole, ok := p.poleForCode(id.PoleCode); ok {
				routerIP = pole.RouterIP
				fileServerID = pole.FileServerID
			}

			p.notifier.CameraDisconnected(ctx, id, routerIP, fileServerID)
			p.publishEvent(ctx, KindCamera, id.Key(), "offline")

			cameraPoles[id.PoleCode] = struct{}{}
		}
	}

	p.broadcastPoleSnapshot(ctx)

	for poleCode := range cameraPoles {
		p.broadcastCameraSnapshots(ctx, poleCode)
	}
}

// poleForCode resolves the live pole identity for a pole code, for alert
// enrichment only. The pole may itself already be offline.
func (p *Presence) poleForCode(code string) (PoleIdentity, bool) {
	for _, pole := range p.registry.OnlinePoles() {
		if pole.Code == code {
			return pole, true
		}
	}

	return PoleIdentity{}, false
}

func (p *Presence) broadcastPoleSnapshot(ctx context.Context) {
	snap, err := p.aggregator.PoleSnapshot(ctx)
	if err != nil {
		p.logger.Error().Err(err).Msg("failed to compute pole snapshot")
		return
	}

	p.broadcaster.BroadcastAll(models.EventStatusSnapshotPoles, snap)
}

func (p *Presence) broadcastCameraSnapshots(ctx context.Context, poleCode string) {
	if snap, err := p.aggregator.CameraSnapshot(ctx, poleCode); err != nil {
		p.logger.Error().Err(err).Str("pole_code", poleCode).Msg("failed to compute camera snapshot")
	} else {
		p.broadcaster.BroadcastGroup(poleCode, models.EventStatusSnapshotCameras, snap)
	}

	if snap, err := p.aggregator.AllCamerasSnapshot(ctx); err != nil {
		p.logger.Error().Err(err).Msg("failed to compute all-cameras snapshot")
	} else {
		p.broadcaster.BroadcastAll(models.EventStatusSnapshotAllCameras, snap)
	}

	if stats, err := p.aggregator.Statistics(ctx); err != nil {
		p.logger.Error().Err(err).Msg("failed to compute camera statistics")
	} else {
		p.broadcaster.BroadcastAll(models.EventStatisticsCameras, stats)
	}
}

func (p *Presence) publishEvent(ctx context.Context, kind IdentityKind, code, state string) {
	if p.events == nil {
		return
	}

	if err := p.events.PublishPresenceEvent(ctx, string(kind), code, state); err != nil {
		p.logger.Warn().Err(err).Str("code", code).Msg("failed to publish presence event")
	}
}
