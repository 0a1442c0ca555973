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

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/wassim-ahmad/onStreetCloud/pkg/logger"
	"github.com/wassim-ahmad/onStreetCloud/pkg/models"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// Outbound queue per connection. A slow observer that falls this far
	// behind is disconnected rather than allowed to block broadcasts.
	sendBufferSize = 64
)

var (
	errConnClosed   = errors.New("connection closed")
	errSendBackedUp = errors.New("outbound queue full")
)

// wsConn adapts one gorilla/websocket connection to the hub's Conn contract.
// One writer goroutine owns the socket for writes; Send and SendWithAck only
// enqueue. Ack waiters are matched to replies by the envelope ack id.
type wsConn struct {
	id     string
	ws     *websocket.Conn
	logger logger.Logger

	out  chan *models.Envelope
	done chan struct{}

	closeOnce sync.Once

	ackSeq uint64

	mu   sync.Mutex
	acks map[uint64]chan bool
}

func newWSConn(ws *websocket.Conn, log logger.Logger) *wsConn {
	return &wsConn{
		id:     uuid.NewString(),
		ws:     ws,
		logger: log,
		out:    make(chan *models.Envelope, sendBufferSize),
		done:   make(chan struct{}),
		acks:   make(map[uint64]chan bool),
	}
}

func (c *wsConn) ID() string { return c.id }

// Send queues one event without waiting for a reply.
func (c *wsConn) Send(event string, data interface{}) error {
	env, err := models.NewEnvelope(event, data)
	if err != nil {
		return err
	}

	return c.enqueue(env)
}

// SendWithAck queues one event with an ack id and blocks until the peer
// acknowledges, the context expires, or the connection closes. Expiry and
// close both count as a negative acknowledgement with an error.
func (c *wsConn) SendWithAck(ctx context.Context, event string, data interface{}) (bool, error) {
	env, err := models.NewEnvelope(event, data)
	if err != nil {
		return false, err
	}

	env.AckID = atomic.AddUint64(&c.ackSeq, 1)

	reply := make(chan bool, 1)

	c.mu.Lock()
	c.acks[env.AckID] = reply
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.acks, env.AckID)
		c.mu.Unlock()
	}()

	if err := c.enqueue(env); err != nil {
		return false, err
	}

	select {
	case ok := <-reply:
		return ok, nil
	case <-ctx.Done():
		return false, ctx.Err()
	case <-c.done:
		return false, errConnClosed
	}
}

func (c *wsConn) enqueue(env *models.Envelope) error {
	select {
	case c.out <- env:
		return nil
	case <-c.done:
		return errConnClosed
	default:
		c.close()
		return errSendBackedUp
	}
}

// resolveAck delivers an ack reply to its waiter. Stale or unknown ack ids
// are dropped silently.
func (c *wsConn) resolveAck(ackID uint64, value bool) {
	c.mu.Lock()
	reply, ok := c.acks[ackID]
	delete(c.acks, ackID)
	c.mu.Unlock()

	if ok {
		reply <- value
	}
}

func (c *wsConn) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.ws.Close()
	})
}

// writeLoop owns all writes to the socket, including keepalive pings.
func (c *wsConn) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case env := <-c.out:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))

			if err := c.ws.WriteJSON(env); err != nil {
				c.logger.Debug().Err(err).Str("conn_id", c.id).Str("event", env.Event).
					Msg("write failed")

				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))

			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

// readLoop decodes envelopes and routes them into the hub until the
// connection drops.
func (c *wsConn) readLoop(ctx context.Context, hub HubService) {
	defer c.close()

	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var env models.Envelope
		if err := c.ws.ReadJSON(&env); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug().Err(err).Str("conn_id", c.id).Msg("unexpected close")
			}

			return
		}

		c.handleEvent(ctx, hub, &env)
	}
}

func (c *wsConn) handleEvent(ctx context.Context, hub HubService, env *models.Envelope) {
	switch env.Event {
	case models.EventAck:
		c.resolveAck(env.AckID, models.AckValue(env.Data))
	case models.EventOnlineDevice:
		var p models.OnlineDevicePayload
		if c.decode(env, &p) {
			hub.PoleOnline(ctx, c, p)
		}
	case models.EventCameraOnline:
		var p models.CameraPresencePayload
		if c.decode(env, &p) {
			hub.CameraOnline(ctx, c, p)
		}
	case models.EventCameraOffline:
		var p models.CameraPresencePayload
		if c.decode(env, &p) {
			hub.CameraOffline(ctx, c, p)
		}
	case models.EventJoinPoleGroup:
		var p models.JoinPoleGroupPayload
		if c.decode(env, &p) {
			hub.JoinGroup(c, p.PoleCode)
		}
	case models.EventOrderResources:
		var p models.OrderResourcesPayload
		if c.decode(env, &p) {
			if p.SocketID == "" {
				p.SocketID = c.id
			}

			hub.OrderResources(p)
		}
	case models.EventServerResources:
		var p models.ServerResourcesPayload
		if c.decode(env, &p) {
			hub.ServerResources(p)
		}
	case models.EventRestartOrder:
		var p models.RestartOrderPayload
		if c.decode(env, &p) {
			hub.RestartOrder(p)
		}
	case models.EventAlert:
		var p models.AlertPayload
		if c.decode(env, &p) {
			hub.Alert(ctx, p)
		}
	default:
		c.logger.Debug().Str("conn_id", c.id).Str("event", env.Event).Msg("unknown event ignored")
	}
}

func (c *wsConn) decode(env *models.Envelope, dst interface{}) bool {
	if err := json.Unmarshal(env.Data, dst); err != nil {
		c.logger.Warn().Err(err).Str("conn_id", c.id).Str("event", env.Event).
			Msg("malformed payload dropped")

		return false
	}

	return true
}

// handleWS upgrades the HTTP request and runs the connection lifecycle: the
// server-assigned socket id goes out first, then the read loop runs until
// disconnect.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return s.checkOrigin(r)
		},
	}

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error().Err(err).Str("remote_addr", r.RemoteAddr).Msg("websocket upgrade failed")
		return
	}

	conn := newWSConn(ws, s.logger)

	s.logger.Info().
		Str("conn_id", conn.ID()).
		Str("remote_addr", r.RemoteAddr).
		Msg("connection established")

	s.hub.AddConn(conn)

	go conn.writeLoop()

	if err := conn.Send(models.EventSocketID, models.SocketIDPayload{ID: conn.ID()}); err != nil {
		s.logger.Warn().Err(err).Str("conn_id", conn.ID()).Msg("failed to send socket id")
	}

	conn.readLoop(r.Context(), s.hub)

	s.hub.RemoveConn(context.Background(), conn.ID())

	s.logger.Info().Str("conn_id", conn.ID()).Msg("connection closed")
}
