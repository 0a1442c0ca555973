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
)

// Conn abstracts one live bidirectional connection, decoupling the hub from
// the WebSocket transport so the same logic runs atop any channel
// implementation.
type Conn interface {
	// ID returns the server-assigned connection id.
	ID() string
	// Send queues one event without waiting for a reply.
	Send(event string, data interface{}) error
	// SendWithAck sends one event and blocks until the peer acknowledges or
	// the context expires. The boolean is the peer's acknowledgement value.
	SendWithAck(ctx context.Context, event string, data interface{}) (bool, error)
}

// Broadcaster fans events out to connected observers. Implemented by the Hub.
type Broadcaster interface {
	// BroadcastAll sends an event to every connected observer.
	BroadcastAll(event string, data interface{})
	// BroadcastGroup sends an event to every member of a multicast group.
	BroadcastGroup(group, event string, data interface{})
	// SendTo sends an event to one connection; reports whether it exists.
	SendTo(connID, event string, data interface{}) bool
}

// EventPublisher exports presence transitions to an external event stream.
type EventPublisher interface {
	PublishPresenceEvent(ctx context.Context, kind, code, state string) error
}
