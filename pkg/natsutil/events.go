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

// Package natsutil publishes presence transitions to NATS JetStream as
// CloudEvents, for downstream consumers that want a durable presence feed
// without holding a websocket open.
package natsutil

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

const (
	defaultStream        = "onstreet-events"
	defaultSubjectPrefix = "events.presence"

	eventSource = "onstreetcloud/hub"
	eventType   = "com.onstreetcloud.presence.transition"
)

// CloudEvent is the envelope written to the stream, following the
// CloudEvents 1.0 attribute names.
type CloudEvent struct {
	SpecVersion     string      `json:"specversion"`
	ID              string      `json:"id"`
	Source          string      `json:"source"`
	Type            string      `json:"type"`
	DataContentType string      `json:"datacontenttype"`
	Subject         string      `json:"subject"`
	Time            *time.Time  `json:"time,omitempty"`
	Data            interface{} `json:"data,omitempty"`
}

// PresenceEventData is the payload of one presence transition.
type PresenceEventData struct {
	Kind      string    `json:"kind"`
	Code      string    `json:"code"`
	State     string    `json:"state"`
	Timestamp time.Time `json:"timestamp"`
}

// EventPublisher publishes presence CloudEvents to a JetStream stream.
// It satisfies the hub's EventPublisher contract.
type EventPublisher struct {
	js            jetstream.JetStream
	stream        string
	subjectPrefix string
}

// NewEventPublisher creates a publisher over an existing JetStream context.
func NewEventPublisher(js jetstream.JetStream, stream, subjectPrefix string) *EventPublisher {
	if stream == "" {
		stream = defaultStream
	}

	if subjectPrefix == "" {
		subjectPrefix = defaultSubjectPrefix
	}

	return &EventPublisher{js: js, stream: stream, subjectPrefix: subjectPrefix}
}

// PublishPresenceEvent publishes one identity transition. kind is "pole" or
// "camera", state is "online" or "offline".
func (p *EventPublisher) PublishPresenceEvent(ctx context.Context, kind, code, state string) error {
	now := time.Now()

	event := CloudEvent{
		SpecVersion:     "1.0",
		ID:              uuid.New().String(),
		Source:          eventSource,
		Type:            eventType,
		DataContentType: "application/json",
		Subject:         p.subjectFor(kind, state),
		Time:            &now,
		Data: PresenceEventData{
			Kind:      kind,
			Code:      code,
			State:     state,
			Timestamp: now,
		},
	}

	eventBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal presence event: %w", err)
	}

	if _, err := p.js.Publish(ctx, event.Subject, eventBytes); err != nil {
		return fmt.Errorf("failed to publish presence event: %w", err)
	}

	return nil
}

func (p *EventPublisher) subjectFor(kind, state string) string {
	return fmt.Sprintf("%s.%s.%s", p.subjectPrefix, kind, state)
}

// ConnectWithEventPublisher dials NATS, ensures the stream exists, and
// returns a publisher plus the owning connection for the caller to close.
func ConnectWithEventPublisher(ctx context.Context, natsURL, stream, subjectPrefix string,
	opts ...nats.Option) (*EventPublisher, *nats.Conn, error) {
	nc, err := nats.Connect(natsURL, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	publisher := NewEventPublisher(js, stream, subjectPrefix)

	if _, err := js.Stream(ctx, publisher.stream); err != nil {
		streamConfig := jetstream.StreamConfig{
			Name:     publisher.stream,
			Subjects: []string{publisher.subjectPrefix + ".>"},
		}

		if _, err := js.CreateOrUpdateStream(ctx, streamConfig); err != nil {
			nc.Close()
			return nil, nil, fmt.Errorf("failed to create or get stream %s: %w", publisher.stream, err)
		}
	}

	return publisher, nc, nil
}
