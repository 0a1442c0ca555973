package natsutil

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubjectFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		kind   string
		state  string
		want   string
	}{
		{"default prefix pole online", "", "pole", "online", "events.presence.pole.online"},
		{"default prefix camera offline", "", "camera", "offline", "events.presence.camera.offline"},
		{"custom prefix", "fleet.presence", "pole", "offline", "fleet.presence.pole.offline"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			p := NewEventPublisher(nil, "", tc.prefix)
			assert.Equal(t, tc.want, p.subjectFor(tc.kind, tc.state))
		})
	}
}

func TestCloudEventShape(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()

	event := CloudEvent{
		SpecVersion:     "1.0",
		ID:              "test-id",
		Source:          eventSource,
		Type:            eventType,
		DataContentType: "application/json",
		Subject:         "events.presence.pole.offline",
		Time:            &now,
		Data: PresenceEventData{
			Kind:      "pole",
			Code:      "P2",
			State:     "offline",
			Timestamp: now,
		},
	}

	raw, err := json.Marshal(event)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, "1.0", decoded["specversion"])
	assert.Equal(t, "com.onstreetcloud.presence.transition", decoded["type"])

	data, ok := decoded["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "P2", data["code"])
	assert.Equal(t, "offline", data["state"])
}

func TestNewEventPublisherDefaults(t *testing.T) {
	t.Parallel()

	p := NewEventPublisher(nil, "", "")
	assert.Equal(t, defaultStream, p.stream)
	assert.Equal(t, defaultSubjectPrefix, p.subjectPrefix)

	p = NewEventPublisher(nil, "custom", "custom.subjects")
	assert.Equal(t, "custom", p.stream)
	assert.Equal(t, "custom.subjects", p.subjectPrefix)
}
