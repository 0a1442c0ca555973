package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsBadLevel(t *testing.T) {
	t.Parallel()

	_, err := New(&Config{Level: "shouting"})
	require.Error(t, err)
}

func TestNewDefaultsToInfo(t *testing.T) {
	log, err := New(nil)
	require.NoError(t, err)
	require.NotNil(t, log)
}

func TestLoggerEmitsJSONWithComponent(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	log := NewWithWriter(&buf, zerolog.InfoLevel).WithComponent("hub")
	log.Info().Str("pole_code", "P2").Msg("pole online")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "hub", entry["component"])
	assert.Equal(t, "P2", entry["pole_code"])
	assert.Equal(t, "pole online", entry["message"])
	assert.Equal(t, "info", entry["level"])
}

func TestDebugSuppressedAtInfoLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	log := NewWithWriter(&buf, zerolog.InfoLevel)
	log.Debug().Msg("hidden")

	assert.Zero(t, buf.Len())
}
