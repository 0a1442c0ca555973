package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	ListenAddr string `json:"listen_addr"`
	APIKey     string `json:"api_key,omitempty"`
}

var errMissingListenAddr = errors.New("listen_addr is required")

func (c *testConfig) Validate() error {
	if c.ListenAddr == "" {
		return errMissingListenAddr
	}

	return nil
}

func (c *testConfig) ApplyEnv() {
	if v := os.Getenv("TEST_API_KEY"); v != "" {
		c.APIKey = v
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoadValidConfig(t *testing.T) {
	path := writeConfig(t, `{"listen_addr": ":8080"}`)

	var cfg testConfig
	require.NoError(t, Load(context.Background(), path, &cfg))
	assert.Equal(t, ":8080", cfg.ListenAddr)
}

func TestLoadAppliesEnvOverride(t *testing.T) {
	path := writeConfig(t, `{"listen_addr": ":8080", "api_key": "from-file"}`)

	t.Setenv("TEST_API_KEY", "from-env")

	var cfg testConfig
	require.NoError(t, Load(context.Background(), path, &cfg))
	assert.Equal(t, "from-env", cfg.APIKey)
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	var cfg testConfig
	err := Load(context.Background(), "/nonexistent/config.json", &cfg)
	require.ErrorIs(t, err, errLoadConfigFailed)
}

func TestLoadInvalidJSON(t *testing.T) {
	path := writeConfig(t, `{"listen_addr": `)

	var cfg testConfig
	require.Error(t, Load(context.Background(), path, &cfg))
}

func TestLoadFailsValidation(t *testing.T) {
	path := writeConfig(t, `{}`)

	var cfg testConfig
	err := Load(context.Background(), path, &cfg)
	require.ErrorIs(t, err, errMissingListenAddr)
}
