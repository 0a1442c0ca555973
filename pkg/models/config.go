package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/wassim-ahmad/onStreetCloud/pkg/logger"
)

var errInvalidDuration = errors.New("invalid duration")

// Duration wraps time.Duration so config files can use "5s" style strings.
type Duration time.Duration

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%w: %q", errInvalidDuration, value)
		}

		*d = Duration(parsed)

		return nil
	default:
		return fmt.Errorf("%w: %v", errInvalidDuration, v)
	}
}

// DatabaseConfig holds PostgreSQL connection settings for the catalog,
// pending-command, notification, and user stores.
type DatabaseConfig struct {
	Host            string   `json:"host"`
	Port            int      `json:"port,omitempty"`
	Database        string   `json:"database"`
	Username        string   `json:"username,omitempty"`
	Password        string   `json:"password,omitempty"`
	SSLMode         string   `json:"ssl_mode,omitempty"`
	ApplicationName string   `json:"application_name,omitempty"`
	MaxConnections  int32    `json:"max_connections,omitempty"`
	MinConnections  int32    `json:"min_connections,omitempty"`
	MaxConnLifetime Duration `json:"max_conn_lifetime,omitempty"`
}

// NATSConfig enables the optional presence event export to JetStream.
type NATSConfig struct {
	URL     string `json:"url"`
	Stream  string `json:"stream,omitempty"`
	Subject string `json:"subject,omitempty"`
}

// CORSConfig controls cross-origin access to the HTTP API.
type CORSConfig struct {
	AllowedOrigins   []string `json:"allowed_origins,omitempty"`
	AllowCredentials bool     `json:"allow_credentials,omitempty"`
}

// CloudConfig is the central server configuration.
type CloudConfig struct {
	ListenAddr string         `json:"listen_addr"`
	APIKey     string         `json:"api_key,omitempty"`
	AckTimeout Duration       `json:"ack_timeout,omitempty"`
	Database   DatabaseConfig `json:"database"`
	NATS       *NATSConfig    `json:"nats,omitempty"`
	CORS       CORSConfig     `json:"cors,omitempty"`
	Logging    *logger.Config `json:"logging,omitempty"`
}

var (
	ErrMissingListenAddr = errors.New("listen_addr is required")
	ErrMissingDatabase   = errors.New("database host and name are required")
	ErrMissingCloudURL   = errors.New("cloud_url is required")
	ErrMissingAgentCode  = errors.New("pole_code is required")
)

// Validate implements config.Validator.
func (c *CloudConfig) Validate() error {
	if c.ListenAddr == "" {
		return ErrMissingListenAddr
	}

	if c.Database.Host == "" || c.Database.Database == "" {
		return ErrMissingDatabase
	}

	return nil
}

// ApplyEnv implements config.Overrider: secrets come from the environment
// when set, never only from the config file.
func (c *CloudConfig) ApplyEnv() {
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}

	if v := os.Getenv("API_KEY"); v != "" {
		c.APIKey = v
	}
}

// Validate implements config.Validator.
func (c *PoleAgentConfig) Validate() error {
	if c.CloudURL == "" {
		return ErrMissingCloudURL
	}

	if c.PoleCode == "" {
		return ErrMissingAgentCode
	}

	return nil
}

// AgentCamera describes one camera hosted by a pole agent.
type AgentCamera struct {
	CameraIP      string `json:"camera_ip"`
	ParkingSpaces int    `json:"number_of_parking,omitempty"`
}

// PoleAgentConfig is the edge pole agent configuration.
type PoleAgentConfig struct {
	CloudURL       string         `json:"cloud_url"`
	PoleCode       string         `json:"pole_code"`
	RouterIP       string         `json:"router_ip,omitempty"`
	FileServerID   string         `json:"file_server_id,omitempty"`
	Cameras        []AgentCamera  `json:"cameras,omitempty"`
	ReconnectMin   Duration       `json:"reconnect_min,omitempty"`
	ReconnectMax   Duration       `json:"reconnect_max,omitempty"`
	ResourcePeriod Duration       `json:"resource_period,omitempty"`
	Logging        *logger.Config `json:"logging,omitempty"`
}
