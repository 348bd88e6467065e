package config

import (
	"fmt"
	"os"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment" default:"dev" validate:"required"`
	Server      struct {
		Port            int           `yaml:"port" default:"8080" validate:"gt=0,lte=65535"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"10s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
	} `yaml:"server"`
	Upstream struct {
		BaseURL        string        `yaml:"base_url" default:"http://localhost:8000" validate:"required,url"`
		WebSocketURL   string        `yaml:"websocket_url" default:"ws://localhost:8000/ws" validate:"required"`
		RequestTimeout time.Duration `yaml:"request_timeout" default:"10s"`
	} `yaml:"upstream"`
	Catalog struct {
		RefreshInterval time.Duration `yaml:"refresh_interval" default:"5m" validate:"gt=0"`
		NewLimit        int           `yaml:"new_limit" default:"150" validate:"gt=0"`
		AllLimit        int           `yaml:"all_limit" default:"500" validate:"gt=0"`
	} `yaml:"catalog"`
	Stream struct {
		ReconnectDelay   time.Duration `yaml:"reconnect_delay" default:"2s" validate:"gt=0"`
		HandshakeTimeout time.Duration `yaml:"handshake_timeout" default:"10s"`
	} `yaml:"stream"`
	Log struct {
		Level  string `yaml:"level" default:"info" validate:"oneof=debug info warn error"`
		Format string `yaml:"format" default:"console" validate:"oneof=json console"`
		Output string `yaml:"output" default:"stdout"`
	} `yaml:"log"`
	Metrics struct {
		Enabled bool   `yaml:"enabled" default:"true"`
		Path    string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`
}

// Load reads a YAML configuration file, applies struct defaults, and
// validates the result. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	var c Config

	b, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}

	if err := validator.New().Struct(&c); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("MEMEFLOW_SERVER_URL"); v != "" {
		c.Upstream.BaseURL = v
	}
	if v := os.Getenv("MEMEFLOW_WS_URL"); v != "" {
		c.Upstream.WebSocketURL = v
	}
	if v := os.Getenv("MEMEFLOW_PORT"); v != "" {
		port := 0
		if _, err := fmt.Sscanf(v, "%d", &port); err == nil && port > 0 {
			c.Server.Port = port
		}
	}

	return c, nil
}
