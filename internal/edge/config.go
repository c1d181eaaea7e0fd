package edge

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the edge server configuration, read from the environment.
type Config struct {
	// Region is the region this instance runs in.
	Region string `env:"FLY_REGION"`

	// PrimaryRegion is the designated single-writer region.
	PrimaryRegion string `env:"PRIMARY_REGION"`

	// Port is the HTTP listen port.
	Port int `env:"PORT" envDefault:"3000"`

	// AppEnv selects runtime behavior (production enables JSON logs).
	AppEnv string `env:"APP_ENV" envDefault:"development"`

	// LogLevel is the minimum log level.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// PublicDir is the directory static assets are served from. The
	// build output lives under its "build" subdirectory.
	PublicDir string `env:"PUBLIC_DIR" envDefault:"public"`
}

// LoadConfig parses the configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

// Production reports whether the server runs in production mode.
func (c *Config) Production() bool {
	return c.AppEnv == "production"
}
