package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	persistence "github.com/goliatone/go-persistence-bun"
)

// EnvPrefix is prepended to every environment variable read by NewConfig.
const EnvPrefix = "USERSTORE_"

// Config holds all configuration for the userstore CLI
type Config struct {
	Verbose  bool     `env:"VERBOSE" envDefault:"false"`
	Database Database `envPrefix:"DATABASE_"`
}

// Database implements persistence.Config and adds migration settings
type Database struct {
	Driver         string        `env:"DRIVER" envDefault:"sqlite"`
	DSN            string        `env:"DSN" envDefault:"users.db"`
	Debug          bool          `env:"DEBUG" envDefault:"false"`
	AutoMigrate    bool          `env:"AUTO_MIGRATE" envDefault:"true"`
	PingTimeout    time.Duration `env:"PING_TIMEOUT" envDefault:"5s"`
	OtelIdentifier string        `env:"OTEL_IDENTIFIER" envDefault:"userstore"`
}

var _ persistence.Config = Database{}

func (c Database) GetDriver() string             { return c.Driver }
func (c Database) GetDSN() string                { return c.DSN }
func (c Database) GetServer() string             { return c.DSN }
func (c Database) GetDebug() bool                { return c.Debug }
func (c Database) GetAutoMigrate() bool          { return c.AutoMigrate }
func (c Database) GetPingTimeout() time.Duration { return c.PingTimeout }
func (c Database) GetOtelIdentifier() string     { return c.OtelIdentifier }

// NewConfig loads configuration from USERSTORE_ prefixed environment variables.
func NewConfig() (*Config, error) {
	cfg := Config{}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}
