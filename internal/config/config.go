// Package config holds the storefront service configuration.
package config

import (
	"fmt"
	"strings"

	"github.com/abgdnv/storefront/pkg/config"
	"github.com/abgdnv/storefront/pkg/config/configloader"
)

var _ configloader.Validator = (*Config)(nil)

type Config struct {
	HTTPServer config.HTTPConfig       `koanf:"server"`
	GrpcServer config.GrpcServerConfig `koanf:"grpc"`
	Log        config.LogConfig        `koanf:"log"`
	PProf      config.PProfConfig      `koanf:"pprof"`
	Shutdown   config.ShutdownConfig   `koanf:"shutdown"`
	Session    config.SessionConfig    `koanf:"session"`
	RateLimit  config.RateLimitConfig  `koanf:"ratelimit"`
	Nats       config.NATSConfig       `koanf:"nats"`
	Subscriber config.SubscriberConfig `koanf:"subscriber"`
	Resilience config.ResilienceConfig `koanf:"resilience"`
	Telemetry  config.TelemetryConfig  `koanf:"telemetry"`
}

type block interface {
	String() string
	Validate() error
}

func (c *Config) blocks() []block {
	return []block{
		&c.HTTPServer,
		&c.GrpcServer,
		&c.Log,
		&c.PProf,
		&c.Shutdown,
		&c.Session,
		&c.RateLimit,
		&c.Nats,
		&c.Subscriber,
		&c.Resilience,
		&c.Telemetry,
	}
}

// String renders every block; secrets are masked by the blocks themselves.
func (c *Config) String() string {
	var b strings.Builder
	for _, blk := range c.blocks() {
		b.WriteString(blk.String())
	}
	return b.String()
}

// Validate checks if the configuration values are valid
func (c *Config) Validate() error {
	for _, blk := range c.blocks() {
		if err := blk.Validate(); err != nil {
			return err
		}
	}
	if c.Subscriber.Enabled && !c.Nats.Enabled {
		return fmt.Errorf("subscriber is enabled but NATS is disabled")
	}
	return nil
}
