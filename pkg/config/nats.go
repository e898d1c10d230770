package config

import (
	"fmt"
	"strings"
	"time"
)

// NATSConfig is the broker connection. MaxReconnects of -1 retries forever.
// DuplicateWindow is how long JetStream remembers published message ids.
type NATSConfig struct {
	Enabled         bool          `koanf:"enabled"`
	Url             string        `koanf:"url"`
	Timeout         time.Duration `koanf:"timeout"`
	MaxReconnects   int           `koanf:"maxreconnects"`
	ReconnectWait   time.Duration `koanf:"reconnectwait"`
	DuplicateWindow time.Duration `koanf:"duplicatewindow"`
}

// String returns a string representation of the NATS configuration.
func (c *NATSConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- NATS ---\n")
	b.WriteString(fmt.Sprintf("  enabled: %t\n", c.Enabled))
	b.WriteString(fmt.Sprintf("  url: %s\n", c.Url))
	b.WriteString(fmt.Sprintf("  timeout: %s\n", c.Timeout))
	b.WriteString(fmt.Sprintf("  maxreconnects: %d\n", c.MaxReconnects))
	b.WriteString(fmt.Sprintf("  reconnectwait: %s\n", c.ReconnectWait))
	b.WriteString(fmt.Sprintf("  duplicatewindow: %s\n", c.DuplicateWindow))
	return b.String()
}

func (c *NATSConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Url == "" {
		return fmt.Errorf("NATS URL is not configured")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("nats dial timeout is not configured")
	}
	if c.MaxReconnects < -1 {
		return fmt.Errorf("nats maxreconnects must be -1 or greater, got %d", c.MaxReconnects)
	}
	if c.ReconnectWait < 0 || c.DuplicateWindow < 0 {
		return fmt.Errorf("nats reconnectwait and duplicatewindow must not be negative")
	}
	return nil
}
