package config

import (
	"fmt"
	"log"
	"strings"
	"time"
)

type SubscriberConfig struct {
	Enabled  bool          `koanf:"enabled"`
	Stream   string        `koanf:"stream"`
	Subject  string        `koanf:"subject"`
	Consumer string        `koanf:"consumer"`
	Timeout  time.Duration `koanf:"timeout"`
	Interval time.Duration `koanf:"interval"`
	Workers  int           `koanf:"workers"`
}

const defaultSubscriberWorkers = 1
const defaultSubscriberTimeout = 5 * time.Second
const defaultSubscriberInterval = time.Second

// String returns a string representation of the NATS Subscriber configuration.
func (c *SubscriberConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- NATS Subscriber ---\n")
	b.WriteString(fmt.Sprintf("  enabled: %t\n", c.Enabled))
	b.WriteString(fmt.Sprintf("  stream: %s\n", c.Stream))
	b.WriteString(fmt.Sprintf("  subject: %s\n", c.Subject))
	b.WriteString(fmt.Sprintf("  consumer: %s\n", c.Consumer))
	b.WriteString(fmt.Sprintf("  timeout: %s\n", c.Timeout))
	b.WriteString(fmt.Sprintf("  interval: %s\n", c.Interval))
	b.WriteString(fmt.Sprintf("  workers: %d\n", c.Workers))
	return b.String()
}

// Validate checks required fields of an enabled subscriber and fills in defaults for the tuning knobs.
func (c *SubscriberConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Stream == "" {
		return fmt.Errorf("SubscriberConfig: stream is not configured")
	}
	if c.Subject == "" {
		return fmt.Errorf("SubscriberConfig: subject is not configured")
	}
	if c.Consumer == "" {
		return fmt.Errorf("SubscriberConfig: consumer is not configured")
	}
	if c.Timeout <= 0 {
		log.Println("Using default value for subscriber timeout")
		c.Timeout = defaultSubscriberTimeout
	}
	if c.Interval <= 0 {
		log.Println("Using default value for subscriber interval")
		c.Interval = defaultSubscriberInterval
	}
	if c.Workers <= 0 {
		log.Println("Using default value for subscriber workers")
		c.Workers = defaultSubscriberWorkers
	}
	return nil
}
