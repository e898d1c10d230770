package config

import (
	"fmt"
	"strings"
	"time"
)

type SessionConfig struct {
	Secret          string        `koanf:"secret"`
	Issuer          string        `koanf:"issuer"`
	CookieName      string        `koanf:"cookiename"`
	TTL             time.Duration `koanf:"ttl"`
	CleanupInterval time.Duration `koanf:"cleanupinterval"`
}

const minSecretLength = 32

// String returns a string representation of the session configuration with the secret masked.
func (c *SessionConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Session ---\n")
	b.WriteString(fmt.Sprintf("  secret: %s\n", maskSecret(c.Secret)))
	b.WriteString(fmt.Sprintf("  issuer: %s\n", c.Issuer))
	b.WriteString(fmt.Sprintf("  cookiename: %s\n", c.CookieName))
	b.WriteString(fmt.Sprintf("  ttl: %s\n", c.TTL))
	b.WriteString(fmt.Sprintf("  cleanupinterval: %s\n", c.CleanupInterval))
	return b.String()
}

func (c *SessionConfig) Validate() error {
	if len(c.Secret) < minSecretLength {
		return fmt.Errorf("session secret must be at least %d characters", minSecretLength)
	}
	if c.Issuer == "" {
		return fmt.Errorf("session issuer is not configured")
	}
	if c.CookieName == "" {
		return fmt.Errorf("session cookie name is not configured")
	}
	if c.TTL <= 0 {
		return fmt.Errorf("session ttl must be greater than zero")
	}
	if c.CleanupInterval <= 0 {
		return fmt.Errorf("session cleanup interval must be greater than zero")
	}
	return nil
}

func maskSecret(secret string) string {
	if secret == "" {
		return "<not configured>"
	}
	return "****"
}
