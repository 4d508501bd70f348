package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// NATSConfig configures the JetStream connection. Everything except Enabled is ignored while it is off.
type NATSConfig struct {
	Enabled       bool             `koanf:"enabled"`
	Url           string           `koanf:"url"`
	Timeout       time.Duration    `koanf:"timeout"`
	Stream        string           `koanf:"stream"`
	MaxReconnects int              `koanf:"maxReconnects"`
	ReconnectWait time.Duration    `koanf:"reconnectWait"`
	Resilience    ResilienceConfig `koanf:"resilience"`
}

func (c *NATSConfig) String() string {
	return fmt.Sprintf("\n--- NATS ---\n  enabled: %t\n  url: %s\n  timeout: %s\n  stream: %s\n  maxReconnects: %d\n  reconnectWait: %s\n",
		c.Enabled, c.Url, c.Timeout, c.Stream, c.MaxReconnects, c.ReconnectWait) + c.Resilience.String()
}

func (c *NATSConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if err := validateNatsURL(c.Url); err != nil {
		return err
	}
	var errs []error
	if c.Timeout <= 0 {
		errs = append(errs, errors.New("nats dial timeout is not configured"))
	}
	if c.Stream == "" {
		errs = append(errs, errors.New("nats stream is not configured"))
	}
	if c.MaxReconnects < -1 {
		errs = append(errs, fmt.Errorf("nats maxReconnects must be -1 (forever) or more: %d", c.MaxReconnects))
	}
	if c.ReconnectWait < 0 {
		errs = append(errs, fmt.Errorf("nats reconnectWait must not be negative: %s", c.ReconnectWait))
	}
	if err := c.Resilience.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func validateNatsURL(raw string) error {
	if raw == "" {
		return errors.New("NATS URL is not configured")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid NATS URL %q: %w", raw, err)
	}
	switch u.Scheme {
	case "nats", "tls", "ws", "wss":
		return nil
	default:
		return fmt.Errorf("unsupported NATS URL scheme %q", u.Scheme)
	}
}
