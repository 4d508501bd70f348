package config

import (
	"errors"
	"fmt"
	"time"
)

// HTTPTimeouts maps onto the matching http.Server fields.
type HTTPTimeouts struct {
	Read       time.Duration `koanf:"read"`
	Write      time.Duration `koanf:"write"`
	Idle       time.Duration `koanf:"idle"`
	ReadHeader time.Duration `koanf:"readHeader"`
}

// HTTPConfig configures the API listener.
type HTTPConfig struct {
	Port           int          `koanf:"port"`
	MaxHeaderBytes int          `koanf:"maxHeaderBytes"`
	Timeout        HTTPTimeouts `koanf:"timeout"`
}

func (c *HTTPConfig) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid HTTP server port: %d", c.Port)
	}
	if c.MaxHeaderBytes < 0 {
		return fmt.Errorf("invalid HTTP server maxHeaderBytes: %d", c.MaxHeaderBytes)
	}
	return c.Timeout.validate()
}

func (t HTTPTimeouts) validate() error {
	var errs []error
	for _, d := range []struct {
		name  string
		value time.Duration
	}{
		{"read", t.Read},
		{"write", t.Write},
		{"idle", t.Idle},
		{"read header", t.ReadHeader},
	} {
		if d.value <= 0 {
			errs = append(errs, fmt.Errorf("invalid HTTP server %s timeout: %v", d.name, d.value))
		}
	}
	return errors.Join(errs...)
}

func (c *HTTPConfig) String() string {
	return fmt.Sprintf("\n--- HTTP server ---\n  port: %d\n  maxHeaderBytes: %d\n  timeout: read=%s write=%s idle=%s readHeader=%s\n",
		c.Port, c.MaxHeaderBytes, c.Timeout.Read, c.Timeout.Write, c.Timeout.Idle, c.Timeout.ReadHeader)
}
