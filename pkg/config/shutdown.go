package config

import (
	"fmt"
	"time"
)

// MaxShutdownTimeout caps how long graceful shutdown may wait for servers and telemetry flushes.
const MaxShutdownTimeout = 2 * time.Minute

// ShutdownConfig bounds graceful shutdown. The same timeout applies to every server and
// telemetry provider that is stopped when the process receives SIGINT or SIGTERM.
type ShutdownConfig struct {
	Timeout time.Duration `koanf:"timeout"`
}

func (c *ShutdownConfig) String() string {
	return fmt.Sprintf("\n--- Shutdown ---\n  timeout: %s\n", c.Timeout)
}

func (c *ShutdownConfig) Validate() error {
	switch {
	case c.Timeout <= 0:
		return fmt.Errorf("shutdown timeout is not configured")
	case c.Timeout > MaxShutdownTimeout:
		return fmt.Errorf("shutdown timeout %s exceeds %s", c.Timeout, MaxShutdownTimeout)
	}
	return nil
}
