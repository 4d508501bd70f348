// Package config defines the CrickStore configuration and its defaults.
package config

import (
	"fmt"
	"strings"

	"github.com/abgdnv/crickstore/pkg/config"
	"github.com/abgdnv/crickstore/pkg/config/configloader"
)

// AppName prefixes environment variables (CRICKSTORE_SERVER_PORT) and names the service in telemetry.
const AppName = "crickstore"

var _ configloader.Validator = (*Config)(nil)

type Config struct {
	HTTPServer config.HTTPConfig       `koanf:"server"`
	Log        config.LogConfig        `koanf:"log"`
	PProf      config.PProfConfig      `koanf:"pprof"`
	Nats       config.NATSConfig       `koanf:"nats"`
	Telemetry  config.TelemetryConfig  `koanf:"telemetry"`
	Shutdown   config.ShutdownConfig   `koanf:"shutdown"`
	Shop       ShopConfig              `koanf:"shop"`
	TUI        TUIConfig               `koanf:"tui"`
	Notifier   config.ConsumerConfig   `koanf:"notifier"`
	Probes     config.ProbesConfig     `koanf:"probes"`
}

// ShopConfig holds the shop behaviour settings.
type ShopConfig struct {
	CurrencySymbol    string `koanf:"currencySymbol"`
	LowStockThreshold int32  `koanf:"lowStockThreshold"`
	Seed              bool   `koanf:"seed"`
}

// TUIConfig holds the terminal interface settings.
type TUIConfig struct {
	LogFile string `koanf:"logFile"`
}

// Defaults returns the values used when neither the config file nor the environment sets a key.
func Defaults() map[string]any {
	return map[string]any{
		"server.port":               8080,
		"server.maxHeaderBytes":     1 << 20,
		"server.timeout.read":       "5s",
		"server.timeout.write":      "10s",
		"server.timeout.idle":       "60s",
		"server.timeout.readHeader": "2s",

		"log.level":  "info",
		"log.format": "json",

		"pprof.enabled": false,
		"pprof.addr":    "localhost:6060",

		"nats.enabled": false,
		"nats.url":     "nats://localhost:4222",
		"nats.timeout": "5s",
		"nats.stream":  "SALES",

		"nats.maxReconnects": 60,
		"nats.reconnectWait": "2s",

		"nats.resilience.attemptTimeout":                     "2s",
		"nats.resilience.retry.maxAttempts":                  3,
		"nats.resilience.retry.initialBackoff":               "100ms",
		"nats.resilience.circuitBreaker.consecutiveFailures": 5,
		"nats.resilience.circuitBreaker.errorRatePercent":    60,
		"nats.resilience.circuitBreaker.openTimeout":         "30s",

		"telemetry.traces.enabled":           false,
		"telemetry.traces.sampleRatio":       1.0,
		"telemetry.traces.otlphttp.endpoint": "localhost:4318",
		"telemetry.traces.otlphttp.insecure": true,
		"telemetry.traces.otlphttp.timeout":  "5s",
		"telemetry.metrics.enabled":          true,
		"telemetry.metrics.path":             "/metrics",

		"shutdown.timeout": "5s",

		"shop.currencySymbol":    "₹",
		"shop.lowStockThreshold": 5,
		"shop.seed":              true,

		"tui.logFile": "crickstore.log",

		"notifier.subject":  "sales.recorded",
		"notifier.consumer": "low-stock-notifier",
		"notifier.batch":    10,
		"notifier.timeout":  "5s",
		"notifier.interval": "1s",
		"notifier.workers":  2,

		"notifier.ackWait":    "30s",
		"notifier.maxDeliver": 5,

		"probes.readinessFile":    "",
		"probes.livenessFile":     "",
		"probes.livenessInterval": "20s",
	}
}

// Load reads the configuration from defaults, configFile (config.yaml when empty), .env and the environment.
func Load(configFile string) (*Config, error) {
	return configloader.Load[*Config](AppName,
		configloader.WithDefaults(Defaults()),
		configloader.WithConfigFile(configFile),
	)
}

func (c *Config) String() string {
	var b strings.Builder
	b.WriteString(c.HTTPServer.String())
	b.WriteString(c.Log.String())
	b.WriteString(c.PProf.String())
	b.WriteString(c.Nats.String())
	b.WriteString(c.Telemetry.String())
	b.WriteString(c.Shutdown.String())
	b.WriteString(c.Shop.String())
	b.WriteString(c.TUI.String())
	b.WriteString(c.Notifier.String())
	b.WriteString(c.Probes.String())
	return b.String()
}

// Validate checks if the configuration values are valid
func (c *Config) Validate() error {
	if err := c.HTTPServer.Validate(); err != nil {
		return err
	}
	if err := c.Log.Validate(); err != nil {
		return err
	}
	if err := c.PProf.Validate(); err != nil {
		return err
	}
	if err := c.Nats.Validate(); err != nil {
		return err
	}
	if err := c.Telemetry.Validate(); err != nil {
		return err
	}
	if err := c.Shutdown.Validate(); err != nil {
		return err
	}
	if err := c.Shop.Validate(); err != nil {
		return err
	}
	if err := c.TUI.Validate(); err != nil {
		return err
	}
	if err := c.Notifier.Validate(); err != nil {
		return err
	}
	return c.Probes.Validate()
}

// String returns a string representation of the shop configuration.
func (c *ShopConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Shop ---\n")
	b.WriteString(fmt.Sprintf("  currencySymbol: %s\n", c.CurrencySymbol))
	b.WriteString(fmt.Sprintf("  lowStockThreshold: %d\n", c.LowStockThreshold))
	b.WriteString(fmt.Sprintf("  seed: %t\n", c.Seed))
	return b.String()
}

func (c *ShopConfig) Validate() error {
	if c.LowStockThreshold < 0 {
		return fmt.Errorf("low stock threshold must not be negative: %d", c.LowStockThreshold)
	}
	return nil
}

// String returns a string representation of the terminal interface configuration.
func (c *TUIConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- TUI ---\n")
	b.WriteString(fmt.Sprintf("  logFile: %s\n", c.LogFile))
	return b.String()
}

func (c *TUIConfig) Validate() error {
	if strings.TrimSpace(c.LogFile) == "" {
		return fmt.Errorf("tui log file is not configured")
	}
	return nil
}
