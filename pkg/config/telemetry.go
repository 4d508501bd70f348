package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type TelemetryConfig struct {
	Traces  TracesConfig  `koanf:"traces"`
	Metrics MetricsConfig `koanf:"metrics"`
}

// TracesConfig exports spans over OTLP/HTTP. SampleRatio applies to root spans only;
// children follow their parent's decision.
type TracesConfig struct {
	Enabled     bool           `koanf:"enabled"`
	SampleRatio float64        `koanf:"sampleRatio"`
	OtlpHttp    OtlpHttpConfig `koanf:"otlphttp"`
}

type OtlpHttpConfig struct {
	Endpoint string        `koanf:"endpoint"`
	Insecure bool          `koanf:"insecure"`
	Timeout  time.Duration `koanf:"timeout"`
}

// MetricsConfig controls the Prometheus scrape endpoint served next to the API.
type MetricsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path"`
}

func (c *TelemetryConfig) String() string {
	t := c.Traces
	return fmt.Sprintf("\n--- Telemetry ---\n  traces: enabled=%t sampleRatio=%g endpoint=%s insecure=%t timeout=%s\n  metrics: enabled=%t path=%s\n",
		t.Enabled, t.SampleRatio, t.OtlpHttp.Endpoint, t.OtlpHttp.Insecure, t.OtlpHttp.Timeout,
		c.Metrics.Enabled, c.Metrics.Path)
}

func (c *TelemetryConfig) Validate() error {
	var errs []error
	if c.Traces.Enabled {
		if c.Traces.OtlpHttp.Endpoint == "" {
			errs = append(errs, errors.New("OTel endpoint is not configured"))
		}
		if c.Traces.OtlpHttp.Timeout <= 0 {
			errs = append(errs, errors.New("telemetry timeout must be greater than 0"))
		}
		if c.Traces.SampleRatio < 0 || c.Traces.SampleRatio > 1 {
			errs = append(errs, fmt.Errorf("trace sample ratio must be within [0, 1]: %g", c.Traces.SampleRatio))
		}
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		errs = append(errs, fmt.Errorf("metrics path must start with '/': %q", c.Metrics.Path))
	}
	return errors.Join(errs...)
}
