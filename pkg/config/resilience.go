package config

import (
	"fmt"
	"strings"
	"time"
)

// ResilienceConfig guards outbound calls: a per-attempt timeout, retries and a circuit breaker.
type ResilienceConfig struct {
	AttemptTimeout time.Duration        `koanf:"attemptTimeout"`
	Retry          RetryConfig          `koanf:"retry"`
	CircuitBreaker CircuitBreakerConfig `koanf:"circuitBreaker"`
}

type RetryConfig struct {
	MaxAttempts    uint          `koanf:"maxAttempts"`
	InitialBackoff time.Duration `koanf:"initialBackoff"`
}

type CircuitBreakerConfig struct {
	ConsecutiveFailures uint32        `koanf:"consecutiveFailures"`
	ErrorRatePercent    int           `koanf:"errorRatePercent"`
	OpenTimeout         time.Duration `koanf:"openTimeout"`
}

// String returns a string representation of the ResilienceConfig.
func (c *ResilienceConfig) String() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("  attemptTimeout: %v\n", c.AttemptTimeout))
	b.WriteString(fmt.Sprintf("  retry.maxAttempts: %d\n", c.Retry.MaxAttempts))
	b.WriteString(fmt.Sprintf("  retry.initialBackoff: %v\n", c.Retry.InitialBackoff))
	b.WriteString(fmt.Sprintf("  circuitBreaker.consecutiveFailures: %d\n", c.CircuitBreaker.ConsecutiveFailures))
	b.WriteString(fmt.Sprintf("  circuitBreaker.errorRatePercent: %d\n", c.CircuitBreaker.ErrorRatePercent))
	b.WriteString(fmt.Sprintf("  circuitBreaker.openTimeout: %v\n", c.CircuitBreaker.OpenTimeout))
	return b.String()
}

func (c *ResilienceConfig) Validate() error {
	if c.AttemptTimeout <= 0 {
		return fmt.Errorf("resilience.attemptTimeout must be greater than 0")
	}
	if c.Retry.MaxAttempts == 0 {
		return fmt.Errorf("resilience.retry.maxAttempts must be greater than 0")
	}
	if c.Retry.InitialBackoff <= 0 {
		return fmt.Errorf("resilience.retry.initialBackoff must be greater than 0")
	}
	if c.CircuitBreaker.ConsecutiveFailures == 0 {
		return fmt.Errorf("resilience.circuitBreaker.consecutiveFailures must be greater than 0")
	}
	if c.CircuitBreaker.ErrorRatePercent < 0 || c.CircuitBreaker.ErrorRatePercent > 100 {
		return fmt.Errorf("resilience.circuitBreaker.errorRatePercent must be between 0 and 100")
	}
	if c.CircuitBreaker.OpenTimeout <= 0 {
		return fmt.Errorf("resilience.circuitBreaker.openTimeout must be greater than 0")
	}
	return nil
}
