package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ConsumerConfig configures a durable JetStream pull consumer and the workers draining it.
// AckWait and MaxDeliver bound redelivery of messages that were nak'ed or never acked.
type ConsumerConfig struct {
	Subject    string        `koanf:"subject"`
	Durable    string        `koanf:"consumer"`
	Batch      int           `koanf:"batch"`
	FetchWait  time.Duration `koanf:"timeout"`
	RetryAfter time.Duration `koanf:"interval"`
	Workers    int           `koanf:"workers"`
	AckWait    time.Duration `koanf:"ackWait"`
	MaxDeliver int           `koanf:"maxDeliver"`
}

func (c *ConsumerConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Consumer ---\n")
	fmt.Fprintf(&b, "  subject: %s\n  consumer: %s\n", c.Subject, c.Durable)
	fmt.Fprintf(&b, "  batch: %d\n  workers: %d\n", c.Batch, c.Workers)
	fmt.Fprintf(&b, "  timeout: %s\n  interval: %s\n", c.FetchWait, c.RetryAfter)
	fmt.Fprintf(&b, "  ackWait: %s\n  maxDeliver: %d\n", c.AckWait, c.MaxDeliver)
	return b.String()
}

// Validate reports every problem at once.
func (c *ConsumerConfig) Validate() error {
	var errs []error
	if c.Subject == "" {
		errs = append(errs, errors.New("consumer subject is not configured"))
	}
	if c.Durable == "" {
		errs = append(errs, errors.New("consumer name is not configured"))
	}
	if c.Batch <= 0 {
		errs = append(errs, errors.New("consumer batch must be greater than zero"))
	}
	if c.Workers <= 0 {
		errs = append(errs, errors.New("consumer workers must be greater than zero"))
	}
	if c.FetchWait <= 0 {
		errs = append(errs, errors.New("consumer timeout must be greater than zero"))
	}
	if c.RetryAfter <= 0 {
		errs = append(errs, errors.New("consumer interval must be greater than zero"))
	}
	if c.AckWait <= 0 {
		errs = append(errs, errors.New("consumer ackWait must be greater than zero"))
	}
	if c.MaxDeliver == 0 || c.MaxDeliver < -1 {
		errs = append(errs, errors.New("consumer maxDeliver must be positive or -1 for unlimited"))
	}
	return errors.Join(errs...)
}
