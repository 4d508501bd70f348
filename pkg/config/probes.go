package config

import (
	"fmt"
	"time"
)

// ProbesConfig names the files a headless process keeps for file based readiness and liveness probes.
// An empty file name disables that probe.
type ProbesConfig struct {
	ReadinessFile    string        `koanf:"readinessFile"`
	LivenessFile     string        `koanf:"livenessFile"`
	LivenessInterval time.Duration `koanf:"livenessInterval"`
}

func (c *ProbesConfig) String() string {
	return fmt.Sprintf("\n--- Probes ---\n  readinessFile: %s\n  livenessFile: %s\n  livenessInterval: %s\n",
		c.ReadinessFile, c.LivenessFile, c.LivenessInterval)
}

func (c *ProbesConfig) Validate() error {
	if c.LivenessFile != "" && c.LivenessInterval <= 0 {
		return fmt.Errorf("probes livenessInterval must be greater than zero: %s", c.LivenessInterval)
	}
	if c.ReadinessFile != "" && c.ReadinessFile == c.LivenessFile {
		return fmt.Errorf("probes readinessFile and livenessFile must differ: %s", c.ReadinessFile)
	}
	return nil
}
