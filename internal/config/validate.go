package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}
	if strings.TrimSpace(c.Corpus.Dir) == "" {
		return fmt.Errorf("corpus.dir must not be empty")
	}
	if c.Corpus.ScanBatchSize < 1 {
		return fmt.Errorf("corpus.scan_batch_size must be >= 1 (got %d)", c.Corpus.ScanBatchSize)
	}
	if c.RateLimit.Enabled && c.RateLimit.PerMinute < 1 {
		return fmt.Errorf("ratelimit.per_minute must be >= 1 (got %d)", c.RateLimit.PerMinute)
	}
	return nil
}
