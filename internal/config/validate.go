package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Extract.Workers < 1 {
		return fmt.Errorf("extract.workers must be >= 1 (got %d)", c.Extract.Workers)
	}
	if c.Extract.Timeout <= 0 {
		return fmt.Errorf("extract.timeout must be > 0 (got %s)", c.Extract.Timeout)
	}
	if c.Extract.ProgressEvery < 0 {
		return fmt.Errorf("extract.progress_every must be >= 0 (got %d)", c.Extract.ProgressEvery)
	}

	c.Output.Sink = strings.ToLower(strings.TrimSpace(c.Output.Sink))
	switch c.Output.Sink {
	case SinkJSON:
		if c.Output.Dir == "" {
			return fmt.Errorf("output.dir is required for the %s sink", SinkJSON)
		}
	case SinkPostgres:
		if err := c.Database.validate(); err != nil {
			return fmt.Errorf("database: %w", err)
		}
	default:
		return fmt.Errorf("output.sink must be %q or %q (got %q)", SinkJSON, SinkPostgres, c.Output.Sink)
	}

	return nil
}

func (d *DatabaseConfig) validate() error {
	if d.DSN == "" {
		return fmt.Errorf("dsn is required for the %s sink", SinkPostgres)
	}
	if d.BatchSize < 1 {
		return fmt.Errorf("batch_size must be >= 1 (got %d)", d.BatchSize)
	}
	if d.MinConns > d.MaxConns {
		return fmt.Errorf("min_conns (%d) must not exceed max_conns (%d)", d.MinConns, d.MaxConns)
	}
	return nil
}
