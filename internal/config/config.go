// Package config loads process-wide defaults from the environment.
// CLI flags override these values; they exist so operators can bake a
// standing setup into the environment (or a .env file) and keep invocations
// short.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds environment-supplied defaults for a search run.
type Config struct {
	QueryWait    int           `env:"STACKGREP_QUERY_WAIT" envDefault:"60"`
	QueryLimit   int           `env:"STACKGREP_QUERY_LIMIT" envDefault:"1000"`
	TermsFile    string        `env:"STACKGREP_TERMS_FILE" envDefault:"query_terms.yaml"`
	OutputDir    string        `env:"STACKGREP_OUTPUT_DIR" envDefault:"."`
	LogLevel     string        `env:"STACKGREP_LOG_LEVEL" envDefault:"info"`
	LogFormat    string        `env:"STACKGREP_LOG_FORMAT" envDefault:"text"`
	Concurrency  int           `env:"STACKGREP_CONCURRENCY" envDefault:"4"`
	PollInterval time.Duration `env:"STACKGREP_POLL_INTERVAL" envDefault:"1s"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// .env file is optional, mainly for local development.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Validate checks field ranges, collecting every violation into one error.
func (c *Config) Validate() error {
	var errs []error
	if c.QueryWait <= 0 {
		errs = append(errs, fmt.Errorf("query wait must be positive, got %d", c.QueryWait))
	}
	if c.QueryLimit <= 0 {
		errs = append(errs, fmt.Errorf("query limit must be positive, got %d", c.QueryLimit))
	}
	if c.TermsFile == "" {
		errs = append(errs, errors.New("terms file path must not be empty"))
	}
	if c.Concurrency <= 0 {
		errs = append(errs, fmt.Errorf("concurrency must be positive, got %d", c.Concurrency))
	}
	if c.PollInterval <= 0 {
		errs = append(errs, fmt.Errorf("poll interval must be positive, got %v", c.PollInterval))
	}
	return errors.Join(errs...)
}
