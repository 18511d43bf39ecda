package framecheck

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config carries the process-wide validation defaults consumed by guards
// and the package-level Validate. The environment only supplies the
// baseline; rule set flags and explicit options override it per call.
type Config struct {
	// Strict reports unmatched dataset columns as issues by default.
	Strict bool `env:"FRAMECHECK_STRICT" envDefault:"false"`

	// Lazy collects every issue instead of stopping at the first.
	Lazy bool `env:"FRAMECHECK_LAZY" envDefault:"false"`

	// MaxRowErrors caps how many failing rows row-level validation keeps.
	MaxRowErrors int `env:"FRAMECHECK_MAX_ROW_ERRORS" envDefault:"5"`

	// MaxSamples caps how many failing values a check issue lists.
	MaxSamples int `env:"FRAMECHECK_MAX_SAMPLES" envDefault:"5"`
}

var dotenvOnce sync.Once

// LoadConfig reads the validation defaults from the environment. A .env
// file, when present, is loaded once per process before the first parse.
func LoadConfig() (Config, error) {
	dotenvOnce.Do(func() {
		// The .env file is optional.
		_ = godotenv.Load()
	})

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrInvalidConfig, err)
	}
	if cfg.MaxRowErrors < 1 {
		return Config{}, errors.Join(ErrInvalidConfig,
			fmt.Errorf("FRAMECHECK_MAX_ROW_ERRORS must be at least 1, got %d", cfg.MaxRowErrors))
	}
	if cfg.MaxSamples < 0 {
		return Config{}, errors.Join(ErrInvalidConfig,
			fmt.Errorf("FRAMECHECK_MAX_SAMPLES must not be negative, got %d", cfg.MaxSamples))
	}
	return cfg, nil
}
