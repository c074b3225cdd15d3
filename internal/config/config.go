package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Kuyan"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		// Driver is "sqlite" (default, local single-file storage) or
		// "postgres".
		Driver string `envconfig:"DB_DRIVER" default:"sqlite"`
		// Path is the sqlite database file. Pointing a second process at a
		// different path is how sandbox instances are isolated.
		Path string `envconfig:"DB_PATH" default:"data/kuyan.db"`
		// DSN is the postgres connection string, used only when Driver is
		// "postgres".
		DSN string `envconfig:"DB_DSN" default:""`
	}

	Rates struct {
		ProviderURL        string        `envconfig:"RATES_PROVIDER_URL" default:"https://api.frankfurter.app"`
		Timeout            time.Duration `envconfig:"RATES_TIMEOUT" default:"10s"`
		MaxRetries         int           `envconfig:"RATES_MAX_RETRIES" default:"2"`
		RetryDelay         time.Duration `envconfig:"RATES_RETRY_DELAY" default:"250ms"`
		FallbackWindowDays int           `envconfig:"RATES_FALLBACK_WINDOW_DAYS" default:"7"`
	}

	Reporting struct {
		// Currency is the default reporting currency for valuation requests
		// that do not specify one.
		Currency string `envconfig:"REPORTING_CURRENCY" default:"CAD"`
	}
}

// DatabaseSource returns the driver-appropriate data source string.
func (c *Config) DatabaseSource() (string, error) {
	switch c.DB.Driver {
	case "sqlite":
		return c.DB.Path, nil
	case "postgres":
		if c.DB.DSN == "" {
			return "", fmt.Errorf("DB_DSN is required when DB_DRIVER is postgres")
		}

		return c.DB.DSN, nil
	default:
		return "", fmt.Errorf("unsupported DB_DRIVER %q", c.DB.Driver)
	}
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
