// Package config loads process-level settings from the environment.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

// Config holds the application configuration. Organization-level values
// such as tax rates live in the database, not here.
type Config struct {
	SeedDemo       bool    // QUOTE_SEED_DEMO: insert demo data into an empty database
	TemplatesFile  string  // QUOTE_TEMPLATES_FILE: YAML templates imported at startup
	DefaultTaxRate float64 // QUOTE_DEFAULT_TAX_RATE: tax rate for seeded organizations
}

// Load reads the optional .env file and then the environment.
func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile is Load with an explicit env file path. A missing file is not an
// error; variables already set in the environment win over the file.
func LoadFile(path string) (*Config, error) {
	if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	seed, err := cast.ToBoolE(getEnvOrDefault("QUOTE_SEED_DEMO", "true"))
	if err != nil {
		return nil, fmt.Errorf("config: QUOTE_SEED_DEMO: %w", err)
	}
	tax, err := cast.ToFloat64E(getEnvOrDefault("QUOTE_DEFAULT_TAX_RATE", "0"))
	if err != nil {
		return nil, fmt.Errorf("config: QUOTE_DEFAULT_TAX_RATE: %w", err)
	}
	if tax < 0 || tax >= 1 {
		return nil, fmt.Errorf("config: QUOTE_DEFAULT_TAX_RATE must be in [0, 1), got %v", tax)
	}

	return &Config{
		SeedDemo:       seed,
		TemplatesFile:  os.Getenv("QUOTE_TEMPLATES_FILE"),
		DefaultTaxRate: tax,
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
