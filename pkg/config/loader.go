package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Load parses environment variables into the provided struct using its
// `env` tags. The storefront reads all of its configuration this way.
//
// Example:
//
//	type Config struct {
//	    Port           int    `env:"HTTP_PORT" envDefault:"8080"`
//	    StorageBackend string `env:"STORAGE_BACKEND" envDefault:"file"`
//	}
func Load(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}
