package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/mousesolnat/saleplugin-sub000/pkg/config"
)

// Config holds all configuration for the storefront server.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"HTTP_PORT" envDefault:"8080"`

	// Storage backend: "file" or "redis".
	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"file"`
	DataDir        string `env:"DATA_DIR" envDefault:"./data"`

	// Redis (used when STORAGE_BACKEND=redis)
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// Admin session JWT
	AdminJWTSecret string        `env:"ADMIN_JWT_SECRET" envDefault:"change-this-to-a-secure-secret"`
	AdminJWTExpiry time.Duration `env:"ADMIN_JWT_EXPIRY" envDefault:"12h"`

	// AI assistant
	AssistantAPIURL  string        `env:"ASSISTANT_API_URL" envDefault:"https://api.openai.com/v1/chat/completions"`
	AssistantAPIKey  string        `env:"ASSISTANT_API_KEY" envDefault:""`
	AssistantModel   string        `env:"ASSISTANT_MODEL" envDefault:"gpt-4o-mini"`
	AssistantTimeout time.Duration `env:"ASSISTANT_TIMEOUT" envDefault:"10s"`

	// CORS
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.HTTPPort < 1 || cfg.HTTPPort > 65535 {
		return nil, fmt.Errorf("invalid HTTP port: %d", cfg.HTTPPort)
	}
	if cfg.StorageBackend != "file" && cfg.StorageBackend != "redis" {
		return nil, fmt.Errorf("invalid storage backend: %q", cfg.StorageBackend)
	}

	// In non-development environments, require an explicitly set, strong JWT secret.
	if cfg.Environment != "development" {
		if cfg.AdminJWTSecret == "change-this-to-a-secure-secret" {
			return nil, fmt.Errorf("ADMIN_JWT_SECRET must be explicitly set via environment variable in %q mode", cfg.Environment)
		}
		if len(cfg.AdminJWTSecret) < 32 {
			return nil, fmt.Errorf("ADMIN_JWT_SECRET must be at least 32 characters long, got %d", len(cfg.AdminJWTSecret))
		}
	}

	return cfg, nil
}
