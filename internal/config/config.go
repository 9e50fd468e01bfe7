package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddr  string        `env:"SERVER_ADDR" default:":8080"`
	DatabaseURL string        `env:"DATABASE_URL" required:"true"`
	TokenSecret string        `env:"TOKEN_SECRET" required:"true"`
	TokenTTL    time.Duration `env:"TOKEN_TTL" default:"24h"`
}

// Load reads configuration from the environment, with a .env file as an
// optional overlay for development.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		// No .env is fine; system env vars still apply.
		fmt.Printf("Warning: .env file not found: %v\n", err)
	}

	cfg := &Config{}
	loadEnvString(&cfg.ServerAddr, "SERVER_ADDR", ":8080")
	if err := loadEnvStringRequired(&cfg.DatabaseURL, "DATABASE_URL"); err != nil {
		return nil, err
	}
	if err := loadEnvStringRequired(&cfg.TokenSecret, "TOKEN_SECRET"); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&cfg.TokenTTL, "TOKEN_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the loaded configuration for values that would only fail at
// request time.
func (c *Config) Validate() error {
	if len(c.TokenSecret) < 32 {
		return fmt.Errorf("TOKEN_SECRET should be at least 32 characters long")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	return nil
}

func loadEnvString(target *string, key, defaultValue string) {
	if value := os.Getenv(key); value != "" {
		*target = value
	} else {
		*target = defaultValue
	}
}

func loadEnvStringRequired(target *string, key string) error {
	value := os.Getenv(key)
	if value == "" {
		return fmt.Errorf("required environment variable %s is not set", key)
	}
	*target = value
	return nil
}

func loadEnvDuration(target *time.Duration, key string, defaultValue time.Duration) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}
