package configs

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL string
	HTTPAddr    string
}

const defaultHTTPAddr = ":8080"

// Load reads configuration from a .env file (if present) and environment
// variables. DATABASE_URL is optional: when empty the service starts in
// unconfigured mode and data requests answer with a configuration error.
// HTTP_ADDR defaults to :8080.
func Load() (*Config, error) {
	_ = godotenv.Load()

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = defaultHTTPAddr
	}
	return &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		HTTPAddr:    addr,
	}, nil
}

// Configured reports whether database connection parameters are present.
func (c *Config) Configured() bool {
	return c.DatabaseURL != ""
}
