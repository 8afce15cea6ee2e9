package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Base URL of the API gateway fronting cart, offers, checkout and orders.
	GatewayURL string

	// Directory holding the guest cart and session files.
	StateDir string

	RequestTimeout time.Duration
	LogLevel       string
}

func Load() Config {
	// optional .env next to the binary, for local development
	_ = godotenv.Load()

	return Config{
		GatewayURL:     getenv("STOREFRONT_GATEWAY_URL", "http://localhost:8080/api"),
		StateDir:       getenv("STOREFRONT_STATE_DIR", defaultStateDir()),
		RequestTimeout: parseDuration(getenv("STOREFRONT_TIMEOUT", "10s"), 10*time.Second),
		LogLevel:       getenv("STOREFRONT_LOG_LEVEL", "warn"),
	}
}

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".storefront"
	}
	return filepath.Join(home, ".local", "state", "storefront")
}

func getenv(k, def string) string {
	if v := os.Getenv(k); strings.TrimSpace(v) != "" {
		return v
	}
	return def
}

func parseDuration(v string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
