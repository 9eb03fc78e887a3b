// Package config loads runtime configuration from environment variables.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds everything the client needs to talk to the backend.
type Config struct {
	// BaseURL is the backend root, without a trailing slash.
	BaseURL string
	// Timeout bounds each HTTP request.
	Timeout time.Duration
	// PageSize is the client-side page size for list screens.
	PageSize int
	// Token is an optional pre-issued bearer token (skips interactive login).
	Token string
}

// Load reads the environment, applying defaults for anything unset.
func Load() Config {
	cfg := Config{
		BaseURL:  "http://localhost:8080/api",
		Timeout:  30 * time.Second,
		PageSize: 20,
	}

	if v := os.Getenv("API_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("API_TIMEOUT_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.Timeout = time.Duration(secs) * time.Second
		}
	}
	if v := os.Getenv("PAGE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.PageSize = n
		}
	}
	cfg.Token = os.Getenv("API_TOKEN")

	return cfg
}
