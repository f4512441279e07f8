// Package config loads server configuration from the environment, with
// an optional .env file for local development.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"irview/internal/session"
)

// Config holds everything the serve command needs.
type Config struct {
	Port     string
	Env      string
	DBPath   string
	Debounce time.Duration
	Explain  ExplainConfig
}

// ExplainConfig configures the optional AI explanation backend. Enabled
// is false when no API key is present; the server then answers with a
// placeholder instead of calling out.
type ExplainConfig struct {
	Enabled bool
	APIKey  string
	Model   string
}

// Load reads configuration from the environment. A .env file in the
// working directory is merged in first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = ":8080"
	} else if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	env := strings.TrimSpace(os.Getenv("APP_ENV"))
	if env == "" {
		env = "local"
	}

	dbPath := strings.TrimSpace(os.Getenv("IRVIEW_DB"))
	if dbPath == "" {
		dbPath = "irview.db"
	}

	return &Config{
		Port:     port,
		Env:      env,
		DBPath:   dbPath,
		Debounce: resolveDebounce(),
		Explain:  loadExplainConfig(),
	}, nil
}

func resolveDebounce() time.Duration {
	raw := strings.TrimSpace(os.Getenv("IRVIEW_DEBOUNCE_MS"))
	if raw == "" {
		return session.DefaultDebounce
	}
	ms, err := strconv.Atoi(raw)
	if err != nil || ms < 0 {
		return session.DefaultDebounce
	}
	return time.Duration(ms) * time.Millisecond
}

func loadExplainConfig() ExplainConfig {
	key := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	return ExplainConfig{
		Enabled: key != "",
		APIKey:  key,
		Model:   strings.TrimSpace(os.Getenv("IRVIEW_EXPLAIN_MODEL")),
	}
}
