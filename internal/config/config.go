// Package config loads server configuration from the environment.
//
// A .env file in the working directory is honoured when present (convenient
// for local development); real environments just set variables. Each value
// has a sensible default except the secrets, which are validated explicitly
// so misconfiguration surfaces at startup, not on the first request.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds everything the server needs to start.
type Config struct {
	// Port the HTTP server listens on.
	Port int
	// DBPath is the SQLite database file ("data/kitcraft.db" by default).
	DBPath string
	// SessionSecret signs session JWTs. Required.
	SessionSecret string
	// OpenAIKey authenticates generation requests. Optional — without it the
	// server starts with generation disabled.
	OpenAIKey string
	// OpenAIBaseURL overrides the API endpoint (empty = api.openai.com).
	OpenAIBaseURL string
	// OpenAIModel overrides the generation model (empty = client default).
	OpenAIModel string
}

// Load reads configuration from .env (if present) and the environment.
func Load() (*Config, error) {
	// Ignore the error: no .env file just means plain env vars.
	_ = godotenv.Load()

	cfg := &Config{
		Port:          getEnvAsInt("PORT", 8080),
		DBPath:        getEnv("DB_PATH", "data/kitcraft.db"),
		SessionSecret: getEnv("SESSION_SECRET", ""),
		OpenAIKey:     getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", ""),
		OpenAIModel:   getEnv("OPENAI_MODEL", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the required values.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config: PORT must be a valid port number, got %d", c.Port)
	}
	if c.SessionSecret == "" {
		return fmt.Errorf("config: SESSION_SECRET is required (try: openssl rand -hex 32)")
	}
	if c.DBPath == "" {
		return fmt.Errorf("config: DB_PATH must not be empty")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
