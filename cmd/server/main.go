// Package main is the entry point for the kitcraft server.
//
// The main package stays minimal — its job is to:
//  1. Load configuration (env vars, optional .env)
//  2. Create shared dependencies (logger, generation client)
//  3. Start the application
//
// All actual logic lives in imported packages (internal/server,
// internal/handler, ...). This separation keeps the app testable and its
// components reusable.
package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sakif/kitcraft/internal/config"
	"github.com/sakif/kitcraft/internal/genai"
	genaiopenai "github.com/sakif/kitcraft/internal/genai/openai"
	"github.com/sakif/kitcraft/internal/server"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Ensure the data directory exists (like `mkdir -p`).
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		logger.Error("failed to create database directory",
			slog.String("dir", filepath.Dir(cfg.DBPath)),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	// The generation client is optional — without an API key the server
	// starts with kit generation disabled, and POST /api/kits reports the
	// feature unavailable. Auth, browsing, and the cart still work.
	var generator genai.Generator
	if cfg.OpenAIKey == "" {
		logger.Warn("OPENAI_API_KEY not set — kit generation is disabled")
	} else {
		client, err := genaiopenai.New(cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel, logger)
		if err != nil {
			logger.Warn("generation client unavailable — kit generation is disabled",
				slog.String("error", err.Error()),
			)
		} else {
			generator = client
		}
	}

	srv, err := server.New(server.Config{
		Port:          cfg.Port,
		DBPath:        cfg.DBPath,
		SessionSecret: cfg.SessionSecret,
	}, logger, generator)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start() blocks until the server is shut down (Ctrl+C or SIGTERM).
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
