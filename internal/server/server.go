// Package server sets up the HTTP server, router, and all route definitions.
//
// This package is the "wiring" layer — the composition root that connects
// handlers, middleware, and routes:
//
//	main.go creates: Config → Server
//	Server.New creates: sqlite.DB → services → handlers → routes
//
// Each layer only receives what it needs: services get repository interfaces
// (not the concrete sqlite.DB), handlers get services. The handler never
// touches the database; the service never touches HTTP.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/kitcraft/internal/auth"
	"github.com/sakif/kitcraft/internal/genai"
	"github.com/sakif/kitcraft/internal/handler"
	"github.com/sakif/kitcraft/internal/middleware"
	sqliteRepo "github.com/sakif/kitcraft/internal/repository/sqlite"
	"github.com/sakif/kitcraft/internal/service"
)

// Config holds server configuration.
type Config struct {
	Port          int
	DBPath        string
	SessionSecret string
}

// Server owns the router, the database connection, and their lifecycle.
// The database is closed during graceful shutdown in Start().
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New creates a Server and wires the full dependency chain.
//
// generator may be nil: the server runs with generation disabled and the
// kit-creation endpoint reports the feature unavailable. Everything else
// (auth, browsing, cart) works without it.
func New(cfg Config, logger *slog.Logger, generator genai.Generator) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath, logger)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(generator); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures all middleware and route handlers.
//
// ROUTE STRUCTURE:
//
//	POST   /api/auth/register  → create account (no session)
//	POST   /api/auth/login     → authenticate, set session cookie
//	POST   /api/auth/logout    → clear session cookie
//	GET    /api/me             → current user           [auth]
//	POST   /api/kits           → generate + persist kit [auth]
//	GET    /api/kits           → list kits, newest first [auth]
//	GET    /api/kits/{id}      → single kit             [auth]
//	GET    /api/cart           → cart contents          [auth]
//	POST   /api/cart/items     → merge materials        [auth]
//	DELETE /api/cart           → clear cart             [auth]
//	GET    /healthz            → liveness probe
//
// MIDDLEWARE ORDER MATTERS — RequestID and RealIP must run before the
// logger so their values are available to it; Recoverer wraps everything so
// a panicking handler becomes a 500, not a dead process.
func (s *Server) setupRoutes(generator genai.Generator) error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	tokens, err := auth.NewTokenService(s.config.SessionSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService()

	authService := service.NewAuthService(s.db, passwords, tokens, s.logger)
	kitService := service.NewKitService(s.db, generator, s.logger)
	cartService := service.NewCartService(s.db, s.logger)

	authHandler := handler.NewAuthHandler(authService, s.logger)
	kitHandler := handler.NewKitHandler(kitService, s.logger)
	cartHandler := handler.NewCartHandler(cartService, s.logger)

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.HandleRegister)
		r.Post("/auth/login", authHandler.HandleLogin)
		r.Post("/auth/logout", authHandler.HandleLogout)

		// Everything below requires a valid session.
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(tokens))

			r.Get("/me", authHandler.HandleMe)

			r.Post("/kits", kitHandler.HandleGenerate)
			r.Get("/kits", kitHandler.HandleList)
			r.Get("/kits/{id}", kitHandler.HandleGetByID)

			r.Get("/cart", cartHandler.HandleList)
			r.Post("/cart/items", cartHandler.HandleAddMaterials)
			r.Delete("/cart", cartHandler.HandleClear)
		})
	})

	return nil
}

// Start starts the HTTP server and handles graceful shutdown:
// stop accepting connections, give in-flight requests 30s to finish, then
// close the database (flushes WAL, releases the file lock).
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		// Generation calls can legitimately take a while — the write timeout
		// must outlast the upstream model, not just static responses.
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
