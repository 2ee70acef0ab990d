// ABOUTME: HTTP dashboard and JSON API over the tracked story database
// ABOUTME: Read-only chi router with graceful shutdown; scraping stays in the CLI and scheduler

package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/harper/fictrack/internal/storage"
)

// Server serves the dashboard and the JSON API.
type Server struct {
	store  storage.Store
	router *chi.Mux
	logger *slog.Logger
}

// New creates a Server with all routes configured.
func New(store storage.Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		store:  store,
		router: chi.NewRouter(),
		logger: logger,
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/healthz", s.handleHealthz)
	s.router.Get("/", s.handleIndex)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/stories", s.handleListStories)
		r.Get("/stories/{storyID}", s.handleGetStory)
		r.Get("/stories/{storyID}/snapshots", s.handleSnapshots)
		r.Get("/stories/{storyID}/growth", s.handleStoryGrowth)
		r.Get("/growth", s.handleTopGrowth)
		r.Get("/genres", s.handleGenres)
		r.Get("/stats", s.handleStats)
		r.Get("/sessions", s.handleSessions)
	})

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run serves until the context is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
