// Package api exposes a single editing session to a browser canvas over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"pathway/editor"
)

// Options configures the HTTP adapter.
type Options struct {
	EnableCORS     bool
	AllowedOrigins []string
}

// Server owns one editor session. The editor core is single threaded, so
// every request takes the lock for its whole duration.
type Server struct {
	mu     sync.Mutex
	editor *editor.Dispatcher
	logger *zap.Logger
	opts   Options
}

// NewServer creates a server around ed.
func NewServer(ed *editor.Dispatcher, logger *zap.Logger, opts Options) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		editor: ed,
		logger: logger,
		opts:   opts,
	}
}

// Handler configures all routes and middleware
func (s *Server) Handler() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(requestLogger(s.logger))

	if s.opts.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.opts.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
	}

	router.Get("/health", s.healthCheck)
	router.Get("/document", s.getDocument)
	router.Get("/state", s.getState)
	router.Get("/keymap", s.getKeymap)
	router.Post("/commands", s.postCommand)
	router.Post("/shortcuts", s.postShortcut)
	router.Post("/save", s.postSave)

	return router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("HTTP server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
