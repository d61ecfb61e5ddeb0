package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/unimx/universidades/internal/config"
	"github.com/unimx/universidades/internal/web/handlers"
	"github.com/unimx/universidades/internal/web/middleware"
)

// Options configures the HTTP server
type Options struct {
	Port       int
	Bind       string
	AllowedNet *net.IPNet
}

// Server represents the web server
type Server struct {
	opts     Options
	router   *chi.Mux
	handlers *handlers.Handlers
}

// NewServer creates a new web server over catalog. db is used by the health check.
func NewServer(catalog handlers.Catalog, db handlers.Pinger, opts Options) *Server {
	s := &Server{
		opts:     opts,
		router:   chi.NewRouter(),
		handlers: handlers.New(catalog, db),
	}
	s.setupRoutes()
	return s
}

// Handler returns the root handler, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr returns the listen address
func (s *Server) Addr() string {
	return net.JoinHostPort(s.opts.Bind, fmt.Sprint(s.opts.Port))
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	r := s.router
	h := s.handlers

	r.Use(chimiddleware.RequestID)
	// AllowSubnet must come BEFORE RealIP so we check the actual connection source
	r.Use(middleware.AllowSubnet(s.opts.AllowedNet))
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", h.Health)

	r.Route("/api/universidades", func(r chi.Router) {
		r.Use(chimiddleware.Timeout(config.GetTimeouts().HTTPRequest))

		r.Get("/", h.ListUniversidades)
		r.Get("/tipo/{tipo}", h.ListUniversidadesPorTipo)
		r.Get("/area/{id}", h.ListUniversidadesPorArea)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetUniversidad)
			r.Get("/oferta", h.GetOferta)
			r.Get("/multimedia", h.GetMultimedia)
			r.Get("/direccion", h.GetDireccion)
			r.Get("/ubicacion", h.GetUbicacion)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Ruta no encontrada"}` + "\n"))
	})
}

// Start serves HTTP until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	addr := s.Addr()
	timeouts := config.GetTimeouts()

	server := &http.Server{
		Addr:    addr,
		Handler: s.router,
		// ReadTimeout is for reading request body
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		// WriteTimeout leaves room for the per-request timeout middleware to respond
		WriteTimeout: timeouts.HTTPRequest + 5*time.Second,
		// IdleTimeout for keep-alive connections between requests
		IdleTimeout: 120 * time.Second,
	}

	// Start server in goroutine
	errChan := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errChan:
		return err
	}
}
