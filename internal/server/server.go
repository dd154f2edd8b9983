// Package server provides the HTTP API for claim verification.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/veritaslab/veritas/internal/model"
	"github.com/veritaslab/veritas/internal/pipeline"
	"github.com/veritaslab/veritas/internal/store"
)

// Version is the API version reported by the root endpoint
const Version = "1.0.0"

// Server is the HTTP server for the verification API
type Server struct {
	checker *pipeline.Checker
	store   store.Store
	config  model.ServerConfig
	logger  *zap.Logger
	server  *http.Server
}

// NewServer creates a server with the given dependencies
func NewServer(checker *pipeline.Checker, st store.Store, cfg model.ServerConfig, logger *zap.Logger) *Server {
	return &Server{
		checker: checker,
		store:   st,
		config:  cfg,
		logger:  logger,
	}
}

// Router builds the HTTP routing table
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(s.corsMiddleware)

	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)
	r.Post("/check", s.handleCheck)
	r.Get("/history", s.handleHistory)
	r.Delete("/history", s.handleClearHistory)
	r.Get("/stats", s.handleStats)

	return r
}

// Start starts the HTTP server and blocks until it stops
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}
	s.logger.Info("starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// corsMiddleware allows the configured frontend origins to call the API
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	allowed := make(map[string]bool, len(s.config.CORSOrigins))
	for _, origin := range s.config.CORSOrigins {
		allowed[origin] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && (allowed[origin] || allowed["*"]) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
