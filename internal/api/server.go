// Package api exposes the retrieval operations over HTTP: upsert, query
// and delete, JSON in and out, guarded by bearer token auth.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/semantic-retrieval/std/v1/logger"
)

// Config holds the HTTP server settings.
type Config struct {
	// Address to listen on, e.g. ":8000".
	Address string `yaml:"address" koanf:"address"`

	// BearerToken every request must present. Empty disables auth.
	BearerToken string `yaml:"bearer_token" koanf:"bearer_token"`

	// AllowAllOrigins opens CORS up completely. Dev mode only.
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`

	// ChunkWords is the word window used when splitting documents.
	ChunkWords int `yaml:"chunk_words" koanf:"chunk_words"`
}

// Server serves the retrieval HTTP API.
type Server struct {
	cfg        Config
	service    *Service
	log        *logger.Logger
	router     chi.Router
	httpServer *http.Server
}

// NewServer builds the router and wraps it in an http.Server. Start and
// Shutdown manage the listener.
func NewServer(cfg Config, service *Service, log *logger.Logger) *Server {
	if log == nil {
		log = logger.NewNop()
	}
	s := &Server{
		cfg:     cfg,
		service: service,
		log:     log,
	}
	s.router = s.buildRouter()
	s.httpServer = &http.Server{
		Addr:              cfg.Address,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(traceRequests)

	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAllOrigins {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Group(func(r chi.Router) {
		r.Use(bearerAuth(s.cfg.BearerToken))
		r.Post("/upsert", s.handleUpsert)
		r.Post("/upsert-file", s.handleUpsertFile)
		r.Post("/query", s.handleQuery)
		// Delete carries a JSON body; both methods are accepted because
		// not every client sends bodies on DELETE.
		r.Post("/delete", s.handleDelete)
		r.Delete("/delete", s.handleDelete)
	})

	return r
}

// Router returns the chi router, mainly for tests.
func (s *Server) Router() chi.Router { return s.router }

// Start begins listening. It blocks until the server stops.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
