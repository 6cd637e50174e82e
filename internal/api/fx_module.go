package api

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/semantic-retrieval/std/v1/datastore"
	"github.com/semantic-retrieval/std/v1/embedding"
	"github.com/semantic-retrieval/std/v1/logger"
)

// FXModule wires the HTTP API into an fx application. It provides the
// Service and Server and ties the listener to the application lifecycle.
//
// Required in the container: api.Config, a datastore.DataStore, an
// *embedding.Client and a *logger.Logger.
var FXModule = fx.Module("api",
	fx.Provide(
		NewServiceWithDI,
		NewServerWithDI,
	),
	fx.Invoke(RegisterServerLifecycle),
)

// NewServiceWithDI builds the Service from injected dependencies.
func NewServiceWithDI(cfg Config, store datastore.DataStore, embedder *embedding.Client, log *logger.Logger) *Service {
	return NewService(store, embedder, log, cfg.ChunkWords)
}

// NewServerWithDI builds the Server from injected dependencies.
func NewServerWithDI(cfg Config, service *Service, log *logger.Logger) *Server {
	return NewServer(cfg, service, log)
}

// RegisterServerLifecycle starts the HTTP listener in a background
// goroutine on application start and drains it on stop.
func RegisterServerLifecycle(lc fx.Lifecycle, s *Server, log *logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("starting HTTP API server", zap.String("address", s.cfg.Address))
				if err := s.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("HTTP API server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down HTTP API server")
			return s.Shutdown(ctx)
		},
	})
}
