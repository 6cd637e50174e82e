package metrics

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/semantic-retrieval/std/v1/logger"
	"github.com/semantic-retrieval/std/v1/observability"
)

// FXModule integrates the Prometheus metrics server into an Fx-based
// application. It provides *Metrics, exposes it as the
// observability.Observer other modules report into, and manages the
// startup and graceful shutdown of the /metrics HTTP server.
//
// Usage:
//
//	app := fx.New(
//	    metrics.FXModule,
//	    fx.Provide(func() metrics.Config {
//	        return metrics.Config{
//	            Address:                 ":9090",
//	            ServiceName:             "retrieval",
//	            EnableDefaultCollectors: true,
//	        }
//	    }),
//	)
var FXModule = fx.Module("metrics",
	fx.Provide(
		NewMetrics,
		func(m *Metrics) observability.Observer { return m },
	),
	fx.Invoke(RegisterMetricsLifecycle),
)

// RegisterMetricsLifecycle starts the Prometheus HTTP server in a
// background goroutine on application start and shuts it down gracefully
// on stop. Invoked automatically by FXModule.
func RegisterMetricsLifecycle(lc fx.Lifecycle, m *Metrics, log *logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("starting Prometheus metrics server",
					zap.String("address", m.Server.Addr))

				if err := m.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("metrics server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down Prometheus metrics server")
			return m.Server.Shutdown(ctx)
		},
	})
}
