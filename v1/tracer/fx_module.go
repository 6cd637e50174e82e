package tracer

import (
	"context"

	"go.uber.org/fx"

	"github.com/semantic-retrieval/std/v1/logger"
)

// FXModule configures distributed tracing for the application. It provides
// the tracer client and registers shutdown hooks so pending spans are
// flushed on termination.
//
// Usage:
//
//	app := fx.New(
//	    tracer.FXModule,
//	    fx.Provide(func() tracer.Config { return loadTracerConfig() }),
//	)
var FXModule = fx.Module("tracer",
	fx.Provide(
		NewClientWithDI,
	),
	fx.Invoke(RegisterTracerLifecycle),
)

// NewClientWithDI adapts NewClient to fx construction, which has no
// caller-supplied context.
func NewClientWithDI(cfg Config) (*Tracer, error) {
	return NewClient(context.Background(), cfg)
}

// RegisterTracerLifecycle shuts the trace provider down on application
// stop. Invoked automatically by FXModule.
func RegisterTracerLifecycle(lc fx.Lifecycle, t *Tracer, log *logger.Logger) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down tracer")
			return t.Shutdown(ctx)
		},
	})
}
