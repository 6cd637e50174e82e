// Package logger provides structured logging for the retrieval services.
//
// It wraps Uber's Zap with the house defaults (JSON encoding, ISO8601
// timestamps, service and pid fields) and optional OpenTelemetry trace
// correlation, and integrates with the fx dependency injection framework.
//
// # Direct Usage (Without FX)
//
// For simple applications or tests, create a logger directly:
//
//	import "github.com/semantic-retrieval/std/v1/logger"
//
//	log := logger.NewLoggerClient(logger.Config{
//		Level:         logger.Info,
//		ServiceName:   "retrieval",
//		EnableTracing: true,
//	})
//
//	log.Info("user logged in",
//		zap.String("user_id", "12345"),
//		zap.String("ip", "192.168.1.1"),
//	)
//
//	// With trace context (automatically includes trace_id and span_id)
//	log.InfoWithContext(ctx, "processing request",
//		zap.String("request_id", "abc-123"),
//	)
//
// # FX Module Integration
//
//	app := fx.New(
//		logger.FXModule,
//		fx.Provide(func() logger.Config {
//			return logger.Config{Level: logger.Info, ServiceName: "retrieval"}
//		}),
//	)
//
// The module registers a shutdown hook that flushes buffered entries.
//
// Libraries that want logging without forcing a configured logger on their
// callers default to [NewNop].
package logger
