package logger

import (
	"context"
	"log"
	"os"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level is the minimum severity a log entry needs to be emitted.
type Level string

const (
	Debug   Level = "debug"
	Info    Level = "info"
	Warning Level = "warning"
	Error   Level = "error"
)

// Config holds the logger settings.
type Config struct {
	// Level is the minimum severity to emit. Defaults to Info.
	Level Level `yaml:"level" koanf:"level"`

	// ServiceName is attached to every entry as the "service" field.
	ServiceName string `yaml:"service_name" koanf:"service_name"`

	// EnableTracing makes the context-aware methods extract OpenTelemetry
	// trace and span ids into log entries.
	EnableTracing bool `yaml:"enable_tracing" koanf:"enable_tracing"`
}

// Logger is a wrapper around Uber's Zap logger.
// It provides a simplified interface to the underlying Zap logger,
// with additional functionality specific to the application's needs.
type Logger struct {
	// Zap is the underlying zap.Logger instance
	// This is exposed to allow direct access to Zap-specific functionality
	// when needed, but most logging should go through the wrapper methods.
	Zap *zap.Logger

	// tracingEnabled indicates whether tracing integration is enabled
	// When true, the context-aware methods will automatically extract
	// trace context and include trace/span IDs in log entries
	tracingEnabled bool
}

// NewLoggerClient initializes and returns a new instance of the logger based on configuration.
//
// The logger is configured with:
//   - JSON encoding for structured logging
//   - ISO8601 timestamp format
//   - Capital letter level encoding (e.g., "INFO", "ERROR")
//   - Process ID and service name as default fields
//   - Caller information (file and line) included in log entries
//   - Output directed to stderr
//
// If initialization fails, the function will call log.Fatal to terminate the application.
//
// Example:
//
//	log := logger.NewLoggerClient(logger.Config{
//	    Level:       logger.Info,
//	    ServiceName: "retrieval",
//	})
//	log.Info("application started")
func NewLoggerClient(cfg Config) *Logger {

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	encoderCfg.EncodeCaller = zapcore.FullCallerEncoder
	encoderCfg.EncodeDuration = zapcore.MillisDurationEncoder

	logLevel := zap.InfoLevel

	switch cfg.Level {
	case Debug:
		logLevel = zap.DebugLevel
	case Info:
		logLevel = zap.InfoLevel
	case Warning:
		logLevel = zap.WarnLevel
	case Error:
		logLevel = zap.ErrorLevel
	}

	config := zap.Config{
		Level:             zap.NewAtomicLevelAt(logLevel),
		Development:       false,
		DisableCaller:     false,
		DisableStacktrace: false,
		Sampling:          nil,
		Encoding:          "json",
		EncoderConfig:     encoderCfg,
		OutputPaths: []string{
			"stderr",
		},
		ErrorOutputPaths: []string{
			"stderr",
		},
		InitialFields: map[string]interface{}{
			"pid":     os.Getpid(),
			"service": cfg.ServiceName,
		},
	}

	logger, err := config.Build(zap.AddCaller(), zap.AddCallerSkip(1))

	if err != nil {
		log.Fatal(err)
	}

	return &Logger{
		Zap:            logger,
		tracingEnabled: cfg.EnableTracing,
	}
}

// NewNop returns a logger that discards everything. Useful as the default
// in libraries and in tests.
func NewNop() *Logger {
	return &Logger{Zap: zap.NewNop()}
}

func (l *Logger) Debug(msg string, fields ...zap.Field) {
	l.Zap.Debug(msg, fields...)
}

func (l *Logger) Info(msg string, fields ...zap.Field) {
	l.Zap.Info(msg, fields...)
}

func (l *Logger) Warn(msg string, fields ...zap.Field) {
	l.Zap.Warn(msg, fields...)
}

func (l *Logger) Error(msg string, fields ...zap.Field) {
	l.Zap.Error(msg, fields...)
}

// DebugWithContext logs at debug level with trace correlation fields
// pulled from ctx when tracing is enabled.
func (l *Logger) DebugWithContext(ctx context.Context, msg string, fields ...zap.Field) {
	l.Zap.Debug(msg, l.withTrace(ctx, fields)...)
}

// InfoWithContext logs at info level with trace correlation fields.
func (l *Logger) InfoWithContext(ctx context.Context, msg string, fields ...zap.Field) {
	l.Zap.Info(msg, l.withTrace(ctx, fields)...)
}

// WarnWithContext logs at warn level with trace correlation fields.
func (l *Logger) WarnWithContext(ctx context.Context, msg string, fields ...zap.Field) {
	l.Zap.Warn(msg, l.withTrace(ctx, fields)...)
}

// ErrorWithContext logs at error level with trace correlation fields.
func (l *Logger) ErrorWithContext(ctx context.Context, msg string, fields ...zap.Field) {
	l.Zap.Error(msg, l.withTrace(ctx, fields)...)
}

// withTrace appends trace_id and span_id when the context carries a valid
// span and tracing integration is on.
func (l *Logger) withTrace(ctx context.Context, fields []zap.Field) []zap.Field {
	if !l.tracingEnabled {
		return fields
	}
	span := trace.SpanContextFromContext(ctx)
	if !span.IsValid() {
		return fields
	}
	return append(fields,
		zap.String("trace_id", span.TraceID().String()),
		zap.String("span_id", span.SpanID().String()),
	)
}
