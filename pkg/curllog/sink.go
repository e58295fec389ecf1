package curllog

//go:generate $MOCKGEN -source=sink.go -destination=mocks/sink_mock.go

import (
	"context"

	"go.uber.org/zap"

	"github.com/oshokin/curl-logger/internal/logger"
)

// Sink receives formatted curl commands.
type Sink interface {
	// Info writes message at info level.
	Info(ctx context.Context, message string) error
}

// SinkFunc is an adapter to allow the use of ordinary functions as a Sink.
type SinkFunc func(ctx context.Context, message string) error

// Info calls f(ctx, message).
func (f SinkFunc) Info(ctx context.Context, message string) error {
	return f(ctx, message)
}

// requestIDKey is the structured field carrying the per-request id.
const requestIDKey = "request_id"

// ZapSink writes messages to a zap logger, tagging each with the request id
// found in the context.
type ZapSink struct {
	// logger is the destination logger.
	logger *zap.Logger
}

// NewZapSink creates a Sink backed by l. A nil l yields a no-op logger.
func NewZapSink(l *zap.Logger) *ZapSink {
	if l == nil {
		l = zap.NewNop()
	}

	return &ZapSink{logger: l}
}

// Info writes message at info level.
func (s *ZapSink) Info(ctx context.Context, message string) error {
	var fields []zap.Field
	if id, ok := RequestIDFromContext(ctx); ok {
		fields = append(fields, zap.String(requestIDKey, id))
	}

	s.logger.Info(message, fields...)

	return nil
}

// globalLoggerSink writes through the application-wide logger.
type globalLoggerSink struct{}

// DefaultSink returns the Sink used by a fresh configuration: the global
// logger of this module.
func DefaultSink() Sink {
	return globalLoggerSink{}
}

func (globalLoggerSink) Info(ctx context.Context, message string) error {
	id, ok := RequestIDFromContext(ctx)
	if !ok {
		logger.Info(ctx, message)

		return nil
	}

	logger.InfoKV(ctx, message, requestIDKey, id)

	return nil
}
