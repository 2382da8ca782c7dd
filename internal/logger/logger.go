package logger

import (
	"context"
	"log/slog"
	"os"
	"sync"

	"go.opentelemetry.io/otel/trace"
)

var (
	instance *slog.Logger
	once     sync.Once

	hostname     string
	hostnameOnce sync.Once
)

func Instance() *slog.Logger {
	once.Do(func() {
		instance = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	})

	return instance
}

func Info(ctx context.Context, msg string, attrs ...slog.Attr) {
	Instance().LogAttrs(ctx, slog.LevelInfo, msg, enrich(ctx, attrs...)...)
}

func Warn(ctx context.Context, msg string, attrs ...slog.Attr) {
	Instance().LogAttrs(ctx, slog.LevelWarn, msg, enrich(ctx, attrs...)...)
}

func Error(ctx context.Context, msg string, attrs ...slog.Attr) {
	Instance().LogAttrs(ctx, slog.LevelError, msg, enrich(ctx, attrs...)...)
}

// enrich stamps trace correlation ids onto every log line written inside an
// active span.
func enrich(ctx context.Context, attrs ...slog.Attr) []slog.Attr {
	span := trace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		attrs = append(attrs,
			slog.String("trace_id", span.SpanContext().TraceID().String()),
			slog.String("span_id", span.SpanContext().SpanID().String()),
			slog.String("hostname", Hostname()),
		)
	}

	return attrs
}

func Hostname() string {
	hostnameOnce.Do(func() {
		h, err := os.Hostname()
		if err != nil {
			hostname = "unknown"
		} else {
			hostname = h
		}
	})

	return hostname
}
