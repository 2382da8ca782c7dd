package middleware_http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"product-api/internal/logger"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
)

var tracer = otel.Tracer("HttpMiddleware")

// responseWriter wraps http.ResponseWriter to capture status code and size.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	size       int64
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.size += int64(n)
	return n, err
}

// Trace wraps handlers with an OpenTelemetry span per request, continues an
// incoming trace when the caller sent one, exposes the trace id to the
// client, and logs the request/response pair.
func Trace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

		ctx, span := tracer.Start(ctx, r.Method+" "+r.URL.Path)
		defer func() {
			if rec := recover(); rec != nil {
				span.RecordError(fmt.Errorf("panic: %v", rec))
				span.SetStatus(codes.Error, "panic occurred")
				span.End()
				panic(rec)
			}
			span.End()
		}()

		logger.Info(ctx, "HTTP request",
			slog.String("http.method", r.Method),
			slog.String("http.path", r.URL.Path),
			slog.String("http.remote", r.RemoteAddr),
		)

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		rw.Header().Set("X-Trace-ID", span.SpanContext().TraceID().String())

		start := time.Now()
		next.ServeHTTP(rw, r.WithContext(ctx))

		switch {
		case rw.statusCode >= 500:
			span.SetStatus(codes.Error, "server error")
		case rw.statusCode >= 400:
			span.SetStatus(codes.Error, "client error")
		default:
			span.SetStatus(codes.Ok, "")
		}

		logger.Info(ctx, "HTTP response",
			slog.String("http.method", r.Method),
			slog.String("http.path", r.URL.Path),
			slog.Int("http.status", rw.statusCode),
			slog.Int64("http.size", rw.size),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
	})
}
