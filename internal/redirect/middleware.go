package redirect

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/alexjbarnes/callback-redirect/internal/callback"
	"github.com/alexjbarnes/callback-redirect/internal/metrics"
	"github.com/google/uuid"
)

type contextKey int

const (
	ctxRequestID contextKey = iota
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

// RequestID returns the request ID from the context, or "".
func RequestID(ctx context.Context) string {
	v, _ := ctx.Value(ctxRequestID).(string)
	return v
}

func requestLogger(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if id := RequestID(ctx); id != "" {
		return logger.With(slog.String("request_id", id))
	}

	return logger
}

// WithRequestID tags each request with an ID. An inbound X-Request-ID is
// reused only when it parses as a UUID, so arbitrary caller strings never
// reach the logs.
func WithRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id string
		if parsed, err := uuid.Parse(r.Header.Get(RequestIDHeader)); err == nil {
			id = parsed.String()
		} else {
			id = uuid.NewString()
		}

		w.Header().Set(RequestIDHeader, id)

		ctx := context.WithValue(r.Context(), ctxRequestID, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Recover returns middleware that turns a panic into a redirect to the
// login page. The panic value is logged and never placed in the URL.
// endpoint labels the panic in the redirect metrics.
func Recover(endpoint string, n Normalizer, rec *metrics.Recorder, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				p := recover()
				if p == nil {
					return
				}

				if p == http.ErrAbortHandler {
					panic(p)
				}

				requestLogger(r.Context(), logger).Error("panic recovered",
					slog.String("endpoint", endpoint),
					slog.String("path", r.URL.Path),
					slog.Any("panic", p),
				)
				rec.Redirect(endpoint, metrics.OutcomePanic)
				writeRedirect(w, n.ErrorTarget(callback.MessageInternal).String())
			}()

			next.ServeHTTP(w, r)
		})
	}
}
