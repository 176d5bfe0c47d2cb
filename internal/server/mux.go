// Package server provides HTTP server construction for callback-redirect.
package server

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/alexjbarnes/callback-redirect/internal/metrics"
	"github.com/alexjbarnes/callback-redirect/internal/redirect"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

// RouterConfig holds dependencies for building the redirect router.
type RouterConfig struct {
	Normalizer redirect.Normalizer
	Metrics    *metrics.Recorder
	Logger     *slog.Logger
	VerifyPath string
}

// NewRouter builds the redirect router. The verify endpoint is mounted at
// VerifyPath; every other path and method goes to the generic redirect
// handler, so no request ever falls through to a 404 or 405.
func NewRouter(cfg RouterConfig) http.Handler {
	verify := redirect.Recover(metrics.EndpointVerify, cfg.Normalizer, cfg.Metrics, cfg.Logger)(
		redirect.HandleVerify(cfg.Normalizer, cfg.Metrics, cfg.Logger))
	generic := redirect.Recover(metrics.EndpointRedirect, cfg.Normalizer, cfg.Metrics, cfg.Logger)(
		redirect.HandleRedirect(cfg.Normalizer, cfg.Metrics, cfg.Logger))

	r := chi.NewRouter()
	r.Use(redirect.WithRequestID)

	verifyPath := strings.TrimRight(cfg.VerifyPath, "/")
	r.Handle(verifyPath, verify)
	r.Handle(verifyPath+"/", verify)
	r.Handle("/*", generic)
	r.NotFound(generic.ServeHTTP)
	r.MethodNotAllowed(generic.ServeHTTP)

	return r
}

// NewMetricsMux builds the operational mux served on the metrics listener.
func NewMetricsMux(g prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Handle("/metrics", metrics.Handler(g))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})

	return r
}
