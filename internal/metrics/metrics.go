// Package metrics exposes prometheus counters for redirect decisions.
package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Endpoint labels.
const (
	EndpointVerify   = "verify"
	EndpointRedirect = "redirect"
)

// Outcome labels.
const (
	OutcomeSuccess       = "success"
	OutcomeInvalidLink   = "invalid_link"
	OutcomeInternalError = "internal_error"
	OutcomeDefault       = "default"
	OutcomeHint          = "hint"
	OutcomeMalformedHint = "malformed_hint"
	OutcomePanic         = "panic"
)

// Rewrite kinds.
const (
	RewriteHost = "host"
	RewritePath = "path"
)

// Recorder counts redirect outcomes. A nil *Recorder is valid and records
// nothing, which keeps handler tests free of registry setup.
type Recorder struct {
	redirects *prometheus.CounterVec
	rewrites  *prometheus.CounterVec
}

// New creates a Recorder and registers its collectors on reg.
func New(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		redirects: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "callback_redirects_total",
			Help: "Redirects issued, by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		rewrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "callback_hint_rewrites_total",
			Help: "redirect_to hints whose host or path was corrected.",
		}, []string{"kind"}),
	}

	for _, c := range []prometheus.Collector{r.redirects, r.rewrites} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("registering collector: %w", err)
		}
	}

	return r, nil
}

// Redirect counts one issued redirect.
func (r *Recorder) Redirect(endpoint, outcome string) {
	if r == nil {
		return
	}

	r.redirects.WithLabelValues(endpoint, outcome).Inc()
}

// Rewrite counts one hint correction.
func (r *Recorder) Rewrite(kind string) {
	if r == nil {
		return
	}

	r.rewrites.WithLabelValues(kind).Inc()
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
