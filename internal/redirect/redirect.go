// Package redirect provides the HTTP entry points that turn identity
// provider callbacks into redirects. Every response is a 302; failures
// become an error-annotated login page rather than a 4xx/5xx.
package redirect

//go:generate mockgen -destination=mock_normalizer_test.go -package=redirect . Normalizer

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/alexjbarnes/callback-redirect/internal/callback"
	"github.com/alexjbarnes/callback-redirect/internal/metrics"
)

// Normalizer is the decision core both endpoints share.
// *callback.Normalizer implements it.
type Normalizer interface {
	Verify(req callback.Request) (callback.Target, error)
	Redirect(q url.Values) (callback.Target, callback.Resolution)
	ErrorTarget(message string) callback.Target
}

// writeRedirect issues a bare 302. http.Redirect is avoided because it
// writes an HTML body for GET requests.
func writeRedirect(w http.ResponseWriter, location string) {
	w.Header().Set("Location", location)
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusFound)
}

// HandleVerify returns the recovery-link verify handler. A token with
// type=recovery goes to the callback page; anything else, and any failure
// while building the URL, goes to the login page with an error message.
func HandleVerify(n Normalizer, rec *metrics.Recorder, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := requestLogger(r.Context(), logger)
		req := callback.ParseRequest(r.URL.Query())

		location, err := verifyLocation(n, req)
		if err != nil {
			log.Info("verify: rejected link",
				slog.String("type", req.Type),
				slog.Bool("token_present", req.Token != ""),
				slog.String("error", err.Error()),
			)
			rec.Redirect(metrics.EndpointVerify, outcomeFor(err))
			writeRedirect(w, n.ErrorTarget(callback.MessageInvalidLink).String())

			return
		}

		log.Debug("verify: recovery link accepted",
			slog.String("redirect_to", req.RedirectTo),
		)
		rec.Redirect(metrics.EndpointVerify, metrics.OutcomeSuccess)
		writeRedirect(w, location)
	}
}

// verifyLocation converts a panic during URL construction into an error
// so the caller can degrade it like any other rejection.
func verifyLocation(n Normalizer, req callback.Request) (location string, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %v", errBuildFailed, p)
		}
	}()

	t, err := n.Verify(req)
	if err != nil {
		return "", err
	}

	return t.String(), nil
}

// HandleRedirect returns the flow-agnostic redirect handler. It forwards
// whatever allow-listed credential or error parameters it received to the
// resolved target and leaves flow interpretation to the client.
func HandleRedirect(n Normalizer, rec *metrics.Recorder, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := requestLogger(r.Context(), logger)

		target, res := n.Redirect(r.URL.Query())

		switch res.Source {
		case callback.SourceMalformedHint:
			log.Warn("redirect: malformed redirect_to, using default",
				slog.String("error", res.Err.Error()),
			)
			rec.Redirect(metrics.EndpointRedirect, metrics.OutcomeMalformedHint)
		case callback.SourceHint:
			rec.Redirect(metrics.EndpointRedirect, metrics.OutcomeHint)
		default:
			rec.Redirect(metrics.EndpointRedirect, metrics.OutcomeDefault)
		}

		if res.HostRewritten {
			log.Info("redirect: pinned foreign redirect_to host")
			rec.Rewrite(metrics.RewriteHost)
		}

		if res.PathRewritten {
			rec.Rewrite(metrics.RewritePath)
		}

		location := target.String()
		log.Debug("redirect: issuing",
			slog.String("path", r.URL.Path),
			slog.String("source", res.Source.String()),
			slog.Int("params", target.Params.Len()),
		)
		writeRedirect(w, location)
	}
}
