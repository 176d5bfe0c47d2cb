package redirect

import (
	"errors"

	apperrors "github.com/alexjbarnes/callback-redirect/internal/errors"
	"github.com/alexjbarnes/callback-redirect/internal/metrics"
)

var errBuildFailed = errors.New("building redirect target")

// outcomeFor maps a verify failure to its metrics label.
func outcomeFor(err error) string {
	if errors.Is(err, apperrors.ErrInvalidLink) {
		return metrics.OutcomeInvalidLink
	}

	return metrics.OutcomeInternalError
}
