package callback

import (
	"fmt"
	"net/url"

	apperrors "github.com/alexjbarnes/callback-redirect/internal/errors"
)

// Messages shown to the user on the login page. Failure detail goes to
// the log, never into the URL.
const (
	MessageInvalidLink = "Invalid reset link"
	MessageInternal    = "Something went wrong"
)

// FlowRecovery is the marker the verify endpoint adds for the client.
const FlowRecovery = "recovery"

// Normalizer is the decision core shared by the verify and generic
// redirect endpoints.
type Normalizer struct {
	resolver *Resolver
	opts     Options
}

// NewNormalizer creates a Normalizer for the given process-wide options.
func NewNormalizer(opts Options) *Normalizer {
	return &Normalizer{
		resolver: NewResolver(opts),
		opts:     opts,
	}
}

// Origin returns the canonical https origin.
func (n *Normalizer) Origin() string {
	return n.resolver.Origin()
}

// Verify builds the callback target for a recovery link. Any request that
// does not classify as LinkRecovery returns ErrInvalidLink.
func (n *Normalizer) Verify(req Request) (Target, error) {
	if Classify(req) != LinkRecovery {
		return Target{}, fmt.Errorf("%w: type %q, token present %t", apperrors.ErrInvalidLink, req.Type, req.Token != "")
	}

	t := n.resolver.targetAt(n.opts.CallbackPath)
	t.Params.Set(ParamToken, req.Token)
	t.Params.Set(ParamType, TypeRecovery)
	t.Params.Set(ParamFlow, FlowRecovery)

	return t, nil
}

// Redirect runs the flow-agnostic pipeline: extract allow-listed
// parameters, resolve redirect_to, merge.
func (n *Normalizer) Redirect(q url.Values) (Target, Resolution) {
	recovered := ExtractAllowed(q)
	t, res := n.resolver.ResolveDetailed(q.Get(ParamRedirectTo))

	return Merge(t, recovered), res
}

// ErrorTarget returns the login page annotated with a user-facing message.
func (n *Normalizer) ErrorTarget(message string) Target {
	t := n.resolver.targetAt(n.opts.LoginPath)
	t.Params.Set(ParamError, message)

	return t
}
