package callback

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"

	apperrors "github.com/alexjbarnes/callback-redirect/internal/errors"
)

// Options are the process-wide constants a Normalizer is built with.
type Options struct {
	// CanonicalHost is the only host a redirect may target.
	CanonicalHost string
	// DefaultPath is used when no usable redirect hint is supplied.
	DefaultPath string
	// LoginPath cannot consume identity tokens; hints pointing at it are
	// rewritten to CallbackPath.
	LoginPath    string
	CallbackPath string
}

// Source records where a resolved target's path came from.
type Source int

const (
	SourceDefault Source = iota
	SourceHint
	SourceMalformedHint
)

func (s Source) String() string {
	switch s {
	case SourceHint:
		return "hint"
	case SourceMalformedHint:
		return "malformed_hint"
	default:
		return "default"
	}
}

// Resolution describes how Resolve arrived at its target.
type Resolution struct {
	Source Source
	// HostRewritten is set when the hint named a host or scheme other
	// than the canonical https one.
	HostRewritten bool
	// PathRewritten is set when a login-path hint was corrected to the
	// callback path.
	PathRewritten bool
	// Err holds the parse failure for SourceMalformedHint.
	Err error
}

// Resolver turns an untrusted redirect hint into a Target pinned to the
// canonical host.
type Resolver struct {
	opts   Options
	origin *url.URL
}

// NewResolver creates a Resolver. The options are not validated here;
// internal/config rejects bad values at start-up.
func NewResolver(opts Options) *Resolver {
	return &Resolver{
		opts:   opts,
		origin: &url.URL{Scheme: "https", Host: opts.CanonicalHost, Path: "/"},
	}
}

// Origin returns the canonical https origin.
func (r *Resolver) Origin() string {
	return "https://" + r.opts.CanonicalHost
}

// Resolve returns the target for hint. A malformed hint never fails the
// redirect; it yields the default target.
func (r *Resolver) Resolve(hint string) Target {
	t, _ := r.ResolveDetailed(hint)
	return t
}

// ResolveDetailed is Resolve plus a description of the decisions taken.
func (r *Resolver) ResolveDetailed(hint string) (Target, Resolution) {
	if hint == "" {
		return r.defaultTarget(), Resolution{Source: SourceDefault}
	}

	u, err := r.parseHint(hint)
	if err != nil {
		return r.defaultTarget(), Resolution{Source: SourceMalformedHint, Err: err}
	}

	res := Resolution{Source: SourceHint}

	// Scheme and host are pinned; only path and query of the hint survive.
	if u.Host != "" && ((u.Scheme != "" && u.Scheme != "https") || !r.isCanonicalHost(u)) {
		res.HostRewritten = true
	}

	resolved := r.origin.ResolveReference(u)

	p := collapseSlashes(resolved.Path)
	if r.isLoginPath(p) {
		p = r.opts.CallbackPath
		res.PathRewritten = true
	}

	return Target{
		Scheme: "https",
		Host:   r.opts.CanonicalHost,
		Path:   p,
		Params: withoutImplicitFlow(parseOrderedQuery(resolved.RawQuery)),
	}, res
}

// isCanonicalHost compares hostnames case-insensitively, treating an
// explicit :443 the same as no port.
func (r *Resolver) isCanonicalHost(u *url.URL) bool {
	return strings.EqualFold(u.Hostname(), r.origin.Hostname()) &&
		httpsPort(u.Port()) == httpsPort(r.origin.Port())
}

func httpsPort(p string) string {
	if p == "" {
		return "443"
	}

	return p
}

// withoutImplicitFlow drops implicit-flow token keys from a hint's query.
func withoutImplicitFlow(p Params) Params {
	var out Params

	for _, k := range p.keys {
		if IsImplicitFlowParam(k) {
			continue
		}

		out.Set(k, p.values[k])
	}

	return out
}

func (r *Resolver) defaultTarget() Target {
	return Target{
		Scheme: "https",
		Host:   r.opts.CanonicalHost,
		Path:   r.opts.DefaultPath,
	}
}

// targetAt builds a target for a fixed application path.
func (r *Resolver) targetAt(path string) Target {
	return Target{
		Scheme: "https",
		Host:   r.opts.CanonicalHost,
		Path:   path,
	}
}

// parseHint accepts absolute http(s) URLs with a host, scheme-relative
// "//host/path" and root-relative "/path" hints. Anything else, including
// bare words and other schemes, is ErrMalformedHint.
func (r *Resolver) parseHint(hint string) (*url.URL, error) {
	if strings.IndexFunc(hint, func(c rune) bool { return unicode.IsSpace(c) || unicode.IsControl(c) }) >= 0 {
		return nil, fmt.Errorf("%w: contains whitespace or control characters", apperrors.ErrMalformedHint)
	}

	u, err := url.Parse(hint)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrMalformedHint, err)
	}

	switch {
	case u.Scheme == "http" || u.Scheme == "https":
		if u.Host == "" {
			return nil, fmt.Errorf("%w: absolute URL without host", apperrors.ErrMalformedHint)
		}
	case u.Scheme != "":
		return nil, fmt.Errorf("%w: unsupported scheme %q", apperrors.ErrMalformedHint, u.Scheme)
	case !strings.HasPrefix(hint, "/"):
		return nil, fmt.Errorf("%w: not an absolute URL or path", apperrors.ErrMalformedHint)
	}

	u.User = nil
	u.Fragment = ""
	u.RawFragment = ""

	return u, nil
}

func (r *Resolver) isLoginPath(p string) bool {
	login := strings.TrimRight(r.opts.LoginPath, "/")
	return p == login || p == login+"/"
}

// collapseSlashes folds runs of "/" into one. An empty path becomes "/".
func collapseSlashes(p string) string {
	if p == "" {
		return "/"
	}

	var b strings.Builder

	b.Grow(len(p))

	prevSlash := false

	for i := 0; i < len(p); i++ {
		c := p[i]
		if c == '/' && prevSlash {
			continue
		}

		prevSlash = c == '/'
		b.WriteByte(c)
	}

	out := b.String()
	if !strings.HasPrefix(out, "/") {
		out = "/" + out
	}

	return out
}
