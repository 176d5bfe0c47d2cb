package callback

import "net/url"

// Target is a redirect destination on the canonical host. Host and Scheme
// are never taken from caller input.
type Target struct {
	Scheme string
	Host   string
	Path   string
	Params Params
}

// URL returns the target as a url.URL. The fragment is always empty:
// query-channel credentials must never move into the fragment.
func (t Target) URL() *url.URL {
	return &url.URL{
		Scheme:   t.Scheme,
		Host:     t.Host,
		Path:     t.Path,
		RawQuery: t.Params.Encode(),
	}
}

// String renders the absolute redirect URL.
func (t Target) String() string {
	return t.URL().String()
}

// clone returns a copy whose Params can be modified independently.
func (t Target) clone() Target {
	t.Params = t.Params.clone()
	return t
}
