// Package diagnostic reconstructs what a landed callback URL actually
// delivered to the browser. The query string and the fragment are read
// independently because the client SDK dispatches on which channel carries
// data: code and recovery flows use the query, implicit-flow tokens use the
// fragment. Reports are for support and debugging only.
package diagnostic

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"sort"
	"strings"

	"github.com/alexjbarnes/callback-redirect/internal/callback"
	"gopkg.in/yaml.v3"
)

// Channel names which parts of the URL carried parameters.
type Channel string

const (
	ChannelNone     Channel = "none"
	ChannelQuery    Channel = "query"
	ChannelFragment Channel = "fragment"
	ChannelBoth     Channel = "both"
)

// Flow is the callback flavor a landed URL most likely represents.
type Flow string

const (
	FlowNone      Flow = "none"
	FlowError     Flow = "error"
	FlowImplicit  Flow = "implicit"
	FlowPKCE      Flow = "pkce"
	FlowTokenHash Flow = "token_hash"
	FlowRecovery  Flow = "recovery"
	FlowToken     Flow = "token"
)

// queryOnly keys must never appear in the fragment.
var queryOnly = map[string]bool{
	"token":      true,
	"token_hash": true,
	"code":       true,
	"flow":       true,
}

// secret keys have their values redacted in reports.
var secret = map[string]bool{
	"token":                  true,
	"token_hash":             true,
	"code":                   true,
	"access_token":           true,
	"refresh_token":          true,
	"provider_token":         true,
	"provider_refresh_token": true,
}

// Report is the reconstruction of one landed URL.
type Report struct {
	Path       string            `json:"path" yaml:"path"`
	Channel    Channel           `json:"channel" yaml:"channel"`
	Flow       Flow              `json:"flow" yaml:"flow"`
	Query      map[string]string `json:"query,omitempty" yaml:"query,omitempty"`
	Fragment   map[string]string `json:"fragment,omitempty" yaml:"fragment,omitempty"`
	Violations []string          `json:"violations,omitempty" yaml:"violations,omitempty"`
}

// OK reports whether the URL respected channel separation.
func (r Report) OK() bool {
	return len(r.Violations) == 0
}

// Collect parses a landed URL into a Report. Credential values are
// redacted; only their length is kept.
func Collect(landed string) (Report, error) {
	u, err := url.Parse(strings.TrimSpace(landed))
	if err != nil {
		return Report{}, fmt.Errorf("parsing landed url: %w", err)
	}

	// ParseQuery keeps every well-formed pair even when it reports an
	// error for a bad one, which is what a browser does too.
	query, _ := url.ParseQuery(u.RawQuery)
	fragment, _ := url.ParseQuery(u.EscapedFragment())

	r := Report{
		Path:     u.Path,
		Query:    flatten(query),
		Fragment: flatten(fragment),
	}

	switch {
	case len(query) > 0 && len(fragment) > 0:
		r.Channel = ChannelBoth
	case len(query) > 0:
		r.Channel = ChannelQuery
	case len(fragment) > 0:
		r.Channel = ChannelFragment
	default:
		r.Channel = ChannelNone
	}

	r.Flow = detectFlow(query, fragment)
	r.Violations = violations(query, fragment)

	return r, nil
}

func detectFlow(query, fragment url.Values) Flow {
	switch {
	case query.Get("error") != "" || fragment.Get("error") != "":
		return FlowError
	case fragment.Get("access_token") != "":
		return FlowImplicit
	case query.Get("code") != "":
		return FlowPKCE
	case query.Get("token_hash") != "":
		return FlowTokenHash
	case query.Get("token") != "" && query.Get("type") == "recovery":
		return FlowRecovery
	case query.Get("token") != "":
		return FlowToken
	default:
		return FlowNone
	}
}

func violations(query, fragment url.Values) []string {
	var out []string

	for _, k := range sortedKeys(query) {
		if callback.IsImplicitFlowParam(k) {
			out = append(out, fmt.Sprintf("implicit-flow parameter %q in query string", k))
		}
	}

	for _, k := range sortedKeys(fragment) {
		if queryOnly[k] {
			out = append(out, fmt.Sprintf("query-flow parameter %q in fragment", k))
		}
	}

	return out
}

func flatten(v url.Values) map[string]string {
	if len(v) == 0 {
		return nil
	}

	out := make(map[string]string, len(v))
	for k := range v {
		val := v.Get(k)
		if secret[k] && val != "" {
			val = fmt.Sprintf("<redacted len=%d>", len(val))
		}

		out[k] = val
	}

	return out
}

func sortedKeys(v url.Values) []string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// Render writes the report as "json" (indented) or "yaml".
func (r Report) Render(w io.Writer, format string) error {
	switch format {
	case "", "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(r)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}

		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (want json or yaml)", format)
	}
}
