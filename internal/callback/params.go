package callback

import (
	"net/url"
	"strings"
)

// Params is an ordered string mapping with unique keys. Setting an existing
// key replaces its value in place, so the first insertion fixes the
// position and the last write fixes the value.
type Params struct {
	keys   []string
	values map[string]string
}

// Set stores value under key.
func (p *Params) Set(key, value string) {
	if p.values == nil {
		p.values = make(map[string]string)
	}

	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}

	p.values[key] = value
}

// Get returns the value stored under key.
func (p Params) Get(key string) (string, bool) {
	v, ok := p.values[key]
	return v, ok
}

// Len returns the number of keys.
func (p Params) Len() int {
	return len(p.keys)
}

// Keys returns the keys in insertion order.
func (p Params) Keys() []string {
	out := make([]string, len(p.keys))
	copy(out, p.keys)

	return out
}

// Encode renders the params as a query string in insertion order, with
// spaces encoded as %20 rather than "+".
func (p Params) Encode() string {
	if len(p.keys) == 0 {
		return ""
	}

	var b strings.Builder

	for i, k := range p.keys {
		if i > 0 {
			b.WriteByte('&')
		}

		b.WriteString(escape(k))
		b.WriteByte('=')
		b.WriteString(escape(p.values[k]))
	}

	return b.String()
}

func (p Params) clone() Params {
	out := Params{
		keys:   make([]string, len(p.keys)),
		values: make(map[string]string, len(p.values)),
	}
	copy(out.keys, p.keys)

	for k, v := range p.values {
		out.values[k] = v
	}

	return out
}

// QueryEscape already turns a literal "+" into %2B, so every remaining
// "+" stands for a space.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// parseOrderedQuery decodes a raw query string keeping first-seen key
// order. Pairs that fail to unescape are skipped rather than failing the
// whole query.
func parseOrderedQuery(raw string) Params {
	var p Params

	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}

		rawKey, rawValue, _ := strings.Cut(pair, "=")

		key, err := url.QueryUnescape(rawKey)
		if err != nil || key == "" {
			continue
		}

		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			continue
		}

		p.Set(key, value)
	}

	return p
}
