package callback

import "net/url"

// AllowedParams are the only inbound keys ever forwarded to the client,
// in the order they are appended to a target.
var AllowedParams = []string{
	ParamToken,
	ParamType,
	ParamTokenHash,
	ParamCode,
	ParamError,
	ParamErrorDescription,
}

// ImplicitFlowParams are the implicit-flow token keys. They belong to the
// URL fragment and are never written into a target's query string.
var ImplicitFlowParams = []string{
	"access_token",
	"refresh_token",
	"provider_token",
	"provider_refresh_token",
	"expires_in",
	"expires_at",
	"token_type",
}

// IsImplicitFlowParam reports whether key is one of ImplicitFlowParams.
func IsImplicitFlowParam(key string) bool {
	for _, k := range ImplicitFlowParams {
		if k == key {
			return true
		}
	}

	return false
}

// ExtractAllowed copies the allow-listed, non-empty parameters out of q.
// Everything else is dropped.
func ExtractAllowed(q url.Values) url.Values {
	out := url.Values{}

	for _, k := range AllowedParams {
		if v := q.Get(k); v != "" {
			out.Set(k, v)
		}
	}

	return out
}

// Merge folds recovered parameters into t and returns the result; t itself
// is not modified. Allow-listed keys present in recovered overwrite the
// same keys from the hint's own query. Keys absent from recovered, and the
// hint's unrelated keys, are left as they were.
func Merge(t Target, recovered url.Values) Target {
	out := t.clone()

	for _, k := range AllowedParams {
		if v := recovered.Get(k); v != "" {
			out.Params.Set(k, v)
		}
	}

	return out
}
