package errors

import "errors"

// Link errors. None of these ever reaches the browser as a status code;
// handlers degrade them into redirects.
var (
	ErrInvalidLink   = errors.New("invalid reset link")
	ErrMalformedHint = errors.New("malformed redirect hint")
)

// Upstream errors. Reserved: the normalizer makes no upstream calls.
var (
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)
