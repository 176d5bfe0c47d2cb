package callback

import "net/url"

// Inbound query parameter names.
const (
	ParamToken            = "token"
	ParamTokenHash        = "token_hash"
	ParamCode             = "code"
	ParamType             = "type"
	ParamRedirectTo       = "redirect_to"
	ParamError            = "error"
	ParamErrorDescription = "error_description"
	ParamFlow             = "flow"
)

// TypeRecovery is the type tag of a password-reset link.
const TypeRecovery = "recovery"

// Request is an identity-provider callback as received. Every field is
// optional; several credential fields may be present at once.
type Request struct {
	Token            string
	TokenHash        string
	Code             string
	Type             string
	RedirectTo       string
	Error            string
	ErrorDescription string
}

// ParseRequest reads a Request from a query string. Only the first value
// of a repeated key is used.
func ParseRequest(q url.Values) Request {
	return Request{
		Token:            q.Get(ParamToken),
		TokenHash:        q.Get(ParamTokenHash),
		Code:             q.Get(ParamCode),
		Type:             q.Get(ParamType),
		RedirectTo:       q.Get(ParamRedirectTo),
		Error:            q.Get(ParamError),
		ErrorDescription: q.Get(ParamErrorDescription),
	}
}

// LinkType is the callback flavor a Request represents.
type LinkType int

const (
	// LinkOther covers every non-recovery combination, including signup,
	// invite and magiclink links and requests with no type at all.
	LinkOther LinkType = iota
	LinkRecovery
)

func (t LinkType) String() string {
	if t == LinkRecovery {
		return "recovery"
	}

	return "other"
}

// Classify returns LinkRecovery only when the request carries a token and
// type=recovery. It never fails.
func Classify(req Request) LinkType {
	if req.Token != "" && req.Type == TypeRecovery {
		return LinkRecovery
	}

	return LinkOther
}
