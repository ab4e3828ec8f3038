package verifier

import "strings"

// Local failure codes. Remote rejections carry the error-codes reported
// by the siteverify service instead.
const (
	CodeVerifyParamsIncorrect = "verify-params-incorrect"
	CodeMissingInputResponse  = "missing-input-response"
	CodeInvalidResponse       = "invalid-recaptcha-response"
	CodeHTTPTransportError    = "http-transport-error"
)

var (
	ErrVerifyParamsIncorrect = &Error{Codes: []string{CodeVerifyParamsIncorrect}}
	ErrMissingInputResponse  = &Error{Codes: []string{CodeMissingInputResponse}}
	ErrInvalidResponse       = &Error{Codes: []string{CodeInvalidResponse}}
	ErrHTTPTransportError    = &Error{Codes: []string{CodeHTTPTransportError}}
)

// Request is one verification attempt. RemoteIP is forwarded to the
// siteverify service for risk scoring and may be left empty.
type Request struct {
	Response string
	RemoteIP string
}

// SiteverifyResponse is the JSON reply of the siteverify endpoint.
type SiteverifyResponse struct {
	Success     bool     `json:"success"`
	ChallengeTS string   `json:"challenge_ts"`
	Hostname    string   `json:"hostname"`
	ErrorCodes  []string `json:"error-codes"`
}

// Error is a failed verification outcome. Codes holds either one of the
// local Code* constants or the error-codes reported by the remote
// service.
type Error struct {
	Codes []string
}

func (e *Error) Error() string {
	if len(e.Codes) == 1 {
		return e.Codes[0]
	}
	return strings.Join(e.Codes, ", ")
}

// Code returns the first failure code. Callers that care about every
// remote code should read Codes directly.
func (e *Error) Code() string {
	if len(e.Codes) == 0 {
		return ""
	}
	return e.Codes[0]
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || len(t.Codes) == 0 || len(t.Codes) != len(e.Codes) {
		return false
	}
	for i := range e.Codes {
		if e.Codes[i] != t.Codes[i] {
			return false
		}
	}
	return true
}
