package message

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEnvelopeBuild is returned when a request cannot be assembled
	ErrEnvelopeBuild = errors.New("message: cannot build envelope")
	// ErrMalformedResponse is returned for responses that are not a gateway envelope
	ErrMalformedResponse = errors.New("message: malformed response")
	// ErrCorrelation is returned when results cannot be matched to operations
	ErrCorrelation = errors.New("message: response does not correlate with request")
)

// ControlFailure is an envelope-level rejection. No result in the response
// can be trusted.
type ControlFailure struct {
	Status    string
	ControlID string
	Errors    []ErrorDetail
}

func (e *ControlFailure) Error() string {
	return "message: control failure: status " + quoteStatus(e.Status) + describe(e.Errors)
}

// AuthenticationFailure reports a rejected or expired session or login.
type AuthenticationFailure struct {
	Status string
	Errors []ErrorDetail
}

func (e *AuthenticationFailure) Error() string {
	return "message: authentication failure: status " + quoteStatus(e.Status) + describe(e.Errors)
}

// OperationFailure is a per-operation business failure. It is returned by
// [Result.Err] and never raised by the parser.
type OperationFailure struct {
	Status    string
	Function  string
	ControlID string
	Errors    []ErrorDetail
}

func (e *OperationFailure) Error() string {
	return fmt.Sprintf("message: %s %s (control id %q)%s", e.Function, quoteStatus(e.Status), e.ControlID, describe(e.Errors))
}

func quoteStatus(s string) string {
	if s == "" {
		return "<missing>"
	}
	return fmt.Sprintf("%q", s)
}

func describe(details []ErrorDetail) string {
	if len(details) == 0 {
		return ""
	}
	parts := make([]string, 0, len(details))
	for _, d := range details {
		parts = append(parts, d.String())
	}
	return ": " + strings.Join(parts, "; ")
}

func (d ErrorDetail) String() string {
	var b strings.Builder
	if d.ErrorNo != "" {
		b.WriteString(d.ErrorNo)
	}
	for _, s := range []string{d.Description, d.Description2, d.Correction} {
		if s == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString(s)
	}
	return b.String()
}
