package supabase

import (
	"encoding/json"
	"fmt"
	"strings"
)

type ErrorKind int

const (
	// KindRejected: the provider refused the request (4xx).
	KindRejected ErrorKind = iota
	// KindUnauthorized: the gateway's service credential was refused.
	KindUnauthorized
	// KindUnavailable: network failure, timeout, or provider 5xx.
	KindUnavailable
	// KindUnexpected: anything that fits none of the above.
	KindUnexpected
)

// Error is the uniform failure shape for every provider call.
type Error struct {
	Kind      ErrorKind
	Status    int
	ErrorCode string
	Message   string
}

func (e *Error) Error() string {
	if e.ErrorCode != "" {
		return fmt.Sprintf("supabase: %s (%d %s)", e.Message, e.Status, e.ErrorCode)
	}
	return fmt.Sprintf("supabase: %s (%d)", e.Message, e.Status)
}

// DuplicateUser reports whether a rejected create was refused because the
// email is already registered.
func (e *Error) DuplicateUser() bool {
	if e.Kind != KindRejected {
		return false
	}
	if e.ErrorCode == "email_exists" || e.ErrorCode == "user_already_exists" {
		return true
	}
	return strings.Contains(strings.ToLower(e.Message), "already been registered")
}

// EmailNotConfirmed reports whether the provider refused because the
// account exists but its email was never verified.
// TODO: drop the message-substring fallback once the deployed GoTrue
// version always emits error codes.
func (e *Error) EmailNotConfirmed() bool {
	if e.Kind != KindRejected {
		return false
	}
	if e.ErrorCode == "email_not_confirmed" {
		return true
	}
	return strings.Contains(strings.ToLower(e.Message), "email not confirmed")
}

// classify maps a provider HTTP status onto the error taxonomy. The body is
// parsed for whichever message spelling this provider version uses.
func classify(status int, body []byte) *Error {
	code, msg := parseErrorBody(body)
	e := &Error{Status: status, ErrorCode: code, Message: msg}
	switch {
	case status == 401 || status == 403:
		e.Kind = KindUnauthorized
	case status >= 400 && status < 500:
		e.Kind = KindRejected
	case status >= 500:
		e.Kind = KindUnavailable
	default:
		e.Kind = KindUnexpected
	}
	if e.Message == "" {
		e.Message = fmt.Sprintf("provider returned status %d", status)
	}
	return e
}

func parseErrorBody(body []byte) (code, msg string) {
	var raw struct {
		ErrorCode        string `json:"error_code"`
		Msg              string `json:"msg"`
		Message          string `json:"message"`
		ErrorDescription string `json:"error_description"`
		ErrorField       string `json:"error"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return "", strings.TrimSpace(string(body))
	}
	for _, m := range []string{raw.Msg, raw.Message, raw.ErrorDescription, raw.ErrorField} {
		if m != "" {
			return raw.ErrorCode, m
		}
	}
	return raw.ErrorCode, ""
}
