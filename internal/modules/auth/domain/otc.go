package domain

import "time"

// Purpose tags which flow a dispatched one-time code belongs to. A reset
// code can never complete signup or vice versa.
type Purpose string

const (
	PurposeSignup Purpose = "signup"
	PurposeReset  Purpose = "reset"
)

// OTPType maps the purpose onto the provider's otp "type" field. The
// mapping is closed; any other purpose is a programming error.
func (p Purpose) OTPType() string {
	switch p {
	case PurposeSignup:
		return "signup"
	case PurposeReset:
		return "recovery"
	}
	panic("unknown OTC purpose: " + string(p))
}

func (p Purpose) Valid() bool {
	return p == PurposeSignup || p == PurposeReset
}

// PendingOTC is the tracker entry for an email with an in-flight code.
type PendingOTC struct {
	Email       string
	Purpose     Purpose
	RequestedAt time.Time
}
