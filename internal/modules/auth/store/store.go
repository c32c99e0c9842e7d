// Package store holds the gateway's shared verification state: which emails
// have a code in flight, and which reset codes the provider has already
// confirmed. Both stores exist as process-memory and Redis variants behind
// the same interfaces; the orchestrator owns whichever instance it is given.
package store

import (
	"context"
	"time"

	"authgw/internal/modules/auth/domain"
)

// Result is the four-way outcome of a reset-token check. The orchestrator
// treats TokenMissing and TokenExpired as triggers for a one-shot
// re-verification against the provider, not as hard failures.
type Result int

const (
	TokenValid Result = iota
	TokenMissing
	TokenMismatched
	TokenExpired
)

// OTCTracker remembers the purpose of the most recent code dispatched to an
// email. Last dispatch wins: only the newest code is valid at the provider.
type OTCTracker interface {
	Track(ctx context.Context, email string, purpose domain.Purpose) error
	PurposeOf(ctx context.Context, email string) (domain.Purpose, bool, error)
	Clear(ctx context.Context, email string) error
}

// ResetTokenCache records that a password-reset code was confirmed by the
// provider, gating the subsequent password update. Only a fingerprint of
// the code is stored, never the code itself. Consume removes the entry
// atomically when it matches, so concurrent resets get exactly one winner.
type ResetTokenCache interface {
	Record(ctx context.Context, email, rawCode string, ttl time.Duration) error
	Consume(ctx context.Context, email, rawCode string) (Result, error)
	Clear(ctx context.Context, email string) error
}
