package store

import (
	"context"
	"sync"
	"time"

	"github.com/alexedwards/argon2id"

	"authgw/internal/modules/auth/domain"
)

type memoryTracker struct {
	mu      sync.RWMutex
	pending map[string]domain.PendingOTC
}

func NewMemoryTracker() OTCTracker {
	return &memoryTracker{pending: make(map[string]domain.PendingOTC)}
}

func (t *memoryTracker) Track(_ context.Context, email string, purpose domain.Purpose) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pending[email] = domain.PendingOTC{Email: email, Purpose: purpose, RequestedAt: time.Now().UTC()}
	return nil
}

func (t *memoryTracker) PurposeOf(_ context.Context, email string) (domain.Purpose, bool, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	p, ok := t.pending[email]
	if !ok {
		return "", false, nil
	}
	return p.Purpose, true, nil
}

func (t *memoryTracker) Clear(_ context.Context, email string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.pending, email)
	return nil
}

type resetToken struct {
	fingerprint string
	expiresAt   time.Time
}

type memoryResetCache struct {
	mu     sync.Mutex
	tokens map[string]resetToken
	now    func() time.Time
}

func NewMemoryResetCache() ResetTokenCache {
	return &memoryResetCache{tokens: make(map[string]resetToken), now: time.Now}
}

// Record fingerprints the code with argon2id; the codes are short enough
// that a fast hash would invite brute forcing if the cache ever leaked.
func (c *memoryResetCache) Record(_ context.Context, email, rawCode string, ttl time.Duration) error {
	hash, err := argon2id.CreateHash(rawCode, argon2id.DefaultParams)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens[email] = resetToken{fingerprint: hash, expiresAt: c.now().Add(ttl)}
	return nil
}

// Consume checks presence, then expiry, then the fingerprint, and removes
// the entry when it matches. Expired entries are evicted eagerly.
func (c *memoryResetCache) Consume(_ context.Context, email, rawCode string) (Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.tokens[email]
	if !ok {
		return TokenMissing, nil
	}
	if c.now().After(t.expiresAt) {
		delete(c.tokens, email)
		return TokenExpired, nil
	}
	match, err := argon2id.ComparePasswordAndHash(rawCode, t.fingerprint)
	if err != nil {
		return TokenMismatched, err
	}
	if !match {
		return TokenMismatched, nil
	}
	delete(c.tokens, email)
	return TokenValid, nil
}

func (c *memoryResetCache) Clear(_ context.Context, email string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.tokens, email)
	return nil
}
