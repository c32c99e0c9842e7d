package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"authgw/internal/modules/auth/domain"
)

const (
	otcKeyPrefix   = "otc"
	resetKeyPrefix = "vrt"
)

var errRedisUnavailable = errors.New("verification redis unavailable")

type redisTracker struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisTracker keys pending requests by email with a TTL equal to the
// OTC validity window, so stale entries age out on their own.
func NewRedisTracker(rdb *redis.Client, ttl time.Duration) OTCTracker {
	return &redisTracker{rdb: rdb, ttl: ttl}
}

func (t *redisTracker) key(email string) string { return otcKeyPrefix + ":" + email }

func (t *redisTracker) Track(ctx context.Context, email string, purpose domain.Purpose) error {
	if err := t.rdb.Set(ctx, t.key(email), string(purpose), t.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", errRedisUnavailable, err)
	}
	return nil
}

func (t *redisTracker) PurposeOf(ctx context.Context, email string) (domain.Purpose, bool, error) {
	val, err := t.rdb.Get(ctx, t.key(email)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: %v", errRedisUnavailable, err)
	}
	p := domain.Purpose(val)
	if !p.Valid() {
		return "", false, nil
	}
	return p, true, nil
}

func (t *redisTracker) Clear(ctx context.Context, email string) error {
	if err := t.rdb.Del(ctx, t.key(email)).Err(); err != nil {
		return fmt.Errorf("%w: %v", errRedisUnavailable, err)
	}
	return nil
}

// consumeScript deletes the token only when the stored fingerprint matches,
// so two concurrent consumers cannot both win.
var consumeScript = redis.NewScript(`
local v = redis.call('GET', KEYS[1])
if not v then
  return 'missing'
end
if v ~= ARGV[1] then
  return 'mismatch'
end
redis.call('DEL', KEYS[1])
return 'ok'
`)

type redisResetCache struct {
	rdb *redis.Client
}

// NewRedisResetCache stores a sha256 fingerprint under a TTL; Redis expiry
// stands in for the expiresAt field, so an expired token reads as missing,
// which triggers the same re-verification fallback upstream.
func NewRedisResetCache(rdb *redis.Client) ResetTokenCache {
	return &redisResetCache{rdb: rdb}
}

func (c *redisResetCache) key(email string) string { return resetKeyPrefix + ":" + email }

func fingerprint(rawCode string) string {
	sum := sha256.Sum256([]byte(rawCode))
	return hex.EncodeToString(sum[:])
}

func (c *redisResetCache) Record(ctx context.Context, email, rawCode string, ttl time.Duration) error {
	if err := c.rdb.Set(ctx, c.key(email), fingerprint(rawCode), ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", errRedisUnavailable, err)
	}
	return nil
}

func (c *redisResetCache) Consume(ctx context.Context, email, rawCode string) (Result, error) {
	res, err := consumeScript.Run(ctx, c.rdb, []string{c.key(email)}, fingerprint(rawCode)).Text()
	if err != nil {
		return TokenMissing, fmt.Errorf("%w: %v", errRedisUnavailable, err)
	}
	switch res {
	case "ok":
		return TokenValid, nil
	case "mismatch":
		return TokenMismatched, nil
	default:
		return TokenMissing, nil
	}
}

func (c *redisResetCache) Clear(ctx context.Context, email string) error {
	if err := c.rdb.Del(ctx, c.key(email)).Err(); err != nil {
		return fmt.Errorf("%w: %v", errRedisUnavailable, err)
	}
	return nil
}
