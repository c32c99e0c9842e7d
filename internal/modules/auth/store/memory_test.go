package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"authgw/internal/modules/auth/domain"
)

func TestMemoryTrackerLastDispatchWins(t *testing.T) {
	ctx := context.Background()
	tr := NewMemoryTracker()

	if _, ok, _ := tr.PurposeOf(ctx, "a@x.com"); ok {
		t.Fatal("fresh tracker reported a pending request")
	}

	if err := tr.Track(ctx, "a@x.com", domain.PurposeSignup); err != nil {
		t.Fatal(err)
	}
	if err := tr.Track(ctx, "a@x.com", domain.PurposeReset); err != nil {
		t.Fatal(err)
	}

	p, ok, err := tr.PurposeOf(ctx, "a@x.com")
	if err != nil || !ok {
		t.Fatalf("PurposeOf: ok=%v err=%v", ok, err)
	}
	if p != domain.PurposeReset {
		t.Fatalf("purpose = %q, want the most recent dispatch %q", p, domain.PurposeReset)
	}

	if err := tr.Clear(ctx, "a@x.com"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := tr.PurposeOf(ctx, "a@x.com"); ok {
		t.Fatal("entry survived Clear")
	}
	// clearing again is a no-op
	if err := tr.Clear(ctx, "a@x.com"); err != nil {
		t.Fatal(err)
	}
}

func TestMemoryTrackerConcurrentOverwrites(t *testing.T) {
	ctx := context.Background()
	tr := NewMemoryTracker()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p := domain.PurposeSignup
			if i%2 == 0 {
				p = domain.PurposeReset
			}
			_ = tr.Track(ctx, "race@x.com", p)
		}(i)
	}
	wg.Wait()

	if _, ok, err := tr.PurposeOf(ctx, "race@x.com"); err != nil || !ok {
		t.Fatalf("entry lost after concurrent overwrites: ok=%v err=%v", ok, err)
	}
}

func TestMemoryResetCacheOutcomes(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryResetCache().(*memoryResetCache)

	if res, _ := c.Consume(ctx, "a@x.com", "123456"); res != TokenMissing {
		t.Fatalf("empty cache: got %v, want TokenMissing", res)
	}

	if err := c.Record(ctx, "a@x.com", "123456", 10*time.Minute); err != nil {
		t.Fatal(err)
	}

	if res, _ := c.Consume(ctx, "a@x.com", "654321"); res != TokenMismatched {
		t.Fatalf("wrong code: got %v, want TokenMismatched", res)
	}
	// a mismatch must not consume the entry
	if res, err := c.Consume(ctx, "a@x.com", "123456"); err != nil || res != TokenValid {
		t.Fatalf("right code after mismatch: got %v err=%v, want TokenValid", res, err)
	}
	// valid consumption is single-use
	if res, _ := c.Consume(ctx, "a@x.com", "123456"); res != TokenMissing {
		t.Fatalf("second consume: got %v, want TokenMissing", res)
	}
}

func TestMemoryResetCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryResetCache().(*memoryResetCache)

	base := time.Now()
	c.now = func() time.Time { return base }
	if err := c.Record(ctx, "a@x.com", "123456", 10*time.Minute); err != nil {
		t.Fatal(err)
	}

	// expiry is checked before the fingerprint, even for the right code
	c.now = func() time.Time { return base.Add(11 * time.Minute) }
	if res, _ := c.Consume(ctx, "a@x.com", "123456"); res != TokenExpired {
		t.Fatalf("past the window: got %v, want TokenExpired", res)
	}
	// the expired entry was evicted eagerly
	if res, _ := c.Consume(ctx, "a@x.com", "123456"); res != TokenMissing {
		t.Fatalf("after eviction: got %v, want TokenMissing", res)
	}
}

func TestMemoryResetCacheConcurrentConsume(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryResetCache()
	if err := c.Record(ctx, "a@x.com", "123456", 10*time.Minute); err != nil {
		t.Fatal(err)
	}

	results := make(chan Result, 8)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, _ := c.Consume(ctx, "a@x.com", "123456")
			results <- res
		}()
	}
	wg.Wait()
	close(results)

	valid := 0
	for res := range results {
		if res == TokenValid {
			valid++
		}
	}
	if valid != 1 {
		t.Fatalf("%d consumers won, want exactly 1", valid)
	}
}

func TestMemoryResetCacheClear(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryResetCache()
	if err := c.Record(ctx, "a@x.com", "123456", 10*time.Minute); err != nil {
		t.Fatal(err)
	}
	if err := c.Clear(ctx, "a@x.com"); err != nil {
		t.Fatal(err)
	}
	if res, _ := c.Consume(ctx, "a@x.com", "123456"); res != TokenMissing {
		t.Fatalf("after Clear: got %v, want TokenMissing", res)
	}
}
