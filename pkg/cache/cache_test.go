package cache

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

var errCorrupt = errors.New("corrupt entry")

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestDisabledCacheReason(t *testing.T) {
	c := NewDisabledCache("redis unreachable")
	if c.Reason() != "redis unreachable" {
		t.Errorf("Reason() = %q", c.Reason())
	}
	if got := NewNullCache().(*NullCache).Reason(); got != "disabled" {
		t.Errorf("default Reason() = %q, want disabled", got)
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	k1 := k.ArrangeKey("hash123", ArrangeKeyOpts{Step: "declutter", MinDistance: 1e-6})
	k2 := k.ArrangeKey("hash123", ArrangeKeyOpts{Step: "declutter", MinDistance: 1e-3})
	if k1 == k2 {
		t.Error("Different MinDistance should produce different keys")
	}

	k3 := k.ArrangeKey("hash456", ArrangeKeyOpts{Step: "declutter", MinDistance: 1e-6})
	if k1 == k3 {
		t.Error("Different graph hashes should produce different keys")
	}

	k4 := k.ArrangeKey("hash123", ArrangeKeyOpts{Step: "declutter", MinDistance: 1e-6, Subset: HashIDs([]int{1, 2})})
	if k1 == k4 {
		t.Error("A vertex subset should produce a different key")
	}

	if !strings.HasPrefix(k1, "arrange:declutter:") {
		t.Errorf("ArrangeKey unexpected prefix: %s", k1)
	}
	if k1 != k.ArrangeKey("hash123", ArrangeKeyOpts{Step: "declutter", MinDistance: 1e-6}) {
		t.Error("ArrangeKey should be deterministic")
	}
}

func TestHashIDs(t *testing.T) {
	if HashIDs(nil) != "" {
		t.Error("empty set should hash to empty string")
	}
	if HashIDs([]int{3, 1, 2}) != HashIDs([]int{1, 2, 3}) {
		t.Error("HashIDs should not depend on order")
	}
	if HashIDs([]int{1, 23}) == HashIDs([]int{12, 3}) {
		t.Error("ids must be delimited")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "project:atlas:")

	key := scoped.ArrangeKey("hash123", ArrangeKeyOpts{Step: "declutter"})
	want := "project:atlas:" + inner.ArrangeKey("hash123", ArrangeKeyOpts{Step: "declutter"})
	if key != want {
		t.Errorf("ScopedKeyer ArrangeKey = %s, want %s", key, want)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should use DefaultKeyer when inner is nil
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.ArrangeKey("h", ArrangeKeyOpts{Step: "declutter"})
	if !strings.HasPrefix(key, "prefix:arrange:declutter:") {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}

func TestRetryableError(t *testing.T) {
	// Retryable(nil) returns nil
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	// Non-nil error is wrapped
	err := Retryable(ErrUnavailable)
	if err == nil {
		t.Fatal("Retryable should return wrapped error")
	}
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}

	// Error message is preserved
	if err.Error() != ErrUnavailable.Error() {
		t.Errorf("Error message should be preserved: %s", err.Error())
	}

	// Non-wrapped errors are not retryable
	if IsRetryable(errCorrupt) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()
	fastRetries(t)

	// Success on first try
	calls := 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Errorf("Should succeed: %v", err)
	}
	if calls != 1 {
		t.Errorf("Should call once: %d", calls)
	}

	// Non-retryable error stops immediately
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return errCorrupt
	})
	if err != errCorrupt {
		t.Errorf("Should return non-retryable error: %v", err)
	}
	if calls != 1 {
		t.Errorf("Should not retry non-retryable error: %d", calls)
	}

	// Retryable error triggers retries
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(ErrUnavailable)
		}
		return nil
	})
	if err != nil {
		t.Errorf("Should succeed after retry: %v", err)
	}
	if calls != 2 {
		t.Errorf("Should retry once: %d", calls)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(ErrUnavailable)
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}

func TestRetryWithBackoffGivesUp(t *testing.T) {
	fastRetries(t)

	calls := 0
	err := RetryWithBackoff(context.Background(), func() error {
		calls++
		return Retryable(ErrUnavailable)
	})
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("Should return last error: %v", err)
	}
	if calls != 3 {
		t.Errorf("Should try 3 times: %d", calls)
	}
}

func fastRetries(t *testing.T) {
	t.Helper()
	old := retryDelay
	retryDelay = time.Millisecond
	t.Cleanup(func() { retryDelay = old })
}
