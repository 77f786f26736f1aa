package generic

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/baalimago/solvr/internal/models"
)

func TestRateLimiter_DurationHeaders(t *testing.T) {
	rl := NewRateLimiter("remaining", "reset")
	h := http.Header{}
	h.Set("remaining", "10")
	h.Set("reset", "2s")
	if err := rl.UpdateFromHeaders(h); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rl.remainingTokens != 10 {
		t.Errorf("expected remaining 10, got %v", rl.remainingTokens)
	}
	if d := time.Until(rl.resetAt); d < time.Second || d > 3*time.Second {
		t.Errorf("expected ~2s reset, got %v", d)
	}
}

func TestRateLimiter_UnixHeaders(t *testing.T) {
	rl := NewRateLimiter("remaining", "reset")
	h := http.Header{}
	h.Set("remaining", "5")
	ts := time.Now().Add(3 * time.Second).Unix()
	h.Set("reset", fmt.Sprintf("%d", ts))
	if err := rl.UpdateFromHeaders(h); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d := time.Until(rl.resetAt); d < 2*time.Second || d > 4*time.Second {
		t.Errorf("expected ~3s reset, got %v", d)
	}
}

func TestRateLimiter_Missing(t *testing.T) {
	rl := NewRateLimiter("remaining", "reset")
	h := http.Header{}
	h.Set("remaining", "1")
	if err := rl.UpdateFromHeaders(h); err == nil {
		t.Fatal("expected error")
	}
	// A failed update must not leave the limiter blocking
	if err := rl.WaitIfNeeded(context.Background()); err != nil {
		t.Fatalf("expected no wait, got: %v", err)
	}
}

func TestRateLimiter_ZeroValueIsNoop(t *testing.T) {
	var rl RateLimiter
	if err := rl.UpdateFromHeaders(http.Header{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := rl.WaitIfNeeded(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRateLimiter_MaxWaitExceeded(t *testing.T) {
	rl := NewRateLimiter("remaining", "reset")
	rl.MaxWait = time.Second
	h := http.Header{}
	h.Set("remaining", "0")
	h.Set("reset", "1m")
	if err := rl.UpdateFromHeaders(h); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := rl.WaitIfNeeded(context.Background())
	var rlErr *models.ErrRateLimit
	if !errors.As(err, &rlErr) {
		t.Fatalf("expected ErrRateLimit, got: %v", err)
	}
}

func TestRateLimiter_WaitReturnsOnCancel(t *testing.T) {
	rl := NewRateLimiter("remaining", "reset")
	h := http.Header{}
	h.Set("remaining", "0")
	h.Set("reset", "1m")
	if err := rl.UpdateFromHeaders(h); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	start := time.Now()
	err := rl.WaitIfNeeded(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got: %v", err)
	}
	if time.Since(start) > time.Second {
		t.Fatal("wait did not return on context cancel")
	}
}
