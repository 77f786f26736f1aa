package generic

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/baalimago/solvr/internal/models"
)

const (
	// Groq and OpenAI both report the token budget with these headers
	DefaultRemainingHeader = "x-ratelimit-remaining-tokens"
	DefaultResetHeader     = "x-ratelimit-reset-tokens"

	// lowWaterMark is the amount of remaining tokens under which the next
	// request is held back until the budget resets. A single solver prompt is
	// a few hundred tokens, so anything below this is likely to bounce.
	lowWaterMark = 512
)

// RateLimiter holds requests back once the vendor reports that the token budget
// is spent. The zero value is a no-op limiter.
type RateLimiter struct {
	remainingHeader string
	resetHeader     string

	remainingTokens int
	resetAt         time.Time

	// MaxWait is the longest pause accepted before giving up with
	// models.ErrRateLimit. Zero means wait for however long is needed.
	MaxWait time.Duration

	debug bool
}

// NewRateLimiter creates a limiter reading the provided header names.
func NewRateLimiter(remainingHeader, resetHeader string) RateLimiter {
	return RateLimiter{
		remainingHeader: strings.ToLower(remainingHeader),
		resetHeader:     strings.ToLower(resetHeader),
		remainingTokens: -1,
		debug:           misc.Truthy(os.Getenv("DEBUG")) || misc.Truthy(os.Getenv("DEBUG_RATE_LIMIT")),
	}
}

// UpdateFromHeaders stores the budget reported in h. Responses without the
// headers leave the limiter unrestricted.
func (r *RateLimiter) UpdateFromHeaders(h http.Header) error {
	if r.remainingHeader == "" || r.resetHeader == "" {
		return nil
	}
	r.remainingTokens = -1
	r.resetAt = time.Time{}

	remStr := h.Get(r.remainingHeader)
	if remStr == "" {
		return fmt.Errorf("missing header '%s'", r.remainingHeader)
	}
	rem, err := strconv.Atoi(remStr)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", r.remainingHeader, err)
	}

	resetAt, err := parseReset(h.Get(r.resetHeader))
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", r.resetHeader, err)
	}
	r.remainingTokens = rem
	r.resetAt = resetAt
	if r.debug {
		ancli.PrintOK(fmt.Sprintf("rate limit: remaining: %v, reset at: %v\n", rem, resetAt.Format(time.TimeOnly)))
	}
	return nil
}

// parseReset accepts durations ("7.66s", "1m2s"), unix timestamps and
// fractional seconds
func parseReset(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty value")
	}
	if dur, err := time.ParseDuration(s); err == nil {
		return time.Now().Add(dur), nil
	}
	if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 1_000_000_000 {
		return time.Unix(ts, 0), nil
	}
	if sec, err := strconv.ParseFloat(s, 64); err == nil {
		return time.Now().Add(time.Duration(sec * float64(time.Second))), nil
	}
	return time.Time{}, fmt.Errorf("unrecognized format: '%v'", s)
}

// WaitIfNeeded pauses until the reported reset when the budget is below the
// low water mark. Returns models.ErrRateLimit if the pause would exceed
// MaxWait, and the context error if ctx ends first.
func (r *RateLimiter) WaitIfNeeded(ctx context.Context) error {
	if r.remainingHeader == "" || r.remainingTokens < 0 || r.remainingTokens > lowWaterMark {
		return nil
	}
	waitDuration := time.Until(r.resetAt)
	if waitDuration <= 0 {
		return nil
	}
	if r.MaxWait > 0 && waitDuration > r.MaxWait {
		return models.NewRateLimitError(r.resetAt, lowWaterMark, r.remainingTokens)
	}
	ancli.PrintWarn(fmt.Sprintf("rate limit reached, waiting %v\n", waitDuration.Round(time.Millisecond)))
	timer := time.NewTimer(waitDuration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
