package models

import (
	"errors"
	"fmt"
	"time"
)

// ErrGateway wraps every failure of a language model gateway, be it
// transport, authentication, quota or an empty generation.
var ErrGateway = errors.New("gateway error")

// ErrRateLimit is returned when the vendor reports that the token budget is
// spent and won't reset within an acceptable time.
type ErrRateLimit struct {
	ResetAt         time.Time
	TokensRemaining int
	MaxInputTokens  int
}

func NewRateLimitError(resetAt time.Time, maxInputTokens, tokensRemaining int) error {
	return &ErrRateLimit{
		ResetAt:         resetAt,
		TokensRemaining: tokensRemaining,
		MaxInputTokens:  maxInputTokens,
	}
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limit hit, reset at: %v, input tokens used: %v, tokens remaining: %v",
		e.ResetAt.Format(time.RFC3339), e.MaxInputTokens, e.TokensRemaining)
}

// Unwrap so that errors.Is(err, ErrGateway) holds for rate limits as well.
func (e *ErrRateLimit) Unwrap() error {
	return ErrGateway
}
