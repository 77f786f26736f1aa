package mock

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/baalimago/solvr/internal/models"
)

// ErrScriptExhausted is returned by Scripted once every response has been used.
var ErrScriptExhausted = errors.New("script exhausted")

// Echo is the gateway behind the 'test' model. It answers with the last
// question of the prompt as the final answer, so the whole chain can run
// without any vendor.
type Echo struct{}

func (Echo) Complete(ctx context.Context, req models.CompletionRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %w", models.ErrGateway, err)
	}
	return "Final Answer: " + models.LastQuestion(req.Prompt), nil
}

// Response is one scripted outcome, either text or an error.
type Response struct {
	Text string
	Err  error
}

// Scripted returns its responses in order and records every request. When
// Repeat is set the last response is returned forever instead of
// ErrScriptExhausted.
type Scripted struct {
	Responses []Response
	Repeat    bool

	mu       sync.Mutex
	requests []models.CompletionRequest
}

// NewScripted is a shorthand for a script made out of texts only.
func NewScripted(texts ...string) *Scripted {
	s := &Scripted{}
	for _, t := range texts {
		s.Responses = append(s.Responses, Response{Text: t})
	}
	return s
}

func (s *Scripted) Complete(ctx context.Context, req models.CompletionRequest) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, req)
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %w", models.ErrGateway, err)
	}
	idx := len(s.requests) - 1
	if idx >= len(s.Responses) {
		if !s.Repeat || len(s.Responses) == 0 {
			return "", fmt.Errorf("%w: %w", models.ErrGateway, ErrScriptExhausted)
		}
		idx = len(s.Responses) - 1
	}
	r := s.Responses[idx]
	if r.Err != nil {
		return "", fmt.Errorf("%w: %w", models.ErrGateway, r.Err)
	}
	return r.Text, nil
}

// Calls returns the amount of requests made so far.
func (s *Scripted) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

// Requests returns a copy of the requests made so far.
func (s *Scripted) Requests() []models.CompletionRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	cpy := make([]models.CompletionRequest, len(s.requests))
	copy(cpy, s.requests)
	return cpy
}
