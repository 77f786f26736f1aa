package models

import (
	"context"
	"strings"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one displayed entry of a conversation. Treat as immutable once
// created.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest is a rendered prompt plus the per-call generation
// parameters. Everything else (temperature, token cap) is fixed when the
// Completer is constructed.
type CompletionRequest struct {
	Prompt string
	// Stop sequences at which generation should halt. Vendors which don't
	// support stop sequences may ignore them, callers have to cope.
	Stop []string
}

// Completer is the language model gateway: prompt text in, generated text out.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// CompleterFunc allows plain functions to act as Completers.
type CompleterFunc func(ctx context.Context, req CompletionRequest) (string, error)

func (f CompleterFunc) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	return f(ctx, req)
}

// LastQuestion returns the content of the last line starting with 'Question:'
// in prompt, or the whole prompt if there is none.
func LastQuestion(prompt string) string {
	lines := strings.Split(prompt, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		l := strings.TrimSpace(lines[i])
		if after, ok := strings.CutPrefix(l, "Question:"); ok {
			return strings.TrimSpace(after)
		}
	}
	return prompt
}
