// Package reasoning produces step-by-step solutions with a single model call.
package reasoning

import (
	"context"
	"fmt"
	"os"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/baalimago/solvr/internal/models"
	"github.com/baalimago/solvr/internal/prompts"
)

type Responder struct {
	completer models.Completer
	prompts   prompts.Catalogue
	debug     bool
}

func New(c models.Completer, p prompts.Catalogue) *Responder {
	return &Responder{
		completer: c,
		prompts:   p,
		debug:     misc.Truthy(os.Getenv("DEBUG")) || misc.Truthy(os.Getenv("DEBUG_REASONING")),
	}
}

// Solve the question with exactly one completion. The output is returned as
// generated, the Final Answer line is not checked for.
func (r *Responder) Solve(ctx context.Context, question string) (string, error) {
	prompt, err := r.prompts.RenderReasoning(question)
	if err != nil {
		return "", fmt.Errorf("failed to render reasoning prompt: %w", err)
	}
	if r.debug {
		ancli.PrintOK(fmt.Sprintf("reasoning prompt:\n%v\n", prompt))
	}
	out, err := r.completer.Complete(ctx, models.CompletionRequest{Prompt: prompt})
	if err != nil {
		return "", fmt.Errorf("failed to solve with reasoning: %w", err)
	}
	if r.debug {
		ancli.PrintOK(fmt.Sprintf("reasoning output:\n%v\n", out))
	}
	return out, nil
}
