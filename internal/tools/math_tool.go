package tools

import (
	"context"
	"fmt"

	"github.com/baalimago/solvr/internal/evaluator"
)

// MathTool runs numeric snippets through an evaluator.
type MathTool struct {
	eval evaluator.Evaluator
}

func NewMathTool(e evaluator.Evaluator) MathTool {
	return MathTool{eval: e}
}

func (MathTool) Name() string {
	return MathToolName
}

func (m MathTool) Description() string {
	if _, ok := m.eval.(*evaluator.Expr); ok {
		return "Use ONLY for pure numeric calculations like 45*12 or 100/4. " +
			"Input must be a single arithmetic expression. " +
			"Example: print(2+2)"
	}
	return "Use ONLY for pure numeric calculations like 45*12 or 100/4. " +
		"Input must be valid Go statements, fmt and math are already imported. " +
		"Always use print(). Example: print(2+2)"
}

func (m MathTool) Invoke(ctx context.Context, input string) (string, error) {
	out, err := m.eval.Evaluate(ctx, input)
	if err != nil {
		return "", fmt.Errorf("failed to invoke math tool: %w", err)
	}
	return out, nil
}
