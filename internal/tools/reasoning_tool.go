package tools

import (
	"context"
	"fmt"
)

// Solver is satisfied by the reasoning responder.
type Solver interface {
	Solve(ctx context.Context, question string) (string, error)
}

// ReasoningTool hands the input to the reasoning responder for a full
// step-by-step explanation.
type ReasoningTool struct {
	solver Solver
}

func NewReasoningTool(s Solver) ReasoningTool {
	return ReasoningTool{solver: s}
}

func (ReasoningTool) Name() string {
	return ReasoningToolName
}

func (ReasoningTool) Description() string {
	return "Use this for algebra, derivatives, calculus, " +
		"equations, and word problems. " +
		"This tool gives full step-by-step explanation."
}

func (r ReasoningTool) Invoke(ctx context.Context, input string) (string, error) {
	out, err := r.solver.Solve(ctx, input)
	if err != nil {
		return "", fmt.Errorf("failed to invoke reasoning tool: %w", err)
	}
	return out, nil
}
