// Package tools holds the closed set of tools the router may invoke.
package tools

import "context"

// Tool is an action the router may take. Input is the raw action input text
// produced by the model, the returned text becomes the observation.
type Tool interface {
	Name() string
	Description() string
	Invoke(ctx context.Context, input string) (string, error)
}

const (
	ReasoningToolName = "Reasoning Tool"
	MathToolName      = "Math Tool"
)
