package router

import (
	"errors"
	"fmt"
)

// EarlyStopMarker is the result returned once the step budget is spent
// without a final answer.
const EarlyStopMarker = "Agent stopped due to iteration limit or time limit."

// StopSequence halts generation before the model writes its own observation.
const StopSequence = "\nObservation"

const (
	DefaultMaxSteps = 4

	EarlyStoppingForce    = "force"
	EarlyStoppingGenerate = "generate"

	emptyObservation = "<EMPTY-RESPONSE>"
)

var ErrParse = errors.New("failed to parse model output")

// ParseError is returned when model output is neither a final answer nor a
// valid action. Output holds the raw text.
type ParseError struct {
	Reason string
	Output string
}

func (p *ParseError) Error() string {
	return fmt.Sprintf("%v: %v", ErrParse, p.Reason)
}

func (p *ParseError) Unwrap() error {
	return ErrParse
}

// Step is one completed action: what the model thought, which tool it picked
// with what input and what came back.
type Step struct {
	Thought     string `json:"thought"`
	Tool        string `json:"tool"`
	Input       string `json:"input"`
	Observation string `json:"observation"`
}

// Tracer receives every completed step.
type Tracer interface {
	Trace(Step)
}

type TracerFunc func(Step)

func (f TracerFunc) Trace(s Step) {
	f(s)
}

// scratch is a step plus the raw model output which produced it, the raw
// output is what's fed back into the prompt.
type scratch struct {
	log  string
	step Step
}
