// Package router runs the bounded reason-and-act loop which decides, step by
// step, which tool to use until the model produces a final answer.
package router

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/debug"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/baalimago/solvr/internal/models"
	"github.com/baalimago/solvr/internal/prompts"
	"github.com/baalimago/solvr/internal/tools"
)

type Router struct {
	// MaxSteps is the amount of model round-trips allowed per question.
	MaxSteps int
	// HandleParsingErrors feeds malformed output back to the model as an
	// observation instead of failing.
	HandleParsingErrors bool
	// EarlyStopping is either "force" or "generate".
	EarlyStopping string

	completer models.Completer
	registry  *tools.Registry
	prompts   prompts.Catalogue
	tracer    Tracer
	debug     bool
}

type Option func(*Router)

func WithMaxSteps(n int) Option {
	return func(r *Router) {
		if n > 0 {
			r.MaxSteps = n
		}
	}
}

func WithHandleParsingErrors(b bool) Option {
	return func(r *Router) {
		r.HandleParsingErrors = b
	}
}

func WithEarlyStopping(method string) Option {
	return func(r *Router) {
		if method != "" {
			r.EarlyStopping = method
		}
	}
}

func WithTracer(t Tracer) Option {
	return func(r *Router) {
		r.tracer = t
	}
}

func New(c models.Completer, reg *tools.Registry, p prompts.Catalogue, opts ...Option) *Router {
	r := &Router{
		MaxSteps:      DefaultMaxSteps,
		EarlyStopping: EarlyStoppingForce,
		completer:     c,
		registry:      reg,
		prompts:       p,
		debug:         misc.Truthy(os.Getenv("DEBUG")) || misc.Truthy(os.Getenv("DEBUG_ROUTER")),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Route the question through at most MaxSteps model round-trips. Running out
// of steps is not an error, EarlyStopMarker is returned instead.
func (r *Router) Route(ctx context.Context, question string) (string, error) {
	var pad []scratch
	for step := 0; step < r.MaxSteps; step++ {
		out, err := r.complete(ctx, question, pad, "")
		if err != nil {
			return "", fmt.Errorf("failed to complete step %v: %w", step+1, err)
		}
		p, err := r.parseStep(out)
		if err != nil {
			var pErr *ParseError
			if !r.HandleParsingErrors || !errors.As(err, &pErr) {
				return "", err
			}
			if r.debug {
				ancli.Warnf("handling parse error: %v\n", pErr.Reason)
			}
			pad = append(pad, r.record(out, Step{
				Thought:     strings.TrimSpace(out),
				Tool:        "_Exception",
				Input:       out,
				Observation: pErr.Reason,
			}))
			continue
		}
		if p.final {
			if r.debug {
				ancli.Okf("final answer after %v step(s): %v\n", step+1, p.answer)
			}
			return p.answer, nil
		}
		pad = append(pad, r.record(out, r.invoke(ctx, p)))
	}
	if r.EarlyStopping == EarlyStoppingGenerate {
		return r.generateFinal(ctx, question, pad)
	}
	if r.debug {
		ancli.Noticef("step budget of %v exhausted\n", r.MaxSteps)
	}
	return EarlyStopMarker, nil
}

// generateFinal makes one last call asking for the final answer given the
// steps taken so far.
func (r *Router) generateFinal(ctx context.Context, question string, pad []scratch) (string, error) {
	out, err := r.complete(ctx, question, pad, r.prompts.GenerateFinal)
	if err != nil {
		return "", fmt.Errorf("failed to generate final answer: %w", err)
	}
	p, err := parse(out)
	if err != nil || !p.final {
		return EarlyStopMarker, nil
	}
	return p.answer, nil
}

func (r *Router) parseStep(out string) (parsed, error) {
	p, err := parse(out)
	if err != nil {
		return parsed{}, err
	}
	if !p.final {
		if _, ok := r.registry.Get(p.tool); !ok {
			return parsed{}, unknownToolError(p.tool, r.registry.Names(), out)
		}
	}
	return p, nil
}

// invoke the chosen tool. Tool failures become the observation.
func (r *Router) invoke(ctx context.Context, p parsed) Step {
	t, _ := r.registry.Get(p.tool)
	obs, err := t.Invoke(ctx, p.input)
	if err != nil {
		obs = err.Error()
	}
	if strings.TrimSpace(obs) == "" {
		obs = emptyObservation
	}
	return Step{
		Thought:     p.thought,
		Tool:        p.tool,
		Input:       p.input,
		Observation: obs,
	}
}

func (r *Router) record(out string, s Step) scratch {
	if r.debug {
		ancli.PrintOK(fmt.Sprintf("step: %v\n", debug.IndentedJsonFmt(s)))
	}
	if r.tracer != nil {
		r.tracer.Trace(s)
	}
	return scratch{log: out, step: s}
}

func (r *Router) complete(ctx context.Context, question string, pad []scratch, suffix string) (string, error) {
	prompt, err := r.prompts.RenderReact(prompts.ReactData{
		Tools:      r.registry.Describe(),
		ToolNames:  strings.Join(r.registry.Names(), ", "),
		Question:   question,
		Scratchpad: scratchpad(pad) + suffix,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render prompt: %w", err)
	}
	out, err := r.completer.Complete(ctx, models.CompletionRequest{
		Prompt: prompt,
		Stop:   []string{StopSequence},
	})
	if err != nil {
		return "", err
	}
	if r.debug {
		ancli.PrintOK(fmt.Sprintf("model output:\n%v\n", out))
	}
	return cutObservation(out), nil
}

// scratchpad renders the previous steps the way the model is asked to write
// them, so it may continue from the next thought.
func scratchpad(pad []scratch) string {
	var sb strings.Builder
	for _, s := range pad {
		sb.WriteString(s.log)
		sb.WriteString("\nObservation: ")
		sb.WriteString(s.step.Observation)
		sb.WriteString("\nThought: ")
	}
	return sb.String()
}
