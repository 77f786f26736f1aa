// Package fallback answers a question through the router, falling back to
// plain reasoning whenever routing doesn't produce a usable answer.
package fallback

import (
	"context"
	"fmt"
	"strings"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/solvr/internal/models"
)

// earlyStopSubstring marks router output which gave up. This is a plain
// substring check, so an answer legitimately containing the phrase is also
// discarded.
const earlyStopSubstring = "Agent stopped"

const errorPrefix = "⚠️ Error: "

type Router interface {
	Route(ctx context.Context, question string) (string, error)
}

type Solver interface {
	Solve(ctx context.Context, question string) (string, error)
}

// Appender receives the assistant turn produced for each question.
type Appender interface {
	Append(models.Turn)
}

type Controller struct {
	router Router
	solver Solver
}

func New(r Router, s Solver) *Controller {
	return &Controller{router: r, solver: s}
}

// Answer the question and append exactly one assistant turn to the
// transcript. Never fails, errors are rendered into the answer.
func (c *Controller) Answer(ctx context.Context, question string, transcript Appender) string {
	answer := c.answer(ctx, question)
	transcript.Append(models.Turn{Role: models.RoleAssistant, Content: answer})
	return answer
}

func (c *Controller) answer(ctx context.Context, question string) (ret string) {
	defer func() {
		if r := recover(); r != nil {
			ancli.PrintErr(fmt.Sprintf("recovered from panic while answering: %v\n", r))
			ret = fmt.Sprintf("%v%v", errorPrefix, r)
		}
	}()

	out, err := c.route(ctx, question)
	switch {
	case err != nil:
		ancli.PrintWarn(fmt.Sprintf("routing failed, falling back to reasoning: %v\n", err))
	case strings.TrimSpace(out) == "":
		ancli.PrintWarn("routing produced an empty answer, falling back to reasoning\n")
	case strings.Contains(out, earlyStopSubstring):
		ancli.PrintWarn("routing stopped early, falling back to reasoning\n")
	default:
		return out
	}

	out, err = c.solver.Solve(ctx, question)
	if err != nil {
		ancli.PrintErr(fmt.Sprintf("fallback reasoning failed: %v\n", err))
		return errorPrefix + err.Error()
	}
	return out
}

// route recovers a panicking router into an error, so it falls back like any
// other routing failure.
func (c *Controller) route(ctx context.Context, question string) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = "", fmt.Errorf("router panicked: %v", r)
		}
	}()
	return c.router.Route(ctx, question)
}
