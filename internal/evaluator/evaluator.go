// Package evaluator runs the numeric snippets passed to the Math Tool.
package evaluator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/baalimago/go_away_boilerplate/pkg/misc"
)

var ErrEvaluation = errors.New("evaluation failed")

// Evaluator runs source and returns whatever it printed.
type Evaluator interface {
	Evaluate(ctx context.Context, source string) (string, error)
}

const (
	BackendYaegi = "yaegi"
	BackendExpr  = "expr"
)

// New evaluator by backend name. Empty name selects yaegi.
func New(backend string) (Evaluator, error) {
	switch backend {
	case "", BackendYaegi:
		return NewYaegi(), nil
	case BackendExpr:
		return NewExpr(), nil
	default:
		return nil, fmt.Errorf("unknown evaluator: '%v', valid options are: [%v, %v]", backend, BackendYaegi, BackendExpr)
	}
}

// barePrint matches print( calls which aren't selectors like fmt.Print(
var barePrint = regexp.MustCompile(`(^|[^.\w])print\(`)

func debugEnabled() bool {
	return misc.Truthy(os.Getenv("DEBUG")) || misc.Truthy(os.Getenv("DEBUG_EVALUATOR"))
}

func evalErr(msg string, err error) error {
	if err == nil {
		return fmt.Errorf("%w: %v", ErrEvaluation, msg)
	}
	return fmt.Errorf("%w: %v: %w", ErrEvaluation, msg, err)
}
