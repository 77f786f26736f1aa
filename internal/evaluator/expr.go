package evaluator

import (
	"context"
	"fmt"
	"strings"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/expr-lang/expr"
)

// Expr evaluates a single pure expression, such as '45*12' or 'print(100/4)'.
type Expr struct {
	debug bool
}

func NewExpr() *Expr {
	return &Expr{debug: debugEnabled()}
}

func (e *Expr) Evaluate(ctx context.Context, source string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", evalErr("context done", err)
	}
	src := unwrapPrint(strings.TrimSpace(source))
	if src == "" {
		return "", evalErr("empty source", nil)
	}
	if e.debug {
		ancli.PrintOK(fmt.Sprintf("expr evaluating: %v\n", src))
	}
	program, err := expr.Compile(src)
	if err != nil {
		return "", evalErr("expression error", err)
	}
	res, err := expr.Run(program, nil)
	if err != nil {
		return "", evalErr("run error", err)
	}
	if res == nil {
		return "", evalErr("expression produced no value", nil)
	}
	return fmt.Sprintf("%v\n", res), nil
}

// unwrapPrint strips one wrapping print(...) call, if the parenthesis
// opened by print is the one closing the source.
func unwrapPrint(s string) string {
	inner, ok := strings.CutPrefix(s, "print(")
	if !ok || !strings.HasSuffix(inner, ")") {
		return s
	}
	inner = inner[:len(inner)-1]
	depth := 0
	for _, r := range inner {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		}
		if depth < 0 {
			return s
		}
	}
	return strings.TrimSpace(inner)
}
