package evaluator

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

// AllowedPackages may be imported by evaluated source. Anything touching the
// host (os, net, exec, syscall, unsafe) is left out.
var AllowedPackages = []string{
	"fmt",
	"math",
	"math/big",
	"math/cmplx",
	"strconv",
	"strings",
	"sort",
}

var preImported = []string{"fmt", "math"}

// Yaegi interprets Go source in a fresh interpreter per call.
type Yaegi struct {
	symbols interp.Exports
	debug   bool
}

func NewYaegi() *Yaegi {
	allowed := make(map[string]bool, len(AllowedPackages))
	for _, p := range AllowedPackages {
		allowed[p] = true
	}
	syms := make(interp.Exports)
	for key, v := range stdlib.Symbols {
		// keys are in the form of "math/big/big"
		if allowed[path.Dir(key)] {
			syms[key] = v
		}
	}
	return &Yaegi{
		symbols: syms,
		debug:   debugEnabled(),
	}
}

// Evaluate the source and return everything written to stdout. Python-style
// bare print(...) calls are rewritten to fmt.Println(...).
func (y *Yaegi) Evaluate(ctx context.Context, source string) (out string, err error) {
	src := strings.TrimSpace(source)
	if src == "" {
		return "", evalErr("empty source", nil)
	}
	src = barePrint.ReplaceAllString(src, "${1}fmt.Println(")
	isProgram := strings.HasPrefix(src, "package ")

	var stdout, stderr bytes.Buffer
	i := interp.New(interp.Options{
		Stdout: &stdout,
		Stderr: &stderr,
	})
	if err := i.Use(y.symbols); err != nil {
		return "", fmt.Errorf("failed to load symbols: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			out = ""
			err = evalErr(fmt.Sprintf("panic: %v", r), nil)
		}
	}()

	if !isProgram {
		for _, p := range preImported {
			if _, err := i.EvalWithContext(ctx, fmt.Sprintf("import %q", p)); err != nil {
				return "", fmt.Errorf("failed to pre-import '%v': %w", p, err)
			}
		}
	}
	if y.debug {
		ancli.PrintOK(fmt.Sprintf("yaegi evaluating:\n%v\n", src))
	}

	if _, err = i.EvalWithContext(ctx, src); err != nil {
		diag := strings.TrimSpace(stderr.String())
		if diag != "" {
			return "", evalErr(diag, err)
		}
		return "", evalErr("failed to evaluate", err)
	}
	out = stdout.String()
	if out == "" {
		return "", evalErr("no output, use print(...) to output the result", nil)
	}
	return out, nil
}
