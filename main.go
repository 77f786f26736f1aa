package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/baalimago/go_away_boilerplate/pkg/shutdown"
	"github.com/baalimago/solvr/internal/utils"
	"github.com/spf13/cobra"
)

const long = `solvr - math problem solver

Answers math, algebra, derivative and word problems step-by-step. A language
model decides, one step at a time, whether to hand the question to a
step-by-step reasoning tool or to a numeric evaluator. Whenever that doesn't
produce an answer, the reasoning tool answers directly.

Prerequisites:
  - Set GROQ_API_KEY (default), OPENAI_API_KEY (gpt models) or GEMINI_API_KEY
    (gemini models) depending on the model used. Models written as
    'ollama:<model>' run on a local ollama instance and need no key
  - (Optional) Set NO_COLOR to disable ansi color output
  - (Optional) Set SOLVR_CONFIG_HOME to move the config dir

Run without arguments to start the interactive chat. Give a question as
argument to answer it once and exit.

Examples:
  - solvr
  - solvr "What is 15% of 840?"
  - solvr -r --trace "Derivative of x^3 + 2x?"
  - solvr -m gpt-4.1-mini --evaluator expr
  - solvr -m ollama:qwen2.5
`

type flags struct {
	model     string
	raw       bool
	line      bool
	trace     bool
	maxSteps  int
	evaluator string
}

func main() {
	ancli.SetupSlog()
	os.Exit(run(os.Args[1:]))
}

// run solvr with the given args, returning the exit status.
func run(args []string) int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { shutdown.Monitor(cancel) }()

	cmd := newRootCmd(ctx)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		if errors.Is(err, utils.ErrUserInitiatedExit) {
			ancli.Okf("Seems like you wanted out. Byebye!\n")
			return 0
		}
		ancli.PrintErr(fmt.Sprintf("failed to run: %v\n", err))
		return 1
	}
	if misc.Truthy(os.Getenv("DEBUG")) {
		ancli.PrintOK("things seems to have worked out. Bye bye! 🚀\n")
	}
	return 0
}

func newRootCmd(ctx context.Context) *cobra.Command {
	var f flags
	root := &cobra.Command{
		Use:           "solvr [question]",
		Short:         "Solve math problems step-by-step",
		Long:          long,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			question := strings.TrimSpace(strings.Join(args, " "))
			a, err := setup(ctx, cmd, f, question != "")
			if err != nil {
				return fmt.Errorf("failed to setup: %w", err)
			}
			if question != "" {
				return a.oneShot(ctx, question)
			}
			return a.interactive(ctx)
		},
	}
	fl := root.Flags()
	fl.StringVarP(&f.model, "model", "m", "", "model to use (default is found in solvrConfig.json)")
	fl.BoolVarP(&f.raw, "raw", "r", false, "print raw output, no markdown rendering, implies --line")
	fl.BoolVar(&f.line, "line", false, "use the plain line chat instead of the terminal ui")
	fl.BoolVar(&f.trace, "trace", false, "print every tool step as it completes")
	fl.IntVar(&f.maxSteps, "max-steps", 0, "model round-trips allowed per question (default is found in solvrConfig.json)")
	fl.StringVar(&f.evaluator, "evaluator", "", "numeric evaluator, one of [yaegi, expr] (default is found in solvrConfig.json)")

	root.AddCommand(newVersionCmd())
	return root
}
