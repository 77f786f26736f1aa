// Package line is the plain line based chat, used when no terminal is
// attached or when asked for.
package line

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/baalimago/solvr/internal/chat"
	"github.com/baalimago/solvr/internal/models"
	"github.com/baalimago/solvr/internal/router"
	"github.com/baalimago/solvr/internal/ui"
	"github.com/baalimago/solvr/internal/utils"
)

type REPL struct {
	session *chat.Session
	in      *bufio.Reader
	out     io.Writer
	raw     bool
}

func New(s *chat.Session, in io.Reader, out io.Writer, raw bool) *REPL {
	return &REPL{
		session: s,
		in:      bufio.NewReader(in),
		out:     out,
		raw:     raw,
	}
}

// Tracer which prints every step dimmed to out as it completes.
func Tracer(out io.Writer) router.Tracer {
	n := 0
	return router.TracerFunc(func(s router.Step) {
		n++
		fmt.Fprintln(out, utils.Colorize(utils.ThemeTraceColor(), ui.FormatStep(n, s)))
	})
}

// Run until the user quits or the input ends.
func (r *REPL) Run(ctx context.Context) error {
	if !r.raw {
		fmt.Fprintln(r.out, utils.Colorize(utils.ThemePrimaryColor(), ui.Title))
		fmt.Fprintln(r.out, ui.Caption)
	}
	r.printTurns()
	for {
		fmt.Fprintf(r.out, "%v(%v): ", utils.Colorize(utils.RoleColor(models.RoleUser), "user"), "'exit' or 'quit' to quit")
		input, err := utils.ReadUserInput(ctx, r.in)
		if err != nil {
			if errors.Is(err, utils.ErrUserInitiatedExit) {
				return nil
			}
			return err
		}

		switch ui.ParseCommand(input) {
		case ui.CmdQuit:
			return nil
		case ui.CmdClear:
			r.session.Clear()
			r.printTurns()
			continue
		case ui.CmdHelp:
			r.print(models.Turn{Role: models.RoleAssistant, Content: ui.HelpText()})
			continue
		}

		turn, err := r.session.Submit(ctx, input)
		if err != nil {
			if errors.Is(err, chat.ErrEmptyInput) {
				continue
			}
			return fmt.Errorf("failed to submit: %w", err)
		}
		r.print(turn)
	}
}

func (r *REPL) printTurns() {
	for _, t := range r.session.Turns() {
		r.print(t)
	}
}

func (r *REPL) print(t models.Turn) {
	if err := utils.AttemptPrettyPrint(r.out, t, r.raw); err != nil {
		fmt.Fprintf(r.out, "%v\n", t.Content)
	}
}
