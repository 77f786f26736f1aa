package main

import (
	"context"
	"fmt"
	"os"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/baalimago/solvr/internal/chat"
	"github.com/baalimago/solvr/internal/config"
	"github.com/baalimago/solvr/internal/evaluator"
	"github.com/baalimago/solvr/internal/fallback"
	"github.com/baalimago/solvr/internal/gateway"
	"github.com/baalimago/solvr/internal/prompts"
	"github.com/baalimago/solvr/internal/reasoning"
	"github.com/baalimago/solvr/internal/router"
	"github.com/baalimago/solvr/internal/tools"
	"github.com/baalimago/solvr/internal/ui/line"
	"github.com/baalimago/solvr/internal/ui/tui"
	"github.com/baalimago/solvr/internal/utils"
	"github.com/spf13/cobra"
)

const traceBuffer = 16

type app struct {
	conf    config.Config
	session *chat.Session
	raw     bool
	line    bool
	// steps is fed by the router when the terminal ui is used
	steps chan router.Step
}

// setup the whole call chain: config, gateway, tools, router, fallback and
// session. Flags take precedence over environment and config file. One-shot
// runs and non-terminals always use line output.
func setup(ctx context.Context, cmd *cobra.Command, f flags, oneShot bool) (*app, error) {
	configDir, err := utils.GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to find config dir: %w", err)
	}
	conf, err := config.Load(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	applyFlags(cmd, f, &conf)
	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := conf.ResolveAPIKey(); err != nil {
		return nil, err
	}
	if misc.Truthy(os.Getenv("DEBUG")) {
		conf.Print()
	}
	if err := utils.LoadTheme(configDir); err != nil {
		ancli.PrintWarn(fmt.Sprintf("failed to load theme, using default: %v\n", err))
	}

	catalogue, err := prompts.Load(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load prompts: %w", err)
	}
	completer, err := gateway.New(ctx, conf.GatewaySettings())
	if err != nil {
		return nil, fmt.Errorf("failed to create gateway: %w", err)
	}
	eval, err := evaluator.New(conf.Evaluator)
	if err != nil {
		return nil, fmt.Errorf("failed to create evaluator: %w", err)
	}
	responder := reasoning.New(completer, catalogue)
	registry, err := tools.NewRegistry(
		tools.NewReasoningTool(responder),
		tools.NewMathTool(eval),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create tool registry: %w", err)
	}

	a := &app{
		conf: conf,
		raw:  f.raw,
		line: f.line || f.raw,
	}
	opts := []router.Option{
		router.WithMaxSteps(conf.MaxSteps),
		router.WithEarlyStopping(conf.EarlyStopping),
		router.WithHandleParsingErrors(conf.HandleParsingErrors),
	}
	if oneShot || !utils.IsInteractive() {
		a.line = true
	}
	switch {
	case !a.line:
		a.steps = make(chan router.Step, traceBuffer)
		opts = append(opts, router.WithTracer(tui.ChannelTracer(a.steps)))
	case f.trace:
		opts = append(opts, router.WithTracer(line.Tracer(os.Stdout)))
	}
	r := router.New(completer, registry, catalogue, opts...)
	a.session = chat.NewSession(fallback.New(r, responder), conf.Greeting)
	return a, nil
}

func applyFlags(cmd *cobra.Command, f flags, conf *config.Config) {
	fl := cmd.Flags()
	if fl.Changed("model") {
		conf.Model = f.model
	}
	if fl.Changed("max-steps") {
		conf.MaxSteps = f.maxSteps
	}
	if fl.Changed("evaluator") {
		conf.Evaluator = f.evaluator
	}
}

// oneShot answers a single question and prints the answer.
func (a *app) oneShot(ctx context.Context, question string) error {
	turn, err := a.session.Submit(ctx, question)
	if err != nil {
		return fmt.Errorf("failed to answer: %w", err)
	}
	return utils.AttemptPrettyPrint(os.Stdout, turn, a.raw)
}

func (a *app) interactive(ctx context.Context) error {
	if a.line {
		return line.New(a.session, os.Stdin, os.Stdout, a.raw).Run(ctx)
	}
	return tui.Run(ctx, tui.New(ctx, a.session, a.steps))
}
