package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/muesli/termenv"

	"github.com/aretw0/turing/internal/presentation/tui"
	"github.com/aretw0/turing/pkg/definition"
	"github.com/aretw0/turing/pkg/observability"
	"github.com/aretw0/turing/pkg/runner"
)

// RunOptions contains all the configuration for the Run command.
type RunOptions struct {
	Path        string
	Trace       bool
	JSON        bool
	StuckAsHalt bool
	NoColor     bool
	Debug       bool
	Timeout     time.Duration
}

// Run loads a definition, runs it to completion and reports the result on out.
func Run(ctx context.Context, opts RunOptions, out io.Writer) error {
	logger := createLogger(opts.Debug)

	def, err := definition.Load(opts.Path)
	if err != nil {
		return configError(err)
	}

	prog, err := def.Compile()
	if err != nil {
		return configError(fmt.Errorf("%s: %w", opts.Path, err))
	}

	m, err := prog.NewMachine()
	if err != nil {
		return configError(err)
	}

	profile := tui.Profile(out, opts.NoColor || opts.JSON)
	renderer := tui.TapeRenderer{Profile: profile}
	if profile != termenv.Ascii {
		tui.PrintBanner(out, profile)
	}

	runOpts := []runner.Option{
		runner.WithLogger(logger),
		runner.WithName(prog.Name),
		runner.WithStuckAsHalt(opts.StuckAsHalt),
	}
	if opts.Debug {
		runOpts = append(runOpts, runner.WithHooks(observability.LogHooks(logger)))
	}
	if opts.Trace {
		format := renderer.Trace
		if opts.JSON {
			format = runner.JSONTrace
		}
		runOpts = append(runOpts, runner.WithTrace(out, format))
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	res, runErr := runner.New(runOpts...).Run(ctx, m)
	if res == nil {
		return runErr
	}

	if opts.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
	} else {
		fmt.Fprintln(out, res.String())
		fmt.Fprintf(out, "Tape: %s\n", renderer.Tape(m.Tape(), m.Head()))
	}

	if runErr != nil {
		return &ExitError{Code: ExitRunFailure, Err: runErr}
	}
	return nil
}
