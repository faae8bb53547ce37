package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/muesli/termenv"

	"github.com/aretw0/turing/internal/presentation/graph"
	"github.com/aretw0/turing/internal/presentation/tui"
	"github.com/aretw0/turing/pkg/definition"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/runner"
)

// InspectOptions configures the Inspect command.
type InspectOptions struct {
	Path    string
	Format  string // markdown, mermaid, yaml or json
	Overlay bool   // mermaid only: run the machine and highlight visited states
	NoColor bool
}

// Inspect describes a definition without running it, unless an overlay is requested.
func Inspect(ctx context.Context, opts InspectOptions, out io.Writer) error {
	def, err := definition.Load(opts.Path)
	if err != nil {
		return configError(err)
	}

	prog, err := def.Compile()
	if err != nil {
		return configError(fmt.Errorf("%s: %w", opts.Path, err))
	}

	switch opts.Format {
	case "", "markdown", "md":
		render := tui.NewMarkdownRenderer(tui.Profile(out, opts.NoColor) != termenv.Ascii)
		text, err := render(tui.Describe(prog))
		if err != nil {
			return fmt.Errorf("failed to render markdown: %w", err)
		}
		_, err = io.WriteString(out, text)
		return err

	case "mermaid":
		var overlay *graph.GraphOverlay
		if opts.Overlay {
			overlay, err = runOverlay(ctx, prog)
			if err != nil {
				return err
			}
		}
		_, err = io.WriteString(out, graph.GenerateMermaid(prog.Rules, overlay))
		return err

	case "yaml", "json":
		format, _ := definition.ParseFormat(opts.Format)
		data, err := definition.Encode(def, format)
		if err != nil {
			return fmt.Errorf("failed to encode definition: %w", err)
		}
		_, err = out.Write(data)
		return err

	default:
		return &ExitError{Code: ExitConfig, Err: fmt.Errorf("unknown format %q (markdown, mermaid, yaml, json)", opts.Format)}
	}
}

// runOverlay runs the program once and records the states it went through.
// A stuck run still yields an overlay ending on the state it got stuck in.
func runOverlay(ctx context.Context, prog *definition.Program) (*graph.GraphOverlay, error) {
	m, err := prog.NewMachine()
	if err != nil {
		return nil, err
	}

	overlay := &graph.GraphOverlay{VisitedStates: []domain.StateID{m.State()}}
	hooks := domain.LifecycleHooks{
		OnStep: func(_ context.Context, e *domain.StepEvent) {
			overlay.VisitedStates = append(overlay.VisitedStates, e.ToState)
		},
	}

	res, err := runner.New(runner.WithHooks(hooks), runner.WithStuckAsHalt(true)).Run(ctx, m)
	if err != nil {
		return nil, &ExitError{Code: ExitRunFailure, Err: err}
	}

	overlay.CurrentState = res.State
	overlay.HasCurrent = true
	return overlay, nil
}
