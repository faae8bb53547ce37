package turing

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/turing/pkg/definition"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/runner"
)

// Engine is the high-level entry point for the Turing library.
// It holds a compiled program and runs a fresh machine on every Run call.
type Engine struct {
	program     *definition.Program
	hooks       domain.LifecycleHooks
	logger      *slog.Logger
	trace       io.Writer
	traceFormat runner.TraceFormatter
	stuckAsHalt bool
	Name        string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithTrace writes every configuration of a run to w. A nil format uses runner.TextTrace.
func WithTrace(w io.Writer, format runner.TraceFormatter) Option {
	return func(e *Engine) {
		e.trace = w
		e.traceFormat = format
	}
}

// WithStuckAsHalt makes Run succeed when no rule matches.
func WithStuckAsHalt(enabled bool) Option {
	return func(e *Engine) {
		e.stuckAsHalt = enabled
	}
}

// New compiles def and returns an Engine ready to run it.
// Invalid definitions are reported before anything runs.
func New(def *definition.Definition, opts ...Option) (*Engine, error) {
	if def == nil {
		return nil, fmt.Errorf("%w: nil definition", definition.ErrInvalidDefinition)
	}

	prog, err := def.Compile()
	if err != nil {
		return nil, err
	}

	eng := &Engine{program: prog, Name: prog.Name}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("machine", eng.Name)
	}

	return eng, nil
}

// Open loads the definition at path (YAML or JSON, by extension) and calls New.
func Open(path string, opts ...Option) (*Engine, error) {
	def, err := definition.Load(path)
	if err != nil {
		return nil, err
	}
	return New(def, opts...)
}

// Program returns the compiled program.
func (e *Engine) Program() *definition.Program {
	return e.program
}

// Run executes a fresh machine until it halts, gets stuck, or ctx is done.
// The result is returned on failure too, so callers can report where it stopped.
func (e *Engine) Run(ctx context.Context) (*runner.Result, error) {
	m, err := e.program.NewMachine()
	if err != nil {
		return nil, err
	}

	opts := []runner.Option{
		runner.WithLogger(e.logger),
		runner.WithName(e.Name),
		runner.WithHooks(e.hooks),
		runner.WithStuckAsHalt(e.stuckAsHalt),
	}
	if e.trace != nil {
		opts = append(opts, runner.WithTrace(e.trace, e.traceFormat))
	}

	return runner.New(opts...).Run(ctx, m)
}
