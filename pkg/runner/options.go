package runner

import (
	"io"
	"log/slog"

	"github.com/aretw0/turing/pkg/domain"
)

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithName labels the run in logs, events and results.
func WithName(name string) Option {
	return func(r *Runner) {
		r.name = name
	}
}

// WithHooks registers lifecycle callbacks.
// Use observability.Combine to register several.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(r *Runner) {
		r.hooks = hooks
	}
}

// WithTrace writes every configuration, starting with the initial one, to w.
// A nil formatter means TextTrace.
func WithTrace(w io.Writer, format TraceFormatter) Option {
	return func(r *Runner) {
		if format == nil {
			format = TextTrace
		}
		r.trace = w
		r.format = format
	}
}

// WithStuckAsHalt makes a missing rule end the run without an error.
// The outcome is still reported as OutcomeStuck.
func WithStuckAsHalt(enabled bool) Option {
	return func(r *Runner) {
		r.stuckAsHalt = enabled
	}
}
