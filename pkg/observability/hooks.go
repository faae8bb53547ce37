package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/turing/pkg/domain"
)

// Combine fans every event out to each of hooks, in order.
func Combine(hooks ...domain.LifecycleHooks) domain.LifecycleHooks {
	var steps []func(context.Context, *domain.StepEvent)
	var finishes []func(context.Context, *domain.RunEvent)

	for _, h := range hooks {
		if h.OnStep != nil {
			steps = append(steps, h.OnStep)
		}
		if h.OnFinish != nil {
			finishes = append(finishes, h.OnFinish)
		}
	}

	var combined domain.LifecycleHooks
	if len(steps) > 0 {
		combined.OnStep = func(ctx context.Context, e *domain.StepEvent) {
			for _, fn := range steps {
				fn(ctx, e)
			}
		}
	}
	if len(finishes) > 0 {
		combined.OnFinish = func(ctx context.Context, e *domain.RunEvent) {
			for _, fn := range finishes {
				fn(ctx, e)
			}
		}
	}
	return combined
}

// LogHooks logs every transition at debug level and every finished run at info.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			logger.DebugContext(ctx, "transition",
				"run_id", e.RunID,
				"cycle", e.Cycle,
				"read", e.Read,
				"written", e.Written,
				"from_state", e.FromState,
				"to_state", e.ToState,
				"head", e.ToHead,
			)
		},
		OnFinish: func(ctx context.Context, e *domain.RunEvent) {
			attrs := []any{"run_id", e.RunID, "outcome", e.Outcome, "cycles", e.Cycles, "state", e.State}
			if e.Machine != "" {
				attrs = append(attrs, "machine", e.Machine)
			}
			if e.Err != nil {
				attrs = append(attrs, "error", e.Err)
			}
			logger.InfoContext(ctx, "run_end", attrs...)
		},
	}
}
