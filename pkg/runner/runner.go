package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machine"
)

// Outcome describes how a run ended.
type Outcome string

const (
	OutcomeHalted    Outcome = "halted"
	OutcomeStuck     Outcome = "stuck"
	OutcomeCancelled Outcome = "cancelled"
)

// Result is the final configuration of a run.
type Result struct {
	RunID   string         `json:"run_id"`
	Machine string         `json:"machine,omitempty"`
	Outcome Outcome        `json:"outcome"`
	Cycles  uint64         `json:"cycles"`
	State   domain.StateID `json:"state"`
	Head    int            `json:"head"`
	Tape    string         `json:"tape"`
	Error   string         `json:"error,omitempty"`

	// Err is the error that ended the run, also for stuck runs
	// when WithStuckAsHalt is set.
	Err error `json:"-"`
}

// RenderedTape returns the tape with the head cell wrapped in braces.
func (r *Result) RenderedTape() string {
	return machine.RenderTape(domain.Symbols(r.Tape), r.Head)
}

func (r *Result) String() string {
	switch r.Outcome {
	case OutcomeHalted:
		return fmt.Sprintf("halted after %d cycles (state %d, head %d)", r.Cycles, r.State, r.Head)
	case OutcomeStuck:
		return fmt.Sprintf("stuck after %d cycles: %s", r.Cycles, r.Error)
	default:
		return fmt.Sprintf("%s after %d cycles (state %d, head %d)", r.Outcome, r.Cycles, r.State, r.Head)
	}
}

// Runner executes machines to completion. A Runner holds no per-run state
// and may be shared between goroutines; machines may not.
type Runner struct {
	logger      *slog.Logger
	name        string
	hooks       domain.LifecycleHooks
	trace       io.Writer
	format      TraceFormatter
	stuckAsHalt bool
}

// New creates a Runner. Without options it runs silently.
func New(opts ...Option) *Runner {
	r := &Runner{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run steps m until it halts, gets stuck, or ctx is done.
// The Result is returned even when err is non-nil, except for trace write failures.
func (r *Runner) Run(ctx context.Context, m *machine.Machine) (*Result, error) {
	runID := uuid.NewString()
	logger := r.logger.With("run_id", runID)
	if r.name != "" {
		logger = logger.With("machine", r.name)
	}

	logger.Debug("run started", "head", m.Head(), "tape_length", m.Len())
	start := time.Now()

	if err := r.writeTrace(m); err != nil {
		return nil, err
	}

	outcome := OutcomeHalted
	var runErr error

	for !m.IsFinished() {
		if err := ctx.Err(); err != nil {
			outcome = OutcomeCancelled
			runErr = err
			break
		}

		fromState, fromHead, read := m.State(), m.Head(), m.Current()

		if err := m.Step(); err != nil {
			if domain.IsNoRule(err) {
				outcome = OutcomeStuck
			}
			runErr = err
			break
		}

		if r.hooks.OnStep != nil {
			r.hooks.OnStep(ctx, &domain.StepEvent{
				EventBase: domain.EventBase{Timestamp: time.Now(), RunID: runID},
				Cycle:     m.Cycle(),
				Read:      read,
				Written:   m.At(fromHead),
				FromState: fromState,
				ToState:   m.State(),
				FromHead:  fromHead,
				ToHead:    m.Head(),
			})
		}

		if logger.Enabled(ctx, slog.LevelDebug) {
			logger.Debug("step",
				"cycle", m.Cycle(),
				"read", read,
				"state", m.State(),
				"head", m.Head(),
			)
		}

		if err := r.writeTrace(m); err != nil {
			return nil, err
		}
	}

	snap := m.Snapshot()
	res := &Result{
		RunID:   runID,
		Machine: r.name,
		Outcome: outcome,
		Cycles:  snap.Cycle,
		State:   snap.State,
		Head:    snap.Head,
		Tape:    snap.TapeString(),
		Err:     runErr,
	}
	if runErr != nil {
		res.Error = runErr.Error()
	}

	if r.hooks.OnFinish != nil {
		r.hooks.OnFinish(ctx, &domain.RunEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), RunID: runID},
			Machine:   r.name,
			Outcome:   string(outcome),
			Cycles:    res.Cycles,
			State:     res.State,
			Err:       runErr,
		})
	}

	attrs := []any{"outcome", outcome, "cycles", res.Cycles, "duration", time.Since(start)}
	switch {
	case runErr == nil:
		logger.Info("run finished", attrs...)
	case outcome == OutcomeStuck && r.stuckAsHalt:
		logger.Info("run finished", append(attrs, "reason", runErr)...)
		return res, nil
	case errors.Is(runErr, context.Canceled), errors.Is(runErr, context.DeadlineExceeded):
		logger.Warn("run interrupted", append(attrs, "error", runErr)...)
	default:
		logger.Error("run failed", append(attrs, "error", runErr)...)
	}

	return res, runErr
}

func (r *Runner) writeTrace(m *machine.Machine) error {
	if r.trace == nil {
		return nil
	}
	if err := r.format(r.trace, m); err != nil {
		return fmt.Errorf("failed to write trace: %w", err)
	}
	return nil
}
