package observability

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machine"
	"github.com/aretw0/turing/pkg/runner"
)

func newMachine(t *testing.T, tape string) *machine.Machine {
	t.Helper()
	rules := domain.RuleTable{}
	rules.Set('a', 1, domain.Rule{Direction: domain.Right, Value: 'a', State: 1})
	rules.Set(domain.Blank, 1, domain.Rule{Direction: domain.Stay, Value: domain.Blank, State: 0})

	m, err := machine.New(domain.Symbols(tape), domain.NewAlphabet('a', 'b'), rules)
	require.NoError(t, err)
	return m
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	r := runner.New(runner.WithHooks(metrics.Hooks()))

	_, err := r.Run(t.Context(), newMachine(t, `aa\`))
	require.NoError(t, err)
	_, err = r.Run(t.Context(), newMachine(t, `ab\`))
	require.Error(t, err)

	assert.Equal(t, 4.0, testutil.ToFloat64(metrics.Steps))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Runs.WithLabelValues("halted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Runs.WithLabelValues("stuck")))

	expected := `
# HELP turing_runs_total Total number of finished runs by outcome
# TYPE turing_runs_total counter
turing_runs_total{outcome="halted"} 1
turing_runs_total{outcome="stuck"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "turing_runs_total"))
	assert.Equal(t, 2, testutil.CollectAndCount(metrics.Runs))
}

func TestNewMetrics_Unregistered(t *testing.T) {
	m := NewMetrics(nil)
	m.Hooks().OnStep(context.Background(), &domain.StepEvent{})
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Steps))
}

func TestCombine(t *testing.T) {
	var order []string
	a := domain.LifecycleHooks{
		OnStep:   func(context.Context, *domain.StepEvent) { order = append(order, "a.step") },
		OnFinish: func(context.Context, *domain.RunEvent) { order = append(order, "a.finish") },
	}
	b := domain.LifecycleHooks{
		OnFinish: func(context.Context, *domain.RunEvent) { order = append(order, "b.finish") },
	}

	h := Combine(a, domain.LifecycleHooks{}, b)
	h.OnStep(context.Background(), &domain.StepEvent{})
	h.OnFinish(context.Background(), &domain.RunEvent{})

	assert.Equal(t, []string{"a.step", "a.finish", "b.finish"}, order)

	empty := Combine()
	assert.Nil(t, empty.OnStep)
	assert.Nil(t, empty.OnFinish)
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := runner.New(runner.WithHooks(LogHooks(logger)), runner.WithName("walk")).
		Run(t.Context(), newMachine(t, `a\`))
	require.NoError(t, err)

	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "msg=transition"))
	assert.Contains(t, out, "msg=run_end")
	assert.Contains(t, out, "machine=walk")
	assert.Contains(t, out, "outcome=halted")
}
