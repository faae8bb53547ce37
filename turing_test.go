package turing

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/turing/pkg/definition"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/runner"
)

func flipDefinition() *definition.Definition {
	return &definition.Definition{
		Name:     "flip",
		Alphabet: []string{"a", "b"},
		Memory:   []string{"a", "b", "b", "a", `\`},
		Rules: map[string]map[string]string{
			"a": {"1": "Rb1"},
			"b": {"1": "Ra1"},
			`\`: {"1": `S\0`},
		},
	}
}

func TestEngine_RunIsRepeatable(t *testing.T) {
	eng, err := New(flipDefinition())
	require.NoError(t, err)
	assert.Equal(t, "flip", eng.Name)

	for range 2 {
		res, err := eng.Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, runner.OutcomeHalted, res.Outcome)
		assert.Equal(t, uint64(5), res.Cycles)
		assert.Equal(t, `baab\`, res.Tape)
	}
}

func TestNew_Invalid(t *testing.T) {
	def := flipDefinition()
	def.Memory = []string{"a", "x"}

	_, err := New(def)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownSymbols)

	_, err = New(nil)
	assert.ErrorIs(t, err, definition.ErrInvalidDefinition)
}

func TestEngine_Options(t *testing.T) {
	var steps int
	var finished *domain.RunEvent
	var trace bytes.Buffer

	def := flipDefinition()
	delete(def.Rules, `\`)

	eng, err := New(def,
		WithTrace(&trace, nil),
		WithStuckAsHalt(true),
		WithLifecycleHooks(domain.LifecycleHooks{
			OnStep:   func(context.Context, *domain.StepEvent) { steps++ },
			OnFinish: func(_ context.Context, ev *domain.RunEvent) { finished = ev },
		}),
	)
	require.NoError(t, err)

	res, err := eng.Run(context.Background())
	require.NoError(t, err, "stuck runs succeed with WithStuckAsHalt")
	assert.Equal(t, runner.OutcomeStuck, res.Outcome)
	assert.True(t, domain.IsNoRule(res.Err))
	assert.Equal(t, 4, steps)
	require.NotNil(t, finished)
	assert.Equal(t, "flip", finished.Machine)
	assert.Contains(t, trace.String(), "Cycle: 0, state: 1, head index: 0\nMemory dump: {a}bba\\\n")
}

func TestOpen(t *testing.T) {
	eng, err := Open("examples/increment.json")
	require.NoError(t, err)

	res, err := eng.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, `\1100`, res.Tape)

	_, err = Open("examples/missing.yaml")
	assert.Error(t, err)
}

func TestOpen_BusyBeaver(t *testing.T) {
	eng, err := Open("examples/busy_beaver.yaml")
	require.NoError(t, err)

	res, err := eng.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(6), res.Cycles)
	assert.Equal(t, `\11{1}1\`, res.RenderedTape())
}
