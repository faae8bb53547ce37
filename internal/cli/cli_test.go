package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/runner"
)

func fixture(name string) string {
	return filepath.Join("testdata", name)
}

func TestRun_TraceGolden(t *testing.T) {
	var buf bytes.Buffer
	err := Run(t.Context(), RunOptions{Path: fixture("flip.yaml"), Trace: true, NoColor: true}, &buf)
	require.NoError(t, err)

	g := goldie.New(t, goldie.WithFixtureDir(filepath.Join("testdata", "golden")))
	g.Assert(t, "flip_trace", buf.Bytes())
}

func TestRun_Summary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Run(t.Context(), RunOptions{Path: fixture("flip.yaml")}, &buf))
	assert.Equal(t, "halted after 5 cycles (state 0, head 4)\nTape: baab{\\}\n", buf.String())
}

func TestRun_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Run(t.Context(), RunOptions{Path: fixture("flip.yaml"), JSON: true}, &buf))

	var res runner.Result
	require.NoError(t, json.Unmarshal(buf.Bytes(), &res))
	assert.Equal(t, runner.OutcomeHalted, res.Outcome)
	assert.Equal(t, "flip", res.Machine)
	assert.Equal(t, `baab\`, res.Tape)
}

func TestRun_Stuck(t *testing.T) {
	var buf bytes.Buffer
	err := Run(t.Context(), RunOptions{Path: fixture("stuck.yaml")}, &buf)
	require.Error(t, err)
	assert.Equal(t, ExitRunFailure, ExitCode(err))
	assert.True(t, domain.IsNoRule(err))
	assert.Contains(t, buf.String(), "stuck after 1 cycles: no rule for value 'b' and state 1")

	buf.Reset()
	err = Run(t.Context(), RunOptions{Path: fixture("stuck.yaml"), StuckAsHalt: true}, &buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Tape: a{b}")
}

func TestRun_ConfigErrors(t *testing.T) {
	err := Run(t.Context(), RunOptions{Path: fixture("invalid.yaml")}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Equal(t, ExitConfig, ExitCode(err))
	assert.ErrorIs(t, err, domain.ErrUnknownSymbols)
	assert.Contains(t, err.Error(), "'x', 'y', 'z'")

	err = Run(t.Context(), RunOptions{Path: fixture("missing.yaml")}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Equal(t, ExitRunFailure, ExitCode(err), "I/O failures are not configuration errors")
}

func TestValidate(t *testing.T) {
	var buf bytes.Buffer
	err := Validate([]string{fixture("flip.yaml"), fixture("invalid.yaml"), fixture("stuck.yaml")}, &buf)
	require.Error(t, err)
	assert.Equal(t, ExitConfig, ExitCode(err))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "machine 'flip' is valid")
	assert.Contains(t, lines[0], "(3 rules, 1 states)")
	assert.Contains(t, lines[1], "unknown symbols")
	assert.Contains(t, lines[2], "machine 'stuck' is valid")
}

func TestInspect(t *testing.T) {
	tests := []struct {
		format   string
		contains []string
	}{
		{"markdown", []string{"# flip", "| `a` | 1 | `b` | right | 1 |"}},
		{"mermaid", []string{"graph LR", `s1 -- "a/b R" --> s1`}},
		{"yaml", []string{"alphabet: ab", "name: flip"}},
		{"json", []string{`"alphabet": "ab"`}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			err := Inspect(t.Context(), InspectOptions{Path: fixture("flip.yaml"), Format: tt.format, NoColor: true}, &buf)
			require.NoError(t, err)
			for _, want := range tt.contains {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestInspect_MermaidOverlay(t *testing.T) {
	var buf bytes.Buffer
	err := Inspect(t.Context(), InspectOptions{Path: fixture("stuck.yaml"), Format: "mermaid", Overlay: true}, &buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "class s1 visited;")
	assert.Contains(t, buf.String(), "class s1 current;")
}

func TestInspect_UnknownFormat(t *testing.T) {
	err := Inspect(t.Context(), InspectOptions{Path: fixture("flip.yaml"), Format: "dot"}, &bytes.Buffer{})
	assert.Equal(t, ExitConfig, ExitCode(err))
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 1, ExitCode(errors.New("boom")))
	assert.Equal(t, 2, ExitCode(&ExitError{Code: 2, Err: errors.New("bad")}))
}
