package machine_test

import (
	"errors"
	"testing"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rule(d domain.Direction, value rune, state domain.StateID) domain.Rule {
	return domain.Rule{Direction: d, Value: domain.Symbol(value), State: state}
}

func table(entries map[domain.RuleKey]domain.Rule) domain.RuleTable {
	t := domain.RuleTable{}
	for k, v := range entries {
		t[k] = v
	}
	return t
}

func key(value rune, state domain.StateID) domain.RuleKey {
	return domain.RuleKey{Symbol: domain.Symbol(value), State: state}
}

func TestNew_InitialState(t *testing.T) {
	tape := domain.Symbols("ab")
	m, err := machine.New(tape, domain.NewAlphabet('a', 'b'), domain.RuleTable{})
	require.NoError(t, err)

	assert.Equal(t, 0, m.Head())
	assert.Equal(t, domain.StateInitial, m.State())
	assert.Equal(t, uint64(0), m.Cycle())
	assert.False(t, m.IsFinished())
	assert.Equal(t, 2, m.Len())

	// The machine owns a private copy of the tape.
	tape[0] = 'b'
	assert.Equal(t, domain.Symbol('a'), m.At(0))
}

func TestNew_ValidationErrors(t *testing.T) {
	tests := []struct {
		name     string
		tape     string
		alphabet domain.Alphabet
		rules    domain.RuleTable
		opts     []machine.Option
		reason   error
		symbols  []domain.Symbol
	}{
		{
			name:     "empty tape",
			tape:     "",
			alphabet: domain.NewAlphabet('a'),
			reason:   domain.ErrEmptyTape,
		},
		{
			name:     "blank in alphabet",
			tape:     "a",
			alphabet: domain.NewAlphabet('a', domain.Blank),
			reason:   domain.ErrReservedSymbol,
		},
		{
			name:     "unknown symbol on tape",
			tape:     "axa",
			alphabet: domain.NewAlphabet('a'),
			reason:   domain.ErrUnknownSymbols,
			symbols:  []domain.Symbol{'x'},
		},
		{
			name:     "unknown symbols everywhere are all reported",
			tape:     "az",
			alphabet: domain.NewAlphabet('a'),
			rules: table(map[domain.RuleKey]domain.Rule{
				key('y', 1): rule(domain.Right, 'a', 1),
				key('a', 1): rule(domain.Right, 'x', 0),
				key('a', 2): rule(domain.Right, 'x', 0),
			}),
			reason:  domain.ErrUnknownSymbols,
			symbols: []domain.Symbol{'x', 'y', 'z'},
		},
		{
			name:     "direction out of range",
			tape:     "a",
			alphabet: domain.NewAlphabet('a'),
			rules: table(map[domain.RuleKey]domain.Rule{
				key('a', 1): rule(domain.Direction(7), 'a', 0),
			}),
			reason: domain.ErrInvalidDirection,
		},
		{
			name:     "head outside tape",
			tape:     "aa",
			alphabet: domain.NewAlphabet('a'),
			opts:     []machine.Option{machine.WithHead(2)},
			reason:   domain.ErrHeadOutOfRange,
		},
		{
			name:     "negative head",
			tape:     "aa",
			alphabet: domain.NewAlphabet('a'),
			opts:     []machine.Option{machine.WithHead(-1)},
			reason:   domain.ErrHeadOutOfRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := machine.New(domain.Symbols(tt.tape), tt.alphabet, tt.rules, tt.opts...)
			require.Error(t, err)
			assert.Nil(t, m, "no machine may survive a failed construction")
			assert.ErrorIs(t, err, tt.reason)
			assert.True(t, domain.IsConfiguration(err))

			var ce *domain.ConfigurationError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, tt.symbols, ce.Symbols)
		})
	}
}

func TestNew_BlankIsImplicit(t *testing.T) {
	rules := table(map[domain.RuleKey]domain.Rule{
		key(rune(domain.Blank), 1): rule(domain.Stay, 'a', 0),
		key('a', 1):                rule(domain.Right, rune(domain.Blank), 1),
	})
	_, err := machine.New(domain.Symbols(`a\`), domain.NewAlphabet('a'), rules)
	assert.NoError(t, err)
}

func TestStep_ThreeStateWalk(t *testing.T) {
	rules := table(map[domain.RuleKey]domain.Rule{
		key('a', 1): rule(domain.Right, 'a', 2),
		key('a', 2): rule(domain.Right, 'a', 3),
		key('a', 3): rule(domain.Right, 'a', 0),
	})
	m, err := machine.New(domain.Symbols("aaa"), domain.NewAlphabet('a'), rules)
	require.NoError(t, err)

	for !m.IsFinished() {
		require.NoError(t, m.Step())
	}

	assert.True(t, m.IsFinished())
	assert.Equal(t, uint64(3), m.Cycle())
	assert.Equal(t, 0, m.Head())
	assert.Equal(t, "aaa", domain.JoinSymbols(m.Tape()))
}

func TestStep_WrapAround(t *testing.T) {
	t.Run("left from zero", func(t *testing.T) {
		rules := table(map[domain.RuleKey]domain.Rule{key('a', 1): rule(domain.Left, 'a', 1)})
		m, err := machine.New(domain.Symbols("aaaa"), domain.NewAlphabet('a'), rules)
		require.NoError(t, err)

		require.NoError(t, m.Step())
		assert.Equal(t, 3, m.Head())
		require.NoError(t, m.Step())
		assert.Equal(t, 2, m.Head())
	})

	t.Run("right from last", func(t *testing.T) {
		rules := table(map[domain.RuleKey]domain.Rule{key('a', 1): rule(domain.Right, 'a', 1)})
		m, err := machine.New(domain.Symbols("aaaa"), domain.NewAlphabet('a'), rules, machine.WithHead(3))
		require.NoError(t, err)

		require.NoError(t, m.Step())
		assert.Equal(t, 0, m.Head())
	})

	for _, d := range []domain.Direction{domain.Left, domain.Stay, domain.Right} {
		t.Run("length one "+d.String(), func(t *testing.T) {
			rules := table(map[domain.RuleKey]domain.Rule{key('a', 1): rule(d, 'a', 1)})
			m, err := machine.New(domain.Symbols("a"), domain.NewAlphabet('a'), rules)
			require.NoError(t, err)

			for i := 0; i < 5; i++ {
				require.NoError(t, m.Step())
				assert.Equal(t, 0, m.Head())
			}
			assert.Equal(t, uint64(5), m.Cycle())
		})
	}
}

func TestStep_NoRuleLeavesMachineUntouched(t *testing.T) {
	rules := table(map[domain.RuleKey]domain.Rule{
		key('a', 1): rule(domain.Right, 'b', 2),
	})
	m, err := machine.New(domain.Symbols("ab"), domain.NewAlphabet('a', 'b'), rules)
	require.NoError(t, err)

	require.NoError(t, m.Step())
	before := m.Snapshot()

	err = m.Step()
	require.Error(t, err)
	assert.True(t, domain.IsNoRule(err))

	var nr *domain.NoRuleError
	require.True(t, errors.As(err, &nr))
	assert.Equal(t, domain.Symbol('b'), nr.Value)
	assert.Equal(t, domain.StateID(2), nr.State)

	assert.Equal(t, before, m.Snapshot())
	assert.EqualError(t, err, `no rule for value 'b' and state 2`)
}

func TestStep_UnknownSymbolHasNoRules(t *testing.T) {
	// 'b' is in the alphabet but has no rules at all.
	rules := table(map[domain.RuleKey]domain.Rule{key('a', 1): rule(domain.Stay, 'a', 1)})
	m, err := machine.New(domain.Symbols("b"), domain.NewAlphabet('a', 'b'), rules)
	require.NoError(t, err)

	assert.True(t, domain.IsNoRule(m.Step()))
	assert.Equal(t, uint64(0), m.Cycle())
}

func TestStep_AfterHalt(t *testing.T) {
	rules := domain.RuleTable{}
	rules.Set('a', 1, rule(domain.Stay, rune(domain.Blank), 0))
	rules.Set(domain.Blank, 0, rule(domain.Right, 'a', 1))
	m, err := machine.New(domain.Symbols("a"), domain.NewAlphabet('a'), rules)
	require.NoError(t, err)

	require.NoError(t, m.Step())
	require.True(t, m.IsFinished())
	assert.Equal(t, domain.Blank, m.Current(), "a cell can be erased back to blank")

	halted := m.Snapshot()
	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, m.Step(), domain.ErrHalted)
		assert.True(t, m.IsFinished())
	}
	assert.Equal(t, halted, m.Snapshot(), "a rule for state 0 is never consulted")
}

func TestStep_Deterministic(t *testing.T) {
	rules := table(map[domain.RuleKey]domain.Rule{
		key('0', 1):                rule(domain.Right, '1', 2),
		key('1', 1):                rule(domain.Left, '0', 1),
		key('0', 2):                rule(domain.Left, '1', 1),
		key('1', 2):                rule(domain.Right, '1', 2),
		key(rune(domain.Blank), 1): rule(domain.Right, '1', 2),
		key(rune(domain.Blank), 2): rule(domain.Stay, '0', 0),
	})
	build := func() *machine.Machine {
		m, err := machine.New(domain.Symbols(`01\10\`), domain.NewAlphabet('0', '1'), rules, machine.WithHead(2))
		require.NoError(t, err)
		return m
	}

	a, b := build(), build()
	for i := 0; i < 50 && !a.IsFinished(); i++ {
		errA, errB := a.Step(), b.Step()
		assert.Equal(t, errA, errB)
		assert.Equal(t, a.Snapshot(), b.Snapshot())
	}
}

func TestString(t *testing.T) {
	rules := table(map[domain.RuleKey]domain.Rule{key('c', 1): rule(domain.Right, 'C', 1)})
	m, err := machine.New(domain.Symbols("abcde"), domain.NewAlphabet('a', 'b', 'c', 'C', 'd', 'e'), rules, machine.WithHead(2))
	require.NoError(t, err)

	assert.Equal(t, "Cycle: 0, state: 1, head index: 2\nMemory dump: ab{c}de", m.String())

	require.NoError(t, m.Step())
	assert.Equal(t, "Cycle: 1, state: 1, head index: 3\nMemory dump: abC{d}e", m.String())
}

func TestRenderTape(t *testing.T) {
	assert.Equal(t, "{a}", machine.RenderTape(domain.Symbols("a"), 0))
	assert.Equal(t, `ab{\}`, machine.RenderTape(domain.Symbols(`ab\`), 2))
}

func TestNew_InvalidDirectionMessage(t *testing.T) {
	rules := table(map[domain.RuleKey]domain.Rule{key('a', 1): rule(domain.Direction(7), 'a', 0)})
	_, err := machine.New(domain.Symbols("a"), domain.NewAlphabet('a'), rules)
	assert.EqualError(t, err, `rule has an invalid direction (direction(7) for 'a' in state 1)`)
}
