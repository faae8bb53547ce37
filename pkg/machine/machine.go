// Package machine implements the single-tape Turing machine core.
//
// A Machine is built once from a tape, an alphabet and a rule table, validated
// atomically, and then mutated only by sequential calls to Step. It is not safe
// for concurrent use; the RuleTable it references is never written and may be
// shared between machines.
package machine

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
)

// Machine owns a circular tape and walks it according to a rule table.
type Machine struct {
	rules domain.RuleTable
	tape  []domain.Symbol
	head  int
	state domain.StateID
	cycle uint64
}

// Option configures a Machine at construction.
type Option func(*options)

type options struct {
	head int
}

// WithHead sets the initial head position (default: 0).
func WithHead(head int) Option {
	return func(o *options) {
		o.head = head
	}
}

// New validates its inputs and returns a machine in state 1 at cycle 0.
// On failure it returns a *domain.ConfigurationError and no machine.
// The tape is copied; the rule table is referenced and must not be modified afterwards.
func New(tape []domain.Symbol, alphabet domain.Alphabet, rules domain.RuleTable, opts ...Option) (*Machine, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if err := Validate(tape, alphabet, rules); err != nil {
		return nil, err
	}

	if o.head < 0 || o.head >= len(tape) {
		return nil, &domain.ConfigurationError{
			Reason: domain.ErrHeadOutOfRange,
			Detail: fmt.Sprintf("head %d, tape length %d", o.head, len(tape)),
		}
	}

	return &Machine{
		rules: rules,
		tape:  slices.Clone(tape),
		head:  o.head,
		state: domain.StateInitial,
	}, nil
}

// Validate checks the construction invariants without building a machine.
// Every unknown symbol is reported, not just the first one.
func Validate(tape []domain.Symbol, alphabet domain.Alphabet, rules domain.RuleTable) error {
	if len(tape) == 0 {
		return &domain.ConfigurationError{Reason: domain.ErrEmptyTape}
	}

	if alphabet.Contains(domain.Blank) {
		return &domain.ConfigurationError{Reason: domain.ErrReservedSymbol}
	}

	for _, k := range rules.Keys() {
		if r := rules[k]; !r.Direction.Valid() {
			return &domain.ConfigurationError{
				Reason: domain.ErrInvalidDirection,
				Detail: fmt.Sprintf("%s for %q in state %d", r.Direction, rune(k.Symbol), k.State),
			}
		}
	}

	unknown := make(map[domain.Symbol]struct{})
	check := func(s domain.Symbol) {
		if !alphabet.Accepts(s) {
			unknown[s] = struct{}{}
		}
	}

	for key, rule := range rules {
		check(key.Symbol)
		check(rule.Value)
	}
	for _, s := range tape {
		check(s)
	}

	if len(unknown) > 0 {
		symbols := make([]domain.Symbol, 0, len(unknown))
		for s := range unknown {
			symbols = append(symbols, s)
		}
		slices.Sort(symbols)
		return &domain.ConfigurationError{
			Reason:  domain.ErrUnknownSymbols,
			Symbols: symbols,
		}
	}

	return nil
}

// Step applies the rule for the symbol under the head and the current state.
//
// If no rule exists it returns a *domain.NoRuleError and nothing is modified.
// Stepping a halted machine returns domain.ErrHalted, also without side effects.
func (m *Machine) Step() error {
	if m.IsFinished() {
		return domain.ErrHalted
	}

	value := m.tape[m.head]
	rule, ok := m.rules.Lookup(value, m.state)
	if !ok {
		return &domain.NoRuleError{Value: value, State: m.state}
	}

	m.tape[m.head] = rule.Value

	switch rule.Direction {
	case domain.Left:
		m.moveLeft()
	case domain.Right:
		m.moveRight()
	case domain.Stay:
		// head keeps its cell
	}

	m.state = rule.State
	m.cycle++

	return nil
}

// IsFinished reports whether the machine reached the halting state.
func (m *Machine) IsFinished() bool {
	return m.state.Halted()
}

func (m *Machine) moveLeft() {
	if m.head == 0 {
		m.head = len(m.tape) - 1
	} else {
		m.head--
	}
}

func (m *Machine) moveRight() {
	if m.head == len(m.tape)-1 {
		m.head = 0
	} else {
		m.head++
	}
}

// Cycle returns the number of steps executed so far.
func (m *Machine) Cycle() uint64 { return m.cycle }

// State returns the current state.
func (m *Machine) State() domain.StateID { return m.state }

// Head returns the current head index.
func (m *Machine) Head() int { return m.head }

// Len returns the tape length.
func (m *Machine) Len() int { return len(m.tape) }

// Current returns the symbol under the head.
func (m *Machine) Current() domain.Symbol { return m.tape[m.head] }

// At returns the symbol stored in cell i. It panics if i is not a valid index.
func (m *Machine) At(i int) domain.Symbol { return m.tape[i] }

// Tape returns a copy of the tape.
func (m *Machine) Tape() []domain.Symbol {
	return slices.Clone(m.tape)
}

// Snapshot returns a copy of the run state.
func (m *Machine) Snapshot() domain.Snapshot {
	return domain.Snapshot{
		Cycle: m.cycle,
		State: m.state,
		Head:  m.head,
		Tape:  m.Tape(),
	}
}

func (m *Machine) String() string {
	return fmt.Sprintf(
		"Cycle: %d, state: %d, head index: %d\nMemory dump: %s",
		m.cycle,
		m.state,
		m.head,
		RenderTape(m.tape, m.head),
	)
}

// RenderTape returns the tape with the cell at head wrapped in braces, e.g. "ab{c}de".
func RenderTape(tape []domain.Symbol, head int) string {
	var b strings.Builder
	b.Grow(len(tape) + 2)

	for i, s := range tape {
		if i == head {
			b.WriteRune('{')
			b.WriteRune(rune(s))
			b.WriteRune('}')
			continue
		}
		b.WriteRune(rune(s))
	}

	return b.String()
}
