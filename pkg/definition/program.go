package definition

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/turing/internal/compiler"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machine"
)

// Program is a compiled, validated definition. It is immutable and may be
// shared between goroutines; each NewMachine call gets its own tape.
type Program struct {
	Name        string
	Description string
	Alphabet    domain.Alphabet
	Tape        []domain.Symbol
	Rules       domain.RuleTable
	Head        int
}

// Compile parses the rule tokens and checks the machine invariants.
// Rule token errors are aggregated; machine errors are *domain.ConfigurationError.
func (d *Definition) Compile() (*Program, error) {
	rules, err := compiler.Compile(d.Rules)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDefinition, err)
	}

	p := &Program{
		Name:        d.Name,
		Description: d.Description,
		Alphabet:    domain.NewAlphabet(domain.Symbols(strings.Join(d.Alphabet, ""))...),
		Tape:        domain.Symbols(strings.Join(d.Memory, "")),
		Rules:       rules,
		Head:        d.Head,
	}

	// Building one machine runs the full validation, including the head range.
	if _, err := p.NewMachine(); err != nil {
		return nil, err
	}

	return p, nil
}

// NewMachine returns a fresh machine at cycle 0 in the initial state.
func (p *Program) NewMachine() (*machine.Machine, error) {
	return machine.New(p.Tape, p.Alphabet, p.Rules, machine.WithHead(p.Head))
}

// States returns the distinct states that have at least one rule, ascending.
func (p *Program) States() []domain.StateID {
	seen := make(map[domain.StateID]struct{})
	var states []domain.StateID
	for _, k := range p.Rules.Keys() {
		if _, ok := seen[k.State]; ok {
			continue
		}
		seen[k.State] = struct{}{}
		states = append(states, k.State)
	}
	slices.Sort(states)
	return states
}
