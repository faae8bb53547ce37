package domain

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Direction is where the head moves after a rule writes its value.
type Direction int

const (
	Left Direction = iota
	Stay
	Right
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Stay:
		return "stay"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// Valid reports whether d is Left, Stay or Right.
func (d Direction) Valid() bool {
	return d == Left || d == Stay || d == Right
}

// Letter returns the one-letter code used by the compact rule encoding.
func (d Direction) Letter() rune {
	switch d {
	case Left:
		return 'L'
	case Stay:
		return 'S'
	case Right:
		return 'R'
	default:
		return '?'
	}
}

// DirectionFromLetter parses the one-letter code of a direction.
func DirectionFromLetter(r rune) (Direction, bool) {
	switch r {
	case 'L':
		return Left, true
	case 'S':
		return Stay, true
	case 'R':
		return Right, true
	default:
		return 0, false
	}
}

// MarshalText encodes the direction by name.
func (d Direction) MarshalText() ([]byte, error) {
	switch d {
	case Left, Stay, Right:
		return []byte(d.String()), nil
	default:
		return nil, fmt.Errorf("invalid direction %d", int(d))
	}
}

// UnmarshalText accepts the direction name or its letter, case-insensitively.
func (d *Direction) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "left", "l":
		*d = Left
	case "stay", "s":
		*d = Stay
	case "right", "r":
		*d = Right
	default:
		return fmt.Errorf("invalid direction %q", string(text))
	}
	return nil
}

// Rule is read as: write Value to the current cell, move the head per
// Direction, transition to State.
type Rule struct {
	Direction Direction `json:"direction"`
	Value     Symbol    `json:"value"`
	State     StateID   `json:"state"`
}

// RuleKey identifies the rule for a (symbol, state) pair.
type RuleKey struct {
	Symbol Symbol
	State  StateID
}

// RuleTable is the transition function of a machine.
// It is never mutated by stepping and may be shared between machines.
type RuleTable map[RuleKey]Rule

// Lookup returns the rule defined for value in state, if any.
func (t RuleTable) Lookup(value Symbol, state StateID) (Rule, bool) {
	r, ok := t[RuleKey{Symbol: value, State: state}]
	return r, ok
}

// Set defines the rule for value in state, replacing any previous one.
func (t RuleTable) Set(value Symbol, state StateID, rule Rule) {
	t[RuleKey{Symbol: value, State: state}] = rule
}

// Keys returns the table keys ordered by symbol, then state.
func (t RuleTable) Keys() []RuleKey {
	keys := make([]RuleKey, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b RuleKey) int {
		if c := cmp.Compare(a.Symbol, b.Symbol); c != 0 {
			return c
		}
		return cmp.Compare(a.State, b.State)
	})
	return keys
}
