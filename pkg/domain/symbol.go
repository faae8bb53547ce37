package domain

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"
)

// Symbol is a single character written on the tape.
type Symbol rune

func (s Symbol) String() string {
	return string(rune(s))
}

// MarshalText encodes the symbol as its character.
func (s Symbol) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText accepts exactly one character.
func (s *Symbol) UnmarshalText(text []byte) error {
	r, size := utf8.DecodeRune(text)
	if r == utf8.RuneError || size != len(text) {
		return fmt.Errorf("symbol %q is not a single character", string(text))
	}
	*s = Symbol(r)
	return nil
}

// Symbols splits a string into one Symbol per rune.
func Symbols(s string) []Symbol {
	out := make([]Symbol, 0, len(s))
	for _, r := range s {
		out = append(out, Symbol(r))
	}
	return out
}

// JoinSymbols is the inverse of Symbols.
func JoinSymbols(symbols []Symbol) string {
	var b strings.Builder
	b.Grow(len(symbols))
	for _, s := range symbols {
		b.WriteRune(rune(s))
	}
	return b.String()
}

// Alphabet is the set of symbols a user declared for a machine.
// Blank is never stored in it; it is accepted implicitly.
type Alphabet map[Symbol]struct{}

// NewAlphabet creates an alphabet from the given symbols.
func NewAlphabet(symbols ...Symbol) Alphabet {
	a := make(Alphabet, len(symbols))
	for _, s := range symbols {
		a[s] = struct{}{}
	}
	return a
}

// Contains reports whether s was declared in the alphabet.
func (a Alphabet) Contains(s Symbol) bool {
	_, ok := a[s]
	return ok
}

// Accepts reports whether s may appear on a tape governed by this alphabet.
func (a Alphabet) Accepts(s Symbol) bool {
	return s == Blank || a.Contains(s)
}

// Symbols returns the declared symbols ordered by code point.
func (a Alphabet) Symbols() []Symbol {
	out := make([]Symbol, 0, len(a))
	for s := range a {
		out = append(out, s)
	}
	slices.Sort(out)
	return out
}
