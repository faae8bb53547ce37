package compiler

import (
	"fmt"
	"sort"
	"strconv"
	"unicode/utf8"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/schema"
)

// ParseRule decodes the compact rule encoding: one direction letter (L, S or R),
// exactly one symbol, then the decimal id of the next state.
//
//	Ra1   write 'a', move right, go to state 1
//	S\0   write blank, stay, halt
func ParseRule(token string) (domain.Rule, error) {
	runes := []rune(token)
	if len(runes) < 3 {
		return domain.Rule{}, &domain.IncorrectRuleError{Rule: token, Reason: "expected <direction><symbol><state>"}
	}

	dir, ok := domain.DirectionFromLetter(runes[0])
	if !ok {
		return domain.Rule{}, &domain.IncorrectRuleError{
			Rule:   token,
			Reason: fmt.Sprintf("unknown direction %q", runes[0]),
		}
	}

	if runes[1] == utf8.RuneError {
		return domain.Rule{}, &domain.IncorrectRuleError{Rule: token, Reason: "invalid symbol encoding"}
	}

	state, err := strconv.ParseUint(string(runes[2:]), 10, 0)
	if err != nil {
		return domain.Rule{}, &domain.IncorrectRuleError{
			Rule:   token,
			Reason: fmt.Sprintf("invalid state %q", string(runes[2:])),
		}
	}

	return domain.Rule{
		Direction: dir,
		Value:     domain.Symbol(runes[1]),
		State:     domain.StateID(state),
	}, nil
}

// FormatRule is the inverse of ParseRule.
func FormatRule(r domain.Rule) string {
	return fmt.Sprintf("%c%c%d", r.Direction.Letter(), rune(r.Value), r.State)
}

// Compile turns the raw rule mapping of a definition (symbol -> state -> token)
// into a RuleTable. Every malformed key or token is reported, and so is a
// second rule for a (symbol, state) pair, e.g. state keys "1" and "01".
func Compile(raw map[string]map[string]string) (domain.RuleTable, error) {
	table := make(domain.RuleTable)
	seen := make(map[domain.RuleKey]string)
	var errs []error

	for _, symbolKey := range sortedKeys(raw) {
		symbol, err := parseSymbol(symbolKey)
		if err != nil {
			errs = append(errs, &schema.ValidationError{
				Key:    "rules." + symbolKey,
				Reason: err.Error(),
			})
			continue
		}

		states := raw[symbolKey]
		for _, stateKey := range sortedKeys(states) {
			key := "rules." + symbolKey + "." + stateKey

			state, err := strconv.ParseUint(stateKey, 10, 0)
			if err != nil {
				errs = append(errs, &schema.ValidationError{
					Key:    key,
					Reason: fmt.Sprintf("state %q is not a non-negative integer", stateKey),
				})
				continue
			}

			token := states[stateKey]
			rule, err := ParseRule(token)
			if err != nil {
				errs = append(errs, &schema.ValidationError{
					Key:    key,
					Reason: err.Error(),
					Err:    err,
				})
				continue
			}

			rk := domain.RuleKey{Symbol: symbol, State: domain.StateID(state)}
			if first, ok := seen[rk]; ok {
				errs = append(errs, &schema.ValidationError{
					Key:    key,
					Reason: fmt.Sprintf("duplicate rule for state %d (also given as %q)", state, first),
				})
				continue
			}
			seen[rk] = stateKey

			table.Set(symbol, domain.StateID(state), rule)
		}
	}

	if err := schema.Join(errs...); err != nil {
		return nil, err
	}
	return table, nil
}

func parseSymbol(s string) (domain.Symbol, error) {
	var sym domain.Symbol
	if err := sym.UnmarshalText([]byte(s)); err != nil {
		return 0, err
	}
	return sym, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
