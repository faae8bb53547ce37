package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyTape is the reason of a ConfigurationError for a zero-length tape.
	ErrEmptyTape = errors.New("tape cannot be empty")

	// ErrReservedSymbol is the reason of a ConfigurationError for an alphabet declaring Blank.
	ErrReservedSymbol = errors.New(`alphabet should not contain '\' because '\' is a special character`)

	// ErrUnknownSymbols is the reason of a ConfigurationError for symbols outside the alphabet.
	ErrUnknownSymbols = errors.New("rules or tape contain unknown symbols")

	// ErrInvalidDirection is the reason of a ConfigurationError for a rule moving neither left, right nor staying.
	ErrInvalidDirection = errors.New("rule has an invalid direction")

	// ErrHeadOutOfRange is the reason of a ConfigurationError for an initial head outside the tape.
	ErrHeadOutOfRange = errors.New("head position is outside the tape")

	// ErrHalted is returned when stepping a machine that already reached StateHalted.
	ErrHalted = errors.New("machine has halted")

	// ErrDefinitionNotFound is returned when a machine definition cannot be found in a store.
	ErrDefinitionNotFound = errors.New("definition not found")
)

// ConfigurationError reports a machine that cannot be constructed.
type ConfigurationError struct {
	Reason  error
	Symbols []Symbol // offending symbols, for ErrUnknownSymbols
	Detail  string
}

func (e *ConfigurationError) Error() string {
	msg := e.Reason.Error()
	if len(e.Symbols) > 0 {
		quoted := make([]string, len(e.Symbols))
		for i, s := range e.Symbols {
			quoted[i] = fmt.Sprintf("%q", rune(s))
		}
		msg += ": " + strings.Join(quoted, ", ")
	}
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

func (e *ConfigurationError) Unwrap() error {
	return e.Reason
}

// NoRuleError is returned by a step when no rule exists for the current
// symbol and state. The machine is left untouched.
type NoRuleError struct {
	Value Symbol
	State StateID
}

func (e *NoRuleError) Error() string {
	return fmt.Sprintf("no rule for value %q and state %d", rune(e.Value), e.State)
}

// IncorrectRuleError reports a rule whose textual encoding cannot be parsed.
type IncorrectRuleError struct {
	Rule   string
	Reason string
}

func (e *IncorrectRuleError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("incorrect rule %q", e.Rule)
	}
	return fmt.Sprintf("incorrect rule %q: %s", e.Rule, e.Reason)
}

// IsNoRule reports whether err is, or wraps, a NoRuleError.
func IsNoRule(err error) bool {
	var nr *NoRuleError
	return errors.As(err, &nr)
}

// IsConfiguration reports whether err is, or wraps, a ConfigurationError.
func IsConfiguration(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}
