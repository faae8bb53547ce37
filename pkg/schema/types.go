package schema

import (
	"fmt"
	"reflect"
	"sort"
	"unicode/utf8"
)

// Type defines the contract for field validation.
// Implementations determine how values are validated against a type.
type Type interface {
	// Name returns the human-readable name of the type (e.g., "string", "int").
	Name() string
	// Validate checks if a value conforms to this type.
	Validate(value any) error
}

// --- Built-in Type Implementations ---

// StringType validates string values.
type StringType struct{}

func (t *StringType) Name() string { return "string" }

func (t *StringType) Validate(value any) error {
	_, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected string, got %T", value)
	}
	return nil
}

// IntType validates integer values.
type IntType struct{}

func (t *IntType) Name() string { return "int" }

func (t *IntType) Validate(value any) error {
	switch v := value.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return nil
	case float64:
		// Accept floats that are whole numbers (from JSON unmarshaling)
		if v == float64(int64(v)) {
			return nil
		}
		return fmt.Errorf("expected int, got float (not a whole number)")
	default:
		return fmt.Errorf("expected int, got %T", value)
	}
}

// SymbolsType validates a sequence of single characters, written either as a
// string ("ab") or as a list of one-character strings (["a", "b"]).
type SymbolsType struct{}

func (t *SymbolsType) Name() string { return "symbols" }

func (t *SymbolsType) Validate(value any) error {
	if _, ok := value.(string); ok {
		return nil
	}

	rv := reflect.ValueOf(value)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return fmt.Errorf("expected string or list of symbols, got %T", value)
	}
	for i := 0; i < rv.Len(); i++ {
		s, ok := rv.Index(i).Interface().(string)
		if !ok {
			return fmt.Errorf("element %d: expected string, got %T", i, rv.Index(i).Interface())
		}
		if utf8.RuneCountInString(s) != 1 {
			return fmt.Errorf("element %d: %q is not a single character", i, s)
		}
	}
	return nil
}

// MapType validates mappings whose values conform to an element type.
// Keys may be of any scalar type; YAML decodes integer keys as ints.
type MapType struct {
	elemType Type
}

func (t *MapType) Name() string {
	return fmt.Sprintf("{%s}", t.elemType.Name())
}

func (t *MapType) Validate(value any) error {
	rv := reflect.ValueOf(value)
	if !rv.IsValid() || rv.Kind() != reflect.Map {
		return fmt.Errorf("expected mapping, got %T", value)
	}

	keys := rv.MapKeys()
	sort.Slice(keys, func(i, j int) bool {
		return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
	})
	for _, k := range keys {
		if err := t.elemType.Validate(rv.MapIndex(k).Interface()); err != nil {
			return fmt.Errorf("key %v: %w", k.Interface(), err)
		}
	}
	return nil
}

// OptionalType marks a field that may be absent.
type OptionalType struct {
	Type
}

func (t *OptionalType) Name() string { return t.Type.Name() + "?" }

// --- Factory Functions ---

// String creates a string type validator.
func String() Type { return &StringType{} }

// Int creates an integer type validator.
func Int() Type { return &IntType{} }

// Symbols creates a validator for sequences of single characters.
func Symbols() Type { return &SymbolsType{} }

// Map creates a mapping validator for values of the given type.
func Map(elemType Type) Type {
	return &MapType{elemType: elemType}
}

// Optional allows the field to be missing from the document.
func Optional(t Type) Type {
	return &OptionalType{Type: t}
}
