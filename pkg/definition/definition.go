// Package definition loads machine definitions from YAML or JSON documents and
// compiles them into Programs that build ready-to-run machines.
//
// A definition looks like:
//
//	name: flip
//	alphabet: ab
//	memory: 'abba\'
//	head: 0
//	rules:
//	  a: {1: Rb1}
//	  b: {1: Ra1}
//	  '\': {1: 'S\0'}
//
// alphabet and memory accept a string (one symbol per character) or a list of
// single-character strings. Each rule uses the compact <direction><symbol><state>
// encoding parsed by internal/compiler.
package definition

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/schema"
)

// ErrInvalidDefinition wraps every error caused by a malformed document.
var ErrInvalidDefinition = errors.New("invalid machine definition")

// Format identifies the serialization of a definition document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the format from the file extension, defaulting to YAML.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// ParseFormat validates a user-supplied format name. Empty means YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported format %q", s)
	}
}

// Definition is the user-facing description of a machine.
type Definition struct {
	Name        string                       `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
	Description string                       `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	Alphabet    []string                     `json:"alphabet" yaml:"alphabet" mapstructure:"alphabet"`
	Memory      []string                     `json:"memory" yaml:"memory" mapstructure:"memory"`
	Head        int                          `json:"head,omitempty" yaml:"head,omitempty" mapstructure:"head"`
	Rules       map[string]map[string]string `json:"rules" yaml:"rules" mapstructure:"rules"`
}

var documentSchema = schema.Schema{
	"name":        schema.Optional(schema.String()),
	"description": schema.Optional(schema.String()),
	"alphabet":    schema.Symbols(),
	"memory":      schema.Symbols(),
	"head":        schema.Optional(schema.Int()),
	"rules":       schema.Map(schema.Map(schema.String())),
}

// Load reads a definition file. The format is chosen by extension.
// When the document has no name, the file name without extension is used.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition: %w", err)
	}

	def, err := Parse(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if def.Name == "" {
		def.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return def, nil
}

// Parse decodes a definition document.
func Parse(data []byte, format Format) (*Definition, error) {
	var raw map[string]any

	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%w: failed to parse json: %w", ErrInvalidDefinition, err)
		}
	case FormatYAML, "":
		var doc yaml.Node
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%w: failed to parse yaml: %w", ErrInvalidDefinition, err)
		}
		if err := duplicateStateKeys(&doc); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidDefinition, err)
		}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%w: failed to parse yaml: %w", ErrInvalidDefinition, err)
		}
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}

	if raw == nil {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidDefinition)
	}

	return Decode(raw)
}

// duplicateStateKeys reports state keys of one symbol that YAML resolves to the
// same value, such as 1 and 01. Decoding into a map would silently keep only one.
func duplicateStateKeys(doc *yaml.Node) error {
	root := doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	rules := mappingValue(root, "rules")
	if rules == nil || rules.Kind != yaml.MappingNode {
		return nil
	}

	var errs []error
	for i := 0; i+1 < len(rules.Content); i += 2 {
		symbol, states := rules.Content[i], rules.Content[i+1]
		if states.Kind != yaml.MappingNode {
			continue
		}

		seen := make(map[string]string)
		for j := 0; j+1 < len(states.Content); j += 2 {
			keyNode := states.Content[j]
			var v any
			if err := keyNode.Decode(&v); err != nil {
				continue
			}
			resolved := fmt.Sprint(v)
			if first, ok := seen[resolved]; ok {
				errs = append(errs, &schema.ValidationError{
					Key:    "rules." + symbol.Value + "." + keyNode.Value,
					Reason: fmt.Sprintf("duplicate rule for state %s (also given as %q)", resolved, first),
				})
				continue
			}
			seen[resolved] = keyNode.Value
		}
	}
	return schema.Join(errs...)
}

func mappingValue(n *yaml.Node, key string) *yaml.Node {
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1]
		}
	}
	return nil
}

// Decode converts a loosely typed document into a Definition.
// Schema violations are reported together as a *schema.AggregateError.
func Decode(raw map[string]any) (*Definition, error) {
	if err := schema.Validate(documentSchema, raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDefinition, err)
	}

	var def Definition
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       splitSymbolsHook,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &def,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}

	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDefinition, err)
	}

	return &def, nil
}

// splitSymbolsHook lets alphabet and memory be written as plain strings.
func splitSymbolsHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to != reflect.TypeOf([]string{}) {
		return data, nil
	}

	s := data.(string)
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out, nil
}

// Encode serializes a definition. Alphabet and memory are written as strings,
// which is the shortest form that Parse accepts back.
func Encode(def *Definition, format Format) ([]byte, error) {
	doc := encodedDefinition{
		Name:        def.Name,
		Description: def.Description,
		Alphabet:    strings.Join(def.Alphabet, ""),
		Memory:      strings.Join(def.Memory, ""),
		Head:        def.Head,
		Rules:       def.Rules,
	}

	switch format {
	case FormatJSON:
		return json.MarshalIndent(doc, "", "  ")
	case FormatYAML, "":
		return yaml.Marshal(doc)
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

type encodedDefinition struct {
	Name        string                       `json:"name,omitempty" yaml:"name,omitempty"`
	Description string                       `json:"description,omitempty" yaml:"description,omitempty"`
	Alphabet    string                       `json:"alphabet" yaml:"alphabet"`
	Memory      string                       `json:"memory" yaml:"memory"`
	Head        int                          `json:"head,omitempty" yaml:"head,omitempty"`
	Rules       map[string]map[string]string `json:"rules" yaml:"rules"`
}

// Clone returns a deep copy of the definition.
func (d *Definition) Clone() *Definition {
	c := *d
	c.Alphabet = slices.Clone(d.Alphabet)
	c.Memory = slices.Clone(d.Memory)
	if d.Rules != nil {
		c.Rules = make(map[string]map[string]string, len(d.Rules))
		for symbol, states := range d.Rules {
			c.Rules[symbol] = maps.Clone(states)
		}
	}
	return &c
}

// IsInvalid reports whether err was caused by a bad definition rather than by I/O:
// malformed documents, bad rule tokens, or machines that fail validation.
func IsInvalid(err error) bool {
	var aggr *schema.AggregateError
	return errors.Is(err, ErrInvalidDefinition) || errors.As(err, &aggr) || domain.IsConfiguration(err)
}
