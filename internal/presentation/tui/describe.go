package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/turing/internal/compiler"
	"github.com/aretw0/turing/pkg/definition"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machine"
)

// Describe renders a program as markdown: header, alphabet, initial tape and
// the rule table sorted by symbol then state.
func Describe(p *definition.Program) string {
	var b strings.Builder

	name := p.Name
	if name == "" {
		name = "machine"
	}
	fmt.Fprintf(&b, "# %s\n\n", name)
	if p.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", p.Description)
	}

	fmt.Fprintf(&b, "- **Alphabet:** %s\n", inlineCode(domain.JoinSymbols(p.Alphabet.Symbols())))
	fmt.Fprintf(&b, "- **Tape:** %s (%d cells)\n", inlineCode(machine.RenderTape(p.Tape, p.Head)), len(p.Tape))
	fmt.Fprintf(&b, "- **States:** %d\n", len(p.States()))
	fmt.Fprintf(&b, "- **Rules:** %d\n\n", len(p.Rules))

	b.WriteString("| Read | State | Write | Move | Next |\n")
	b.WriteString("|------|-------|-------|------|------|\n")
	for _, k := range p.Rules.Keys() {
		r := p.Rules[k]
		fmt.Fprintf(&b, "| %s | %d | %s | %s | %d |\n",
			cellCode(k.Symbol),
			k.State,
			cellCode(r.Value),
			r.Direction,
			r.State,
		)
	}

	b.WriteString("\nRules in compact form: ")
	tokens := make([]string, 0, len(p.Rules))
	for _, k := range p.Rules.Keys() {
		tokens = append(tokens, inlineCode(fmt.Sprintf("%c%d→%s", rune(k.Symbol), k.State, compiler.FormatRule(p.Rules[k]))))
	}
	b.WriteString(strings.Join(tokens, ", "))
	b.WriteString("\n")

	return b.String()
}

// inlineCode wraps s in backticks, using a double fence when s contains one.
func inlineCode(s string) string {
	if strings.Contains(s, "`") {
		return "`` " + s + " ``"
	}
	return "`" + s + "`"
}

// cellCode is inlineCode for table cells, where a pipe must be escaped.
func cellCode(s domain.Symbol) string {
	if s == '|' {
		return "`\\|`"
	}
	return inlineCode(string(rune(s)))
}
