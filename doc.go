/*
Package turing runs single-tape Turing machines with a circular tape.

A machine is described by a definition: an alphabet, the initial tape (its
memory), and a rule table mapping (symbol read, state) to (move, symbol to
write, next state). Machines start in state 1 with the head on cell 0 and
halt on reaching state 0. The blank symbol `\` is always part of the alphabet.

# Definitions

Definitions are YAML or JSON documents. Rules are written in compact form,
move letter (L, R or S) followed by the symbol to write and the next state:

	name: flip
	alphabet: ab
	memory: 'abba\'
	rules:
	  a: {1: Rb1}
	  b: {1: Ra1}
	  '\': {1: 'S\0'}

Every symbol on the tape and in the rules must belong to the alphabet.
Construction fails with a *domain.ConfigurationError listing all unknown
symbols, sorted.

# Usage

	eng, err := turing.Open("flip.yaml")
	if err != nil {
		log.Fatal(err)
	}

	res, err := eng.Run(ctx)
	if err != nil {
		log.Fatal(err) // stuck (no rule) or cancelled
	}
	fmt.Println(res.RenderedTape()) // baab{\}

For step-by-step control use the compiled program directly:

	m, _ := eng.Program().NewMachine()
	for !m.IsFinished() {
		if err := m.Step(); err != nil {
			break // *domain.NoRuleError, m is unchanged
		}
	}
	fmt.Println(m)

The cmd/turing binary wraps the same packages with run, validate, inspect,
serve (HTTP API) and mcp (Model Context Protocol) commands.
*/
package turing
