package turing_test

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/pkg/definition"
)

// ExampleNew runs a machine that swaps a and b until it reaches the blank cell.
func ExampleNew() {
	def, err := definition.Parse([]byte(`
name: flip
alphabet: ab
memory: 'abba\'
rules:
  a: {1: Rb1}
  b: {1: Ra1}
  '\': {1: 'S\0'}
`), definition.FormatYAML)
	if err != nil {
		log.Fatal(err)
	}

	engine, err := turing.New(def)
	if err != nil {
		log.Fatal(err)
	}

	res, err := engine.Run(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(res)
	fmt.Println(res.RenderedTape())
	// Output:
	// halted after 5 cycles (state 0, head 4)
	// baab{\}
}

// ExampleWithTrace prints every configuration, starting with the initial one.
func ExampleWithTrace() {
	def := &definition.Definition{
		Alphabet: []string{"0", "1"},
		Memory:   []string{`\`, "1", "0", "1", "1"},
		Head:     4,
		Rules: map[string]map[string]string{
			"1": {"1": "L01"},
			"0": {"1": "S10"},
			`\`: {"1": "S10"},
		},
	}

	engine, err := turing.New(def, turing.WithTrace(os.Stdout, nil))
	if err != nil {
		log.Fatal(err)
	}

	if _, err := engine.Run(context.Background()); err != nil {
		log.Fatal(err)
	}
	// Output:
	// Cycle: 0, state: 1, head index: 4
	// Memory dump: \101{1}
	// Cycle: 1, state: 1, head index: 3
	// Memory dump: \10{1}0
	// Cycle: 2, state: 1, head index: 2
	// Memory dump: \1{0}00
	// Cycle: 3, state: 0, head index: 2
	// Memory dump: \1{1}00
}
