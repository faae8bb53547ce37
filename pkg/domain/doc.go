/*
Package domain contains the core domain models of the Turing engine.

It defines the vocabulary shared by the machine, the definition loader and the
adapters: symbols and alphabets, head directions, transition rules, state
identifiers and the error taxonomy. This package is kept pure and free of
external dependencies like I/O or persistence.

# Key Entities

  - Symbol: A single tape character. Blank (`\`) is reserved for unwritten cells.
  - Rule: What happens for a (symbol, state) pair: write, move, go to state.
  - RuleTable: The transition function, keyed by the composite RuleKey.
  - StateID: Numeric machine state. 0 halts, 1 is where every machine starts.
  - Snapshot: A read-only copy of a machine's run state, used for rendering.
*/
package domain
