package cli

import (
	"fmt"
	"io"

	"github.com/aretw0/turing/pkg/definition"
)

// Validate checks that every file holds a definition that compiles.
// All files are checked; the first failure decides the returned error.
func Validate(paths []string, out io.Writer) error {
	var firstErr error

	for _, path := range paths {
		def, err := definition.Load(path)
		if err == nil {
			var prog *definition.Program
			prog, err = def.Compile()
			if err == nil {
				fmt.Fprintf(out, "%s: machine '%s' is valid ✅ (%d rules, %d states)\n",
					path, prog.Name, len(prog.Rules), len(prog.States()))
				continue
			}
			err = fmt.Errorf("%s: %w", path, err)
		}

		fmt.Fprintf(out, "%v\n", err)
		if firstErr == nil {
			firstErr = configError(err)
		}
	}

	return firstErr
}
