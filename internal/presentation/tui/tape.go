package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machine"
)

// TapeRenderer prints machine configurations. With termenv.Ascii the output
// is exactly the plain configuration dump; otherwise the head cell is
// highlighted instead of wrapped in braces.
type TapeRenderer struct {
	Profile termenv.Profile
}

// Trace matches runner.TraceFormatter.
func (r TapeRenderer) Trace(w io.Writer, m *machine.Machine) error {
	if r.Profile == termenv.Ascii {
		_, err := fmt.Fprintln(w, m.String())
		return err
	}

	header := fmt.Sprintf("Cycle: %d, state: %d, head index: %d", m.Cycle(), m.State(), m.Head())
	_, err := fmt.Fprintf(w, "%s\nMemory dump: %s\n",
		r.Profile.String(header).Faint(),
		r.Tape(m.Tape(), m.Head()),
	)
	return err
}

// Tape renders a tape with the head cell emphasized.
func (r TapeRenderer) Tape(tape []domain.Symbol, head int) string {
	if r.Profile == termenv.Ascii {
		return machine.RenderTape(tape, head)
	}

	var b strings.Builder
	for i, s := range tape {
		cell := string(rune(s))
		if i == head {
			b.WriteString(r.Profile.String(cell).Bold().Reverse().Foreground(r.Profile.Color("#f472b6")).String())
			continue
		}
		b.WriteString(cell)
	}
	return b.String()
}
