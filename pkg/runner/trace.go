package runner

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machine"
)

// TraceFormatter writes one configuration of a running machine.
type TraceFormatter func(w io.Writer, m *machine.Machine) error

// TextTrace writes the two-line configuration dump:
//
//	Cycle: 2, state: 1, head index: 2
//	Memory dump: ab{c}de
func TextTrace(w io.Writer, m *machine.Machine) error {
	_, err := fmt.Fprintln(w, m.String())
	return err
}

// TraceLine is one record of JSONTrace.
type TraceLine struct {
	Cycle uint64         `json:"cycle"`
	State domain.StateID `json:"state"`
	Head  int            `json:"head"`
	Tape  string         `json:"tape"`
}

// JSONTrace writes one JSON object per configuration.
func JSONTrace(w io.Writer, m *machine.Machine) error {
	snap := m.Snapshot()
	return json.NewEncoder(w).Encode(TraceLine{
		Cycle: snap.Cycle,
		State: snap.State,
		Head:  snap.Head,
		Tape:  snap.TapeString(),
	})
}
