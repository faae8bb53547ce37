package graph

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
)

// GraphOverlay contains run data to visualize on the graph.
type GraphOverlay struct {
	VisitedStates []domain.StateID
	CurrentState  domain.StateID
	HasCurrent    bool
}

// GenerateMermaid produces a Mermaid flowchart of the state transitions in rules.
// It applies semantic styling:
// - Initial state: ((Circle))
// - Halt state: (((Double circle)))
// - Default: [Rectangle]
// Every rule becomes one edge labelled "read/write move".
// It also applies overlay styles (Visited/Current) if provided.
func GenerateMermaid(rules domain.RuleTable, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	states := map[domain.StateID]struct{}{domain.StateInitial: {}}
	for k, r := range rules {
		states[k.State] = struct{}{}
		states[r.State] = struct{}{}
	}

	ids := make([]domain.StateID, 0, len(states))
	for s := range states {
		ids = append(ids, s)
	}
	slices.Sort(ids)

	for _, s := range ids {
		opener, closer := "[", "]"
		switch s {
		case domain.StateInitial:
			opener, closer = "((", "))"
		case domain.StateHalted:
			opener, closer = "(((", ")))"
		}
		fmt.Fprintf(&sb, "    %s%s\"%d\"%s\n", nodeID(s), opener, s, closer)
	}

	for _, k := range rules.Keys() {
		r := rules[k]
		label := fmt.Sprintf("%s/%s %c", symbolLabel(k.Symbol), symbolLabel(r.Value), r.Direction.Letter())
		fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n", nodeID(k.State), label, nodeID(r.State))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[domain.StateID]bool)
		for _, s := range overlay.VisitedStates {
			if seen[s] {
				continue
			}
			seen[s] = true
			fmt.Fprintf(&sb, "    class %s visited;\n", nodeID(s))
		}

		if overlay.HasCurrent {
			fmt.Fprintf(&sb, "    class %s current;\n", nodeID(overlay.CurrentState))
		}
	}

	return sb.String()
}

func nodeID(s domain.StateID) string {
	return fmt.Sprintf("s%d", s)
}

// symbolLabel keeps edge labels valid Mermaid: quotes become #quot; and blank is spelled out.
func symbolLabel(s domain.Symbol) string {
	switch s {
	case domain.Blank:
		return "blank"
	case '"':
		return "#quot;"
	default:
		return string(rune(s))
	}
}
