package graph

import (
	"fmt"
	"strings"

	"github.com/jesterworks/canopy/pkg/domain"
)

// GenerateMermaid produces a Mermaid flowchart (graph TD) from a tree
// snapshot. Semantic shapes per node kind:
// - parallel: ((Circle))
// - sequence: [[Subroutine]]
// - first_valid / sticky_first_valid: {Diamond}
// - capability: [Rectangle]
// Enabled capabilities are highlighted with an overlay class.
func GenerateMermaid(root domain.NodeInfo) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	var enabled []string
	next := 0

	var walk func(n domain.NodeInfo, parentID string)
	walk = func(n domain.NodeInfo, parentID string) {
		id := fmt.Sprintf("n%d", next)
		next++

		opener, closer := "[", "]"
		switch n.Kind {
		case domain.KindParallel:
			opener, closer = "((", "))"
		case domain.KindSequence:
			opener, closer = "[[", "]]"
		case domain.KindFirstValid, domain.KindStickyFirstValid:
			opener, closer = "{", "}"
		}

		label := nodeLabel(n)
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", id, opener, label, closer))

		if parentID != "" {
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", parentID, id))
		}
		if n.Kind == domain.KindCapability && n.Enabled {
			enabled = append(enabled, id)
		}

		for _, child := range n.Children {
			walk(child, id)
		}
	}
	walk(root, "")

	if len(enabled) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text for high contrast regardless of theme.
		sb.WriteString("    classDef active fill:#e8f5e9,stroke:#2e7d32,stroke-width:3px,color:#000;\n")
		for _, id := range enabled {
			sb.WriteString(fmt.Sprintf("    class %s active;\n", id))
		}
	}

	return sb.String()
}

func nodeLabel(n domain.NodeInfo) string {
	label := n.Name
	if label == "" {
		label = string(n.Kind)
	} else if n.Kind != domain.KindCapability {
		label = fmt.Sprintf("%s: %s", n.Kind, n.Name)
	}
	if len(n.Tags) > 0 {
		label = fmt.Sprintf("%s <br/> %s", label, strings.Join(n.Tags, ", "))
	}
	// Escape double quotes for the Mermaid label.
	return strings.ReplaceAll(label, "\"", "'")
}
