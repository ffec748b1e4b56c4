// Package export serializes a laid-out graph for downstream consumers:
// a JSON position snapshot for renderers, Graphviz DOT for tooling, and a
// self-contained HTML viewer for quick inspection in a browser.
package export

import (
	"encoding/json"
	"fmt"
	"strings"

	"modviz/internal/graph"
)

// LayoutNode is one node in the JSON snapshot.
type LayoutNode struct {
	ID           string  `json:"id"`
	Group        string  `json:"group"`
	CategoryPath string  `json:"categoryPath"`
	DepCount     int     `json:"depCount"`
	Radius       float64 `json:"radius"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	Z            float64 `json:"z"`
}

// LayoutEdge is one edge in the JSON snapshot.
type LayoutEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Kind   string `json:"kind"`
}

// Snapshot is the serialized face of the layout output contract.
type Snapshot struct {
	Nodes []LayoutNode `json:"nodes"`
	Edges []LayoutEdge `json:"edges"`
}

// Layout returns the current positions and edges as pretty-printed JSON.
func Layout(g *graph.Graph) ([]byte, error) {
	snap := Snapshot{
		Nodes: make([]LayoutNode, 0, len(g.Nodes)),
		Edges: make([]LayoutEdge, 0, len(g.Edges)),
	}
	for i := range g.Nodes {
		n := &g.Nodes[i]
		snap.Nodes = append(snap.Nodes, LayoutNode{
			ID:           n.ID,
			Group:        n.Group,
			CategoryPath: n.CategoryPath,
			DepCount:     n.DepCount,
			Radius:       n.Radius,
			X:            n.X,
			Y:            n.Y,
			Z:            n.Z,
		})
	}
	for _, e := range g.Edges {
		snap.Edges = append(snap.Edges, LayoutEdge{
			Source: e.Source,
			Target: e.Target,
			Kind:   string(e.Kind),
		})
	}
	return json.MarshalIndent(snap, "", "  ")
}

// DOT returns the dependency graph in Graphviz DOT format. Private
// dependencies render dashed. Output order is deterministic.
func DOT(g *graph.Graph) string {
	var b strings.Builder
	b.WriteString("digraph modviz {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [shape=box, style=rounded];\n\n")

	for i := range g.Nodes {
		n := &g.Nodes[i]
		label := n.ID
		if n.Group != "" {
			label += "\\n(" + n.Group + ")"
		}
		b.WriteString(fmt.Sprintf("  %q [label=%q];\n", n.ID, label))
	}

	b.WriteString("\n")
	for _, e := range g.Edges {
		if e.Kind == graph.Private {
			b.WriteString(fmt.Sprintf("  %q -> %q [style=dashed];\n", e.Source, e.Target))
		} else {
			b.WriteString(fmt.Sprintf("  %q -> %q;\n", e.Source, e.Target))
		}
	}

	b.WriteString("}\n")
	return b.String()
}
