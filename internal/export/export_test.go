package export

import (
	"encoding/json"
	"strings"
	"testing"

	"modviz/internal/config"
	"modviz/internal/depmap"
	"modviz/internal/graph"
)

func fixture(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.Build(map[string]depmap.Deps{
		"core/engine": {PublicDeps: []string{"ui/panel"}, CategoryPath: "Core > engine"},
		"ui/panel":    {PrivateDeps: []string{"core/engine"}, CategoryPath: "UI > panels"},
	}, config.Default())
	for i := range g.Nodes {
		g.Nodes[i].X = float64(i) * 10
		g.Nodes[i].Y = 1
		g.Nodes[i].Z = -2
	}
	return g
}

func TestLayoutSnapshot(t *testing.T) {
	g := fixture(t)
	data, err := Layout(g)
	if err != nil {
		t.Fatalf("Layout failed: %v", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatalf("snapshot is not valid JSON: %v", err)
	}
	if len(snap.Nodes) != 2 || len(snap.Edges) != 2 {
		t.Fatalf("snapshot has %d nodes %d edges", len(snap.Nodes), len(snap.Edges))
	}

	byID := map[string]LayoutNode{}
	for _, n := range snap.Nodes {
		byID[n.ID] = n
	}
	eng := byID["core/engine"]
	if eng.Group != "Core" || eng.DepCount != 1 || eng.Z != -2 {
		t.Errorf("snapshot node = %+v", eng)
	}

	kinds := map[string]bool{}
	for _, e := range snap.Edges {
		kinds[e.Kind] = true
	}
	if !kinds["public"] || !kinds["private"] {
		t.Errorf("edge kinds not preserved: %v", kinds)
	}
}

func TestDOT(t *testing.T) {
	out := DOT(fixture(t))
	if !strings.HasPrefix(out, "digraph modviz {") {
		t.Error("missing digraph header")
	}
	if !strings.Contains(out, `"core/engine" -> "ui/panel";`) {
		t.Errorf("missing public edge:\n%s", out)
	}
	if !strings.Contains(out, `"ui/panel" -> "core/engine" [style=dashed];`) {
		t.Errorf("private edge should be dashed:\n%s", out)
	}
}

func TestHTMLSelfContained(t *testing.T) {
	out := HTML(fixture(t))
	for _, want := range []string{"<!DOCTYPE html>", "core/engine", "ui/panel", "const NODES=", "const EDGES="} {
		if !strings.Contains(out, want) {
			t.Errorf("HTML output missing %q", want)
		}
	}
	if strings.Contains(out, "src=") {
		t.Error("viewer must not reference external assets")
	}
}
