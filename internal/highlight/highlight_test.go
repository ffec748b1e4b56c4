package highlight

import (
	"math"
	"testing"
	"time"

	"modviz/internal/config"
	"modviz/internal/depmap"
	"modviz/internal/graph"
)

// fixture: a-b-c chain plus an isolated d whose category matches "panel".
func fixture(t *testing.T) (*graph.Graph, *Engine) {
	t.Helper()
	cfg := config.Default()
	g := graph.Build(map[string]depmap.Deps{
		"a": {PublicDeps: []string{"b"}, CategoryPath: "Core > engine"},
		"b": {PrivateDeps: []string{"c"}, CategoryPath: "Core > engine"},
		"c": {CategoryPath: "UI > panels"},
		"d": {CategoryPath: "UI > panels > extra"},
	}, cfg)
	return g, New(g, &cfg.Highlight)
}

func none() Signals { return Signals{Hovered: -1} }

func TestResolveNone(t *testing.T) {
	_, e := fixture(t)
	res := e.Resolve(none())
	if res.Mode != ModeNone {
		t.Fatalf("expected ModeNone, got %v", res.Mode)
	}
	if len(res.Set) != 0 {
		t.Errorf("none mode has %d highlighted nodes", len(res.Set))
	}
	for i, n := range res.Nodes {
		if n.Dimmed || n.Scale != 1 {
			t.Errorf("node %d not neutral in none mode: %+v", i, n)
		}
	}
}

func TestFocusIncludesNeighbors(t *testing.T) {
	g, e := fixture(t)
	res := e.Resolve(Signals{Hovered: g.NodeMap["b"]})
	if res.Mode != ModeFocus {
		t.Fatalf("expected ModeFocus, got %v", res.Mode)
	}
	for _, id := range []string{"a", "b", "c"} {
		if _, ok := res.Set[g.NodeMap[id]]; !ok {
			t.Errorf("focus set missing %s", id)
		}
	}
	if _, ok := res.Set[g.NodeMap["d"]]; ok {
		t.Error("focus set includes unrelated node d")
	}
}

func TestPriorityFallthrough(t *testing.T) {
	g, e := fixture(t)
	all := Signals{
		Hovered:    g.NodeMap["a"],
		Selected:   []string{"c"},
		SearchTerm: "panel",
	}

	res := e.Resolve(all)
	if res.Mode != ModeFocus {
		t.Fatalf("hover active: expected focus, got %v", res.Mode)
	}
	// Focus resolution exactly: a plus its sole neighbor b.
	if len(res.Set) != 2 {
		t.Fatalf("focus set size %d, want 2", len(res.Set))
	}

	all.Hovered = -1
	res = e.Resolve(all)
	if res.Mode != ModeSelection {
		t.Fatalf("hover removed: expected selection, got %v", res.Mode)
	}
	if _, ok := res.Set[g.NodeMap["c"]]; !ok || len(res.Set) != 1 {
		t.Fatalf("selection set should be exactly {c}, got %v", res.Set)
	}

	all.Selected = nil
	res = e.Resolve(all)
	if res.Mode != ModeSearch {
		t.Fatalf("selection removed: expected search, got %v", res.Mode)
	}
	// "panel" matches c and d by category path.
	if len(res.Set) != 2 {
		t.Fatalf("search set size %d, want 2", len(res.Set))
	}
}

func TestSelectionNoNeighborExpansion(t *testing.T) {
	g, e := fixture(t)
	res := e.Resolve(Signals{Hovered: -1, Selected: []string{"b"}})
	if len(res.Set) != 1 {
		t.Fatalf("selection must not expand to neighbors, set=%v", res.Set)
	}
	if _, ok := res.Set[g.NodeMap["b"]]; !ok {
		t.Error("selection set missing b")
	}
}

func TestGlobalSearchFallback(t *testing.T) {
	_, e := fixture(t)
	res := e.Resolve(Signals{Hovered: -1, GlobalSearchTerm: "PANEL"})
	if res.Mode != ModeSearch || len(res.Set) != 2 {
		t.Fatalf("global term should activate case-insensitive search, got mode=%v set=%v", res.Mode, res.Set)
	}
}

func TestCacheHitAndInvalidation(t *testing.T) {
	g, e := fixture(t)
	sig := Signals{Hovered: g.NodeMap["a"], Selected: []string{"c"}, SearchTerm: "x"}

	e.Resolve(sig)
	e.Resolve(sig)
	if e.resolves != 1 {
		t.Fatalf("identical tuple recomputed: resolves=%d", e.resolves)
	}

	perturbed := []Signals{
		{Hovered: g.NodeMap["b"], Selected: []string{"c"}, SearchTerm: "x"},
		{Hovered: g.NodeMap["a"], Selected: []string{"d"}, SearchTerm: "x"},
		{Hovered: g.NodeMap["a"], Selected: []string{"c"}, SearchTerm: "y"},
		{Hovered: g.NodeMap["a"], Selected: []string{"c"}, SearchTerm: "x", GlobalSearchTerm: "z"},
		{Hovered: g.NodeMap["a"], Selected: []string{"c"}, SearchTerm: "x", ActiveCategory: "Core"},
	}
	for i, p := range perturbed {
		before := e.resolves
		e.Resolve(p)
		if e.resolves != before+1 {
			t.Errorf("perturbation %d did not trigger recompute", i)
		}
	}
}

func TestSelectionOrderIrrelevantToCache(t *testing.T) {
	_, e := fixture(t)
	e.Resolve(Signals{Hovered: -1, Selected: []string{"a", "c"}})
	e.Resolve(Signals{Hovered: -1, Selected: []string{"c", "a"}})
	if e.resolves != 1 {
		t.Errorf("selection order should not invalidate the cache: resolves=%d", e.resolves)
	}
}

func TestSelectionToggleSymmetry(t *testing.T) {
	_, e := fixture(t)
	base := Signals{Hovered: -1, Selected: []string{"a"}}

	before := e.Resolve(base)
	targets := append([]float64(nil), before.EdgeTargets...)

	e.Resolve(Signals{Hovered: -1, Selected: []string{"a", "b"}})
	after := e.Resolve(base)

	if after.Mode != before.Mode || len(after.Set) != len(before.Set) {
		t.Fatal("toggling a selection on and off changed the highlight state")
	}
	for i := range targets {
		if after.EdgeTargets[i] != targets[i] {
			t.Fatalf("edge %d target %.3f != %.3f after toggle", i, after.EdgeTargets[i], targets[i])
		}
	}
}

func TestEdgeTargetsFocus(t *testing.T) {
	g, e := fixture(t)
	cfg := e.cfg
	res := e.Resolve(Signals{Hovered: g.NodeMap["b"]})

	for i := range g.Edges {
		want := cfg.AlphaFocusDirect // both edges touch b in the fixture
		if res.EdgeTargets[i] != want {
			t.Errorf("edge %d target %.3f, want %.3f", i, res.EdgeTargets[i], want)
		}
	}

	// Hover a instead: a-b touches focus, b-c is one hop out.
	res = e.Resolve(Signals{Hovered: g.NodeMap["a"]})
	for i, edge := range g.Edges {
		want := cfg.AlphaFocusOneHop
		if edge.Source == "a" || edge.Target == "a" {
			want = cfg.AlphaFocusDirect
		}
		if res.EdgeTargets[i] != want {
			t.Errorf("edge %s->%s target %.3f, want %.3f", edge.Source, edge.Target, res.EdgeTargets[i], want)
		}
	}
}

func TestEdgeTargetsSelection(t *testing.T) {
	g, e := fixture(t)
	cfg := e.cfg
	res := e.Resolve(Signals{Hovered: -1, Selected: []string{"a", "b"}})
	for i, edge := range g.Edges {
		var want float64
		switch {
		case edge.Source == "a" && edge.Target == "b":
			want = cfg.AlphaSelFull
		case edge.Source == "b":
			want = cfg.AlphaSelPartial
		default:
			want = cfg.AlphaDim
		}
		if res.EdgeTargets[i] != want {
			t.Errorf("edge %s->%s target %.3f, want %.3f", edge.Source, edge.Target, res.EdgeTargets[i], want)
		}
	}
}

func TestSmoothingApproachesTarget(t *testing.T) {
	g, e := fixture(t)
	e.Resolve(Signals{Hovered: g.NodeMap["b"]})

	target := e.cached.EdgeTargets[0]
	prev := e.displayed[0]
	for i := 0; i < 60; i++ {
		disp := e.SmoothAlphas()
		cur := disp[0]
		if math.Abs(cur-target) > math.Abs(prev-target)+1e-12 {
			t.Fatalf("displayed alpha moved away from target at frame %d", i)
		}
		prev = cur
	}
	if math.Abs(prev-target) > 0.01 {
		t.Errorf("displayed alpha %.3f did not converge toward %.3f", prev, target)
	}
}

func TestIdlePulseBounded(t *testing.T) {
	for ms := 0; ms < 10000; ms += 37 {
		v := IdlePulse(time.Duration(ms) * time.Millisecond)
		if v < 0.9 || v > 1.1 {
			t.Fatalf("idle pulse %f out of breathing range", v)
		}
	}
}
