// Package highlight resolves the user's overlapping focus, selection and
// search signals into a single highlight state plus per-edge opacity
// targets. Resolution is cached behind a dirty flag keyed on the full
// signal tuple, because the real computation is O(n+m) and must not run
// sixty times a second while nothing changes; the cheap per-frame alpha
// smoothing always runs so fades never snap.
package highlight

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"modviz/internal/config"
	"modviz/internal/graph"
)

// Mode is the resolved highlight discriminant.
type Mode int

const (
	ModeNone Mode = iota
	ModeFocus
	ModeSelection
	ModeSearch
)

// Signals is the current UI signal tuple, passed explicitly every frame.
// Hovered is a node index, -1 when nothing is hovered.
type Signals struct {
	ActiveCategory   string
	SearchTerm       string
	GlobalSearchTerm string
	Selected         []string
	Hovered          int
}

// NodeState is the per-node emphasis the renderer applies.
type NodeState struct {
	Scale  float64
	Glow   float64
	Dimmed bool
}

// Result is one resolved highlight state. Set holds node indices;
// EdgeTargets is parallel to the graph's edge slice.
type Result struct {
	Mode        Mode
	Set         map[int]struct{}
	Nodes       []NodeState
	EdgeTargets []float64
}

// Engine owns the highlight cache and the displayed edge alphas. The cache
// is the only cross-frame mutable state here and no one else writes it.
type Engine struct {
	g         *graph.Graph
	cfg       *config.Highlight
	key       string
	cached    *Result
	displayed []float64

	// resolves counts trips through the expensive path.
	resolves int
}

// New creates an engine for a built graph. Displayed alphas start at the
// neutral level so the first fade eases from a sensible baseline.
func New(g *graph.Graph, cfg *config.Highlight) *Engine {
	disp := make([]float64, len(g.Edges))
	for i := range disp {
		disp[i] = cfg.AlphaNeutral
	}
	return &Engine{g: g, cfg: cfg, displayed: disp}
}

// Resolve returns the highlight state for the given signals, reusing the
// cached result when the signal tuple is unchanged since the last frame.
func (e *Engine) Resolve(sig Signals) *Result {
	k := cacheKey(sig)
	if e.cached != nil && k == e.key {
		return e.cached
	}
	e.key = k
	e.resolves++
	e.cached = e.compute(sig)
	return e.cached
}

// SmoothAlphas advances every displayed edge alpha a fixed fraction of the
// remaining distance toward its target. Call once per frame, cache hit or
// not. Returns the displayed values (owned by the engine; read-only).
func (e *Engine) SmoothAlphas() []float64 {
	targets := e.currentTargets()
	for i := range e.displayed {
		e.displayed[i] += (targets[i] - e.displayed[i]) * e.cfg.Lerp
	}
	return e.displayed
}

func (e *Engine) currentTargets() []float64 {
	if e.cached != nil {
		return e.cached.EdgeTargets
	}
	t := make([]float64, len(e.g.Edges))
	for i := range t {
		t[i] = e.cfg.AlphaNeutral
	}
	return t
}

func cacheKey(sig Signals) string {
	sel := append([]string(nil), sig.Selected...)
	sort.Strings(sel)
	var b strings.Builder
	b.WriteString(sig.ActiveCategory)
	b.WriteByte('\x1f')
	b.WriteString(sig.SearchTerm)
	b.WriteByte('\x1f')
	b.WriteString(sig.GlobalSearchTerm)
	b.WriteByte('\x1f')
	b.WriteString(strings.Join(sel, "\x1e"))
	b.WriteByte('\x1f')
	b.WriteString(strconv.Itoa(sig.Hovered))
	return b.String()
}

// compute is the expensive path: priority resolution, highlight set, node
// emphasis and edge-alpha targets.
func (e *Engine) compute(sig Signals) *Result {
	res := &Result{
		Mode:        ModeNone,
		Set:         make(map[int]struct{}),
		Nodes:       make([]NodeState, len(e.g.Nodes)),
		EdgeTargets: make([]float64, len(e.g.Edges)),
	}

	term := sig.SearchTerm
	if term == "" {
		term = sig.GlobalSearchTerm
	}

	focus := -1
	switch {
	case sig.Hovered >= 0 && sig.Hovered < len(e.g.Nodes):
		res.Mode = ModeFocus
		focus = sig.Hovered
		res.Set[focus] = struct{}{}
		for id := range e.g.Adjacency[e.g.Nodes[focus].ID] {
			if idx, ok := e.g.NodeMap[id]; ok {
				res.Set[idx] = struct{}{}
			}
		}
	case len(sig.Selected) > 0:
		res.Mode = ModeSelection
		for _, id := range sig.Selected {
			if idx, ok := e.g.NodeMap[id]; ok {
				res.Set[idx] = struct{}{}
			}
		}
	case term != "":
		res.Mode = ModeSearch
		q := strings.ToLower(term)
		for i := range e.g.Nodes {
			n := &e.g.Nodes[i]
			if strings.Contains(strings.ToLower(n.ID), q) ||
				strings.Contains(strings.ToLower(n.CategoryPath), q) {
				res.Set[i] = struct{}{}
			}
		}
	}

	for i := range res.Nodes {
		if res.Mode == ModeNone {
			res.Nodes[i] = NodeState{Scale: 1}
			continue
		}
		if _, in := res.Set[i]; in {
			res.Nodes[i] = NodeState{Scale: e.cfg.ScaleUp, Glow: e.cfg.Glow}
		} else {
			res.Nodes[i] = NodeState{Scale: e.cfg.ScaleDown, Dimmed: true}
		}
	}

	for i, edge := range e.g.Edges {
		res.EdgeTargets[i] = e.edgeTarget(res, focus, edge)
	}
	return res
}

// edgeTarget picks an alpha from the fixed table, first match wins.
func (e *Engine) edgeTarget(res *Result, focus int, edge graph.Edge) float64 {
	si, sok := e.g.NodeMap[edge.Source]
	ti, tok := e.g.NodeMap[edge.Target]
	if !sok || !tok {
		return e.cfg.AlphaDim
	}
	_, sIn := res.Set[si]
	_, tIn := res.Set[ti]

	switch res.Mode {
	case ModeNone:
		return e.cfg.AlphaNeutral
	case ModeFocus:
		if si == focus || ti == focus {
			return e.cfg.AlphaFocusDirect
		}
		if sIn || tIn {
			return e.cfg.AlphaFocusOneHop
		}
	case ModeSelection:
		if sIn && tIn {
			return e.cfg.AlphaSelFull
		}
		if sIn || tIn {
			return e.cfg.AlphaSelPartial
		}
	case ModeSearch:
		if sIn && tIn {
			return e.cfg.AlphaSearch
		}
	}
	return e.cfg.AlphaDim
}

// IdlePulse is the time-driven breathing applied to a settled graph when no
// highlight is active. Pure function of wall time; it never touches the
// simulation.
func IdlePulse(t time.Duration) float64 {
	return 1 + 0.03*math.Sin(t.Seconds()*2*math.Pi/4)
}
