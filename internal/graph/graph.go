// Package graph converts a raw dependency map into the dense node and edge
// arrays the simulator and highlight engine work on, plus the id lookup and
// adjacency indexes shared by every consumer. Everything here is rebuilt
// wholesale when the upstream map changes; nothing mutates in place.
package graph

import (
	"math"
	"sort"
	"strings"

	"modviz/internal/config"
	"modviz/internal/depmap"
)

// EdgeKind distinguishes public from private dependencies.
type EdgeKind string

const (
	Public  EdgeKind = "public"
	Private EdgeKind = "private"
)

// Node is one module in the layout. Position and velocity are mutated every
// tick by the simulator; everything else is fixed at build time.
type Node struct {
	ID           string
	X, Y, Z      float64
	VX, VY, VZ   float64
	Radius       float64
	Group        string
	CategoryPath string
	DepCount     int
}

// Edge is a directed dependency from Source to Target.
type Edge struct {
	Source string
	Target string
	Kind   EdgeKind
}

// Ref is a directed neighbor reference carrying the edge kind.
type Ref struct {
	ID   string
	Kind EdgeKind
}

// Graph holds the built node/edge arrays and lookup indexes. Nodes is a
// dense slice; NodeMap resolves ids to indices into it. Adjacency is the
// symmetric closure of Edges; Out and In are the directed views used by
// inspection traversal. All indexes are immutable until the next build.
type Graph struct {
	Nodes     []Node
	Edges     []Edge
	NodeMap   map[string]int
	Adjacency map[string]map[string]struct{}
	Out       map[string][]Ref
	In        map[string][]Ref
}

// Build constructs a graph from a raw dependency map. Edges whose target is
// not a known module id are dropped: upstream data may legitimately
// reference external or unresolved modules.
func Build(dep map[string]depmap.Deps, cfg *config.Tuning) *Graph {
	ids := make([]string, 0, len(dep))
	for id := range dep {
		ids = append(ids, id)
	}
	// Go map iteration order is randomized; sort so the dense index
	// assignment is reproducible across runs.
	sort.Strings(ids)

	g := &Graph{
		Nodes:     make([]Node, 0, len(ids)),
		NodeMap:   make(map[string]int, len(ids)),
		Adjacency: make(map[string]map[string]struct{}, len(ids)),
		Out:       make(map[string][]Ref, len(ids)),
		In:        make(map[string][]Ref, len(ids)),
	}

	for i, id := range ids {
		d := dep[id]
		g.NodeMap[id] = i
		g.Nodes = append(g.Nodes, Node{
			ID:           id,
			Group:        groupFor(d.CategoryPath, &cfg.Clusters),
			CategoryPath: d.CategoryPath,
		})
		g.Adjacency[id] = make(map[string]struct{})
	}

	for _, id := range ids {
		d := dep[id]
		for _, t := range d.PublicDeps {
			g.addEdge(id, t, Public)
		}
		for _, t := range d.PrivateDeps {
			g.addEdge(id, t, Private)
		}
	}

	for i := range g.Nodes {
		n := &g.Nodes[i]
		n.DepCount = len(g.Adjacency[n.ID])
		// Square-root scaling keeps rendered area proportional to degree.
		n.Radius = cfg.Layout.RadiusBase + cfg.Layout.RadiusScale*math.Sqrt(float64(n.DepCount))
	}

	return g
}

func (g *Graph) addEdge(source, target string, kind EdgeKind) {
	if _, ok := g.NodeMap[target]; !ok {
		return
	}
	g.Edges = append(g.Edges, Edge{Source: source, Target: target, Kind: kind})
	g.Adjacency[source][target] = struct{}{}
	g.Adjacency[target][source] = struct{}{}
	g.Out[source] = append(g.Out[source], Ref{ID: target, Kind: kind})
	g.In[target] = append(g.In[target], Ref{ID: source, Kind: kind})
}

// Connected reports whether two ids share an edge in either direction.
func (g *Graph) Connected(a, b string) bool {
	_, ok := g.Adjacency[a][b]
	return ok
}

// groupFor derives the cluster label from a category breadcrumb. The
// top-level segment must name a configured cluster center; anything else
// falls back to the configured default bucket.
func groupFor(categoryPath string, clusters *config.Clusters) string {
	top := categoryPath
	if i := strings.IndexAny(categoryPath, "/>"); i >= 0 {
		top = categoryPath[:i]
	}
	top = strings.TrimSpace(top)
	if _, ok := clusters.Centers[top]; ok {
		return top
	}
	return clusters.Fallback
}
