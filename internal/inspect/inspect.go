// Package inspect answers on-demand dependency questions over a built
// graph: bounded-depth dependency trees for a single module, and
// connection/shared-dependency reports across a multi-module selection.
// All results are pure reads of the adjacency indexes.
package inspect

import (
	"fmt"
	"sort"

	"modviz/internal/graph"
)

// Direction labels which way a traversal walked an edge.
type Direction string

const (
	DependsOn  Direction = "depends-on"
	DependedBy Direction = "depended-by"
)

// TreeNode is one discovered module in a dependency tree.
type TreeNode struct {
	ID           string
	Group        string
	CategoryPath string
	DepCount     int
	Kind         graph.EdgeKind
	Direction    Direction
}

// Level groups discovered modules by BFS depth.
type Level struct {
	Depth int
	Nodes []TreeNode
}

// DepTree is the two-directional bounded dependency tree of one module.
type DepTree struct {
	Root       string
	DependsOn  []Level
	DependedBy []Level
}

// MaxDepth bounds dependency-tree traversal; the UI offers 1–3.
const MaxDepth = 3

// BuildDepTree runs two independent breadth-first traversals from nodeID,
// one along depends-on edges and one along depended-by edges, each bounded
// to maxDepth (clamped to [1,MaxDepth]). A per-traversal visited set makes
// cyclic graphs terminate; no node appears twice within one direction.
func BuildDepTree(g *graph.Graph, nodeID string, maxDepth int) (*DepTree, error) {
	if _, ok := g.NodeMap[nodeID]; !ok {
		return nil, fmt.Errorf("unknown module %q", nodeID)
	}
	if maxDepth < 1 {
		maxDepth = 1
	}
	if maxDepth > MaxDepth {
		maxDepth = MaxDepth
	}
	return &DepTree{
		Root:       nodeID,
		DependsOn:  bfsLevels(g, nodeID, maxDepth, DependsOn, g.Out),
		DependedBy: bfsLevels(g, nodeID, maxDepth, DependedBy, g.In),
	}, nil
}

func bfsLevels(g *graph.Graph, root string, maxDepth int, dir Direction, adj map[string][]graph.Ref) []Level {
	visited := map[string]struct{}{root: {}}
	frontier := []string{root}
	var levels []Level

	for depth := 1; depth <= maxDepth && len(frontier) > 0; depth++ {
		var next []string
		var found []TreeNode
		for _, cur := range frontier {
			for _, ref := range adj[cur] {
				if _, seen := visited[ref.ID]; seen {
					continue
				}
				visited[ref.ID] = struct{}{}
				idx := g.NodeMap[ref.ID]
				n := &g.Nodes[idx]
				found = append(found, TreeNode{
					ID:           n.ID,
					Group:        n.Group,
					CategoryPath: n.CategoryPath,
					DepCount:     n.DepCount,
					Kind:         ref.Kind,
					Direction:    dir,
				})
				next = append(next, ref.ID)
			}
		}
		if len(found) == 0 {
			break
		}
		sort.Slice(found, func(i, j int) bool { return found[i].ID < found[j].ID })
		levels = append(levels, Level{Depth: depth, Nodes: found})
		frontier = next
	}
	return levels
}

// ModuleSummary describes one selected module in a multi-inspection.
type ModuleSummary struct {
	ID           string
	Group        string
	CategoryPath string
	DepCount     int
}

// Connection links two selected modules: either a direct edge (Kind set)
// or an indirect path through unselected intermediates (Path set).
type Connection struct {
	From     string
	To       string
	Kind     graph.EdgeKind
	Indirect bool
	Path     []string
}

// SharedDep is a module outside the selection that at least two selected
// modules depend on.
type SharedDep struct {
	ID         string
	Dependents []string
}

// MultiInspect is the cross-connection report for a multi-module selection.
type MultiInspect struct {
	Modules     []ModuleSummary
	Connections []Connection
	SharedDeps  []SharedDep
}

// BuildMultiInspect reports direct connections, indirect connections and
// shared dependencies among the given selection. Unknown ids are skipped;
// fewer than two known ids is an error.
func BuildMultiInspect(g *graph.Graph, nodeIDs []string) (*MultiInspect, error) {
	var ids []string
	selected := make(map[string]struct{})
	for _, id := range nodeIDs {
		if _, ok := g.NodeMap[id]; !ok {
			continue
		}
		if _, dup := selected[id]; dup {
			continue
		}
		selected[id] = struct{}{}
		ids = append(ids, id)
	}
	if len(ids) < 2 {
		return nil, fmt.Errorf("multi-inspect needs at least 2 known modules, got %d", len(ids))
	}
	sort.Strings(ids)

	out := &MultiInspect{}
	for _, id := range ids {
		n := &g.Nodes[g.NodeMap[id]]
		out.Modules = append(out.Modules, ModuleSummary{
			ID:           n.ID,
			Group:        n.Group,
			CategoryPath: n.CategoryPath,
			DepCount:     n.DepCount,
		})
	}

	// Direct connections: every edge whose endpoints are both selected.
	for _, e := range g.Edges {
		if _, a := selected[e.Source]; !a {
			continue
		}
		if _, b := selected[e.Target]; !b {
			continue
		}
		out.Connections = append(out.Connections, Connection{
			From: e.Source,
			To:   e.Target,
			Kind: e.Kind,
		})
	}

	// Indirect connections: shortest path through unselected intermediates
	// between pairs that have no direct edge.
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			a, b := ids[i], ids[j]
			if g.Connected(a, b) {
				continue
			}
			if path := shortestPath(g, a, b, selected); path != nil {
				out.Connections = append(out.Connections, Connection{
					From:     a,
					To:       b,
					Indirect: true,
					Path:     path,
				})
			}
		}
	}

	// Shared dependencies: unselected modules that ≥2 selected modules
	// depend on, ranked by dependent count.
	dependents := make(map[string]map[string]struct{})
	for _, id := range ids {
		for _, ref := range g.Out[id] {
			if _, sel := selected[ref.ID]; sel {
				continue
			}
			if dependents[ref.ID] == nil {
				dependents[ref.ID] = make(map[string]struct{})
			}
			dependents[ref.ID][id] = struct{}{}
		}
	}
	for dep, who := range dependents {
		if len(who) < 2 {
			continue
		}
		var names []string
		for id := range who {
			names = append(names, id)
		}
		sort.Strings(names)
		out.SharedDeps = append(out.SharedDeps, SharedDep{ID: dep, Dependents: names})
	}
	sort.Slice(out.SharedDeps, func(i, j int) bool {
		a, b := out.SharedDeps[i], out.SharedDeps[j]
		if len(a.Dependents) != len(b.Dependents) {
			return len(a.Dependents) > len(b.Dependents)
		}
		return a.ID < b.ID
	})

	return out, nil
}

// shortestPath finds the shortest route between two selected modules over
// the symmetric adjacency, barring other selected modules as intermediates.
// Returns nil when no such path exists.
func shortestPath(g *graph.Graph, from, to string, selected map[string]struct{}) []string {
	visited := map[string]struct{}{from: {}}
	parent := make(map[string]string)
	queue := []string{from}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		var neighbors []string
		for id := range g.Adjacency[cur] {
			neighbors = append(neighbors, id)
		}
		sort.Strings(neighbors)

		for _, next := range neighbors {
			if _, seen := visited[next]; seen {
				continue
			}
			if next == to {
				path := []string{to}
				for p := cur; ; p = parent[p] {
					path = append([]string{p}, path...)
					if p == from {
						return path
					}
				}
			}
			if _, sel := selected[next]; sel {
				continue
			}
			visited[next] = struct{}{}
			parent[next] = cur
			queue = append(queue, next)
		}
	}
	return nil
}
