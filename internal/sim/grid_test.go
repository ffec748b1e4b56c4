package sim

import (
	"math/rand"
	"testing"

	"modviz/internal/config"
	"modviz/internal/depmap"
	"modviz/internal/graph"
)

func TestCellKeyBijective(t *testing.T) {
	const offset = 512
	rng := rand.New(rand.NewSource(7))
	seen := make(map[uint64][3]int)

	for i := 0; i < 20000; i++ {
		cx := rng.Intn(2*offset+1) - offset
		cy := rng.Intn(2*offset+1) - offset
		cz := rng.Intn(2*offset+1) - offset
		key := cellKey(cx, cy, cz, offset)
		if prev, ok := seen[key]; ok {
			if prev != [3]int{cx, cy, cz} {
				t.Fatalf("collision: %v and (%d,%d,%d) both map to %d", prev, cx, cy, cz, key)
			}
			continue
		}
		seen[key] = [3]int{cx, cy, cz}
	}
}

func TestCellKeyDistinctNeighbors(t *testing.T) {
	const offset = 512
	base := cellKey(3, -4, 5, offset)
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for dz := -1; dz <= 1; dz++ {
				if dx == 0 && dy == 0 && dz == 0 {
					continue
				}
				if cellKey(3+dx, -4+dy, 5+dz, offset) == base {
					t.Errorf("neighbor (%d,%d,%d) collides with center", dx, dy, dz)
				}
			}
		}
	}
}

func TestForEachPairVisitsOnce(t *testing.T) {
	dep := map[string]depmap.Deps{
		"a": {}, "b": {}, "c": {}, "d": {}, "e": {},
	}
	cfg := config.Default()
	g := graph.Build(dep, cfg)

	// Cluster the nodes across two adjacent cells.
	cell := config.Pick(cfg.Grid.CellSize, len(g.Nodes), 200)
	for i := range g.Nodes {
		g.Nodes[i].X = float64(i) * cell * 0.4
		g.Nodes[i].Y = 10
		g.Nodes[i].Z = 10
	}

	s := New(g, cfg)
	seen := make(map[[2]int32]int)
	s.buildGrid().forEachPair(func(i, j int32) {
		if i == j {
			t.Fatalf("self pair %d", i)
		}
		if i > j {
			i, j = j, i
		}
		seen[[2]int32{i, j}]++
	})

	for pair, count := range seen {
		if count != 1 {
			t.Errorf("pair %v visited %d times", pair, count)
		}
	}
	if len(seen) == 0 {
		t.Fatal("expected at least one neighboring pair")
	}
}
