package sim

// Uniform spatial hash used by the repulsion pass. The grid is rebuilt from
// scratch every tick; cells are keyed by a bijective integer pairing of the
// shifted cell coordinates so the hot path never allocates string keys.

type cell struct {
	cx, cy, cz int
	nodes      []int32
}

type hashGrid struct {
	cellSize float64
	offset   int
	cells    map[uint64]*cell
}

// szudzik pairs two non-negative integers bijectively.
func szudzik(a, b uint64) uint64 {
	if a >= b {
		return a*a + a + b
	}
	return b*b + a
}

// cellKey maps shifted 3D cell coordinates to a unique key. Coordinates
// must lie within ±offset.
func cellKey(cx, cy, cz, offset int) uint64 {
	a := uint64(cx + offset)
	b := uint64(cy + offset)
	c := uint64(cz + offset)
	return szudzik(szudzik(a, b), c)
}

func (s *Simulator) buildGrid() *hashGrid {
	g := &hashGrid{
		cellSize: s.cellSize,
		offset:   s.cfg.Grid.CoordOffset,
		cells:    make(map[uint64]*cell),
	}
	for i := range s.g.Nodes {
		n := &s.g.Nodes[i]
		cx := int(n.X / g.cellSize)
		cy := int(n.Y / g.cellSize)
		cz := int(n.Z / g.cellSize)
		key := cellKey(cx, cy, cz, g.offset)
		c, ok := g.cells[key]
		if !ok {
			c = &cell{cx: cx, cy: cy, cz: cz}
			g.cells[key] = c
		}
		c.nodes = append(c.nodes, int32(i))
	}
	return g
}

// forEachPair visits every unordered node pair that shares a 3×3×3 cell
// neighborhood, exactly once. Cell-pair dedup relies on key uniqueness:
// the neighbor cell is only processed when its key is not below ours.
func (g *hashGrid) forEachPair(fn func(i, j int32)) {
	for key, c := range g.cells {
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				for dz := -1; dz <= 1; dz++ {
					nk := cellKey(c.cx+dx, c.cy+dy, c.cz+dz, g.offset)
					if nk < key {
						continue
					}
					nc, ok := g.cells[nk]
					if !ok {
						continue
					}
					if nk == key {
						for a := 0; a < len(c.nodes); a++ {
							for b := a + 1; b < len(c.nodes); b++ {
								fn(c.nodes[a], c.nodes[b])
							}
						}
					} else {
						for _, a := range c.nodes {
							for _, b := range nc.nodes {
								fn(a, b)
							}
						}
					}
				}
			}
		}
	}
}
