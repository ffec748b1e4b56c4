// Package sim is the force-directed layout integrator. One Simulator owns
// one graph's kinematics: it scatters initial positions around fixed cluster
// centers, then advances the layout one tick per frame — damping, gravity,
// grid-accelerated repulsion, edge springs, clamped integration — while a
// cooling factor anneals the whole system toward a frozen state. After the
// schedule runs out the simulator stops touching positions entirely; any
// idle motion past that point is the renderer's business, not physics.
package sim

import (
	"math"
	"math/rand"

	"modviz/internal/config"
	"modviz/internal/graph"
)

// State is the explicit simulation state, owned by the Simulator alone.
type State struct {
	Tick     int
	Alpha    float64
	MaxTicks int
	Running  bool
}

// Simulator advances a graph's layout. Not safe for concurrent use; it is
// driven by a single per-frame caller.
type Simulator struct {
	g        *graph.Graph
	cfg      *config.Tuning
	state    State
	cellSize float64
	warmup   int
}

// New prepares a simulator for a freshly built graph. The tick budget and
// grid cell size are step functions of node count so total work stays
// roughly constant as graphs grow.
func New(g *graph.Graph, cfg *config.Tuning) *Simulator {
	n := len(g.Nodes)
	return &Simulator{
		g:        g,
		cfg:      cfg,
		cellSize: config.Pick(cfg.Grid.CellSize, n, 200),
		warmup:   int(config.Pick(cfg.Schedule.Warmup, n, 40)),
		state: State{
			Alpha:    1,
			MaxTicks: int(config.Pick(cfg.Schedule.MaxTicks, n, 100)),
			Running:  true,
		},
	}
}

// State returns a copy of the current simulation state.
func (s *Simulator) State() State { return s.state }

// Running reports whether the schedule still has ticks left.
func (s *Simulator) Running() bool { return s.state.Running }

// InitPositions scatters every node uniformly within a fixed radius around
// its group's cluster center and zeroes velocities. The seed makes layouts
// reproducible run to run.
func (s *Simulator) InitPositions(seed int64) {
	rng := rand.New(rand.NewSource(seed))
	r := s.cfg.Layout.ScatterRadius
	for i := range s.g.Nodes {
		n := &s.g.Nodes[i]
		c := s.center(n.Group)
		dx, dy, dz := inBall(rng)
		n.X = c.X + dx*r
		n.Y = c.Y + dy*r
		n.Z = c.Z + dz*r
		n.VX, n.VY, n.VZ = 0, 0, 0
	}
}

// inBall samples a uniform point in the unit ball by rejection.
func inBall(rng *rand.Rand) (x, y, z float64) {
	for {
		x = rng.Float64()*2 - 1
		y = rng.Float64()*2 - 1
		z = rng.Float64()*2 - 1
		if x*x+y*y+z*z <= 1 {
			return
		}
	}
}

func (s *Simulator) center(group string) config.Center {
	if c, ok := s.cfg.Clusters.Centers[group]; ok {
		return c
	}
	return s.cfg.Clusters.Centers[s.cfg.Clusters.Fallback]
}

// Step advances the simulation one tick. Once the cooling schedule has run
// out it returns immediately without mutating anything.
func (s *Simulator) Step() {
	if !s.state.Running {
		return
	}
	alpha := s.state.Alpha
	phys := &s.cfg.Physics
	nodes := s.g.Nodes

	for i := range nodes {
		n := &nodes[i]
		n.VX *= phys.Damping
		n.VY *= phys.Damping
		n.VZ *= phys.Damping
	}

	for i := range nodes {
		n := &nodes[i]
		c := s.center(n.Group)
		n.VX += (c.X - n.X) * phys.ClusterGravity * alpha
		n.VY += (c.Y - n.Y) * phys.ClusterGravity * alpha
		n.VZ += (c.Z - n.Z) * phys.ClusterGravity * alpha
		n.VX += -n.X * phys.GlobalGravity * alpha
		n.VY += -n.Y * phys.GlobalGravity * alpha
		n.VZ += -n.Z * phys.GlobalGravity * alpha
	}

	s.applyRepulsion(alpha)
	s.applySprings(alpha)

	vmax := phys.MaxVelocity * alpha
	for i := range nodes {
		n := &nodes[i]
		speed := math.Sqrt(n.VX*n.VX + n.VY*n.VY + n.VZ*n.VZ)
		if speed > vmax && speed > 0 {
			k := vmax / speed
			n.VX *= k
			n.VY *= k
			n.VZ *= k
		}
		n.X += n.VX
		n.Y += n.VY
		n.Z += n.VZ
	}

	s.state.Tick++
	s.state.Alpha = math.Max(s.cfg.Schedule.MinAlpha,
		1-float64(s.state.Tick)/float64(s.state.MaxTicks))
	if s.state.Tick > s.state.MaxTicks {
		s.state.Running = false
	}
}

// applyRepulsion pushes nearby non-adjacent pairs apart using the spatial
// hash. Forces are inverse-square, capped, and applied equal-and-opposite.
func (s *Simulator) applyRepulsion(alpha float64) {
	grid := s.buildGrid()
	cutoff2 := s.cellSize * s.cellSize
	phys := &s.cfg.Physics
	nodes := s.g.Nodes

	grid.forEachPair(func(i, j int32) {
		a, b := &nodes[i], &nodes[j]
		// Connected pairs are the springs' business.
		if s.g.Connected(a.ID, b.ID) {
			return
		}
		dx := b.X - a.X
		dy := b.Y - a.Y
		dz := b.Z - a.Z
		d2 := dx*dx + dy*dy + dz*dz
		if d2 > cutoff2 {
			return
		}
		d := math.Sqrt(d2)
		if d < 1 {
			d = 1
			d2 = 1
		}
		f := phys.Repulsion / d2
		if f > phys.MaxForce {
			f = phys.MaxForce
		}
		f *= alpha
		fx := dx / d * f
		fy := dy / d * f
		fz := dz / d * f
		a.VX -= fx
		a.VY -= fy
		a.VZ -= fz
		b.VX += fx
		b.VY += fy
		b.VZ += fz
	})
}

// applySprings pulls edge endpoints together with a linear, capped force.
// Edges whose endpoints are missing from the node map are skipped.
func (s *Simulator) applySprings(alpha float64) {
	phys := &s.cfg.Physics
	nodes := s.g.Nodes
	for _, e := range s.g.Edges {
		si, ok := s.g.NodeMap[e.Source]
		if !ok {
			continue
		}
		ti, ok := s.g.NodeMap[e.Target]
		if !ok {
			continue
		}
		a, b := &nodes[si], &nodes[ti]
		dx := b.X - a.X
		dy := b.Y - a.Y
		dz := b.Z - a.Z
		d := math.Sqrt(dx*dx + dy*dy + dz*dz)
		if d < 1 {
			d = 1
		}
		f := phys.SpringK * d
		if f > phys.MaxForce {
			f = phys.MaxForce
		}
		f *= alpha
		fx := dx / d * f
		fy := dy / d * f
		fz := dz / d * f
		a.VX += fx
		a.VY += fy
		a.VZ += fz
		b.VX -= fx
		b.VY -= fy
		b.VZ -= fz
	}
}

// WarmUp runs a synchronous batch of ticks before the first visible frame
// so the layout does not explode on screen from its scattered start.
func (s *Simulator) WarmUp() {
	for i := 0; i < s.warmup && s.state.Running; i++ {
		s.Step()
	}
}

// Run drives the full schedule to completion and returns the final state.
func (s *Simulator) Run() State {
	s.WarmUp()
	for s.state.Running {
		s.Step()
	}
	return s.state
}
