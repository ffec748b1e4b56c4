package config

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Tuning holds every adjustable constant of the layout engine. The numeric
// defaults are visually balanced, not physically meaningful; presets and the
// user config file may override any of them.
type Tuning struct {
	Physics   Physics   `toml:"physics"`
	Grid      Grid      `toml:"grid"`
	Schedule  Schedule  `toml:"schedule"`
	Layout    Layout    `toml:"layout"`
	Highlight Highlight `toml:"highlight"`
	Clusters  Clusters  `toml:"clusters"`
}

// Physics holds force-integration constants.
type Physics struct {
	Damping        float64 `toml:"damping"`
	ClusterGravity float64 `toml:"cluster_gravity"`
	GlobalGravity  float64 `toml:"global_gravity"`
	Repulsion      float64 `toml:"repulsion"`
	SpringK        float64 `toml:"spring_k"`
	MaxForce       float64 `toml:"max_force"`
	MaxVelocity    float64 `toml:"max_velocity"`
}

// Grid controls the spatial hash used for repulsion.
type Grid struct {
	// CoordOffset shifts cell coordinates non-negative before pairing.
	// Cell coordinates must stay within ±CoordOffset.
	CoordOffset int    `toml:"coord_offset"`
	CellSize    []Step `toml:"cell_size"`
}

// Schedule controls the cooling schedule and warm-up batch.
type Schedule struct {
	MinAlpha float64 `toml:"min_alpha"`
	MaxTicks []Step  `toml:"max_ticks"`
	Warmup   []Step  `toml:"warmup"`
}

// Layout controls initial placement and node sizing.
type Layout struct {
	ScatterRadius float64 `toml:"scatter_radius"`
	RadiusBase    float64 `toml:"radius_base"`
	RadiusScale   float64 `toml:"radius_scale"`
}

// Highlight holds the edge-alpha table and node emphasis constants.
type Highlight struct {
	Lerp             float64 `toml:"lerp"`
	AlphaNeutral     float64 `toml:"alpha_neutral"`
	AlphaFocusDirect float64 `toml:"alpha_focus_direct"`
	AlphaFocusOneHop float64 `toml:"alpha_focus_one_hop"`
	AlphaSelFull     float64 `toml:"alpha_sel_full"`
	AlphaSelPartial  float64 `toml:"alpha_sel_partial"`
	AlphaSearch      float64 `toml:"alpha_search"`
	AlphaDim         float64 `toml:"alpha_dim"`
	ScaleUp          float64 `toml:"scale_up"`
	ScaleDown        float64 `toml:"scale_down"`
	Glow             float64 `toml:"glow"`
}

// Clusters maps group names to fixed 3D cluster centers. Groups without an
// entry collapse into Fallback.
type Clusters struct {
	Fallback string            `toml:"fallback"`
	Centers  map[string]Center `toml:"centers"`
}

// Center is a fixed cluster anchor in world space.
type Center struct {
	X float64 `toml:"x"`
	Y float64 `toml:"y"`
	Z float64 `toml:"z"`
}

// Step is one rung of a node-count step function: the value applies while
// the node count is at most MaxNodes. A zero MaxNodes matches any count and
// terminates the list.
type Step struct {
	MaxNodes int     `toml:"max_nodes"`
	Value    float64 `toml:"value"`
}

// Pick resolves a step function for n nodes.
func Pick(steps []Step, n int, fallback float64) float64 {
	for _, s := range steps {
		if s.MaxNodes == 0 || n <= s.MaxNodes {
			return s.Value
		}
	}
	return fallback
}

// Default returns the built-in tuning.
func Default() *Tuning {
	return &Tuning{
		Physics: Physics{
			Damping:        0.85,
			ClusterGravity: 0.012,
			GlobalGravity:  0.004,
			Repulsion:      4200,
			SpringK:        0.006,
			MaxForce:       14,
			MaxVelocity:    24,
		},
		Grid: Grid{
			CoordOffset: 512,
			CellSize: []Step{
				{MaxNodes: 500, Value: 120},
				{MaxNodes: 1500, Value: 160},
				{Value: 200},
			},
		},
		Schedule: Schedule{
			MinAlpha: 0.01,
			MaxTicks: []Step{
				{MaxNodes: 200, Value: 300},
				{MaxNodes: 600, Value: 220},
				{MaxNodes: 1500, Value: 150},
				{Value: 100},
			},
			Warmup: []Step{
				{MaxNodes: 200, Value: 120},
				{MaxNodes: 600, Value: 80},
				{MaxNodes: 1500, Value: 60},
				{Value: 40},
			},
		},
		Layout: Layout{
			ScatterRadius: 160,
			RadiusBase:    4,
			RadiusScale:   2,
		},
		Highlight: Highlight{
			Lerp:             0.12,
			AlphaNeutral:     0.18,
			AlphaFocusDirect: 1.0,
			AlphaFocusOneHop: 0.5,
			AlphaSelFull:     0.9,
			AlphaSelPartial:  0.35,
			AlphaSearch:      0.7,
			AlphaDim:         0.04,
			ScaleUp:          1.35,
			ScaleDown:        0.8,
			Glow:             0.8,
		},
		Clusters: Clusters{
			Fallback: "Other",
			Centers: map[string]Center{
				"Core":     {X: 0, Y: 120, Z: -650},
				"UI":       {X: 650, Y: 0, Z: 0},
				"Services": {X: -650, Y: 0, Z: 0},
				"Data":     {X: 0, Y: -120, Z: 650},
				"Infra":    {X: 460, Y: 160, Z: 460},
				"Utils":    {X: -460, Y: -160, Z: 460},
				"API":      {X: -460, Y: 160, Z: -460},
				"Other":    {X: 0, Y: 0, Z: 0},
			},
		},
	}
}

// ConfigDir returns the modviz config directory path.
func ConfigDir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "modviz")
}

func configPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the user config file, merged over defaults. A missing or
// unreadable file yields the defaults.
func Load() *Tuning {
	cfg := Default()
	data, err := os.ReadFile(configPath())
	if err != nil {
		return cfg
	}
	_ = toml.Unmarshal(data, cfg)
	return cfg
}

// Save writes the tuning to the user config file.
func Save(cfg *Tuning) error {
	path := configPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}

// LoadPreset reads an embedded preset by name, merged over defaults.
func LoadPreset(fs embed.FS, name string) (*Tuning, error) {
	data, err := fs.ReadFile("presets/" + name + ".toml")
	if err != nil {
		return nil, fmt.Errorf("unknown preset %q", name)
	}
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("preset %q: %w", name, err)
	}
	return cfg, nil
}
