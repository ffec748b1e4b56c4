package cmd

import (
	"embed"

	"github.com/spf13/cobra"
	"modviz/internal/config"
	"modviz/internal/depmap"
	"modviz/internal/graph"
	"modviz/internal/ui"
)

var version = "0.3.0"

var (
	presetFS   embed.FS
	presetName string
)

// SetPresetFS sets the embedded filesystem containing TOML tuning presets.
func SetPresetFS(fs embed.FS) {
	presetFS = fs
}

// tuning resolves the active tuning: a named preset if --preset was given,
// otherwise the user config merged over defaults.
func tuning() (*config.Tuning, error) {
	if presetName != "" {
		return config.LoadPreset(presetFS, presetName)
	}
	return config.Load(), nil
}

var rootCmd = &cobra.Command{
	Use:   "modviz",
	Short: "modviz — 3D force-directed module dependency layout",
	Long: ui.Brand.Sprint(ui.Orb+" modviz") + " — lay out module dependency graphs in 3D\n" +
		ui.Subtle.Sprint("Force-directed layout, dependency inspection, and graph export"),
	Version: version,
}

func init() {
	rootCmd.SetVersionTemplate("modviz {{ .Version }}\n")
	rootCmd.PersistentFlags().StringVar(&presetName, "preset", "", "Tuning preset (default, dense, sparse)")

	rootCmd.AddCommand(
		layoutCmd(),
		inspectCmd(),
		searchCmd(),
		statsCmd(),
		exportCmd(),
		completionCmd(),
	)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadGraph reads a dependency map and builds its graph with the active
// tuning. Shared by every command that takes a depmap file.
func loadGraph(path string) (*graph.Graph, *config.Tuning, error) {
	cfg, err := tuning()
	if err != nil {
		return nil, nil, err
	}
	dep, err := depmap.Load(path)
	if err != nil {
		return nil, nil, err
	}
	return graph.Build(dep, cfg), cfg, nil
}
