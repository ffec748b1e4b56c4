package main

import (
	"embed"
	"os"

	"modviz/cmd"
)

//go:embed presets/*.toml
var presetFS embed.FS

func main() {
	cmd.SetPresetFS(presetFS)
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
