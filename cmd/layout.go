package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"modviz/internal/config"
	"modviz/internal/depmap"
	"modviz/internal/export"
	"modviz/internal/graph"
	"modviz/internal/parallel"
	"modviz/internal/sim"
	"modviz/internal/ui"
)

func layoutCmd() *cobra.Command {
	var (
		out         string
		seed        int64
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "layout <depmap.json>...",
		Short: "Run the full layout schedule and write position snapshots",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := tuning()
			if err != nil {
				ui.Bad.Printf("  %v\n", err)
				os.Exit(1)
			}

			ui.Banner("layout")

			jobs := make([]parallel.Job, 0, len(args))
			for _, path := range args {
				path := path
				target := out
				if target == "" || len(args) > 1 {
					target = layoutOutPath(path, out)
				}
				jobs = append(jobs, parallel.Job{
					Name: path,
					Fn: func() error {
						return runLayout(path, target, seed, cfg)
					},
				})
			}

			failed := 0
			for _, r := range parallel.Run(jobs, concurrency) {
				if r.Err != nil {
					failed++
					fmt.Printf("  %s %s %s\n", ui.StatusIcon(false), r.Name, ui.Bad.Sprintf("(%v)", r.Err))
				} else {
					fmt.Printf("  %s %s %s\n", ui.StatusIcon(true), r.Name, ui.Subtle.Sprintf("%.1fs", r.Elapsed.Seconds()))
				}
			}
			if failed > 0 {
				os.Exit(1)
			}
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Output file (default: <input>.layout.json)")
	cmd.Flags().Int64Var(&seed, "seed", 1, "Random seed for initial placement")
	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "Parallel jobs when laying out multiple files")
	return cmd
}

func layoutOutPath(input, outDir string) string {
	base := strings.TrimSuffix(input, filepath.Ext(input)) + ".layout.json"
	if outDir == "" {
		return base
	}
	return filepath.Join(outDir, filepath.Base(base))
}

func runLayout(path, target string, seed int64, cfg *config.Tuning) error {
	dep, err := depmap.Load(path)
	if err != nil {
		return err
	}

	g := graph.Build(dep, cfg)
	s := sim.New(g, cfg)
	s.InitPositions(seed)
	s.Run()

	data, err := export.Layout(g)
	if err != nil {
		return err
	}
	return os.WriteFile(target, data, 0o644)
}
