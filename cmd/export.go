package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"modviz/internal/export"
	"modviz/internal/sim"
	"modviz/internal/ui"
)

func exportCmd() *cobra.Command {
	var (
		format string
		out    string
		seed   int64
	)

	cmd := &cobra.Command{
		Use:   "export <depmap.json>",
		Short: "Export the laid-out graph as json, dot, or html",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			g, cfg, err := loadGraph(args[0])
			if err != nil {
				ui.Bad.Printf("  %v\n", err)
				os.Exit(1)
			}

			// DOT needs no positions; the other formats carry them.
			if format != "dot" {
				s := sim.New(g, cfg)
				s.InitPositions(seed)
				s.Run()
			}

			var data []byte
			switch format {
			case "json":
				data, err = export.Layout(g)
				if err != nil {
					ui.Bad.Printf("  %v\n", err)
					os.Exit(1)
				}
			case "dot":
				data = []byte(export.DOT(g))
			case "html":
				data = []byte(export.HTML(g))
			default:
				ui.Bad.Printf("  Unknown format %q (want json, dot, or html)\n", format)
				os.Exit(1)
			}

			if out == "" {
				fmt.Print(string(data))
				return
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				ui.Bad.Printf("  %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("  %s Wrote %s\n", ui.StatusIcon(true), out)
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "Output format: json, dot, html")
	cmd.Flags().StringVar(&out, "out", "", "Output file (default: stdout)")
	cmd.Flags().Int64Var(&seed, "seed", 1, "Random seed for initial placement")
	return cmd
}
