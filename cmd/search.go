package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"modviz/internal/highlight"
	"modviz/internal/ui"
)

func searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <depmap.json> <term>",
		Short: "Find modules by id or category path",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			g, cfg, err := loadGraph(args[0])
			if err != nil {
				ui.Bad.Printf("  %v\n", err)
				os.Exit(1)
			}

			eng := highlight.New(g, &cfg.Highlight)
			res := eng.Resolve(highlight.Signals{SearchTerm: args[1], Hovered: -1})

			ui.Banner("search")
			if len(res.Set) == 0 {
				fmt.Printf("  No modules match %q.\n", args[1])
				return
			}

			rows := make([][]string, 0, len(res.Set))
			for i := range g.Nodes {
				if _, ok := res.Set[i]; !ok {
					continue
				}
				n := &g.Nodes[i]
				rows = append(rows, []string{n.ID, n.Group, n.CategoryPath, fmt.Sprintf("%d", n.DepCount)})
			}
			ui.Table([]string{"MODULE", "GROUP", "CATEGORY", "DEPS"}, rows)
		},
	}
}
