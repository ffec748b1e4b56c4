package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"modviz/internal/ui"
)

func statsCmd() *cobra.Command {
	var top int

	cmd := &cobra.Command{
		Use:   "stats <depmap.json>",
		Short: "Show graph summary and the most connected modules",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			g, _, err := loadGraph(args[0])
			if err != nil {
				ui.Bad.Printf("  %v\n", err)
				os.Exit(1)
			}

			ui.Banner("graph statistics")

			public, private := 0, 0
			for _, e := range g.Edges {
				if e.Kind == "private" {
					private++
				} else {
					public++
				}
			}
			groups := make(map[string]int)
			for i := range g.Nodes {
				groups[g.Nodes[i].Group]++
			}

			fmt.Printf("  %s  %d\n", ui.Brand.Sprintf("%-16s", "Modules"), len(g.Nodes))
			fmt.Printf("  %s  %d public, %d private\n", ui.Brand.Sprintf("%-16s", "Dependencies"), public, private)
			fmt.Printf("  %s  %d\n", ui.Brand.Sprintf("%-16s", "Groups"), len(groups))
			fmt.Println()

			names := make([]string, 0, len(groups))
			for name := range groups {
				names = append(names, name)
			}
			sort.Strings(names)
			rows := make([][]string, 0, len(names))
			for _, name := range names {
				rows = append(rows, []string{name, fmt.Sprintf("%d", groups[name])})
			}
			ui.Table([]string{"GROUP", "MODULES"}, rows)

			if len(g.Nodes) == 0 {
				return
			}
			order := make([]int, len(g.Nodes))
			for i := range order {
				order[i] = i
			}
			sort.Slice(order, func(a, b int) bool {
				na, nb := &g.Nodes[order[a]], &g.Nodes[order[b]]
				if na.DepCount != nb.DepCount {
					return na.DepCount > nb.DepCount
				}
				return na.ID < nb.ID
			})
			if top > len(order) {
				top = len(order)
			}

			fmt.Println()
			fmt.Println(ui.Subtle.Sprint("  Most connected:"))
			hubs := make([][]string, 0, top)
			for _, i := range order[:top] {
				n := &g.Nodes[i]
				hubs = append(hubs, []string{n.ID, n.Group, fmt.Sprintf("%d", n.DepCount)})
			}
			ui.Table([]string{"MODULE", "GROUP", "DEPS"}, hubs)
		},
	}

	cmd.Flags().IntVar(&top, "top", 10, "How many hub modules to list")
	return cmd
}
