package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"modviz/internal/graph"
	"modviz/internal/inspect"
	"modviz/internal/ui"
)

func inspectCmd() *cobra.Command {
	var depth int

	cmd := &cobra.Command{
		Use:   "inspect <depmap.json> <module>...",
		Short: "Inspect dependencies of one module or connections among several",
		Args:  cobra.MinimumNArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			g, _, err := loadGraph(args[0])
			if err != nil {
				ui.Bad.Printf("  %v\n", err)
				os.Exit(1)
			}

			modules := args[1:]
			if len(modules) == 1 {
				tree, err := inspect.BuildDepTree(g, modules[0], depth)
				if err != nil {
					ui.Bad.Printf("  %v\n", err)
					os.Exit(1)
				}
				ui.Banner("dependency tree")
				printDepTree(g, tree)
				return
			}

			multi, err := inspect.BuildMultiInspect(g, modules)
			if err != nil {
				ui.Bad.Printf("  %v\n", err)
				os.Exit(1)
			}
			ui.Banner("module inspection")
			printMultiInspect(multi)
		},
	}

	cmd.Flags().IntVar(&depth, "depth", 1, "Traversal depth (1-3)")
	return cmd
}

// printDepTree draws the dependents above the module and its dependencies
// below it, indented by depth.
func printDepTree(g *graph.Graph, tree *inspect.DepTree) {
	for i := len(tree.DependedBy) - 1; i >= 0; i-- {
		lvl := tree.DependedBy[i]
		for _, n := range lvl.Nodes {
			indent := strings.Repeat("  ", lvl.Depth)
			fmt.Printf("  %s%s %s %s\n", indent,
				ui.Subtle.Sprint(kindArrow(n.Kind)),
				ui.Brand.Sprint(n.ID),
				ui.Subtle.Sprintf("(%s, %d deps)", n.Group, n.DepCount))
		}
	}

	root := &g.Nodes[g.NodeMap[tree.Root]]
	fmt.Printf("  ● %s %s\n", ui.Brand.Sprint(root.ID),
		ui.Subtle.Sprintf("(%s)", root.CategoryPath))

	for _, lvl := range tree.DependsOn {
		for _, n := range lvl.Nodes {
			indent := strings.Repeat("  ", lvl.Depth)
			fmt.Printf("  %s%s %s %s\n", indent,
				ui.Subtle.Sprint(kindArrow(n.Kind)),
				ui.Brand.Sprint(n.ID),
				ui.Subtle.Sprintf("(%s, %d deps)", n.Group, n.DepCount))
		}
	}
}

func kindArrow(k graph.EdgeKind) string {
	if k == graph.Private {
		return "└╌"
	}
	return "└─"
}

func printMultiInspect(m *inspect.MultiInspect) {
	rows := make([][]string, 0, len(m.Modules))
	for _, mod := range m.Modules {
		rows = append(rows, []string{mod.ID, mod.Group, fmt.Sprintf("%d", mod.DepCount)})
	}
	ui.Table([]string{"MODULE", "GROUP", "DEPS"}, rows)
	fmt.Println()

	if len(m.Connections) == 0 {
		fmt.Println("  No connections between selected modules.")
	} else {
		for _, c := range m.Connections {
			if c.Indirect {
				fmt.Printf("  %s %s %s %s\n", ui.Info.Sprint("~"),
					ui.Brand.Sprint(c.From), ui.Brand.Sprint(c.To),
					ui.Subtle.Sprintf("via %s", strings.Join(c.Path, " → ")))
			} else {
				fmt.Printf("  %s %s → %s %s\n", ui.Good.Sprint("→"),
					ui.Brand.Sprint(c.From), ui.Brand.Sprint(c.To),
					ui.Subtle.Sprintf("(%s)", c.Kind))
			}
		}
	}

	if len(m.SharedDeps) > 0 {
		fmt.Println()
		fmt.Println(ui.Subtle.Sprint("  Shared dependencies:"))
		for _, s := range m.SharedDeps {
			fmt.Printf("  %s %s %s\n", ui.Warn.Sprint("◇"),
				ui.Brand.Sprint(s.ID),
				ui.Subtle.Sprintf("used by %s", strings.Join(s.Dependents, ", ")))
		}
	}
}
