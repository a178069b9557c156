package main

import (
	"fmt"
	"os"

	"github.com/jesterworks/canopy/internal/cli"
	"github.com/jesterworks/canopy/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the capability tree visualization",
	Long:  `Builds the tree from the sheet and outputs a Mermaid diagram (graph TD) representing its structure.`,
	Run: func(cmd *cobra.Command, args []string) {
		sheet, _ := cmd.Flags().GetString("sheet")
		if !cmd.Flags().Changed("sheet") && len(args) > 0 {
			sheet = args[0]
		}

		build, err := cli.NewSystem(cli.Options{SheetPath: sheet})
		if err != nil {
			fmt.Printf("Error initializing system: %v\n", err)
			os.Exit(1)
		}

		// Generate and print Mermaid graph
		fmt.Print(graph.GenerateMermaid(build.System.Inspect()))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
