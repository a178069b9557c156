package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "canopy",
	Short: "Canopy is a tick-driven capability system playground",
	Long:  `Canopy evaluates trees of capabilities declared in YAML sheets, simulating their activation over time or serving their state for inspection.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("sheet", "sheet.yaml", "Capability sheet file to load")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging to stderr")
}
