package main

import (
	"fmt"
	"os"

	"github.com/jesterworks/canopy/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate the capability sheet over a fixed number of ticks",
	Long:  `Loads the sheet, builds the capability tree, and ticks it with a fixed timestep, printing an activation trace.`,
	Run: func(cmd *cobra.Command, args []string) {
		sheet, _ := cmd.Flags().GetString("sheet")
		if !cmd.Flags().Changed("sheet") && len(args) > 0 {
			sheet = args[0]
		}
		debug, _ := cmd.Flags().GetBool("debug")
		ticks, _ := cmd.Flags().GetInt("ticks")
		delta, _ := cmd.Flags().GetFloat64("delta")
		headless, _ := cmd.Flags().GetBool("headless")
		historyLimit, _ := cmd.Flags().GetInt("history-limit")

		opts := cli.Options{
			SheetPath:    sheet,
			Debug:        debug,
			HistoryLimit: historyLimit,
		}
		sim := cli.SimOptions{Ticks: ticks, Delta: delta, Headless: headless}

		if err := cli.RunSimulation(opts, sim); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Int("ticks", 300, "Number of ticks to simulate")
	runCmd.Flags().Float64("delta", 1.0/30, "Fixed timestep in seconds")
	runCmd.Flags().Bool("headless", false, "Suppress the banner (plain trace output)")
	runCmd.Flags().Int("history-limit", 256, "Snapshots retained in history")

	// Make 'run' the default if no command is provided.
	rootCmd.Run = runCmd.Run
}
