package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jesterworks/canopy/pkg/adapters/scripted"
	"github.com/spf13/cobra"
)

// exampleSheet demonstrates every combinator policy and the scripted
// capability parameters.
const exampleSheet = `# Example capability sheet.
# Direct capabilities run under the root parallel node.
capabilities:
  - name: heartbeat
    tags: [system.heartbeat]

sheets:
  # Lowest index wins; re-evaluated from the top every tick.
  - name: locomotion
    policy: first_valid
    capabilities:
      - name: sprint
        tags: [movement.sprint]
        params:
          action: sprint
          strength_curve:
            scale_x: 2
            scale_y: 1
            keys:
              - {time: 0, value: 0}
              - {time: 1, value: 1}
      - name: walk
        tags: [movement.walk]

  # Ordered steps with same-tick fall-through.
  - name: warmup
    policy: sequence
    capabilities:
      - name: stretch
        tags: [warmup.stretch]
        params:
          duration: 2
      - name: jog
        tags: [warmup.jog]
        params:
          duration: 3
`

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Write an example capability sheet",
	Long:  `Creates a sheet.yaml in the target directory demonstrating combinator policies and scripted capability parameters.`,
	Run: func(cmd *cobra.Command, args []string) {
		targetDir := "."
		if len(args) > 0 {
			targetDir = args[0]
		}
		if err := os.MkdirAll(targetDir, 0755); err != nil {
			fmt.Printf("Error creating directory: %v\n", err)
			os.Exit(1)
		}

		// Sanity-check the template against the loader before writing.
		if _, err := scripted.Parse([]byte(exampleSheet)); err != nil {
			fmt.Printf("Internal error: example sheet invalid: %v\n", err)
			os.Exit(1)
		}

		path := filepath.Join(targetDir, "sheet.yaml")
		if _, err := os.Stat(path); err == nil {
			fmt.Printf("Refusing to overwrite existing %s\n", path)
			os.Exit(1)
		}
		if err := os.WriteFile(path, []byte(exampleSheet), 0644); err != nil {
			fmt.Printf("Error writing sheet: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", path)
		fmt.Println("Try: canopy run --sheet", path)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
