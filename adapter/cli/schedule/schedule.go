// Package schedule implements the lessonsched CLI's solve/show
// subcommands.
package schedule

import (
	"github.com/spf13/cobra"
)

// Cmd is the schedule command group
var Cmd = &cobra.Command{
	Use:   "schedule",
	Short: "Solve and inspect lesson schedules",
	Long:  `Compute weekly lesson schedules from a teacher/student input file and inspect previously computed results.`,
}

func init() {
	Cmd.AddCommand(solveCmd)
	Cmd.AddCommand(showCmd)
}
