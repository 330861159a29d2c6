package schedule

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/felixgeelhaar/lessonsched/adapter/cli"
	"github.com/felixgeelhaar/lessonsched/internal/scheduling/application/commands"
	"github.com/felixgeelhaar/lessonsched/internal/scheduling/application/input"
	"github.com/felixgeelhaar/lessonsched/internal/scheduling/application/queries"
	"github.com/felixgeelhaar/lessonsched/internal/scheduling/application/services"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	solveFile          string
	solveNoHeuristics  bool
	solveMaxTimeMs     int64
	solveMaxBacktracks int
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Solve a weekly lesson schedule from a teacher/student input file",
	Long: `Reads a JSON document describing a teacher, their students, and
solve options, runs the constraint-satisfaction solver, persists the
resulting Solution, and prints it to stdout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := input.Load(solveFile)
		if err != nil {
			return fmt.Errorf("loading input: %w", err)
		}

		opts := doc.Options
		if solveNoHeuristics {
			opts.UseHeuristics = false
		}
		if solveMaxTimeMs > 0 {
			opts.MaxTimeMs = solveMaxTimeMs
		}
		if solveMaxBacktracks > 0 {
			opts.MaxBacktracks = solveMaxBacktracks
		}
		opts, err = services.NewSolveOptions(opts)
		if err != nil {
			return fmt.Errorf("solve options: %w", err)
		}

		app := cli.GetApp()
		if app == nil || app.SolveScheduleHandler == nil || app.GetSolutionHandler == nil {
			return fmt.Errorf("solve handler is not wired")
		}

		result, err := app.SolveScheduleHandler.Handle(cmd.Context(), commands.SolveScheduleCommand{
			Teacher:     doc.Teacher,
			Students:    doc.Students,
			Options:     opts,
			RequestedBy: uuid.Nil,
		})
		if err != nil {
			return fmt.Errorf("solving schedule: %w", err)
		}

		solutionID, ok := result.Data.(uuid.UUID)
		if !ok {
			return fmt.Errorf("unexpected command result payload")
		}

		stored, err := app.GetSolutionHandler.Handle(cmd.Context(), queries.GetSolutionQuery{ID: solutionID})
		if err != nil {
			return fmt.Errorf("reading back stored solution: %w", err)
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(stored.Solution)
	},
}

func init() {
	solveCmd.Flags().StringVar(&solveFile, "file", "", "path to the teacher/student/options input file (required)")
	solveCmd.Flags().BoolVar(&solveNoHeuristics, "no-heuristics", false, "disable heuristic variable/value ordering")
	solveCmd.Flags().Int64Var(&solveMaxTimeMs, "max-time-ms", 0, "override the search time budget in milliseconds")
	solveCmd.Flags().IntVar(&solveMaxBacktracks, "max-backtracks", 0, "override the search backtrack budget")
	_ = solveCmd.MarkFlagRequired("file")
}
