package schedule

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/felixgeelhaar/lessonsched/adapter/cli"
	"github.com/felixgeelhaar/lessonsched/internal/scheduling/application/queries"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <solution-id>",
	Short: "Print a previously computed Solution",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid solution id: %w", err)
		}

		app := cli.GetApp()
		if app == nil || app.GetSolutionHandler == nil {
			return fmt.Errorf("get-solution handler is not wired")
		}

		stored, err := app.GetSolutionHandler.Handle(cmd.Context(), queries.GetSolutionQuery{ID: id})
		if err != nil {
			return fmt.Errorf("looking up solution: %w", err)
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(stored)
	},
}
