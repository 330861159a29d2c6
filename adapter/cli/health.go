package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/felixgeelhaar/lessonsched/pkg/observability"
	"github.com/spf13/cobra"
)

// HealthCmd reports the liveness of the active storage backend and, when
// configured, Redis and RabbitMQ. Registered on the root command by the
// composition root once a HealthRegistry has been wired into the App.
var HealthCmd = &cobra.Command{
	Use:   "health",
	Short: "Report the health of configured backends",
	RunE: func(cmd *cobra.Command, args []string) error {
		if app == nil || app.Health == nil {
			return fmt.Errorf("health registry is not wired")
		}

		overall := app.Health.GetOverallHealth(cmd.Context())

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(overall); err != nil {
			return err
		}
		if overall.Status != observability.HealthStatusHealthy {
			return fmt.Errorf("backend health check reported status %q", overall.Status)
		}
		return nil
	},
}
