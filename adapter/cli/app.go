package cli

import (
	"github.com/felixgeelhaar/lessonsched/internal/scheduling/application/commands"
	"github.com/felixgeelhaar/lessonsched/internal/scheduling/application/queries"
	"github.com/felixgeelhaar/lessonsched/pkg/observability"
)

// App holds the CLI application's command/query handlers.
type App struct {
	SolveScheduleHandler *commands.SolveScheduleHandler
	GetSolutionHandler   *queries.GetSolutionHandler
	Health               *observability.HealthRegistry
}

// NewApp creates a new CLI application with the provided handlers.
func NewApp(solveScheduleHandler *commands.SolveScheduleHandler, getSolutionHandler *queries.GetSolutionHandler, health *observability.HealthRegistry) *App {
	return &App{
		SolveScheduleHandler: solveScheduleHandler,
		GetSolutionHandler:   getSolutionHandler,
		Health:               health,
	}
}

// app is the global CLI application instance
var app *App

// SetApp sets the global CLI application instance.
func SetApp(a *App) {
	app = a
}

// GetApp returns the global CLI application instance.
func GetApp() *App {
	return app
}
