package schedule

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/felixgeelhaar/lessonsched/adapter/cli"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveCmd_MissingInputFile(t *testing.T) {
	cli.SetApp(nil)

	solveFile = filepath.Join(t.TempDir(), "missing.json")
	solveCmd.SetContext(context.Background())

	err := solveCmd.RunE(solveCmd, []string{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading input")
}

func TestShowCmd_NoApp(t *testing.T) {
	cli.SetApp(nil)

	showCmd.SetContext(context.Background())

	err := showCmd.RunE(showCmd, []string{uuid.NewString()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "get-solution handler is not wired")
}

func TestShowCmd_InvalidSolutionID(t *testing.T) {
	cli.SetApp(nil)

	showCmd.SetContext(context.Background())

	err := showCmd.RunE(showCmd, []string{"not-a-uuid"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid solution id")
}

func TestScheduleCmd_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range Cmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["solve"])
	assert.True(t, names["show"])
}
