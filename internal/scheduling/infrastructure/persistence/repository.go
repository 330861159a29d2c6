package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrSolutionNotFound is returned when no stored solution matches the
// requested id.
var ErrSolutionNotFound = errors.New("persistence: solution not found")

// SolutionRepository persists StoredSolutions.
type SolutionRepository interface {
	Save(ctx context.Context, s *StoredSolution) error
	FindByID(ctx context.Context, id uuid.UUID) (*StoredSolution, error)
	FindBySolveRequestID(ctx context.Context, solveRequestID uuid.UUID) (*StoredSolution, error)
}
