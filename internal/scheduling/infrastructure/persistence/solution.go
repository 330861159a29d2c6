// Package persistence stores Solutions, each tagged with the id of the
// solve request that produced it, behind the storage-agnostic
// SolutionRepository interface backed by either Postgres or SQLite.
// The request input itself is not stored.
package persistence

import (
	"time"

	"github.com/felixgeelhaar/lessonsched/internal/scheduling/domain"
	"github.com/google/uuid"
)

// StoredSolution is the durable record of one solve's output.
type StoredSolution struct {
	ID             uuid.UUID
	SolveRequestID uuid.UUID
	Solution       domain.Solution
	CreatedAt      time.Time
}

// NewStoredSolution wraps a freshly computed Solution for persistence.
func NewStoredSolution(solveRequestID uuid.UUID, solution domain.Solution) *StoredSolution {
	return &StoredSolution{
		ID:             uuid.New(),
		SolveRequestID: solveRequestID,
		Solution:       solution,
		CreatedAt:      time.Now().UTC(),
	}
}
