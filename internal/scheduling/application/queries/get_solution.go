// Package queries implements the read-side CQRS handlers for the
// scheduling module.
package queries

import (
	"context"
	"log/slog"

	"github.com/felixgeelhaar/lessonsched/internal/scheduling/infrastructure/cache"
	"github.com/felixgeelhaar/lessonsched/internal/scheduling/infrastructure/persistence"
	"github.com/google/uuid"
)

// GetSolutionQuery looks up one previously stored solution by id.
type GetSolutionQuery struct {
	ID uuid.UUID
}

// QueryName identifies the query for logging/routing.
func (GetSolutionQuery) QueryName() string { return "scheduling.get_solution" }

// GetSolutionHandler reads a StoredSolution, checking the result cache
// before falling through to the repository.
type GetSolutionHandler struct {
	repo   persistence.SolutionRepository
	cache  cache.Cache
	logger *slog.Logger
}

// NewGetSolutionHandler constructs a GetSolutionHandler. cache may be a
// cache.NoopCache in local mode.
func NewGetSolutionHandler(repo persistence.SolutionRepository, c cache.Cache, logger *slog.Logger) *GetSolutionHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &GetSolutionHandler{repo: repo, cache: c, logger: logger}
}

// Handle returns the StoredSolution for the requested id.
func (h *GetSolutionHandler) Handle(ctx context.Context, query GetSolutionQuery) (*persistence.StoredSolution, error) {
	key := "solution:" + query.ID.String()
	if sol, hit, err := h.cache.Get(ctx, key); err == nil && hit {
		return &persistence.StoredSolution{ID: query.ID, Solution: *sol}, nil
	}

	stored, err := h.repo.FindByID(ctx, query.ID)
	if err != nil {
		return nil, err
	}

	if err := h.cache.Set(ctx, key, &stored.Solution, 0); err != nil {
		h.logger.Warn("result cache write failed", "error", err)
	}
	return stored, nil
}
