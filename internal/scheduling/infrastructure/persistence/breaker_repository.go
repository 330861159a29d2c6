package persistence

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"
)

// BreakerRepository wraps a SolutionRepository with a circuit breaker
// so repeated Postgres/SQLite failures stop blocking solves: once
// tripped, Save becomes a no-op (the caller still gets the computed
// Solution, just not a persisted one) and reads fail fast instead of
// queuing behind a dead database.
type BreakerRepository struct {
	inner   SolutionRepository
	breaker *gobreaker.CircuitBreaker[any]
	logger  *slog.Logger
}

// NewBreakerRepository wraps inner with a breaker tripping after
// failureThreshold consecutive failures.
func NewBreakerRepository(inner SolutionRepository, failureThreshold uint32, logger *slog.Logger) *BreakerRepository {
	if logger == nil {
		logger = slog.Default()
	}
	settings := gobreaker.Settings{
		Name:        "solution_repository",
		MaxRequests: 1,
		Interval:    10 * time.Second,
		Timeout:     15 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	}
	return &BreakerRepository{inner: inner, breaker: gobreaker.NewCircuitBreaker[any](settings), logger: logger}
}

// Save persists through the breaker. When the breaker is open the
// write is skipped and logged rather than returned as an error, so a
// degraded storage layer never fails an otherwise-successful solve.
func (r *BreakerRepository) Save(ctx context.Context, s *StoredSolution) error {
	_, err := r.breaker.Execute(func() (any, error) {
		return nil, r.inner.Save(ctx, s)
	})
	if err == gobreaker.ErrOpenState {
		r.logger.Warn("solution persistence skipped: storage circuit open", "solution_id", s.ID)
		return nil
	}
	return err
}

func (r *BreakerRepository) FindByID(ctx context.Context, id uuid.UUID) (*StoredSolution, error) {
	res, err := r.breaker.Execute(func() (any, error) {
		return r.inner.FindByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return res.(*StoredSolution), nil
}

func (r *BreakerRepository) FindBySolveRequestID(ctx context.Context, solveRequestID uuid.UUID) (*StoredSolution, error) {
	res, err := r.breaker.Execute(func() (any, error) {
		return r.inner.FindBySolveRequestID(ctx, solveRequestID)
	})
	if err != nil {
		return nil, err
	}
	return res.(*StoredSolution), nil
}
