package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/lessonsched/internal/scheduling/domain"
	"github.com/sony/gobreaker/v2"
)

// BreakerCache wraps a Cache with a circuit breaker so a failing Redis
// instance degrades every lookup to a cache miss instead of slowing
// down or failing the caller.
type BreakerCache struct {
	inner   Cache
	breaker *gobreaker.CircuitBreaker[any]
	logger  *slog.Logger
}

// NewBreakerCache wraps inner with a breaker tripping after
// failureThreshold consecutive failures.
func NewBreakerCache(inner Cache, failureThreshold uint32, logger *slog.Logger) *BreakerCache {
	if logger == nil {
		logger = slog.Default()
	}
	settings := gobreaker.Settings{
		Name:        "result_cache",
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
	return &BreakerCache{inner: inner, breaker: gobreaker.NewCircuitBreaker[any](settings), logger: logger}
}

// Get reports a miss, rather than an error, whenever the breaker is
// open or the underlying cache fails.
func (c *BreakerCache) Get(ctx context.Context, key string) (*domain.Solution, bool, error) {
	type result struct {
		solution *domain.Solution
		hit      bool
	}
	r, err := c.breaker.Execute(func() (any, error) {
		solution, hit, err := c.inner.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		return result{solution: solution, hit: hit}, nil
	})
	if err != nil {
		c.logger.Warn("result cache read degraded to miss", "error", err)
		return nil, false, nil
	}
	res := r.(result)
	return res.solution, res.hit, nil
}

// Set stores through the breaker, swallowing failures as a warning: a
// failed cache write never fails the caller's solve.
func (c *BreakerCache) Set(ctx context.Context, key string, solution *domain.Solution, ttl time.Duration) error {
	_, err := c.breaker.Execute(func() (any, error) {
		return nil, c.inner.Set(ctx, key, solution, ttl)
	})
	if err != nil {
		c.logger.Warn("result cache write failed", "error", err)
	}
	return nil
}
