// Package cache provides a namespaced result cache for computed
// Solutions, fronting the solution repository so repeat lookups of the
// same solve don't hit the database.
package cache

import (
	"context"
	"time"

	"github.com/felixgeelhaar/lessonsched/internal/scheduling/domain"
)

// Cache stores and retrieves Solutions by an opaque key.
type Cache interface {
	Get(ctx context.Context, key string) (*domain.Solution, bool, error)
	Set(ctx context.Context, key string, solution *domain.Solution, ttl time.Duration) error
}

// NoopCache satisfies Cache without storing anything, for local mode
// with no Redis configured.
type NoopCache struct{}

// Get always reports a miss.
func (NoopCache) Get(ctx context.Context, key string) (*domain.Solution, bool, error) {
	return nil, false, nil
}

// Set is a no-op.
func (NoopCache) Set(ctx context.Context, key string, solution *domain.Solution, ttl time.Duration) error {
	return nil
}
