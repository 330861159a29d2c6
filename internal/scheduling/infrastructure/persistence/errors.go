package persistence

import "github.com/felixgeelhaar/lessonsched/internal/shared/infrastructure/database"

// translateNotFound maps a driver-level no-rows error to
// ErrSolutionNotFound, the sentinel callers outside this package match
// against.
func translateNotFound(err error) error {
	if database.IsNoRows(err) {
		return ErrSolutionNotFound
	}
	return err
}
