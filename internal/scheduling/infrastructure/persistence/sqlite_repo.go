package persistence

import (
	"context"
	"encoding/json"
	"time"

	"github.com/felixgeelhaar/lessonsched/internal/shared/infrastructure/database"
	"github.com/google/uuid"
)

// SQLiteRepository implements SolutionRepository against a
// database.Connection backed by modernc.org/sqlite.
type SQLiteRepository struct {
	conn database.Connection
}

// NewSQLiteRepository creates a new SQLite solution repository.
func NewSQLiteRepository(conn database.Connection) *SQLiteRepository {
	return &SQLiteRepository{conn: conn}
}

// Save inserts a StoredSolution, replacing any existing row with the
// same id.
func (r *SQLiteRepository) Save(ctx context.Context, s *StoredSolution) error {
	payload, err := json.Marshal(s.Solution)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO solutions (
			id, solve_request_id, scheduled_count, unscheduled_count, payload, created_at
		) VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			solve_request_id = excluded.solve_request_id,
			scheduled_count = excluded.scheduled_count,
			unscheduled_count = excluded.unscheduled_count,
			payload = excluded.payload,
			created_at = excluded.created_at
	`

	execer := database.ExecutorFromContext(ctx, r.conn)
	_, err = execer.Exec(ctx, query,
		s.ID.String(),
		s.SolveRequestID.String(),
		s.Solution.Metadata.ScheduledStudents,
		len(s.Solution.UnscheduledStudentIDs),
		payload,
		s.CreatedAt.Format(time.RFC3339),
	)
	return err
}

// FindByID looks up a StoredSolution by its own id.
func (r *SQLiteRepository) FindByID(ctx context.Context, id uuid.UUID) (*StoredSolution, error) {
	query := `
		SELECT id, solve_request_id, payload, created_at
		FROM solutions
		WHERE id = ?
	`
	execer := database.ExecutorFromContext(ctx, r.conn)
	row := execer.QueryRow(ctx, query, id.String())
	return scanStoredSolutionText(row)
}

// FindBySolveRequestID looks up the solution produced by a given solve
// request.
func (r *SQLiteRepository) FindBySolveRequestID(ctx context.Context, solveRequestID uuid.UUID) (*StoredSolution, error) {
	query := `
		SELECT id, solve_request_id, payload, created_at
		FROM solutions
		WHERE solve_request_id = ?
		ORDER BY created_at DESC
		LIMIT 1
	`
	execer := database.ExecutorFromContext(ctx, r.conn)
	row := execer.QueryRow(ctx, query, solveRequestID.String())
	return scanStoredSolutionText(row)
}

// scanStoredSolutionText scans a row whose id/solve_request_id/created_at
// columns were stored as text (SQLite has no native uuid/timestamp type).
func scanStoredSolutionText(row database.Row) (*StoredSolution, error) {
	var (
		id, solveRequestID, createdAt string
		payload                       []byte
	)
	if err := row.Scan(&id, &solveRequestID, &payload, &createdAt); err != nil {
		return nil, translateNotFound(err)
	}

	parsedID, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	parsedRequestID, err := uuid.Parse(solveRequestID)
	if err != nil {
		return nil, err
	}
	parsedCreatedAt, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, err
	}

	s := &StoredSolution{ID: parsedID, SolveRequestID: parsedRequestID, CreatedAt: parsedCreatedAt}
	if err := json.Unmarshal(payload, &s.Solution); err != nil {
		return nil, err
	}
	return s, nil
}
