package persistence

import (
	"context"
	"encoding/json"

	"github.com/felixgeelhaar/lessonsched/internal/scheduling/domain"
	"github.com/felixgeelhaar/lessonsched/internal/shared/infrastructure/database"
	"github.com/google/uuid"
)

// PostgresRepository implements SolutionRepository against a
// database.Connection backed by pgx.
type PostgresRepository struct {
	conn database.Connection
}

// NewPostgresRepository creates a new PostgreSQL solution repository.
func NewPostgresRepository(conn database.Connection) *PostgresRepository {
	return &PostgresRepository{conn: conn}
}

// Save inserts a StoredSolution, upserting on id.
func (r *PostgresRepository) Save(ctx context.Context, s *StoredSolution) error {
	payload, err := json.Marshal(s.Solution)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO solutions (
			id, solve_request_id, scheduled_count, unscheduled_count, payload, created_at
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			solve_request_id = EXCLUDED.solve_request_id,
			scheduled_count = EXCLUDED.scheduled_count,
			unscheduled_count = EXCLUDED.unscheduled_count,
			payload = EXCLUDED.payload,
			created_at = EXCLUDED.created_at
	`

	execer := database.ExecutorFromContext(ctx, r.conn)
	_, err = execer.Exec(ctx, query,
		s.ID,
		s.SolveRequestID,
		s.Solution.Metadata.ScheduledStudents,
		len(s.Solution.UnscheduledStudentIDs),
		payload,
		s.CreatedAt,
	)
	return err
}

// FindByID looks up a StoredSolution by its own id.
func (r *PostgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*StoredSolution, error) {
	query := `
		SELECT id, solve_request_id, payload, created_at
		FROM solutions
		WHERE id = $1
	`
	execer := database.ExecutorFromContext(ctx, r.conn)
	row := execer.QueryRow(ctx, query, id)
	return scanStoredSolution(row)
}

// FindBySolveRequestID looks up the solution produced by a given solve
// request.
func (r *PostgresRepository) FindBySolveRequestID(ctx context.Context, solveRequestID uuid.UUID) (*StoredSolution, error) {
	query := `
		SELECT id, solve_request_id, payload, created_at
		FROM solutions
		WHERE solve_request_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	execer := database.ExecutorFromContext(ctx, r.conn)
	row := execer.QueryRow(ctx, query, solveRequestID)
	return scanStoredSolution(row)
}

func scanStoredSolution(row database.Row) (*StoredSolution, error) {
	var (
		s       StoredSolution
		payload []byte
	)
	if err := row.Scan(&s.ID, &s.SolveRequestID, &payload, &s.CreatedAt); err != nil {
		return nil, translateNotFound(err)
	}
	if err := json.Unmarshal(payload, &s.Solution); err != nil {
		return nil, err
	}
	return &s, nil
}
