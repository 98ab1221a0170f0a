// Package history persists an audit trail of solve and repair runs to
// Postgres, so operators can see why a timetable came out the way it did.
package history

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Record is one solve or repair run.
type Record struct {
	ID                   string    `db:"id"`
	RunKind              string    `db:"run_kind"` // "generate" or "repair"
	Backend              string    `db:"backend"`
	Status               string    `db:"status"`
	DurationMS           int64     `db:"duration_ms"`
	BindingCount         int       `db:"binding_count"`
	UnscheduledCourseIDs []string  `db:"-"`
	CreatedAt            time.Time `db:"created_at"`
}

// Repository stores Records in the solve_history table.
type Repository struct {
	db *sqlx.DB
}

// NewRepository constructs the repository.
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// Record inserts rec, assigning an id and timestamp if left zero.
func (r *Repository) Record(ctx context.Context, rec Record) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	const query = `
INSERT INTO solve_history (id, run_kind, backend, status, duration_ms, binding_count, unscheduled_course_ids, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.RunKind, rec.Backend, rec.Status, rec.DurationMS, rec.BindingCount,
		pq.Array(rec.UnscheduledCourseIDs), rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("record solve history: %w", err)
	}
	return nil
}

// row mirrors solve_history's column shape for scanning, since
// unscheduled_course_ids needs pq.Array on the way out too.
type row struct {
	Record
	UnscheduledCourseIDsRaw pq.StringArray `db:"unscheduled_course_ids"`
}

// ListRecent returns the most recent limit runs, newest first.
func (r *Repository) ListRecent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 50
	}

	const query = `
SELECT id, run_kind, backend, status, duration_ms, binding_count, unscheduled_course_ids, created_at
FROM solve_history
ORDER BY created_at DESC
LIMIT $1`

	var rows []row
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("list solve history: %w", err)
	}

	records := make([]Record, len(rows))
	for i, rr := range rows {
		records[i] = rr.Record
		records[i].UnscheduledCourseIDs = []string(rr.UnscheduledCourseIDsRaw)
	}
	return records, nil
}
