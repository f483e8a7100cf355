package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/fitlink/fitlink-backend/internal/model"
)

// ExerciseRepo reads the fixed exercise catalog. The catalog is
// seeded externally; the application never writes to it.
type ExerciseRepo struct{ DB *sql.DB }

func NewExerciseRepo(db *sql.DB) *ExerciseRepo { return &ExerciseRepo{DB: db} }

// ListAll returns the full catalog ordered by id.
func (r *ExerciseRepo) ListAll(ctx context.Context) ([]model.ExerciseName, error) {
	return r.query(ctx, "SELECT id, name, target_area FROM exercise_names ORDER BY id")
}

// SearchByName returns catalog entries whose name contains the query
// substring, case-insensitively.
func (r *ExerciseRepo) SearchByName(ctx context.Context, query string) ([]model.ExerciseName, error) {
	pattern := "%" + strings.TrimSpace(query) + "%"
	return r.query(ctx,
		"SELECT id, name, target_area FROM exercise_names WHERE name LIKE ? ORDER BY id", pattern)
}

func (r *ExerciseRepo) query(ctx context.Context, q string, args ...interface{}) ([]model.ExerciseName, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exercises := make([]model.ExerciseName, 0)
	for rows.Next() {
		var e model.ExerciseName
		if err := rows.Scan(&e.ID, &e.Name, &e.TargetArea); err != nil {
			return nil, err
		}
		exercises = append(exercises, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return exercises, nil
}
