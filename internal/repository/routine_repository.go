package repository

import (
	"context"
	"database/sql"

	"github.com/fitlink/fitlink-backend/internal/model"
)

// RoutineRepo persists routine entries. A routine is a group of
// (user, exercise) rows created together under one routine group id,
// optionally named later in bulk and edited per exercise afterwards.
type RoutineRepo struct{ DB *sql.DB }

func NewRoutineRepo(db *sql.DB) *RoutineRepo { return &RoutineRepo{DB: db} }

// EntryUpdate describes an in-place edit of one routine entry. Name
// is applied only when non-nil.
type EntryUpdate struct {
	ExerciseID uint64
	Sets       uint32
	Reps       uint32
	Name       *string
}

// NamedEntry is a routine entry joined with the exercise catalog, as
// returned by ListByName. ExerciseName falls back to "unknown" when
// the catalog has no row for the entry's exercise id.
type NamedEntry struct {
	ExerciseID   uint64 `json:"exercise_id"`
	ExerciseName string `json:"exercise_name"`
	TargetArea   string `json:"target_area"`
	RoutineID    uint64 `json:"routine_id"`
	Sets         uint32 `json:"sets"`
	Reps         uint32 `json:"reps"`
}

// SaveBatch stores a batch of routine entries inside one transaction.
// An entry whose (user_id, exercise_id, routine_id) triple already
// exists is skipped silently so replaying a batch is idempotent; a
// duplicate-key race with a concurrent save of the same group is
// absorbed the same way. Returns the number of rows inserted.
func (r *RoutineRepo) SaveBatch(ctx context.Context, entries []model.Routine) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	inserted := 0
	for _, e := range entries {
		var exists bool
		err := tx.QueryRowContext(ctx,
			"SELECT EXISTS(SELECT 1 FROM routines WHERE user_id=? AND exercise_id=? AND routine_id=?)",
			e.UserID, e.ExerciseID, e.RoutineID).Scan(&exists)
		if err != nil {
			return 0, err
		}
		if exists {
			continue
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO routines (user_id, exercise_id, routine_id, sets, reps) VALUES (?,?,?,?,?)",
			e.UserID, e.ExerciseID, e.RoutineID, e.Sets, e.Reps); err != nil {
			if isDuplicateKey(err) {
				continue
			}
			return 0, err
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	committed = true
	return inserted, nil
}

// AssignName names every still-unnamed entry of the user's routine
// group in one statement. Returns false when the group had no unnamed
// entries, in which case nothing was updated. Naming is scoped by the
// group id so two unnamed batches of the same user never bleed into
// each other.
func (r *RoutineRepo) AssignName(ctx context.Context, userID, routineID uint64, name string) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE routines SET routine_name=? WHERE user_id=? AND routine_id=? AND routine_name IS NULL",
		name, userID, routineID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// UpdateEntries applies a list of per-exercise edits to one routine
// group inside a single transaction. Each update overwrites sets and
// reps of the entry (routine_id, user_id, exercise_id) and, when a
// name is supplied, that entry's routine_name. A missing exercise
// aborts the whole transaction with ErrRoutineNotFound so earlier
// updates of the same call are never left half-applied.
//
// The 0-rows check relies on the connection's clientFoundRows option:
// RowsAffected then counts matched rows, so resubmitting an entry with
// its current values is a successful no-op, not a missing row.
func (r *RoutineRepo) UpdateEntries(ctx context.Context, userID, routineID uint64, updates []EntryUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	for _, u := range updates {
		var (
			res sql.Result
		)
		if u.Name != nil {
			res, err = tx.ExecContext(ctx,
				"UPDATE routines SET sets=?, reps=?, routine_name=? WHERE routine_id=? AND user_id=? AND exercise_id=?",
				u.Sets, u.Reps, *u.Name, routineID, userID, u.ExerciseID)
		} else {
			res, err = tx.ExecContext(ctx,
				"UPDATE routines SET sets=?, reps=? WHERE routine_id=? AND user_id=? AND exercise_id=?",
				u.Sets, u.Reps, routineID, userID, u.ExerciseID)
		}
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrRoutineNotFound
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// ListByName returns the user's routine entries carrying the given
// name, each joined with the exercise catalog. The join is LEFT so an
// entry whose exercise is missing from the catalog still appears with
// the sentinel name "unknown".
func (r *RoutineRepo) ListByName(ctx context.Context, userID uint64, name string) ([]NamedEntry, error) {
	const q = `SELECT r.exercise_id, COALESCE(e.name, 'unknown'), COALESCE(e.target_area, ''),
	                  r.routine_id, r.sets, r.reps
	           FROM routines r
	           LEFT JOIN exercise_names e ON e.id = r.exercise_id
	           WHERE r.user_id = ? AND r.routine_name = ?
	           ORDER BY r.id`
	rows, err := r.DB.QueryContext(ctx, q, userID, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]NamedEntry, 0)
	for rows.Next() {
		var e NamedEntry
		if err := rows.Scan(&e.ExerciseID, &e.ExerciseName, &e.TargetArea, &e.RoutineID, &e.Sets, &e.Reps); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
