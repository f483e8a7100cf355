package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/fitlink/fitlink-backend/internal/model"
)

// RecordRepo persists body-metric measurements. Records are
// append-only; retrieval is ordered by the recording timestamp.
type RecordRepo struct{ DB *sql.DB }

func NewRecordRepo(db *sql.DB) *RecordRepo { return &RecordRepo{DB: db} }

// Create stores one measurement and returns its id.
func (r *RecordRepo) Create(ctx context.Context, userID uint64, recordedAt time.Time, weight, bodyFat, muscleMass uint32) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO records (user_id, recorded_at, weight, body_fat, muscle_mass) VALUES (?,?,?,?,?)",
		userID, recordedAt, weight, bodyFat, muscleMass)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ListByUser returns all measurements of a user ordered by recording
// time ascending.
func (r *RecordRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Record, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, user_id, recorded_at, weight, body_fat, muscle_mass FROM records WHERE user_id=? ORDER BY recorded_at",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]model.Record, 0)
	for rows.Next() {
		var rec model.Record
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.RecordedAt, &rec.Weight, &rec.BodyFat, &rec.MuscleMass); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// CountWorkoutDays returns the number of distinct dates on which the
// user logged either a measurement or a workout photo. Used by the
// profile endpoint.
func (r *RecordRepo) CountWorkoutDays(ctx context.Context, userID uint64) (uint64, error) {
	const q = `SELECT COUNT(*) FROM (
	             SELECT DATE(recorded_at) AS d FROM records WHERE user_id = ?
	             UNION
	             SELECT DATE(taken_at) AS d FROM own_photos WHERE user_id = ?
	           ) days`
	var n uint64
	err := r.DB.QueryRowContext(ctx, q, userID, userID).Scan(&n)
	return n, err
}
