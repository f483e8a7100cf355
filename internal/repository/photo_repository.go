package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/fitlink/fitlink-backend/internal/model"
)

// PhotoRepo persists workout and meal photos. Workout photos start
// private and become visible in the social feed only after the owner
// publishes them, which flips is_uploaded.
type PhotoRepo struct{ DB *sql.DB }

func NewPhotoRepo(db *sql.DB) *PhotoRepo { return &PhotoRepo{DB: db} }

// FeedPhoto is one published photo of the social feed joined with
// the owner's public profile fields.
type FeedPhoto struct {
	ID           uint64    `json:"id"`
	UserID       uint64    `json:"user_id"`
	Nickname     string    `json:"nickname"`
	ProfileImage string    `json:"profile_image"`
	TakenAt      time.Time `json:"taken_at"`
	PhotoPath    string    `json:"photo_path"`
}

// SaveOwn stores a workout photo for a user and returns its id. The
// photo is private until published to the feed.
func (r *PhotoRepo) SaveOwn(ctx context.Context, userID uint64, routineID *uint64, takenAt time.Time, photoPath string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO own_photos (user_id, routine_id, taken_at, photo_path, is_uploaded) VALUES (?,?,?,?,FALSE)",
		userID, routineID, takenAt, photoPath)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ListOwn returns all workout photos of a user, newest first.
func (r *PhotoRepo) ListOwn(ctx context.Context, userID uint64) ([]model.OwnPhoto, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, user_id, routine_id, taken_at, photo_path, is_uploaded FROM own_photos WHERE user_id=? ORDER BY taken_at DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	photos := make([]model.OwnPhoto, 0)
	for rows.Next() {
		var (
			p         model.OwnPhoto
			routineID sql.NullInt64
		)
		if err := rows.Scan(&p.ID, &p.UserID, &routineID, &p.TakenAt, &p.PhotoPath, &p.IsUploaded); err != nil {
			return nil, err
		}
		if routineID.Valid {
			rid := uint64(routineID.Int64)
			p.RoutineID = &rid
		}
		photos = append(photos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return photos, nil
}

// PublishToFeed marks the photo as uploaded so it appears in the
// social feed. Ownership is enforced in the statement itself: a photo
// that does not exist or belongs to another user yields
// ErrPhotoNotFound. Re-publishing an already uploaded photo is a
// no-op that still succeeds; the second return value reports whether
// this call actually flipped the flag, so callers can emit the shared
// event exactly once per photo.
func (r *PhotoRepo) PublishToFeed(ctx context.Context, userID, photoID uint64) (model.OwnPhoto, bool, error) {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE own_photos SET is_uploaded=TRUE WHERE id=? AND user_id=? AND is_uploaded=FALSE",
		photoID, userID)
	if err != nil {
		return model.OwnPhoto{}, false, err
	}
	flipped, err := res.RowsAffected()
	if err != nil {
		return model.OwnPhoto{}, false, err
	}

	var (
		p         model.OwnPhoto
		routineID sql.NullInt64
	)
	err = r.DB.QueryRowContext(ctx,
		"SELECT id, user_id, routine_id, taken_at, photo_path, is_uploaded FROM own_photos WHERE id=? AND user_id=? LIMIT 1",
		photoID, userID).Scan(&p.ID, &p.UserID, &routineID, &p.TakenAt, &p.PhotoPath, &p.IsUploaded)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.OwnPhoto{}, false, ErrPhotoNotFound
		}
		return model.OwnPhoto{}, false, err
	}
	if routineID.Valid {
		rid := uint64(routineID.Int64)
		p.RoutineID = &rid
	}
	return p, flipped > 0, nil
}

// ListFeed returns every published photo joined with the owner's
// nickname and profile image, newest first.
func (r *PhotoRepo) ListFeed(ctx context.Context) ([]FeedPhoto, error) {
	const q = `SELECT p.id, p.user_id, u.nickname, u.profile_image, p.taken_at, p.photo_path
	           FROM own_photos p
	           JOIN users u ON u.id = p.user_id
	           WHERE p.is_uploaded = TRUE
	           ORDER BY p.taken_at DESC`
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	photos := make([]FeedPhoto, 0)
	for rows.Next() {
		var p FeedPhoto
		if err := rows.Scan(&p.ID, &p.UserID, &p.Nickname, &p.ProfileImage, &p.TakenAt, &p.PhotoPath); err != nil {
			return nil, err
		}
		photos = append(photos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return photos, nil
}

// SaveMeal stores a meal photo for a user and returns its id.
func (r *PhotoRepo) SaveMeal(ctx context.Context, userID uint64, takenAt time.Time, photoPath string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO meal_photos (user_id, taken_at, photo_path) VALUES (?,?,?)",
		userID, takenAt, photoPath)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ListMeal returns all meal photos of a user, newest first.
func (r *PhotoRepo) ListMeal(ctx context.Context, userID uint64) ([]model.MealPhoto, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, user_id, taken_at, photo_path FROM meal_photos WHERE user_id=? ORDER BY taken_at DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	photos := make([]model.MealPhoto, 0)
	for rows.Next() {
		var p model.MealPhoto
		if err := rows.Scan(&p.ID, &p.UserID, &p.TakenAt, &p.PhotoPath); err != nil {
			return nil, err
		}
		photos = append(photos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return photos, nil
}
