package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fitlink/fitlink-backend/internal/model"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id,kakao_id,nickname,profile_image,thumbnail_image,email,connected_at,created_at,updated_at"

func scanUser(row *sql.Row) (model.User, error) {
	var (
		u           model.User
		email       sql.NullString
		connectedAt sql.NullTime
	)
	err := row.Scan(&u.ID, &u.KakaoID, &u.Nickname, &u.ProfileImage, &u.ThumbnailImage,
		&email, &connectedAt, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return model.User{}, err
	}
	if email.Valid {
		e := email.String
		u.Email = &e
	}
	if connectedAt.Valid {
		t := connectedAt.Time
		u.ConnectedAt = &t
	}
	return u, nil
}

// FindByKakaoID fetches a user by the external provider identifier.
// Returns sql.ErrNoRows when no such user exists.
func (r *UserRepo) FindByKakaoID(ctx context.Context, kakaoID string) (model.User, error) {
	kakaoID = strings.TrimSpace(kakaoID)
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE kakao_id=? LIMIT 1", kakaoID))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
}

// NewUserParams carries the provider profile reported at login.
type NewUserParams struct {
	KakaoID        string
	Nickname       string
	ProfileImage   string
	ThumbnailImage string
	Email          *string
	ConnectedAt    *time.Time
}

// FindOrCreate returns the user with the given provider identifier,
// creating it on first login. The second return value reports whether
// a new record was created. Login is read-or-create: an existing row
// is returned as stored and never updated with the incoming profile
// fields. A duplicate-key failure from a concurrent first login is
// resolved by re-reading the winner's row.
func (r *UserRepo) FindOrCreate(ctx context.Context, p NewUserParams) (model.User, bool, error) {
	p.KakaoID = strings.TrimSpace(p.KakaoID)

	u, err := r.FindByKakaoID(ctx, p.KakaoID)
	if err == nil {
		return u, false, nil
	}
	if err != sql.ErrNoRows {
		return model.User{}, false, err
	}

	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (kakao_id, nickname, profile_image, thumbnail_image, email, connected_at) VALUES (?,?,?,?,?,?)",
		p.KakaoID, p.Nickname, p.ProfileImage, p.ThumbnailImage, p.Email, p.ConnectedAt)
	if err != nil {
		if isDuplicateKey(err) {
			u, err2 := r.FindByKakaoID(ctx, p.KakaoID)
			if err2 != nil {
				return model.User{}, false, err
			}
			return u, false, nil
		}
		return model.User{}, false, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.User{}, false, err
	}
	u, err = r.GetByID(ctx, uint64(id))
	if err != nil {
		return model.User{}, false, err
	}
	return u, true, nil
}

// isDuplicateKey reports whether err is a MySQL 1062 duplicate-entry error.
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
