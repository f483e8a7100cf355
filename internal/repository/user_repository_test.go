package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func newUserRepoWithMock(t *testing.T) (*UserRepo, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewUserRepo(db), mock, db
}

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "kakao_id", "nickname", "profile_image", "thumbnail_image",
		"email", "connected_at", "created_at", "updated_at",
	})
}

func TestFindOrCreate_ExistingUserIsNotTouched(t *testing.T) {
	repo, mock, db := newUserRepoWithMock(t)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT (.+) FROM users WHERE kakao_id").
		WithArgs("kakao123").
		WillReturnRows(userRows().AddRow(1, "kakao123", "stored-nick", "img", "thumb", nil, nil, now, now))

	// The incoming profile differs from the stored one; login must
	// return the stored row unchanged and run no UPDATE or INSERT.
	u, created, err := repo.FindOrCreate(context.Background(), NewUserParams{
		KakaoID:  "kakao123",
		Nickname: "new-nick",
	})
	if err != nil {
		t.Fatalf("FindOrCreate error: %v", err)
	}
	if created {
		t.Fatalf("expected existing user, got created=true")
	}
	if u.Nickname != "stored-nick" {
		t.Fatalf("login must not rewrite profile fields, got %q", u.Nickname)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFindOrCreate_CreatesOnFirstLogin(t *testing.T) {
	repo, mock, db := newUserRepoWithMock(t)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT (.+) FROM users WHERE kakao_id").
		WithArgs("kakao456").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec("INSERT INTO users").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
		WithArgs(uint64(2)).
		WillReturnRows(userRows().AddRow(2, "kakao456", "jane", "img", "thumb", nil, nil, now, now))

	u, created, err := repo.FindOrCreate(context.Background(), NewUserParams{
		KakaoID:  "kakao456",
		Nickname: "jane",
	})
	if err != nil {
		t.Fatalf("FindOrCreate error: %v", err)
	}
	if !created {
		t.Fatalf("expected created=true for first login")
	}
	if u.ID != 2 || u.KakaoID != "kakao456" {
		t.Fatalf("unexpected user: %+v", u)
	}
}

func TestFindOrCreate_ConcurrentFirstLoginLosesRace(t *testing.T) {
	repo, mock, db := newUserRepoWithMock(t)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT (.+) FROM users WHERE kakao_id").
		WithArgs("kakao456").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec("INSERT INTO users").
		WillReturnError(errors.New("Error 1062: Duplicate entry 'kakao456' for key 'kakao_id'"))
	mock.ExpectQuery("SELECT (.+) FROM users WHERE kakao_id").
		WithArgs("kakao456").
		WillReturnRows(userRows().AddRow(3, "kakao456", "jane", "img", "thumb", nil, nil, now, now))

	u, created, err := repo.FindOrCreate(context.Background(), NewUserParams{KakaoID: "kakao456"})
	if err != nil {
		t.Fatalf("FindOrCreate error: %v", err)
	}
	if created {
		t.Fatalf("race loser must report created=false")
	}
	if u.ID != 3 {
		t.Fatalf("expected winner's row, got %+v", u)
	}
}
