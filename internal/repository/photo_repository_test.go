package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func newPhotoRepoWithMock(t *testing.T) (*PhotoRepo, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPhotoRepo(db), mock, db
}

func TestPublishToFeed_SetsUploadFlag(t *testing.T) {
	repo, mock, db := newPhotoRepoWithMock(t)
	defer db.Close()

	takenAt := time.Now().UTC()
	mock.ExpectExec("UPDATE own_photos SET is_uploaded").
		WithArgs(uint64(10), uint64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT id, user_id, routine_id, taken_at, photo_path, is_uploaded FROM own_photos").
		WithArgs(uint64(10), uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "routine_id", "taken_at", "photo_path", "is_uploaded"}).
			AddRow(10, 1, nil, takenAt, "/p/10.jpg", true))

	p, published, err := repo.PublishToFeed(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("PublishToFeed error: %v", err)
	}
	if !p.IsUploaded {
		t.Fatalf("expected photo marked uploaded, got %+v", p)
	}
	if !published {
		t.Fatalf("first publish must report the flag flip")
	}
}

func TestPublishToFeed_SecondPublishIsSilent(t *testing.T) {
	repo, mock, db := newPhotoRepoWithMock(t)
	defer db.Close()

	// Already uploaded: the guarded UPDATE matches nothing, but the
	// photo is still the caller's, so the call succeeds with
	// published=false and no event is due.
	takenAt := time.Now().UTC()
	mock.ExpectExec("UPDATE own_photos SET is_uploaded").
		WithArgs(uint64(10), uint64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT id, user_id, routine_id, taken_at, photo_path, is_uploaded FROM own_photos").
		WithArgs(uint64(10), uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "routine_id", "taken_at", "photo_path", "is_uploaded"}).
			AddRow(10, 1, nil, takenAt, "/p/10.jpg", true))

	p, published, err := repo.PublishToFeed(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("PublishToFeed error: %v", err)
	}
	if published {
		t.Fatalf("re-publishing must not report a flag flip")
	}
	if !p.IsUploaded {
		t.Fatalf("photo must stay uploaded, got %+v", p)
	}
}

func TestPublishToFeed_NotOwned(t *testing.T) {
	repo, mock, db := newPhotoRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec("UPDATE own_photos SET is_uploaded").
		WithArgs(uint64(10), uint64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT id, user_id, routine_id, taken_at, photo_path, is_uploaded FROM own_photos").
		WithArgs(uint64(10), uint64(2)).
		WillReturnError(sql.ErrNoRows)

	if _, _, err := repo.PublishToFeed(context.Background(), 2, 10); err != ErrPhotoNotFound {
		t.Fatalf("expected ErrPhotoNotFound, got %v", err)
	}
}

func TestListFeed_OnlyUploadedPhotos(t *testing.T) {
	repo, mock, db := newPhotoRepoWithMock(t)
	defer db.Close()

	takenAt := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "user_id", "nickname", "profile_image", "taken_at", "photo_path"}).
		AddRow(10, 1, "jane", "img", takenAt, "/p/10.jpg")
	mock.ExpectQuery("SELECT p.id, p.user_id, u.nickname").
		WillReturnRows(rows)

	photos, err := repo.ListFeed(context.Background())
	if err != nil {
		t.Fatalf("ListFeed error: %v", err)
	}
	if len(photos) != 1 || photos[0].Nickname != "jane" {
		t.Fatalf("unexpected feed: %+v", photos)
	}
}
