package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func newFriendRepoWithMock(t *testing.T) (*FriendRepo, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewFriendRepo(db), mock, db
}

func TestFriendAdd_Success(t *testing.T) {
	repo, mock, db := newFriendRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(uint64(1), uint64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO friends").
		WithArgs(uint64(1), uint64(2)).
		WillReturnResult(sqlmock.NewResult(10, 1))
	mock.ExpectExec("INSERT INTO friends").
		WithArgs(uint64(2), uint64(1)).
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectCommit()

	if err := repo.Add(context.Background(), 1, 2); err != nil {
		t.Fatalf("Add error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFriendAdd_Self(t *testing.T) {
	repo, _, db := newFriendRepoWithMock(t)
	defer db.Close()

	if err := repo.Add(context.Background(), 7, 7); err != ErrSelfFriend {
		t.Fatalf("expected ErrSelfFriend, got %v", err)
	}
}

func TestFriendAdd_AlreadyExists(t *testing.T) {
	repo, mock, db := newFriendRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(uint64(1), uint64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(1))

	if err := repo.Add(context.Background(), 1, 2); err != ErrFriendExists {
		t.Fatalf("expected ErrFriendExists, got %v", err)
	}
}

func TestFriendAdd_DuplicateRaceRollsBack(t *testing.T) {
	repo, mock, db := newFriendRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(uint64(1), uint64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO friends").
		WithArgs(uint64(1), uint64(2)).
		WillReturnResult(sqlmock.NewResult(10, 1))
	mock.ExpectExec("INSERT INTO friends").
		WithArgs(uint64(2), uint64(1)).
		WillReturnError(errors.New("Error 1062: Duplicate entry '2-1' for key 'unique_friendship'"))
	mock.ExpectRollback()

	if err := repo.Add(context.Background(), 1, 2); err != ErrFriendExists {
		t.Fatalf("expected ErrFriendExists, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFriendAdd_SecondInsertFailureRollsBack(t *testing.T) {
	repo, mock, db := newFriendRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(uint64(1), uint64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO friends").
		WithArgs(uint64(1), uint64(2)).
		WillReturnResult(sqlmock.NewResult(10, 1))
	mock.ExpectExec("INSERT INTO friends").
		WithArgs(uint64(2), uint64(1)).
		WillReturnError(errors.New("db down"))
	mock.ExpectRollback()

	if err := repo.Add(context.Background(), 1, 2); err == nil || err == ErrFriendExists {
		t.Fatalf("expected storage error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFriendList_ResolvesProfiles(t *testing.T) {
	repo, mock, db := newFriendRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "nickname", "profile_image"}).
		AddRow(2, "jane", "https://img/2.png").
		AddRow(3, "kim", "https://img/3.png")
	mock.ExpectQuery("SELECT u.id, u.nickname, u.profile_image").
		WithArgs(uint64(1)).
		WillReturnRows(rows)

	friends, err := repo.ListByUser(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if len(friends) != 2 {
		t.Fatalf("expected 2 friends, got %d", len(friends))
	}
	if friends[0].ID != 2 || friends[0].Nickname != "jane" {
		t.Fatalf("unexpected first friend: %+v", friends[0])
	}
}

func TestFriendList_EmptyIsNotAnError(t *testing.T) {
	repo, mock, db := newFriendRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery("SELECT u.id, u.nickname, u.profile_image").
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "nickname", "profile_image"}))

	friends, err := repo.ListByUser(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if friends == nil || len(friends) != 0 {
		t.Fatalf("expected empty slice, got %#v", friends)
	}
}

func TestFriendUpdateEdge_NotFound(t *testing.T) {
	repo, mock, db := newFriendRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec("UPDATE friends SET friend_id").
		WithArgs(uint64(3), uint64(1), uint64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.UpdateEdge(context.Background(), 1, 2, 3); err != ErrFriendNotFound {
		t.Fatalf("expected ErrFriendNotFound, got %v", err)
	}
}

func TestFriendUpdateEdge_SameTargetSucceeds(t *testing.T) {
	repo, mock, db := newFriendRepoWithMock(t)
	defer db.Close()

	// Repointing (1,2) at 2 writes the value the row already holds.
	// Found-rows semantics report the matched row, so this is a no-op
	// success rather than ErrFriendNotFound.
	mock.ExpectExec("UPDATE friends SET friend_id").
		WithArgs(uint64(2), uint64(1), uint64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdateEdge(context.Background(), 1, 2, 2); err != nil {
		t.Fatalf("no-op repoint must succeed, got %v", err)
	}
}

func TestFriendDeleteEdge_OneDirectionOnly(t *testing.T) {
	repo, mock, db := newFriendRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM friends").
		WithArgs(uint64(1), uint64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.DeleteEdge(context.Background(), 1, 2); err != nil {
		t.Fatalf("DeleteEdge error: %v", err)
	}
	// Only the (1,2) edge is addressed; no statement for (2,1) may run.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFriendDeleteEdge_NotFound(t *testing.T) {
	repo, mock, db := newFriendRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM friends").
		WithArgs(uint64(1), uint64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.DeleteEdge(context.Background(), 1, 9); err != ErrFriendNotFound {
		t.Fatalf("expected ErrFriendNotFound, got %v", err)
	}
}
