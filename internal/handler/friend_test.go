package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"

	"github.com/fitlink/fitlink-backend/internal/repository"
)

func newFriendHandlerWithMock(t *testing.T) (*FriendHandler, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewFriendHandler(repository.NewFriendRepo(db)), mock, func() { db.Close() }
}

func newJSONContext(t *testing.T, method, target, body string, userID uint64) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", userID)
	return c, rec
}

func TestFriendAddHandler_SelfIsBadRequest(t *testing.T) {
	h, _, closeDB := newFriendHandlerWithMock(t)
	defer closeDB()

	c, rec := newJSONContext(t, http.MethodPost, "/v1/friends", `{"friend_id":1}`, 1)
	if err := h.Add(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestFriendAddHandler_DuplicateIsConflict(t *testing.T) {
	h, mock, closeDB := newFriendHandlerWithMock(t)
	defer closeDB()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(uint64(1), uint64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(1))

	c, rec := newJSONContext(t, http.MethodPost, "/v1/friends", `{"friend_id":2}`, 1)
	if err := h.Add(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestFriendAddHandler_CreatesBothEdges(t *testing.T) {
	h, mock, closeDB := newFriendHandlerWithMock(t)
	defer closeDB()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(uint64(1), uint64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO friends").
		WithArgs(uint64(1), uint64(2)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO friends").
		WithArgs(uint64(2), uint64(1)).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	c, rec := newJSONContext(t, http.MethodPost, "/v1/friends", `{"friend_id":2}`, 1)
	if err := h.Add(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFriendListHandler_EmptyListIsOK(t *testing.T) {
	h, mock, closeDB := newFriendHandlerWithMock(t)
	defer closeDB()

	mock.ExpectQuery("SELECT u.id, u.nickname, u.profile_image").
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "nickname", "profile_image"}))

	c, rec := newJSONContext(t, http.MethodGet, "/v1/friends", "", 1)
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for empty friend list, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"friends":[]`) {
		t.Fatalf("expected empty friends array, got %s", rec.Body.String())
	}
}

func TestFriendDeleteHandler_MissingEdgeIsNotFound(t *testing.T) {
	h, mock, closeDB := newFriendHandlerWithMock(t)
	defer closeDB()

	mock.ExpectExec("DELETE FROM friends").
		WithArgs(uint64(1), uint64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	c, rec := newJSONContext(t, http.MethodDelete, "/v1/friends/9", "", 1)
	c.SetParamNames("friend_id")
	c.SetParamValues("9")
	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
