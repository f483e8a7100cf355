package handler

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/fitlink/fitlink-backend/internal/config"
	"github.com/fitlink/fitlink-backend/internal/repository"
)

func newAuthHandlerWithMock(t *testing.T) (*AuthHandler, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	h := NewAuthHandler(config.Config{JWTSecret: "test-secret", AccessTTLMin: 15, RefreshTTLDays: 30},
		repository.NewUserRepo(db), repository.NewTokenRepo(db))
	return h, mock, func() { db.Close() }
}

func TestLogoutAll_RevokesEveryActiveToken(t *testing.T) {
	h, mock, closeDB := newAuthHandlerWithMock(t)
	defer closeDB()

	mock.ExpectExec("UPDATE refresh_tokens SET revoked_at").
		WithArgs(uint64(1)).
		WillReturnResult(sqlmock.NewResult(0, 3))

	c, rec := newJSONContext(t, http.MethodPost, "/v1/logout-all", "", 1)
	if err := h.LogoutAll(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestLogoutAll_MissingIdentityIsUnauthorized(t *testing.T) {
	h, _, closeDB := newAuthHandlerWithMock(t)
	defer closeDB()

	c, rec := newJSONContext(t, http.MethodPost, "/v1/logout-all", "", 0)
	c.Set("user_id", nil)
	if err := h.LogoutAll(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
