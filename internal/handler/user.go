package handler

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fitlink/fitlink-backend/internal/repository"
)

// UserHandler serves public profile lookups.
type UserHandler struct {
	Users   *repository.UserRepo
	Records *repository.RecordRepo
}

func NewUserHandler(u *repository.UserRepo, r *repository.RecordRepo) *UserHandler {
	if u == nil || r == nil {
		panic("nil repository passed to NewUserHandler")
	}
	return &UserHandler{Users: u, Records: r}
}

// Profile handles GET /v1/users/:id/profile. It returns the user's
// public fields plus the number of distinct days with logged workouts.
func (h *UserHandler) Profile(c echo.Context) error {
	if _, err := getUserID(c); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	days, err := h.Records.CountWorkoutDays(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"id":            u.ID,
		"nickname":      u.Nickname,
		"profile_image": u.ProfileImage,
		"workout_days":  days,
	})
}
