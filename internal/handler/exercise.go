package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fitlink/fitlink-backend/internal/model"
	"github.com/fitlink/fitlink-backend/internal/repository"
)

// ExerciseHandler serves the read-only exercise catalog. These routes
// sit behind the response cache middleware since the catalog changes
// only by external seeding.
type ExerciseHandler struct {
	Exercises *repository.ExerciseRepo
}

func NewExerciseHandler(e *repository.ExerciseRepo) *ExerciseHandler {
	if e == nil {
		panic("nil repository passed to NewExerciseHandler")
	}
	return &ExerciseHandler{Exercises: e}
}

// List handles GET /v1/exercises.
func (h *ExerciseHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	exercises, err := h.Exercises.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, toExerciseList(exercises))
}

// Search handles GET /v1/exercises/search?query=...
func (h *ExerciseHandler) Search(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("query"))
	if query == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "query required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	exercises, err := h.Exercises.SearchByName(ctx, query)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, toExerciseList(exercises))
}

type exercisePart struct {
	ID         uint64 `json:"id"`
	Name       string `json:"name"`
	TargetArea string `json:"target_area"`
}

func toExerciseList(in []model.ExerciseName) []exercisePart {
	out := make([]exercisePart, 0, len(in))
	for _, e := range in {
		out = append(out, exercisePart{ID: e.ID, Name: e.Name, TargetArea: e.TargetArea})
	}
	return out
}
