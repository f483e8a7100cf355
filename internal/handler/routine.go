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

// RoutineHandler exposes the routine endpoints: batched creation of
// exercise entries, deferred naming of a group, per-exercise edits and
// listing by routine name.
type RoutineHandler struct {
	Routines *repository.RoutineRepo
}

func NewRoutineHandler(r *repository.RoutineRepo) *RoutineHandler {
	if r == nil {
		panic("nil repository passed to NewRoutineHandler")
	}
	return &RoutineHandler{Routines: r}
}

type batchEntryReq struct {
	RoutineID  uint64 `json:"routine_id"`
	ExerciseID uint64 `json:"exercise_id"`
	Sets       uint32 `json:"sets"`
	Reps       uint32 `json:"reps"`
}

type saveBatchReq struct {
	Entries []batchEntryReq `json:"entries"`
}

type assignNameReq struct {
	RoutineID   uint64 `json:"routine_id"`
	RoutineName string `json:"routine_name"`
}

type entryUpdateReq struct {
	ExerciseID  uint64  `json:"exercise_id"`
	Sets        uint32  `json:"sets"`
	Reps        uint32  `json:"reps"`
	RoutineName *string `json:"routine_name"`
}

type updateEntriesReq struct {
	RoutineID uint64           `json:"routine_id"`
	Updates   []entryUpdateReq `json:"updates"`
}

// SaveBatch handles POST /v1/routines. The whole batch is committed in
// one transaction; entries whose triple already exists are skipped, so
// replaying the same batch is harmless.
func (h *RoutineHandler) SaveBatch(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req saveBatchReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if len(req.Entries) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "entries required"})
	}
	entries := make([]model.Routine, 0, len(req.Entries))
	for _, e := range req.Entries {
		if e.RoutineID == 0 || e.ExerciseID == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "routine_id and exercise_id required"})
		}
		entries = append(entries, model.Routine{
			RoutineID:  e.RoutineID,
			UserID:     userID,
			ExerciseID: e.ExerciseID,
			Sets:       e.Sets,
			Reps:       e.Reps,
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	inserted, err := h.Routines.SaveBatch(ctx, entries)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "routines saved", "inserted": inserted})
}

// AssignName handles PUT /v1/routines/name. Naming is scoped to one
// routine group; a group with nothing left to name yields a 404.
func (h *RoutineHandler) AssignName(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req assignNameReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.RoutineName = strings.TrimSpace(req.RoutineName)
	if req.RoutineID == 0 || req.RoutineName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "routine_id and routine_name required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	named, err := h.Routines.AssignName(ctx, userID, req.RoutineID, req.RoutineName)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if !named {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no unnamed routines found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "routine named", "routine_name": req.RoutineName})
}

// UpdateEntries handles PUT /v1/routines. All edits of the call are
// applied in one transaction: a missing exercise rolls the whole call
// back and returns 404.
func (h *RoutineHandler) UpdateEntries(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req updateEntriesReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.RoutineID == 0 || len(req.Updates) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "routine_id and updates required"})
	}
	updates := make([]repository.EntryUpdate, 0, len(req.Updates))
	for _, u := range req.Updates {
		if u.ExerciseID == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "exercise_id required"})
		}
		updates = append(updates, repository.EntryUpdate{
			ExerciseID: u.ExerciseID,
			Sets:       u.Sets,
			Reps:       u.Reps,
			Name:       u.RoutineName,
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Routines.UpdateEntries(ctx, userID, req.RoutineID, updates); err != nil {
		if err == repository.ErrRoutineNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "routine entry not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "routines updated"})
}

// ListByName handles GET /v1/routines/:name. Entries come joined with
// the exercise catalog; unknown exercise ids resolve to "unknown".
func (h *RoutineHandler) ListByName(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "routine name required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	entries, err := h.Routines.ListByName(ctx, userID, name)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"routine_name": name, "exercises": entries})
}
