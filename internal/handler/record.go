package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fitlink/fitlink-backend/internal/model"
	"github.com/fitlink/fitlink-backend/internal/repository"
)

// RecordHandler exposes the body-metrics endpoints.
type RecordHandler struct {
	Records *repository.RecordRepo
}

func NewRecordHandler(r *repository.RecordRepo) *RecordHandler {
	if r == nil {
		panic("nil repository passed to NewRecordHandler")
	}
	return &RecordHandler{Records: r}
}

type createRecordReq struct {
	RecordedAt string `json:"recorded_at"` // RFC3339; defaults to now when empty
	Weight     uint32 `json:"weight"`
	BodyFat    uint32 `json:"body_fat"`
	MuscleMass uint32 `json:"muscle_mass"`
}

type recordPart struct {
	ID         uint64 `json:"id"`
	RecordedAt string `json:"recorded_at"`
	Weight     uint32 `json:"weight"`
	BodyFat    uint32 `json:"body_fat"`
	MuscleMass uint32 `json:"muscle_mass"`
}

func recordPartFrom(r model.Record) recordPart {
	return recordPart{
		ID:         r.ID,
		RecordedAt: r.RecordedAt.UTC().Format(time.RFC3339),
		Weight:     r.Weight,
		BodyFat:    r.BodyFat,
		MuscleMass: r.MuscleMass,
	}
}

// Create handles POST /v1/records.
func (h *RecordHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createRecordReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Weight == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "weight required"})
	}
	recordedAt := time.Now().UTC()
	if req.RecordedAt != "" {
		t, err := time.Parse(time.RFC3339, req.RecordedAt)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid recorded_at"})
		}
		recordedAt = t.UTC()
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Records.Create(ctx, userID, recordedAt, req.Weight, req.BodyFat, req.MuscleMass)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, recordPart{
		ID:         id,
		RecordedAt: recordedAt.Format(time.RFC3339),
		Weight:     req.Weight,
		BodyFat:    req.BodyFat,
		MuscleMass: req.MuscleMass,
	})
}

// List handles GET /v1/records, ordered by recording time.
func (h *RecordHandler) List(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	records, err := h.Records.ListByUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]recordPart, 0, len(records))
	for _, r := range records {
		out = append(out, recordPartFrom(r))
	}
	return c.JSON(http.StatusOK, echo.Map{"records": out})
}
