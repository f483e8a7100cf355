package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fitlink/fitlink-backend/internal/model"
	"github.com/fitlink/fitlink-backend/internal/queue"
	"github.com/fitlink/fitlink-backend/internal/repository"
	queue_publisher "github.com/fitlink/fitlink-backend/internal/service"
)

// PhotoHandler exposes workout/meal photo storage and the social feed.
// Publishing a photo to the feed also emits a photo.shared event to
// the broker; publish failures are logged inside the publisher and do
// not fail the request.
type PhotoHandler struct {
	Photos *repository.PhotoRepo
	Users  *repository.UserRepo
}

func NewPhotoHandler(p *repository.PhotoRepo, u *repository.UserRepo) *PhotoHandler {
	if p == nil || u == nil {
		panic("nil repository passed to NewPhotoHandler")
	}
	return &PhotoHandler{Photos: p, Users: u}
}

type savePhotoReq struct {
	PhotoPath string  `json:"photo_path"`
	TakenAt   string  `json:"taken_at"` // RFC3339; defaults to now when empty
	RoutineID *uint64 `json:"routine_id"`
}

type uploadFeedReq struct {
	PhotoID uint64 `json:"photo_id"`
}

type ownPhotoPart struct {
	ID         uint64  `json:"id"`
	RoutineID  *uint64 `json:"routine_id,omitempty"`
	TakenAt    string  `json:"taken_at"`
	PhotoPath  string  `json:"photo_path"`
	IsUploaded bool    `json:"is_uploaded"`
}

func ownPhotoPartFrom(p model.OwnPhoto) ownPhotoPart {
	return ownPhotoPart{
		ID:         p.ID,
		RoutineID:  p.RoutineID,
		TakenAt:    p.TakenAt.UTC().Format(time.RFC3339),
		PhotoPath:  p.PhotoPath,
		IsUploaded: p.IsUploaded,
	}
}

func parseTakenAt(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now().UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// SaveOwn handles POST /v1/photos. The photo stays private until the
// owner publishes it to the feed.
func (h *PhotoHandler) SaveOwn(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req savePhotoReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.PhotoPath) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "photo_path required"})
	}
	takenAt, err := parseTakenAt(req.TakenAt)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid taken_at"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Photos.SaveOwn(ctx, userID, req.RoutineID, takenAt, req.PhotoPath)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "photo saved", "photo_id": id})
}

// ListOwn handles GET /v1/photos.
func (h *PhotoHandler) ListOwn(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	photos, err := h.Photos.ListOwn(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]ownPhotoPart, 0, len(photos))
	for _, p := range photos {
		out = append(out, ownPhotoPartFrom(p))
	}
	return c.JSON(http.StatusOK, echo.Map{"photos": out})
}

// UploadToFeed handles POST /v1/social/upload. Only the photo's owner
// can publish it; publishing an already shared photo succeeds without
// a second event.
func (h *PhotoHandler) UploadToFeed(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req uploadFeedReq
	if err := c.Bind(&req); err != nil || req.PhotoID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "photo_id required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	photo, published, err := h.Photos.PublishToFeed(ctx, userID, req.PhotoID)
	if err != nil {
		if err == repository.ErrPhotoNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "photo not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	if published {
		nickname := ""
		if u, err := h.Users.GetByID(ctx, userID); err == nil {
			nickname = u.Nickname
		}
		_ = queue_publisher.PublishPhotoShared(ctx, queue.PhotoSharedEvent{
			PhotoID:   photo.ID,
			UserID:    userID,
			Nickname:  nickname,
			PhotoPath: photo.PhotoPath,
			TakenAt:   photo.TakenAt.UTC().Format(time.RFC3339),
			SharedAt:  time.Now().UTC().Format(time.RFC3339),
		})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "photo uploaded", "photo": ownPhotoPartFrom(photo)})
}

// Feed handles GET /v1/social/photos: every published photo with its
// owner's public profile, newest first.
func (h *PhotoHandler) Feed(c echo.Context) error {
	if _, err := getUserID(c); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	photos, err := h.Photos.ListFeed(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"photos": photos})
}

// SaveMeal handles POST /v1/meal-photos.
func (h *PhotoHandler) SaveMeal(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req savePhotoReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.PhotoPath) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "photo_path required"})
	}
	takenAt, err := parseTakenAt(req.TakenAt)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid taken_at"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Photos.SaveMeal(ctx, userID, takenAt, req.PhotoPath)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "photo saved", "photo_id": id})
}

// ListMeal handles GET /v1/meal-photos.
func (h *PhotoHandler) ListMeal(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	photos, err := h.Photos.ListMeal(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	type mealPart struct {
		ID        uint64 `json:"id"`
		TakenAt   string `json:"taken_at"`
		PhotoPath string `json:"photo_path"`
	}
	out := make([]mealPart, 0, len(photos))
	for _, p := range photos {
		out = append(out, mealPart{ID: p.ID, TakenAt: p.TakenAt.UTC().Format(time.RFC3339), PhotoPath: p.PhotoPath})
	}
	return c.JSON(http.StatusOK, echo.Map{"photos": out})
}
