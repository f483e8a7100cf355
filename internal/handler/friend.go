package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fitlink/fitlink-backend/internal/repository"
)

// FriendHandler exposes the friend-graph endpoints. A friendship is a
// pair of directed edges written atomically at creation; updates and
// deletions act on one direction only, matching how the mobile client
// manages its own list.
type FriendHandler struct {
	Friends *repository.FriendRepo
}

func NewFriendHandler(f *repository.FriendRepo) *FriendHandler {
	if f == nil {
		panic("nil repository passed to NewFriendHandler")
	}
	return &FriendHandler{Friends: f}
}

type addFriendReq struct {
	FriendID uint64 `json:"friend_id"`
}

type updateFriendReq struct {
	NewFriendID uint64 `json:"new_friend_id"`
}

// Add handles POST /v1/friends. The authenticated user befriends the
// user from the body; both directed edges are created atomically.
func (h *FriendHandler) Add(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req addFriendReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.FriendID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "friend_id required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Friends.Add(ctx, userID, req.FriendID); err != nil {
		switch err {
		case repository.ErrSelfFriend:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot add yourself as a friend"})
		case repository.ErrFriendExists:
			return c.JSON(http.StatusConflict, echo.Map{"error": "friendship already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "friendship created"})
}

// List handles GET /v1/friends. A user with no friends gets an empty
// list, not a 404.
func (h *FriendHandler) List(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	friends, err := h.Friends.ListByUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"friends": friends})
}

// Update handles PUT /v1/friends/:friend_id. It repoints the caller's
// directed edge at a new friend; the reverse edge is untouched.
func (h *FriendHandler) Update(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	oldFriendID, err := pathID(c, "friend_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid friend id"})
	}
	var req updateFriendReq
	if err := c.Bind(&req); err != nil || req.NewFriendID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "new_friend_id required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Friends.UpdateEdge(ctx, userID, oldFriendID, req.NewFriendID); err != nil {
		switch err {
		case repository.ErrSelfFriend:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot add yourself as a friend"})
		case repository.ErrFriendNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "friendship not found"})
		case repository.ErrFriendExists:
			return c.JSON(http.StatusConflict, echo.Map{"error": "friendship already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"user_id": userID, "friend_id": req.NewFriendID})
}

// Delete handles DELETE /v1/friends/:friend_id. Only the caller's own
// directed edge is removed; the counterpart still lists the caller.
func (h *FriendHandler) Delete(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	friendID, err := pathID(c, "friend_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid friend id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Friends.DeleteEdge(ctx, userID, friendID); err != nil {
		if err == repository.ErrFriendNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "friendship not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "friend deleted"})
}
