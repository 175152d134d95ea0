package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/rental-marketplace/internal/repository"
)

// LikeHandler serves the per-user like ledger.
type LikeHandler struct {
	Likes *repository.LikeRepo
}

func NewLikeHandler(l *repository.LikeRepo) *LikeHandler {
	return &LikeHandler{Likes: l}
}

// Toggle handles POST /api/likes/listing/:listingId: flips the caller's
// like for the listing and reports the resulting state.
func (h *LikeHandler) Toggle(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	listingID, ok := parseIDParam(c, "listingId")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid listing id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	liked, err := h.Likes.Toggle(ctx, userID, listingID)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "toggle like failed"})
	}

	msg := "listing unliked"
	if liked {
		msg = "listing liked"
	}
	return c.JSON(http.StatusOK, echo.Map{"message": msg, "isLiked": liked})
}

// Status handles GET /api/likes/listing/:listingId.
func (h *LikeHandler) Status(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	listingID, ok := parseIDParam(c, "listingId")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid listing id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	liked, err := h.Likes.Status(ctx, userID, listingID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"isLiked": liked})
}

// UserLikes handles GET /api/likes/user: the caller's liked listings,
// most recently liked first.
func (h *LikeHandler) UserLikes(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	page, limit := parsePageQuery(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, total, err := h.Likes.ListByUser(ctx, userID, page, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"likedListings": items,
		"pagination":    repository.NewPagination(page, limit, total),
	})
}
