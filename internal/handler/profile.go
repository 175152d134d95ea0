package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/rental-marketplace/internal/model"
	"github.com/iliyamo/rental-marketplace/internal/repository"
	"github.com/iliyamo/rental-marketplace/internal/validation"
)

// ProfileHandler serves the caller's own profile and the host-status
// toggle.
type ProfileHandler struct {
	Profiles *repository.ProfileRepo
	Users    *repository.UserRepo
}

func NewProfileHandler(p *repository.ProfileRepo, u *repository.UserRepo) *ProfileHandler {
	return &ProfileHandler{Profiles: p, Users: u}
}

// profileResp is the JSON shape for a profile.
type profileResp struct {
	UserID    uint64    `json:"user_id"`
	FullName  string    `json:"full_name"`
	Phone     *string   `json:"phone,omitempty"`
	Bio       *string   `json:"bio,omitempty"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	IsHost    bool      `json:"is_host"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toProfileResp(p model.Profile) profileResp {
	return profileResp{
		UserID:    p.UserID,
		FullName:  p.FullName,
		Phone:     p.Phone,
		Bio:       p.Bio,
		AvatarURL: p.AvatarURL,
		IsHost:    p.IsHost,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// Get handles GET /api/users/profile.
func (h *ProfileHandler) Get(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Profiles.Get(ctx, userID)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "profile not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"profile": toProfileResp(p)})
}

// Update handles PUT /api/users/profile: a partial upsert where omitted
// fields keep their stored values.
func (h *ProfileHandler) Update(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req validation.UpdateProfileRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Profiles.Upsert(ctx, userID, repository.ProfileUpdate{
		FullName:  req.FullName,
		Phone:     req.Phone,
		Bio:       req.Bio,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update profile failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "profile updated", "profile": toProfileResp(p)})
}

// ToggleHostStatus handles PATCH /api/users/host-status.  Flipping the
// flag also updates users.role, so the new capability takes effect once
// the client refreshes its access token.
func (h *ProfileHandler) ToggleHostStatus(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	isHost, err := h.Profiles.ToggleHost(ctx, h.Users, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "toggle host status failed"})
	}

	msg := "host status disabled"
	if isHost {
		msg = "host status enabled"
	}
	return c.JSON(http.StatusOK, echo.Map{"message": msg, "isHost": isHost})
}
