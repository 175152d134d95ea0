package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/rental-marketplace/internal/handler"
	"github.com/iliyamo/rental-marketplace/internal/middleware"
	"github.com/iliyamo/rental-marketplace/internal/model"
)

// RegisterGuest registers the authenticated guest-side endpoints:
// bookings, the like ledger and the caller's profile.  Hosts keep full
// guest capability, so both roles are accepted here.
func RegisterGuest(e *echo.Echo, b *handler.BookingHandler, lk *handler.LikeHandler, p *handler.ProfileHandler, jwtSecret string) {
	g := e.Group("/api")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleGuest, model.RoleHost))

	// Bookings.
	g.POST("/bookings", b.Create)
	g.GET("/bookings", b.List)
	g.GET("/bookings/:id", b.GetByID)
	g.PATCH("/bookings/:id/status", b.UpdateStatus)

	// Like ledger.
	g.POST("/likes/listing/:listingId", lk.Toggle)
	g.GET("/likes/listing/:listingId", lk.Status)
	g.GET("/likes/user", lk.UserLikes)

	// Profile and host-status toggle.
	g.GET("/users/profile", p.Get)
	g.PUT("/users/profile", p.Update)
	g.PATCH("/users/host-status", p.ToggleHostStatus)
}
