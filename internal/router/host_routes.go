package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/rental-marketplace/internal/handler"
	"github.com/iliyamo/rental-marketplace/internal/middleware"
	"github.com/iliyamo/rental-marketplace/internal/model"
)

// RegisterHost registers listing management endpoints.  Only users whose
// current access token carries the HOST role may create, update or
// deactivate listings; ownership of the specific listing is enforced in
// the repository.
func RegisterHost(e *echo.Echo, l *handler.ListingHandler, jwtSecret string) {
	g := e.Group("/api/listings")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleHost))

	g.POST("", l.Create)
	g.PUT("/:id", l.Update)
	g.DELETE("/:id", l.Deactivate)
}
