package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/rental-marketplace/internal/config"
	"github.com/iliyamo/rental-marketplace/internal/handler"
	"github.com/iliyamo/rental-marketplace/internal/middleware"
)

// RegisterPublic registers the public listing browse endpoints.  No
// authentication is required, but OptionalJWTAuth resolves the caller's
// identity when a token is present so responses can carry the
// per-viewer like flag.  Responses are cached in Redis; the cache key
// strategy mixes the viewer identity in for the same reason.
func RegisterPublic(e *echo.Echo, l *handler.ListingHandler, jwtSecret string, cacheCfg config.CacheConfig, rdb *redis.Client) {
	g := e.Group("/api/listings")
	g.Use(middleware.OptionalJWTAuth(jwtSecret))
	g.Use(middleware.NewRedisCache(cacheCfg, rdb))

	// Search with optional conjunctive filters and pagination.
	g.GET("", l.Search)
	// Top listings by like count, rating as tie-break.
	g.GET("/popular", l.Popular)
	// Single listing with host display info.
	g.GET("/:id", l.GetByID)
}
