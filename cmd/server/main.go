package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/rental-marketplace/internal/config"
	"github.com/iliyamo/rental-marketplace/internal/database"
	"github.com/iliyamo/rental-marketplace/internal/handler"
	"github.com/iliyamo/rental-marketplace/internal/middleware"
	"github.com/iliyamo/rental-marketplace/internal/queue"
	"github.com/iliyamo/rental-marketplace/internal/repository"
	"github.com/iliyamo/rental-marketplace/internal/router"
)

func main() {
	// .env is optional; deployments normally set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: a nil client disables rate limiting and response caching.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting and response cache disabled")
	}

	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	profileRepo := repository.NewProfileRepo(db)
	listingRepo := repository.NewListingRepo(db)
	bookingRepo := repository.NewBookingRepo(db)
	likeRepo := repository.NewLikeRepo(db)

	authHandler := handler.NewAuthHandler(cfg, userRepo, tokenRepo)
	listingHandler := handler.NewListingHandler(listingRepo)
	bookingHandler := handler.NewBookingHandler(bookingRepo, listingRepo)
	likeHandler := handler.NewLikeHandler(likeRepo)
	profileHandler := handler.NewProfileHandler(profileRepo, userRepo)

	e := echo.New()
	// Identity must be resolved before the rate limiter so user-keyed
	// bucket strategies see the caller instead of "anon".  Group-level
	// JWTAuth still enforces authentication where it is required.
	e.Use(middleware.OptionalJWTAuth(cfg.JWTSecret))
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterPublic(e, listingHandler, cfg.JWTSecret, config.LoadCacheConfig(), rdb)
	router.RegisterGuest(e, bookingHandler, likeHandler, profileHandler, cfg.JWTSecret)
	router.RegisterHost(e, listingHandler, cfg.JWTSecret)

	// Background consumer appends booking events to logs/booking.log.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
