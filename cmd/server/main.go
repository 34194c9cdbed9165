package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/hotel-property-management/internal/booking"
	"github.com/iliyamo/hotel-property-management/internal/config"
	"github.com/iliyamo/hotel-property-management/internal/database"
	"github.com/iliyamo/hotel-property-management/internal/handler"
	"github.com/iliyamo/hotel-property-management/internal/middleware"
	"github.com/iliyamo/hotel-property-management/internal/queue"
	"github.com/iliyamo/hotel-property-management/internal/repository"
	"github.com/iliyamo/hotel-property-management/internal/router"
)

func main() {
	// .env is optional; in production everything comes from the real
	// environment.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	cacheCfg := config.LoadCacheConfig()
	rlCfg := config.LoadRateLimitConfig()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	hotels := repository.NewHotelRepo(db)
	reservations := repository.NewReservationRepo(db)
	locker := booking.NewRoomLocker()

	resHandler := handler.NewReservationHandler(reservations, hotels, locker)
	handlers := router.Handlers{
		Auth:         handler.NewAuthHandler(cfg, users, tokens),
		Hotel:        handler.NewHotelHandler(hotels),
		Reservation:  resHandler,
		Availability: handler.NewAvailabilityHandler(reservations, hotels),
		OTA:          handler.NewOTAHandler(resHandler),
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handlers.Auth, cfg.JWTSecret, middleware.NewTokenBucket(rlCfg, rdb))
	router.RegisterHotel(e, handlers, cfg.JWTSecret, cacheCfg, rlCfg, rdb)

	// Push-feed consumer; reconnects on its own and never takes the API
	// down with it.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("[QUEUE] consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
