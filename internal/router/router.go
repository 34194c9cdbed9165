package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/hotel-property-management/internal/config"
	"github.com/iliyamo/hotel-property-management/internal/handler"
	"github.com/iliyamo/hotel-property-management/internal/middleware"
)

// Handlers bundles every handler the router wires up.
type Handlers struct {
	Auth         *handler.AuthHandler
	Hotel        *handler.HotelHandler
	Reservation  *handler.ReservationHandler
	Availability *handler.AvailabilityHandler
	OTA          *handler.OTAHandler
}

// RegisterRoutes registers routes that require no authentication.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the session endpoints.  Unauthenticated
// operations live under /v1/auth; /v1/me requires a valid access token.
// Logout stays outside the JWT middleware so clients can always end a
// session, with either a refresh token in the body or a bearer token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, rl echo.MiddlewareFunc) {
	g := e.Group("/v1/auth", rl)
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret), middleware.RequireRole("ADMIN", "STAFF"))
	auth.GET("/me", a.Me)
}

// RegisterHotel registers the property-management API under /v1.  Every
// route requires a valid access token; configuration writes additionally
// require the ADMIN role (ownership is enforced in the handlers).
func RegisterHotel(e *echo.Echo, h Handlers, jwtSecret string, cacheCfg config.CacheConfig, rlCfg config.RateLimitConfig, rdb *redis.Client) {
	rl := middleware.NewTokenBucket(rlCfg, rdb)
	cache := middleware.NewRedisCache(cacheCfg, rdb)

	g := e.Group("/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN", "STAFF"),
		rl,
	)

	// ---- Tenant configuration (ADMIN) ----
	admin := middleware.RequireRole("ADMIN")
	g.POST("/hotels", h.Hotel.Create, admin)
	g.GET("/hotels/:id", h.Hotel.Get)
	g.GET("/hotels/:id/grid", h.Hotel.GetGrid)
	g.PUT("/hotels/:id/grid", h.Hotel.PutGrid, admin)
	g.GET("/hotels/:id/room-types", h.Hotel.ListRoomTypes)
	g.PUT("/hotels/:id/room-types", h.Hotel.UpsertRoomType, admin)
	g.DELETE("/hotels/:id/room-types/:roomInfo", h.Hotel.DeleteRoomType, admin)

	// ---- Reservations ----
	g.POST("/hotels/:id/reservations", h.Reservation.Create)
	g.GET("/hotels/:id/reservations", h.Reservation.List)
	g.PATCH("/hotels/:id/reservations/:key", h.Reservation.Patch)
	g.POST("/hotels/:id/reservations/:key/checkout", h.Reservation.Checkout)
	g.DELETE("/hotels/:id/reservations/:key", h.Reservation.Cancel)

	// ---- Availability (response-cached; dashboards poll it) ----
	g.GET("/hotels/:id/availability", h.Availability.Get, cache)

	// ---- OTA ingestion ----
	g.POST("/hotels/:id/ota/bookings", h.OTA.Ingest)
}
