package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/flyexpress/internal/config"
	"github.com/iliyamo/flyexpress/internal/handler"    // import the handlers that implement business logic
	"github.com/iliyamo/flyexpress/internal/middleware" // import middleware for JWT authentication and caching
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies the
// necessary middleware.  Unauthenticated operations live under /v1/auth,
// while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	// Route group for operations that do not require an existing session.
	g := e.Group("/v1/auth")
	// Register a POST endpoint to handle user registration at /v1/auth/register.
	g.POST("/register", a.Register)
	// Register a POST endpoint to handle user login at /v1/auth/login.
	g.POST("/login", a.Login)

	// Group for routes that require a valid access token.  All handlers
	// registered on this group execute the RequireAuth middleware before
	// being invoked.
	auth := e.Group("/v1")
	auth.Use(middleware.RequireAuth(jwtSecret))
	// Register a GET endpoint at /v1/me that returns the authenticated user's identity.
	auth.GET("/me", a.Me)
}

// RegisterSearch registers the ticket search and date-grid endpoints.  Both
// are open to guests; the Identity middleware decodes a bearer token when one
// is present so the search can annotate results with the caller's favorites.
// The token-bucket rate limit guards the storage-heavy endpoints.
func RegisterSearch(e *echo.Echo, s *handler.SearchHandler, g *handler.GridHandler,
	jwtSecret string, rl config.RateLimitConfig, rdb *redis.Client) {

	limited := middleware.NewTokenBucket(rl, rdb)
	ident := middleware.Identity(jwtSecret)

	// The search page itself: outbound + optional mirrored return leg.
	e.GET("/tickets", s.SearchTickets, ident, limited)

	// Date-grid pricing: full window, single-day refresh, single-column scroll.
	grid := e.Group("/api/date-grid", limited)
	grid.GET("", g.DateGrid)
	grid.GET("/day", g.DateGridDay)
	grid.GET("/column", g.DateGridColumn)
}

// RegisterFavorites registers the saved-tickets endpoints.  Every route in
// this group requires a valid bearer token; the user identity always comes
// from the token, never from the request body.
func RegisterFavorites(e *echo.Echo, f *handler.FavoritesHandler, jwtSecret string) {
	g := e.Group("/api/favorites")
	g.Use(middleware.RequireAuth(jwtSecret))
	g.GET("", f.List)
	g.POST("/add", f.Add)
	g.POST("/remove", f.Remove)
}

// RegisterMeta registers the small read-only lookup endpoints.  They change
// rarely, so the redis response cache sits in front of them; with redis down
// the cache middleware degrades to a pass-through.
func RegisterMeta(e *echo.Echo, m *handler.MetaHandler, cc config.CacheConfig, rdb *redis.Client) {
	cached := middleware.NewResponseCache(cc, rdb)
	e.GET("/api/cities", m.Cities, cached)
	e.GET("/api/price-calendar", m.PriceCalendar, cached)
	e.GET("/api/top-destinations", m.TopDestinations, cached)
}
