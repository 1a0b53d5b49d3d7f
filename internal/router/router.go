package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/evgorin/nft-storefront/internal/handler"    // import the handlers that implement business logic
	"github.com/evgorin/nft-storefront/internal/middleware" // import middleware for JWT authentication and role enforcement
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Load balancers and monitoring systems use this endpoint to verify
	// that the service is up.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies the
// necessary middleware.  Unauthenticated operations live under /v1/auth,
// while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	// Operations that do not require an existing session.
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Rotates the refresh token.
	g.POST("/refresh", a.Refresh)
	// Issues a new access token without rotating the refresh token.
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout does not require JWT authentication; the handler accepts a
	// refresh token in the body or a bearer token in the header.
	g.POST("/logout", a.Logout)

	// Routes that require a valid access token.
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("SELLER", "BUYER"))
	auth.GET("/me", a.Me)

	// Alias kept outside the protected group so clients can terminate a
	// session with just a refresh token.
	e.POST("/v1/logout", a.Logout)
}

// RegisterMarket registers the marketplace surface.  Seller endpoints
// require the SELLER role; the purchase endpoint requires any
// authenticated user; browse and cleanup endpoints are public.  The
// rate limiter guards every mutating route and the Redis cache fronts
// the public browse routes; both are no-op middleware when Redis is
// unavailable.
func RegisterMarket(e *echo.Echo, m *handler.MarketHandler, jwtSecret string, ratelimit, cache echo.MiddlewareFunc) {
	// Seller-only storefront management.
	seller := e.Group("/v1")
	seller.Use(middleware.JWTAuth(jwtSecret))
	seller.Use(middleware.RequireRole("SELLER"))
	seller.Use(ratelimit)
	seller.POST("/storefront", m.CreateStorefront)
	seller.DELETE("/storefront", m.DestroyStorefront)
	seller.POST("/storefront/listings", m.CreateListing)
	seller.DELETE("/storefront/listings/:itemID", m.RemoveListing)
	seller.POST("/items", m.MintItem)

	// Authenticated endpoints open to both roles.
	user := e.Group("/v1")
	user.Use(middleware.JWTAuth(jwtSecret))
	user.Use(middleware.RequireRole("SELLER", "BUYER"))
	user.Use(ratelimit)
	user.POST("/vault", m.FundVault)
	user.POST("/sellers/:sellerID/listings/:itemID/purchase", m.Purchase)
	user.GET("/my-purchases", m.MyPurchases)

	// Public browse routes, cached.
	browse := e.Group("/v1")
	browse.Use(cache)
	browse.GET("/sellers/:sellerID/listings", m.ListListings)
	browse.GET("/sellers/:sellerID/listings/:itemID", m.GetListingDetails)
	browse.GET("/sellers/:sellerID/sales", m.ListSales)

	// Cleanup is deliberately callable by anyone: it only evicts
	// listings that have already sold.
	e.POST("/v1/sellers/:sellerID/listings/:itemID/cleanup", m.CleanupListing, ratelimit)
}
