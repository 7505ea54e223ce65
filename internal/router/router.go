package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-box-office/internal/handler"
	"github.com/iliyamo/cinema-box-office/internal/middleware"
	"github.com/iliyamo/cinema-box-office/internal/model"
)

// RegisterRoutes registers routes that do not require authentication and
// are never cached.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the register and login endpoints under /v1/auth.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
}

// RegisterPublic registers the unauthenticated browse endpoints.  cache is
// applied to these routes only; it is a pass-through when caching is off.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, cache echo.MiddlewareFunc) {
	g := e.Group("/v1/movies", cache)
	g.GET("", p.ListMovies)
	g.GET("/:id", p.GetMovie)
	g.GET("/:id/seats", p.GetSeats)
	g.GET("/:id/reviews", p.GetReviews)
}

// RegisterCustomer registers customer-scoped endpoints under /v1.  All
// routes require a valid JWT and the CUSTOMER role.
func RegisterCustomer(e *echo.Echo, h *handler.CustomerHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleCustomer),
	)
	g.POST("/movies/:id/book", h.Book)
	g.POST("/movies/:id/reviews", h.PostReview)
	g.GET("/my-bookings", h.MyBookings)
}

// RegisterAdmin registers catalog management under /v1/admin.  All routes
// require a valid JWT and the ADMIN role.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
	)
	g.GET("/movies", h.ListMovies)
	g.POST("/movies", h.CreateMovie)
	g.DELETE("/movies/:id", h.DeleteMovie)
	g.POST("/movies/:id/toggle", h.ToggleMovie)
	g.GET("/halls", h.ListHalls)
	g.POST("/halls", h.CreateHall)
}
