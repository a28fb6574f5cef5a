package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/targihasta/fair-lottery/internal/handler"    // import the handlers that implement business logic
	"github.com/targihasta/fair-lottery/internal/middleware" // import middleware for JWT authentication and role enforcement
	"github.com/targihasta/fair-lottery/internal/model"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance. Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the two login endpoints and the protected
// session probe. The loginLimiter throttles credential guessing and
// may be a pass-through when Redis is absent.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, loginLimiter echo.MiddlewareFunc) {
	g := e.Group("/v1/auth")
	g.Use(loginLimiter)
	g.POST("/admin/login", a.AdminLogin)
	g.POST("/exhibitor/login", a.ExhibitorLogin)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterOrders registers the order endpoints shared by exhibitors
// and administrators. Visibility is decided inside the handler: an
// exhibitor only ever sees their own orders.
func RegisterOrders(e *echo.Echo, o *handler.OrderHandler, jwtSecret string) {
	g := e.Group("/v1/orders")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleAdmin, model.RoleSuperuser, model.RoleExhibitor))
	g.POST("", o.Create)
	g.GET("", o.List)
}

// RegisterAdmin registers the administrator surface: exhibitor account
// management, credential rotation, reports, backup round-trip, the
// guarded clear and the prize drawing.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, d *handler.DrawingHandler, jwtSecret string) {
	g := e.Group("/v1/admin")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleAdmin, model.RoleSuperuser))

	g.GET("/exhibitors", a.ListExhibitors)
	g.POST("/exhibitors", a.AddExhibitor)
	g.DELETE("/exhibitors/:id", a.RemoveExhibitor)

	g.PUT("/password", a.ChangePassword)
	g.GET("/stats", a.Stats)

	g.GET("/backup", a.ExportBackup)
	g.POST("/restore", a.ImportBackup)
	g.DELETE("/orders", a.ClearOrders)
	g.GET("/report.csv", a.ReportCSV)

	g.GET("/drawing/candidates", d.Candidates)
	g.POST("/drawing/draw", d.Draw)
}
