package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/ecotrack/waste-report-api/internal/auth"
	"github.com/ecotrack/waste-report-api/internal/handler"
	"github.com/ecotrack/waste-report-api/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance. Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAPI wires up the full /api/v1 surface: the open auth endpoints,
// the token-protected profile and report endpoints, and the superuser-only
// administration endpoints. reportQuota is the daily submission limiter; it
// only wraps report creation.
func RegisterAPI(
	e *echo.Echo,
	a *handler.AuthHandler,
	u *handler.UserHandler,
	r *handler.ReportHandler,
	tokens *auth.TokenService,
	users middleware.UserLoader,
	reportQuota echo.MiddlewareFunc,
) {
	v1 := e.Group("/api/v1")

	// Open endpoints: no session required.
	v1.POST("/auth/register", a.Register)
	v1.POST("/auth/login", a.Login)

	// Everything below resolves the bearer token into an Identity first.
	authed := v1.Group("", middleware.Auth(tokens, users))

	authed.POST("/auth/change-password", a.ChangePassword)

	// /users/me is available to every authenticated caller for themselves;
	// echo matches the static segment before the :id parameter.
	authed.GET("/users/me", u.Me)
	authed.PUT("/users/me", u.UpdateMe)

	admin := authed.Group("/users", middleware.RequireSuperuser())
	admin.GET("", u.List)
	admin.GET("/:id", u.GetByID)
	admin.PUT("/:id", u.UpdateByID)
	admin.DELETE("/:id", u.DeleteByID)

	reports := authed.Group("/waste-reports")
	reports.POST("", r.Create, reportQuota)
	reports.GET("", r.List)
	reports.GET("/:id", r.Get)
	reports.PUT("/:id", r.Update)
	reports.DELETE("/:id", r.Delete)
	reports.PUT("/:id/status", r.UpdateStatus, middleware.RequireSuperuser())
}
