// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"userhub/config"
	"userhub/internal/delivery/http/router/handler"
	"userhub/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	Config        *config.Config
	UserHandler   *handler.UserHandler
	HealthHandler *handler.HealthHandler
}

// router holds all the handlers that need to be registered.
type router struct {
	cfg           *config.Config
	userHandler   *handler.UserHandler
	healthHandler *handler.HealthHandler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		cfg:           params.Config,
		userHandler:   params.UserHandler,
		healthHandler: params.HealthHandler,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", r.healthHandler.HealthCheck)

	if r.cfg != nil && r.cfg.Metrics != nil && r.cfg.Metrics.Enabled {
		e.GET(r.cfg.Metrics.Path, echo.WrapHandler(metrics.Handler()))
	}

	// Static segments are registered alongside :id; echo prefers them on match.
	users := e.Group("/api/users")
	{
		users.POST("", r.userHandler.CreateUser)
		users.GET("", r.userHandler.GetAllUsers)
		users.GET("/page", r.userHandler.GetUsersPage)
		users.GET("/count", r.userHandler.CountUsers)
		users.GET("/search/username", r.userHandler.SearchByUsername)
		users.GET("/search/email", r.userHandler.SearchByEmail)
		users.GET("/:id", r.userHandler.GetUser)
		users.GET("/:id/qrcode", r.userHandler.GetUserQRCode)
		users.PUT("/:id", r.userHandler.UpdateUser)
		users.DELETE("/:id", r.userHandler.DeleteUser)
	}
}
