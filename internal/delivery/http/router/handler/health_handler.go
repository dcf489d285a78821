package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	deliverycontext "userhub/internal/delivery/context"
	"userhub/internal/delivery/http/response"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const healthPingTimeout = 2 * time.Second

// HealthStatus is the body of GET /health.
type HealthStatus struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// HealthHandler reports liveness and database reachability.
type HealthHandler struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewHealthHandler(db *gorm.DB, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{db: db, logger: logger}
}

// HealthCheck pings the primary database. An unreachable database yields 503.
func (h *HealthHandler) HealthCheck(c echo.Context) error {
	if err := h.ping(c.Request().Context()); err != nil {
		deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger).Warn("Health check failed", slog.Any("error", err))

		return response.Error(c, http.StatusServiceUnavailable, "DATABASE_UNAVAILABLE", "database unavailable", "")
	}

	return response.Success(c, http.StatusOK, HealthStatus{Status: "ok", Database: "up"}, "healthy")
}

func (h *HealthHandler) ping(ctx context.Context) error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, healthPingTimeout)
	defer cancel()

	return sqlDB.PingContext(ctx)
}
