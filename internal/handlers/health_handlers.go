package handlers

import (
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

type HealthHandlers struct {
	pool *pgxpool.Pool
}

func NewHealthHandlers(pool *pgxpool.Pool) *HealthHandlers {
	return &HealthHandlers{pool: pool}
}

// Health handles GET /health
func (h *HealthHandlers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Ready handles GET /health/ready and pings the database.
func (h *HealthHandlers) Ready(c echo.Context) error {
	if err := h.pool.Ping(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "unavailable",
			"error":  "database unreachable",
		})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
}
