package handlers

import (
	"net/http"

	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/common"
	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/services"

	"github.com/labstack/echo/v4"
)

// MigrationHandlers exposes the ownership backfill over HTTP.
type MigrationHandlers struct {
	migrationSvc services.MigrationService
}

func NewMigrationHandlers(migrationSvc services.MigrationService) *MigrationHandlers {
	return &MigrationHandlers{migrationSvc: migrationSvc}
}

// RunMigration handles GET /admin/migration. It checks the read-only
// status first and only runs the backfill when properties are still
// pending, so repeated calls are cheap.
func (h *MigrationHandlers) RunMigration(c echo.Context) error {
	ctx := c.Request().Context()

	status, err := h.migrationSvc.Status(ctx)
	if err != nil {
		return common.SendServerError(c, err.Error())
	}

	if status.Complete {
		return c.JSON(http.StatusOK, map[string]any{
			"status": status,
			"ran":    false,
		})
	}

	result := h.migrationSvc.Run(ctx)
	if !result.Success {
		return c.JSON(http.StatusInternalServerError, result)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"status": status,
		"ran":    true,
		"result": result,
	})
}

// MigrationStatus handles GET /admin/migration/status
func (h *MigrationHandlers) MigrationStatus(c echo.Context) error {
	status, err := h.migrationSvc.Status(c.Request().Context())
	if err != nil {
		return common.SendServerError(c, err.Error())
	}
	return c.JSON(http.StatusOK, status)
}
