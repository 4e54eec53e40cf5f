package handlers

import (
	"net/http"

	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/common"
	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/jobs"
	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/reports"

	"github.com/labstack/echo/v4"
)

type ReportHandlers struct {
	reportSvc *reports.ReportService
	exporter  *jobs.ReportExporter
}

func NewReportHandlers(reportSvc *reports.ReportService, exporter *jobs.ReportExporter) *ReportHandlers {
	return &ReportHandlers{
		reportSvc: reportSvc,
		exporter:  exporter,
	}
}

// GetPropertyReport handles GET /properties/:id/report
func (h *ReportHandlers) GetPropertyReport(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	propertyID, err := common.ValidateUUID(c.Param("id"), "property id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	report, err := h.reportSvc.PropertyFinancials(ctx, userID, propertyID)
	if err != nil {
		return common.SendServerError(c, "Failed to build property report")
	}
	return c.JSON(http.StatusOK, report)
}

// ExportPropertyReport handles POST /properties/:id/report/export
func (h *ReportHandlers) ExportPropertyReport(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	propertyID, err := common.ValidateUUID(c.Param("id"), "property id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	result, err := h.exporter.ExportPropertyReport(ctx, userID, propertyID)
	if err != nil {
		return common.SendServerError(c, "Failed to export property report")
	}
	return c.JSON(http.StatusOK, result)
}
