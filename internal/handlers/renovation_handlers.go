package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/common"
	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/models"
	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/reports"
	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/repositories"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type RenovationHandlers struct {
	renovationRepo repositories.RenovationRepository
	propertyRepo   repositories.PropertyRepository
	reportSvc      *reports.ReportService
}

func NewRenovationHandlers(renovationRepo repositories.RenovationRepository, propertyRepo repositories.PropertyRepository, reportSvc *reports.ReportService) *RenovationHandlers {
	return &RenovationHandlers{
		renovationRepo: renovationRepo,
		propertyRepo:   propertyRepo,
		reportSvc:      reportSvc,
	}
}

type renovationRequest struct {
	PropertyID  string  `json:"property_id"`
	Name        string  `json:"name"`
	Cost        float64 `json:"cost"`
	StartedOn   string  `json:"started_on"`
	CompletedOn *string `json:"completed_on"`
	Notes       *string `json:"notes"`
}

func (r *renovationRequest) parseDates() (time.Time, *time.Time, error) {
	startedOn, err := common.ValidateDateFormat(r.StartedOn, "started_on")
	if err != nil {
		return time.Time{}, nil, err
	}
	var completedOn *time.Time
	if r.CompletedOn != nil && *r.CompletedOn != "" {
		parsed, err := common.ValidateDateFormat(*r.CompletedOn, "completed_on")
		if err != nil {
			return time.Time{}, nil, err
		}
		completedOn = &parsed
	}
	return startedOn, completedOn, nil
}

// CreateRenovation handles POST /renovations
func (h *RenovationHandlers) CreateRenovation(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	req := &renovationRequest{}
	if err := c.Bind(req); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}
	propertyID, err := common.ValidateUUID(req.PropertyID, "property_id")
	if err != nil {
		return common.SendValidationError(c, "property_id", err.Error())
	}
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return common.SendValidationError(c, "name", err.Error())
	}
	if err := common.ValidatePositiveFloat(req.Cost, "cost", 10000000); err != nil {
		return common.SendValidationError(c, "cost", err.Error())
	}
	startedOn, completedOn, err := req.parseDates()
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if _, err := h.propertyRepo.GetByID(ctx, userID, propertyID); err != nil {
		return common.SendNotFoundError(c, "Property")
	}

	renovation := &models.Renovation{
		ID:          uuid.New(),
		PropertyID:  propertyID,
		Name:        strings.TrimSpace(req.Name),
		Cost:        req.Cost,
		StartedOn:   startedOn,
		CompletedOn: completedOn,
		Notes:       req.Notes,
	}
	if err := h.renovationRepo.Create(ctx, renovation); err != nil {
		return common.SendServerError(c, "Failed to create renovation")
	}

	h.reportSvc.InvalidateProperty(ctx, userID, propertyID)
	return c.JSON(http.StatusCreated, renovation)
}

// GetRenovation handles GET /renovations/:id
func (h *RenovationHandlers) GetRenovation(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "renovation id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	renovation, err := h.renovationRepo.GetByID(ctx, userID, id)
	if err != nil {
		return common.SendNotFoundError(c, "Renovation")
	}
	return c.JSON(http.StatusOK, renovation)
}

// ListRenovations handles GET /renovations?property_id=...
func (h *RenovationHandlers) ListRenovations(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	propertyID, err := common.ValidateUUID(c.QueryParam("property_id"), "property_id")
	if err != nil {
		return common.SendValidationError(c, "property_id", err.Error())
	}

	renovations, err := h.renovationRepo.ListByProperty(ctx, userID, propertyID)
	if err != nil {
		return common.SendServerError(c, "Failed to list renovations")
	}
	return c.JSON(http.StatusOK, renovations)
}

// UpdateRenovation handles PUT /renovations/:id
func (h *RenovationHandlers) UpdateRenovation(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "renovation id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	req := &renovationRequest{}
	if err := c.Bind(req); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return common.SendValidationError(c, "name", err.Error())
	}
	if err := common.ValidatePositiveFloat(req.Cost, "cost", 10000000); err != nil {
		return common.SendValidationError(c, "cost", err.Error())
	}
	startedOn, completedOn, err := req.parseDates()
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	renovation, err := h.renovationRepo.GetByID(ctx, userID, id)
	if err != nil {
		return common.SendNotFoundError(c, "Renovation")
	}
	renovation.Name = strings.TrimSpace(req.Name)
	renovation.Cost = req.Cost
	renovation.StartedOn = startedOn
	renovation.CompletedOn = completedOn
	renovation.Notes = req.Notes

	if err := h.renovationRepo.Update(ctx, userID, renovation); err != nil {
		return common.SendServerError(c, "Failed to update renovation")
	}

	h.reportSvc.InvalidateProperty(ctx, userID, renovation.PropertyID)
	return c.JSON(http.StatusOK, renovation)
}

// DeleteRenovation handles DELETE /renovations/:id
func (h *RenovationHandlers) DeleteRenovation(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "renovation id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	renovation, err := h.renovationRepo.GetByID(ctx, userID, id)
	if err != nil {
		return common.SendNotFoundError(c, "Renovation")
	}
	if err := h.renovationRepo.Delete(ctx, userID, id); err != nil {
		return common.SendServerError(c, "Failed to delete renovation")
	}

	h.reportSvc.InvalidateProperty(ctx, userID, renovation.PropertyID)
	return c.NoContent(http.StatusNoContent)
}
