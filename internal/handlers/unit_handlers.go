package handlers

import (
	"net/http"
	"strconv"

	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/common"
	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/models"
	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/repositories"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type UnitHandlers struct {
	unitRepo     repositories.UnitRepository
	propertyRepo repositories.PropertyRepository
}

func NewUnitHandlers(unitRepo repositories.UnitRepository, propertyRepo repositories.PropertyRepository) *UnitHandlers {
	return &UnitHandlers{
		unitRepo:     unitRepo,
		propertyRepo: propertyRepo,
	}
}

type unitRequest struct {
	PropertyID string  `json:"property_id"`
	Name       string  `json:"name"`
	Bedrooms   int     `json:"bedrooms"`
	Bathrooms  float64 `json:"bathrooms"`
	RentAmount float64 `json:"rent_amount"`
}

// CreateUnit handles POST /units
func (h *UnitHandlers) CreateUnit(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	req := &unitRequest{}
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
	if req.RentAmount < 0 || req.Bedrooms < 0 || req.Bathrooms < 0 {
		return common.SendValidationError(c, "unit", "values cannot be negative")
	}

	// Property lookup doubles as the ownership check.
	if _, err := h.propertyRepo.GetByID(ctx, userID, propertyID); err != nil {
		return common.SendNotFoundError(c, "Property")
	}

	unit := &models.Unit{
		ID:         uuid.New(),
		PropertyID: propertyID,
		Name:       req.Name,
		Bedrooms:   req.Bedrooms,
		Bathrooms:  req.Bathrooms,
		RentAmount: req.RentAmount,
	}
	if err := h.unitRepo.Create(ctx, unit); err != nil {
		return common.SendServerError(c, "Failed to create unit")
	}
	return c.JSON(http.StatusCreated, unit)
}

// GetUnit handles GET /units/:id
func (h *UnitHandlers) GetUnit(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "unit id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	unit, err := h.unitRepo.GetByID(ctx, userID, id)
	if err != nil {
		return common.SendNotFoundError(c, "Unit")
	}
	return c.JSON(http.StatusOK, unit)
}

// ListUnits handles GET /units with an optional property_id filter.
func (h *UnitHandlers) ListUnits(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	if propertyIDStr := c.QueryParam("property_id"); propertyIDStr != "" {
		propertyID, err := common.ValidateUUID(propertyIDStr, "property_id")
		if err != nil {
			return common.SendValidationError(c, "property_id", err.Error())
		}
		units, err := h.unitRepo.ListByProperty(ctx, userID, propertyID)
		if err != nil {
			return common.SendServerError(c, "Failed to list units")
		}
		return c.JSON(http.StatusOK, units)
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	limit, offset = common.ValidatePaginationParams(limit, offset)

	units, err := h.unitRepo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return common.SendServerError(c, "Failed to list units")
	}
	return c.JSON(http.StatusOK, units)
}

// UpdateUnit handles PUT /units/:id
func (h *UnitHandlers) UpdateUnit(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "unit id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	req := &unitRequest{}
	if err := c.Bind(req); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return common.SendValidationError(c, "name", err.Error())
	}
	if req.RentAmount < 0 || req.Bedrooms < 0 || req.Bathrooms < 0 {
		return common.SendValidationError(c, "unit", "values cannot be negative")
	}

	unit, err := h.unitRepo.GetByID(ctx, userID, id)
	if err != nil {
		return common.SendNotFoundError(c, "Unit")
	}
	unit.Name = req.Name
	unit.Bedrooms = req.Bedrooms
	unit.Bathrooms = req.Bathrooms
	unit.RentAmount = req.RentAmount

	if err := h.unitRepo.Update(ctx, userID, unit); err != nil {
		return common.SendServerError(c, "Failed to update unit")
	}
	return c.JSON(http.StatusOK, unit)
}

// DeleteUnit handles DELETE /units/:id
func (h *UnitHandlers) DeleteUnit(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "unit id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if err := h.unitRepo.Delete(ctx, userID, id); err != nil {
		return common.SendServerError(c, "Failed to delete unit")
	}
	return c.NoContent(http.StatusNoContent)
}
