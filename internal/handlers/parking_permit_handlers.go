package handlers

import (
	"net/http"
	"strings"

	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/common"
	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/models"
	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/repositories"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type ParkingPermitHandlers struct {
	permitRepo   repositories.ParkingPermitRepository
	propertyRepo repositories.PropertyRepository
	tenantRepo   repositories.TenantRepository
}

func NewParkingPermitHandlers(permitRepo repositories.ParkingPermitRepository, propertyRepo repositories.PropertyRepository, tenantRepo repositories.TenantRepository) *ParkingPermitHandlers {
	return &ParkingPermitHandlers{
		permitRepo:   permitRepo,
		propertyRepo: propertyRepo,
		tenantRepo:   tenantRepo,
	}
}

type parkingPermitRequest struct {
	PropertyID   string  `json:"property_id"`
	TenantID     *string `json:"tenant_id"`
	PermitNumber string  `json:"permit_number"`
	VehiclePlate string  `json:"vehicle_plate"`
	ValidFrom    string  `json:"valid_from"`
	ValidUntil   string  `json:"valid_until"`
}

// CreateParkingPermit handles POST /parking-permits
func (h *ParkingPermitHandlers) CreateParkingPermit(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	req := &parkingPermitRequest{}
	if err := c.Bind(req); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}
	propertyID, err := common.ValidateUUID(req.PropertyID, "property_id")
	if err != nil {
		return common.SendValidationError(c, "property_id", err.Error())
	}
	if err := common.ValidateRequiredString(req.PermitNumber, "permit_number"); err != nil {
		return common.SendValidationError(c, "permit_number", err.Error())
	}
	if err := common.ValidateRequiredString(req.VehiclePlate, "vehicle_plate"); err != nil {
		return common.SendValidationError(c, "vehicle_plate", err.Error())
	}
	validFrom, err := common.ValidateDateFormat(req.ValidFrom, "valid_from")
	if err != nil {
		return common.SendValidationError(c, "valid_from", err.Error())
	}
	validUntil, err := common.ValidateDateFormat(req.ValidUntil, "valid_until")
	if err != nil {
		return common.SendValidationError(c, "valid_until", err.Error())
	}
	if validUntil.Before(validFrom) {
		return common.SendValidationError(c, "valid_until", "valid_until cannot be before valid_from")
	}

	if _, err := h.propertyRepo.GetByID(ctx, userID, propertyID); err != nil {
		return common.SendNotFoundError(c, "Property")
	}

	var tenantID *uuid.UUID
	if req.TenantID != nil && *req.TenantID != "" {
		parsed, err := common.ValidateUUID(*req.TenantID, "tenant_id")
		if err != nil {
			return common.SendValidationError(c, "tenant_id", err.Error())
		}
		if _, err := h.tenantRepo.GetByID(ctx, userID, parsed); err != nil {
			return common.SendNotFoundError(c, "Tenant")
		}
		tenantID = &parsed
	}

	permit := &models.ParkingPermit{
		ID:           uuid.New(),
		PropertyID:   propertyID,
		TenantID:     tenantID,
		PermitNumber: strings.TrimSpace(req.PermitNumber),
		VehiclePlate: strings.TrimSpace(req.VehiclePlate),
		ValidFrom:    validFrom,
		ValidUntil:   validUntil,
	}
	if err := h.permitRepo.Create(ctx, permit); err != nil {
		return common.SendServerError(c, "Failed to create parking permit")
	}
	return c.JSON(http.StatusCreated, permit)
}

// GetParkingPermit handles GET /parking-permits/:id
func (h *ParkingPermitHandlers) GetParkingPermit(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "permit id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	permit, err := h.permitRepo.GetByID(ctx, userID, id)
	if err != nil {
		return common.SendNotFoundError(c, "Parking permit")
	}
	return c.JSON(http.StatusOK, permit)
}

// ListParkingPermits handles GET /parking-permits?property_id=...
func (h *ParkingPermitHandlers) ListParkingPermits(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	propertyID, err := common.ValidateUUID(c.QueryParam("property_id"), "property_id")
	if err != nil {
		return common.SendValidationError(c, "property_id", err.Error())
	}

	permits, err := h.permitRepo.ListByProperty(ctx, userID, propertyID)
	if err != nil {
		return common.SendServerError(c, "Failed to list parking permits")
	}
	return c.JSON(http.StatusOK, permits)
}

// UpdateParkingPermit handles PUT /parking-permits/:id
func (h *ParkingPermitHandlers) UpdateParkingPermit(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "permit id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	req := &parkingPermitRequest{}
	if err := c.Bind(req); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}
	if err := common.ValidateRequiredString(req.PermitNumber, "permit_number"); err != nil {
		return common.SendValidationError(c, "permit_number", err.Error())
	}
	if err := common.ValidateRequiredString(req.VehiclePlate, "vehicle_plate"); err != nil {
		return common.SendValidationError(c, "vehicle_plate", err.Error())
	}
	validFrom, err := common.ValidateDateFormat(req.ValidFrom, "valid_from")
	if err != nil {
		return common.SendValidationError(c, "valid_from", err.Error())
	}
	validUntil, err := common.ValidateDateFormat(req.ValidUntil, "valid_until")
	if err != nil {
		return common.SendValidationError(c, "valid_until", err.Error())
	}
	if validUntil.Before(validFrom) {
		return common.SendValidationError(c, "valid_until", "valid_until cannot be before valid_from")
	}

	permit, err := h.permitRepo.GetByID(ctx, userID, id)
	if err != nil {
		return common.SendNotFoundError(c, "Parking permit")
	}
	permit.PermitNumber = strings.TrimSpace(req.PermitNumber)
	permit.VehiclePlate = strings.TrimSpace(req.VehiclePlate)
	permit.ValidFrom = validFrom
	permit.ValidUntil = validUntil

	if err := h.permitRepo.Update(ctx, userID, permit); err != nil {
		return common.SendServerError(c, "Failed to update parking permit")
	}
	return c.JSON(http.StatusOK, permit)
}

// DeleteParkingPermit handles DELETE /parking-permits/:id
func (h *ParkingPermitHandlers) DeleteParkingPermit(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "permit id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if err := h.permitRepo.Delete(ctx, userID, id); err != nil {
		return common.SendServerError(c, "Failed to delete parking permit")
	}
	return c.NoContent(http.StatusNoContent)
}
