package handlers

import (
	"net/http"
	"strconv"

	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/common"
	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/models"
	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/repositories"
	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type TenantHandlers struct {
	tenantRepo    repositories.TenantRepository
	unitRepo      repositories.UnitRepository
	onboardingSvc services.OnboardingService
}

func NewTenantHandlers(tenantRepo repositories.TenantRepository, unitRepo repositories.UnitRepository, onboardingSvc services.OnboardingService) *TenantHandlers {
	return &TenantHandlers{
		tenantRepo:    tenantRepo,
		unitRepo:      unitRepo,
		onboardingSvc: onboardingSvc,
	}
}

type tenantRequest struct {
	UnitID    string  `json:"unit_id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone"`
}

// CreateTenant handles POST /tenants
func (h *TenantHandlers) CreateTenant(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	req := &tenantRequest{}
	if err := c.Bind(req); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}
	unitID, err := common.ValidateUUID(req.UnitID, "unit_id")
	if err != nil {
		return common.SendValidationError(c, "unit_id", err.Error())
	}
	if err := common.ValidateRequiredString(req.FirstName, "first_name"); err != nil {
		return common.SendValidationError(c, "first_name", err.Error())
	}
	if err := common.ValidateRequiredString(req.Email, "email"); err != nil {
		return common.SendValidationError(c, "email", err.Error())
	}

	if _, err := h.unitRepo.GetByID(ctx, userID, unitID); err != nil {
		return common.SendNotFoundError(c, "Unit")
	}

	tenant := &models.Tenant{
		ID:        uuid.New(),
		UnitID:    unitID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	}
	if err := h.tenantRepo.Create(ctx, tenant); err != nil {
		return common.SendServerError(c, "Failed to create tenant")
	}

	h.onboardingSvc.Invalidate(ctx, userID)
	return c.JSON(http.StatusCreated, tenant)
}

// GetTenant handles GET /tenants/:id
func (h *TenantHandlers) GetTenant(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "tenant id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	tenant, err := h.tenantRepo.GetByID(ctx, userID, id)
	if err != nil {
		return common.SendNotFoundError(c, "Tenant")
	}
	return c.JSON(http.StatusOK, tenant)
}

// ListTenants handles GET /tenants with an optional unit_id filter.
func (h *TenantHandlers) ListTenants(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	if unitIDStr := c.QueryParam("unit_id"); unitIDStr != "" {
		unitID, err := common.ValidateUUID(unitIDStr, "unit_id")
		if err != nil {
			return common.SendValidationError(c, "unit_id", err.Error())
		}
		tenants, err := h.tenantRepo.ListByUnit(ctx, userID, unitID)
		if err != nil {
			return common.SendServerError(c, "Failed to list tenants")
		}
		return c.JSON(http.StatusOK, tenants)
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	limit, offset = common.ValidatePaginationParams(limit, offset)

	tenants, err := h.tenantRepo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return common.SendServerError(c, "Failed to list tenants")
	}
	return c.JSON(http.StatusOK, tenants)
}

// UpdateTenant handles PUT /tenants/:id
func (h *TenantHandlers) UpdateTenant(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "tenant id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	req := &tenantRequest{}
	if err := c.Bind(req); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}
	if err := common.ValidateRequiredString(req.FirstName, "first_name"); err != nil {
		return common.SendValidationError(c, "first_name", err.Error())
	}
	if err := common.ValidateRequiredString(req.Email, "email"); err != nil {
		return common.SendValidationError(c, "email", err.Error())
	}

	tenant, err := h.tenantRepo.GetByID(ctx, userID, id)
	if err != nil {
		return common.SendNotFoundError(c, "Tenant")
	}
	tenant.FirstName = req.FirstName
	tenant.LastName = req.LastName
	tenant.Email = req.Email
	tenant.Phone = req.Phone

	if err := h.tenantRepo.Update(ctx, userID, tenant); err != nil {
		return common.SendServerError(c, "Failed to update tenant")
	}
	return c.JSON(http.StatusOK, tenant)
}

// DeleteTenant handles DELETE /tenants/:id
func (h *TenantHandlers) DeleteTenant(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "tenant id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if err := h.tenantRepo.Delete(ctx, userID, id); err != nil {
		return common.SendServerError(c, "Failed to delete tenant")
	}
	h.onboardingSvc.Invalidate(ctx, userID)
	return c.NoContent(http.StatusNoContent)
}
