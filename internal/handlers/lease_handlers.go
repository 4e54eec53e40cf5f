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

type LeaseHandlers struct {
	leaseRepo     repositories.LeaseRepository
	tenantRepo    repositories.TenantRepository
	onboardingSvc services.OnboardingService
}

func NewLeaseHandlers(leaseRepo repositories.LeaseRepository, tenantRepo repositories.TenantRepository, onboardingSvc services.OnboardingService) *LeaseHandlers {
	return &LeaseHandlers{
		leaseRepo:     leaseRepo,
		tenantRepo:    tenantRepo,
		onboardingSvc: onboardingSvc,
	}
}

type leaseRequest struct {
	TenantID      string  `json:"tenant_id"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	RentAmount    float64 `json:"rent_amount"`
	DepositAmount float64 `json:"deposit_amount"`
	Status        string  `json:"status"`
}

func validLeaseStatus(status string) bool {
	switch status {
	case models.LeaseStatusActive, models.LeaseStatusPending, models.LeaseStatusEnded:
		return true
	}
	return false
}

// CreateLease handles POST /leases. The unit comes from the tenant's
// current unit; a lease always binds tenant and unit together.
func (h *LeaseHandlers) CreateLease(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	req := &leaseRequest{}
	if err := c.Bind(req); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}
	tenantID, err := common.ValidateUUID(req.TenantID, "tenant_id")
	if err != nil {
		return common.SendValidationError(c, "tenant_id", err.Error())
	}
	startDate, err := common.ValidateDateFormat(req.StartDate, "start_date")
	if err != nil {
		return common.SendValidationError(c, "start_date", err.Error())
	}
	endDate, err := common.ValidateDateFormat(req.EndDate, "end_date")
	if err != nil {
		return common.SendValidationError(c, "end_date", err.Error())
	}
	if endDate.Before(startDate) {
		return common.SendValidationError(c, "end_date", "end date cannot be before start date")
	}
	if err := common.ValidatePositiveFloat(req.RentAmount, "rent_amount", 1000000); err != nil {
		return common.SendValidationError(c, "rent_amount", err.Error())
	}
	if req.DepositAmount < 0 {
		return common.SendValidationError(c, "deposit_amount", "deposit cannot be negative")
	}
	if req.Status == "" {
		req.Status = models.LeaseStatusActive
	}
	if !validLeaseStatus(req.Status) {
		return common.SendValidationError(c, "status", "status must be one of: active, pending, ended")
	}

	tenant, err := h.tenantRepo.GetByID(ctx, userID, tenantID)
	if err != nil {
		return common.SendNotFoundError(c, "Tenant")
	}

	lease := &models.Lease{
		ID:            uuid.New(),
		TenantID:      tenant.ID,
		UnitID:        tenant.UnitID,
		StartDate:     startDate,
		EndDate:       endDate,
		RentAmount:    req.RentAmount,
		DepositAmount: req.DepositAmount,
		Status:        req.Status,
	}
	if err := h.leaseRepo.Create(ctx, lease); err != nil {
		return common.SendServerError(c, "Failed to create lease")
	}

	h.onboardingSvc.Invalidate(ctx, userID)
	return c.JSON(http.StatusCreated, lease)
}

// GetLease handles GET /leases/:id
func (h *LeaseHandlers) GetLease(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "lease id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	lease, err := h.leaseRepo.GetByID(ctx, userID, id)
	if err != nil {
		return common.SendNotFoundError(c, "Lease")
	}
	return c.JSON(http.StatusOK, lease)
}

// ListLeases handles GET /leases with an optional tenant_id filter.
func (h *LeaseHandlers) ListLeases(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	if tenantIDStr := c.QueryParam("tenant_id"); tenantIDStr != "" {
		tenantID, err := common.ValidateUUID(tenantIDStr, "tenant_id")
		if err != nil {
			return common.SendValidationError(c, "tenant_id", err.Error())
		}
		leases, err := h.leaseRepo.ListByTenant(ctx, userID, tenantID)
		if err != nil {
			return common.SendServerError(c, "Failed to list leases")
		}
		return c.JSON(http.StatusOK, leases)
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	limit, offset = common.ValidatePaginationParams(limit, offset)

	leases, err := h.leaseRepo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return common.SendServerError(c, "Failed to list leases")
	}
	return c.JSON(http.StatusOK, leases)
}

// UpdateLease handles PUT /leases/:id
func (h *LeaseHandlers) UpdateLease(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "lease id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	req := &leaseRequest{}
	if err := c.Bind(req); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}
	startDate, err := common.ValidateDateFormat(req.StartDate, "start_date")
	if err != nil {
		return common.SendValidationError(c, "start_date", err.Error())
	}
	endDate, err := common.ValidateDateFormat(req.EndDate, "end_date")
	if err != nil {
		return common.SendValidationError(c, "end_date", err.Error())
	}
	if endDate.Before(startDate) {
		return common.SendValidationError(c, "end_date", "end date cannot be before start date")
	}
	if err := common.ValidatePositiveFloat(req.RentAmount, "rent_amount", 1000000); err != nil {
		return common.SendValidationError(c, "rent_amount", err.Error())
	}
	if !validLeaseStatus(req.Status) {
		return common.SendValidationError(c, "status", "status must be one of: active, pending, ended")
	}

	lease, err := h.leaseRepo.GetByID(ctx, userID, id)
	if err != nil {
		return common.SendNotFoundError(c, "Lease")
	}
	lease.StartDate = startDate
	lease.EndDate = endDate
	lease.RentAmount = req.RentAmount
	lease.DepositAmount = req.DepositAmount
	lease.Status = req.Status

	if err := h.leaseRepo.Update(ctx, userID, lease); err != nil {
		return common.SendServerError(c, "Failed to update lease")
	}
	return c.JSON(http.StatusOK, lease)
}

// DeleteLease handles DELETE /leases/:id
func (h *LeaseHandlers) DeleteLease(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "lease id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if err := h.leaseRepo.Delete(ctx, userID, id); err != nil {
		return common.SendServerError(c, "Failed to delete lease")
	}
	h.onboardingSvc.Invalidate(ctx, userID)
	return c.NoContent(http.StatusNoContent)
}
