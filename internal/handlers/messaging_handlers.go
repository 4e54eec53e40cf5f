package handlers

import (
	"net/http"
	"time"

	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/common"
	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/models"
	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/repositories"
	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/services"

	"github.com/labstack/echo/v4"
)

type MessagingHandlers struct {
	messagingSvc services.MessagingService
	tenantRepo   repositories.TenantRepository
	leaseRepo    repositories.LeaseRepository
}

func NewMessagingHandlers(messagingSvc services.MessagingService, tenantRepo repositories.TenantRepository, leaseRepo repositories.LeaseRepository) *MessagingHandlers {
	return &MessagingHandlers{
		messagingSvc: messagingSvc,
		tenantRepo:   tenantRepo,
		leaseRepo:    leaseRepo,
	}
}

type reminderRequest struct {
	Locale string `json:"locale"`
}

// SendMessage handles POST /messages. Validation failures come back as
// {success:false, error:...} with a 200; the dispatch path reports
// outcomes as data, not transport errors.
func (h *MessagingHandlers) SendMessage(c echo.Context) error {
	ctx := c.Request().Context()

	if _, ok := common.GetUserIDFromContext(ctx); !ok {
		return common.SendUnauthorizedError(c)
	}

	input := &services.SendMessageInput{}
	if err := c.Bind(input); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}

	result := h.messagingSvc.Dispatch(ctx, input)
	return c.JSON(http.StatusOK, result)
}

// activeLease picks the tenant's active lease, falling back to the most
// recently created one.
func activeLease(leases []*models.Lease) *models.Lease {
	for _, lease := range leases {
		if lease.Status == models.LeaseStatusActive {
			return lease
		}
	}
	if len(leases) > 0 {
		return leases[len(leases)-1]
	}
	return nil
}

// SendPaymentReminder handles POST /tenants/:id/reminders/payment
func (h *MessagingHandlers) SendPaymentReminder(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	tenantID, err := common.ValidateUUID(c.Param("id"), "tenant id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	req := &reminderRequest{}
	if err := c.Bind(req); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}

	tenant, err := h.tenantRepo.GetByID(ctx, userID, tenantID)
	if err != nil {
		return common.SendNotFoundError(c, "Tenant")
	}
	if tenant.Phone == nil || *tenant.Phone == "" {
		return common.SendClientError(c, "tenant has no phone number on file")
	}

	leases, err := h.leaseRepo.ListByTenant(ctx, userID, tenantID)
	if err != nil {
		return common.SendServerError(c, "Failed to look up tenant leases")
	}
	lease := activeLease(leases)
	if lease == nil {
		return common.SendClientError(c, "tenant has no lease to remind about")
	}

	dueDate := firstOfNextMonth(time.Now())
	result := h.messagingSvc.SendPaymentReminder(ctx, *tenant.Phone, tenant.FullName(), lease.RentAmount, dueDate, req.Locale)
	return c.JSON(http.StatusOK, result)
}

// SendRenewalReminder handles POST /tenants/:id/reminders/renewal
func (h *MessagingHandlers) SendRenewalReminder(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	tenantID, err := common.ValidateUUID(c.Param("id"), "tenant id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	req := &reminderRequest{}
	if err := c.Bind(req); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}

	tenant, err := h.tenantRepo.GetByID(ctx, userID, tenantID)
	if err != nil {
		return common.SendNotFoundError(c, "Tenant")
	}
	if tenant.Phone == nil || *tenant.Phone == "" {
		return common.SendClientError(c, "tenant has no phone number on file")
	}

	leases, err := h.leaseRepo.ListByTenant(ctx, userID, tenantID)
	if err != nil {
		return common.SendServerError(c, "Failed to look up tenant leases")
	}
	lease := activeLease(leases)
	if lease == nil {
		return common.SendClientError(c, "tenant has no lease to remind about")
	}

	result := h.messagingSvc.SendLeaseRenewalReminder(ctx, *tenant.Phone, tenant.FullName(), lease.EndDate, req.Locale)
	return c.JSON(http.StatusOK, result)
}

func firstOfNextMonth(now time.Time) time.Time {
	year, month, _ := now.Date()
	return time.Date(year, month, 1, 0, 0, 0, 0, now.Location()).AddDate(0, 1, 0)
}
