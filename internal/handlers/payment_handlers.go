package handlers

import (
	"net/http"
	"strings"

	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/common"
	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/models"
	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/reports"
	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/repositories"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type PaymentHandlers struct {
	paymentRepo repositories.PaymentRepository
	leaseRepo   repositories.LeaseRepository
	reportSvc   *reports.ReportService
}

func NewPaymentHandlers(paymentRepo repositories.PaymentRepository, leaseRepo repositories.LeaseRepository, reportSvc *reports.ReportService) *PaymentHandlers {
	return &PaymentHandlers{
		paymentRepo: paymentRepo,
		leaseRepo:   leaseRepo,
		reportSvc:   reportSvc,
	}
}

type paymentRequest struct {
	LeaseID string  `json:"lease_id"`
	Amount  float64 `json:"amount"`
	PaidOn  string  `json:"paid_on"`
	Method  string  `json:"method"`
	Period  string  `json:"period"`
}

// invalidateReport drops the cached financial report for the property the
// lease belongs to. Best effort; a stale cache expires on its own TTL.
func (h *PaymentHandlers) invalidateReport(c echo.Context, userID, leaseID uuid.UUID) {
	ctx := c.Request().Context()
	propertyID, err := h.paymentRepo.PropertyIDForLease(ctx, userID, leaseID)
	if err != nil {
		return
	}
	h.reportSvc.InvalidateProperty(ctx, userID, propertyID)
}

// CreatePayment handles POST /payments
func (h *PaymentHandlers) CreatePayment(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	req := &paymentRequest{}
	if err := c.Bind(req); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}
	leaseID, err := common.ValidateUUID(req.LeaseID, "lease_id")
	if err != nil {
		return common.SendValidationError(c, "lease_id", err.Error())
	}
	if err := common.ValidatePositiveFloat(req.Amount, "amount", 1000000); err != nil {
		return common.SendValidationError(c, "amount", err.Error())
	}
	paidOn, err := common.ValidateDateFormat(req.PaidOn, "paid_on")
	if err != nil {
		return common.SendValidationError(c, "paid_on", err.Error())
	}
	if err := common.ValidateRequiredString(req.Period, "period"); err != nil {
		return common.SendValidationError(c, "period", err.Error())
	}

	// confirms the lease exists and belongs to the caller
	if _, err := h.leaseRepo.GetByID(ctx, userID, leaseID); err != nil {
		return common.SendNotFoundError(c, "Lease")
	}

	payment := &models.Payment{
		ID:      uuid.New(),
		LeaseID: leaseID,
		Amount:  req.Amount,
		PaidOn:  paidOn,
		Method:  strings.TrimSpace(req.Method),
		Period:  req.Period,
	}
	if err := h.paymentRepo.Create(ctx, payment); err != nil {
		return common.SendServerError(c, "Failed to record payment")
	}

	h.invalidateReport(c, userID, leaseID)
	return c.JSON(http.StatusCreated, payment)
}

// GetPayment handles GET /payments/:id
func (h *PaymentHandlers) GetPayment(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "payment id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	payment, err := h.paymentRepo.GetByID(ctx, userID, id)
	if err != nil {
		return common.SendNotFoundError(c, "Payment")
	}
	return c.JSON(http.StatusOK, payment)
}

// ListPayments handles GET /payments filtered by lease_id or property_id.
func (h *PaymentHandlers) ListPayments(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	if leaseIDStr := c.QueryParam("lease_id"); leaseIDStr != "" {
		leaseID, err := common.ValidateUUID(leaseIDStr, "lease_id")
		if err != nil {
			return common.SendValidationError(c, "lease_id", err.Error())
		}
		payments, err := h.paymentRepo.ListByLease(ctx, userID, leaseID)
		if err != nil {
			return common.SendServerError(c, "Failed to list payments")
		}
		return c.JSON(http.StatusOK, payments)
	}

	if propertyIDStr := c.QueryParam("property_id"); propertyIDStr != "" {
		propertyID, err := common.ValidateUUID(propertyIDStr, "property_id")
		if err != nil {
			return common.SendValidationError(c, "property_id", err.Error())
		}
		payments, err := h.paymentRepo.ListByProperty(ctx, userID, propertyID)
		if err != nil {
			return common.SendServerError(c, "Failed to list payments")
		}
		return c.JSON(http.StatusOK, payments)
	}

	return common.SendClientError(c, "lease_id or property_id query parameter is required")
}

// UpdatePayment handles PUT /payments/:id
func (h *PaymentHandlers) UpdatePayment(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "payment id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	req := &paymentRequest{}
	if err := c.Bind(req); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}
	if err := common.ValidatePositiveFloat(req.Amount, "amount", 1000000); err != nil {
		return common.SendValidationError(c, "amount", err.Error())
	}
	paidOn, err := common.ValidateDateFormat(req.PaidOn, "paid_on")
	if err != nil {
		return common.SendValidationError(c, "paid_on", err.Error())
	}
	if err := common.ValidateRequiredString(req.Period, "period"); err != nil {
		return common.SendValidationError(c, "period", err.Error())
	}

	payment, err := h.paymentRepo.GetByID(ctx, userID, id)
	if err != nil {
		return common.SendNotFoundError(c, "Payment")
	}
	payment.Amount = req.Amount
	payment.PaidOn = paidOn
	payment.Method = strings.TrimSpace(req.Method)
	payment.Period = req.Period

	if err := h.paymentRepo.Update(ctx, userID, payment); err != nil {
		return common.SendServerError(c, "Failed to update payment")
	}

	h.invalidateReport(c, userID, payment.LeaseID)
	return c.JSON(http.StatusOK, payment)
}

// DeletePayment handles DELETE /payments/:id
func (h *PaymentHandlers) DeletePayment(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "payment id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	payment, err := h.paymentRepo.GetByID(ctx, userID, id)
	if err != nil {
		return common.SendNotFoundError(c, "Payment")
	}
	if err := h.paymentRepo.Delete(ctx, userID, id); err != nil {
		return common.SendServerError(c, "Failed to delete payment")
	}

	h.invalidateReport(c, userID, payment.LeaseID)
	return c.NoContent(http.StatusNoContent)
}
