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

type ExpenseHandlers struct {
	expenseRepo  repositories.ExpenseRepository
	propertyRepo repositories.PropertyRepository
	reportSvc    *reports.ReportService
}

func NewExpenseHandlers(expenseRepo repositories.ExpenseRepository, propertyRepo repositories.PropertyRepository, reportSvc *reports.ReportService) *ExpenseHandlers {
	return &ExpenseHandlers{
		expenseRepo:  expenseRepo,
		propertyRepo: propertyRepo,
		reportSvc:    reportSvc,
	}
}

type expenseRequest struct {
	PropertyID  string  `json:"property_id"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	IncurredOn  string  `json:"incurred_on"`
	Description *string `json:"description"`
}

// CreateExpense handles POST /expenses
func (h *ExpenseHandlers) CreateExpense(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	req := &expenseRequest{}
	if err := c.Bind(req); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}
	propertyID, err := common.ValidateUUID(req.PropertyID, "property_id")
	if err != nil {
		return common.SendValidationError(c, "property_id", err.Error())
	}
	if err := common.ValidateRequiredString(req.Category, "category"); err != nil {
		return common.SendValidationError(c, "category", err.Error())
	}
	if err := common.ValidatePositiveFloat(req.Amount, "amount", 10000000); err != nil {
		return common.SendValidationError(c, "amount", err.Error())
	}
	incurredOn, err := common.ValidateDateFormat(req.IncurredOn, "incurred_on")
	if err != nil {
		return common.SendValidationError(c, "incurred_on", err.Error())
	}

	if _, err := h.propertyRepo.GetByID(ctx, userID, propertyID); err != nil {
		return common.SendNotFoundError(c, "Property")
	}

	expense := &models.Expense{
		ID:          uuid.New(),
		PropertyID:  propertyID,
		Category:    strings.TrimSpace(req.Category),
		Amount:      req.Amount,
		IncurredOn:  incurredOn,
		Description: req.Description,
	}
	if err := h.expenseRepo.Create(ctx, expense); err != nil {
		return common.SendServerError(c, "Failed to create expense")
	}

	h.reportSvc.InvalidateProperty(ctx, userID, propertyID)
	return c.JSON(http.StatusCreated, expense)
}

// GetExpense handles GET /expenses/:id
func (h *ExpenseHandlers) GetExpense(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "expense id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	expense, err := h.expenseRepo.GetByID(ctx, userID, id)
	if err != nil {
		return common.SendNotFoundError(c, "Expense")
	}
	return c.JSON(http.StatusOK, expense)
}

// ListExpenses handles GET /expenses?property_id=...
func (h *ExpenseHandlers) ListExpenses(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	propertyID, err := common.ValidateUUID(c.QueryParam("property_id"), "property_id")
	if err != nil {
		return common.SendValidationError(c, "property_id", err.Error())
	}

	expenses, err := h.expenseRepo.ListByProperty(ctx, userID, propertyID)
	if err != nil {
		return common.SendServerError(c, "Failed to list expenses")
	}
	return c.JSON(http.StatusOK, expenses)
}

// UpdateExpense handles PUT /expenses/:id
func (h *ExpenseHandlers) UpdateExpense(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "expense id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	req := &expenseRequest{}
	if err := c.Bind(req); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}
	if err := common.ValidateRequiredString(req.Category, "category"); err != nil {
		return common.SendValidationError(c, "category", err.Error())
	}
	if err := common.ValidatePositiveFloat(req.Amount, "amount", 10000000); err != nil {
		return common.SendValidationError(c, "amount", err.Error())
	}
	incurredOn, err := common.ValidateDateFormat(req.IncurredOn, "incurred_on")
	if err != nil {
		return common.SendValidationError(c, "incurred_on", err.Error())
	}

	expense, err := h.expenseRepo.GetByID(ctx, userID, id)
	if err != nil {
		return common.SendNotFoundError(c, "Expense")
	}
	expense.Category = strings.TrimSpace(req.Category)
	expense.Amount = req.Amount
	expense.IncurredOn = incurredOn
	expense.Description = req.Description

	if err := h.expenseRepo.Update(ctx, userID, expense); err != nil {
		return common.SendServerError(c, "Failed to update expense")
	}

	h.reportSvc.InvalidateProperty(ctx, userID, expense.PropertyID)
	return c.JSON(http.StatusOK, expense)
}

// DeleteExpense handles DELETE /expenses/:id
func (h *ExpenseHandlers) DeleteExpense(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "expense id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	expense, err := h.expenseRepo.GetByID(ctx, userID, id)
	if err != nil {
		return common.SendNotFoundError(c, "Expense")
	}
	if err := h.expenseRepo.Delete(ctx, userID, id); err != nil {
		return common.SendServerError(c, "Failed to delete expense")
	}

	h.reportSvc.InvalidateProperty(ctx, userID, expense.PropertyID)
	return c.NoContent(http.StatusNoContent)
}
