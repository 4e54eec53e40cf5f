package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/common"
	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/models"
	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/repositories"
	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type PropertyHandlers struct {
	propertyRepo  repositories.PropertyRepository
	onboardingSvc services.OnboardingService
}

func NewPropertyHandlers(propertyRepo repositories.PropertyRepository, onboardingSvc services.OnboardingService) *PropertyHandlers {
	return &PropertyHandlers{
		propertyRepo:  propertyRepo,
		onboardingSvc: onboardingSvc,
	}
}

type propertyRequest struct {
	Address         string  `json:"address"`
	AcquiredOn      *string `json:"acquired_on"`
	PrincipalAmount float64 `json:"principal_amount"`
	RateOfInterest  float64 `json:"rate_of_interest"`
}

func (req *propertyRequest) validate() (*time.Time, error) {
	if err := common.ValidateRequiredString(req.Address, "address"); err != nil {
		return nil, err
	}
	if req.PrincipalAmount < 0 {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "principal amount cannot be negative")
	}
	if req.RateOfInterest < 0 || req.RateOfInterest > 100 {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "rate of interest must be between 0 and 100")
	}
	if req.AcquiredOn == nil || *req.AcquiredOn == "" {
		return nil, nil
	}
	acquired, err := common.ValidateDateFormat(*req.AcquiredOn, "acquired_on")
	if err != nil {
		return nil, err
	}
	return &acquired, nil
}

// CreateProperty handles POST /properties
func (h *PropertyHandlers) CreateProperty(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	req := &propertyRequest{}
	if err := c.Bind(req); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}
	acquiredOn, err := req.validate()
	if err != nil {
		return common.SendValidationError(c, "property", err.Error())
	}

	property := &models.Property{
		ID:              uuid.New(),
		UserID:          userID,
		Address:         req.Address,
		AcquiredOn:      acquiredOn,
		PrincipalAmount: req.PrincipalAmount,
		RateOfInterest:  req.RateOfInterest,
	}
	if err := h.propertyRepo.Create(ctx, property); err != nil {
		return common.SendServerError(c, "Failed to create property")
	}

	h.onboardingSvc.Invalidate(ctx, userID)
	return c.JSON(http.StatusCreated, property)
}

// GetProperty handles GET /properties/:id
func (h *PropertyHandlers) GetProperty(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "property id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	property, err := h.propertyRepo.GetByID(ctx, userID, id)
	if err != nil {
		return common.SendNotFoundError(c, "Property")
	}
	return c.JSON(http.StatusOK, property)
}

// ListProperties handles GET /properties
func (h *PropertyHandlers) ListProperties(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	limit, offset = common.ValidatePaginationParams(limit, offset)

	properties, err := h.propertyRepo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return common.SendServerError(c, "Failed to list properties")
	}
	return c.JSON(http.StatusOK, properties)
}

// UpdateProperty handles PUT /properties/:id
func (h *PropertyHandlers) UpdateProperty(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "property id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	req := &propertyRequest{}
	if err := c.Bind(req); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}
	acquiredOn, err := req.validate()
	if err != nil {
		return common.SendValidationError(c, "property", err.Error())
	}

	property, err := h.propertyRepo.GetByID(ctx, userID, id)
	if err != nil {
		return common.SendNotFoundError(c, "Property")
	}
	property.Address = req.Address
	property.AcquiredOn = acquiredOn
	property.PrincipalAmount = req.PrincipalAmount
	property.RateOfInterest = req.RateOfInterest

	if err := h.propertyRepo.Update(ctx, property); err != nil {
		return common.SendServerError(c, "Failed to update property")
	}
	return c.JSON(http.StatusOK, property)
}

// DeleteProperty handles DELETE /properties/:id
func (h *PropertyHandlers) DeleteProperty(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "property id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if err := h.propertyRepo.Delete(ctx, userID, id); err != nil {
		return common.SendServerError(c, "Failed to delete property")
	}
	h.onboardingSvc.Invalidate(ctx, userID)
	return c.NoContent(http.StatusNoContent)
}
