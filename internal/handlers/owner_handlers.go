package handlers

import (
	"net/http"
	"strings"

	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/common"
	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/models"
	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/repositories"
	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type OwnerHandlers struct {
	ownerRepo         repositories.OwnerRepository
	userOwnerRepo     repositories.UserOwnerRepository
	propertyOwnerRepo repositories.PropertyOwnerRepository
	propertyRepo      repositories.PropertyRepository
	onboardingSvc     services.OnboardingService
}

func NewOwnerHandlers(
	ownerRepo repositories.OwnerRepository,
	userOwnerRepo repositories.UserOwnerRepository,
	propertyOwnerRepo repositories.PropertyOwnerRepository,
	propertyRepo repositories.PropertyRepository,
	onboardingSvc services.OnboardingService,
) *OwnerHandlers {
	return &OwnerHandlers{
		ownerRepo:         ownerRepo,
		userOwnerRepo:     userOwnerRepo,
		propertyOwnerRepo: propertyOwnerRepo,
		propertyRepo:      propertyRepo,
		onboardingSvc:     onboardingSvc,
	}
}

type ownerRequest struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Email string `json:"email"`
}

type propertyOwnerRequest struct {
	OwnerID             string  `json:"owner_id"`
	OwnershipPercentage float64 `json:"ownership_percentage"`
}

// ownerLinkedToUser checks that the caller has a user_owners link to the
// owner. Owners are shared records, so the link is the access boundary.
func (h *OwnerHandlers) ownerLinkedToUser(c echo.Context, userID, ownerID uuid.UUID) (bool, error) {
	links, err := h.userOwnerRepo.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return false, err
	}
	for _, link := range links {
		if link.OwnerID == ownerID {
			return true, nil
		}
	}
	return false, nil
}

// CreateOwner handles POST /owners. The creating user is linked as admin.
func (h *OwnerHandlers) CreateOwner(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	req := &ownerRequest{}
	if err := c.Bind(req); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return common.SendValidationError(c, "name", err.Error())
	}
	if req.Type == "" {
		req.Type = models.OwnerTypeIndividual
	}
	if req.Type != models.OwnerTypeIndividual && req.Type != models.OwnerTypeEntity {
		return common.SendValidationError(c, "type", "type must be individual or entity")
	}

	owner := &models.Owner{
		ID:    uuid.New(),
		Name:  strings.TrimSpace(req.Name),
		Type:  req.Type,
		Email: strings.TrimSpace(req.Email),
	}
	if err := h.ownerRepo.Create(ctx, owner); err != nil {
		return common.SendServerError(c, "Failed to create owner")
	}

	link := &models.UserOwner{
		UserID:  userID,
		OwnerID: owner.ID,
		Role:    models.UserOwnerRoleAdmin,
	}
	if err := h.userOwnerRepo.Create(ctx, link); err != nil {
		return common.SendServerError(c, "Failed to link owner to user")
	}

	h.onboardingSvc.Invalidate(ctx, userID)
	return c.JSON(http.StatusCreated, owner)
}

// GetOwner handles GET /owners/:id
func (h *OwnerHandlers) GetOwner(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "owner id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	linked, err := h.ownerLinkedToUser(c, userID, id)
	if err != nil {
		return common.SendServerError(c, "Failed to fetch owner")
	}
	if !linked {
		return common.SendNotFoundError(c, "Owner")
	}

	owner, err := h.ownerRepo.GetByID(ctx, id)
	if err != nil {
		return common.SendNotFoundError(c, "Owner")
	}
	return c.JSON(http.StatusOK, owner)
}

// ListOwners handles GET /owners
func (h *OwnerHandlers) ListOwners(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	owners, err := h.ownerRepo.ListByUser(ctx, userID)
	if err != nil {
		return common.SendServerError(c, "Failed to list owners")
	}
	return c.JSON(http.StatusOK, owners)
}

// UpdateOwner handles PUT /owners/:id
func (h *OwnerHandlers) UpdateOwner(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "owner id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	req := &ownerRequest{}
	if err := c.Bind(req); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return common.SendValidationError(c, "name", err.Error())
	}
	if req.Type != models.OwnerTypeIndividual && req.Type != models.OwnerTypeEntity {
		return common.SendValidationError(c, "type", "type must be individual or entity")
	}

	linked, err := h.ownerLinkedToUser(c, userID, id)
	if err != nil {
		return common.SendServerError(c, "Failed to fetch owner")
	}
	if !linked {
		return common.SendNotFoundError(c, "Owner")
	}

	owner, err := h.ownerRepo.GetByID(ctx, id)
	if err != nil {
		return common.SendNotFoundError(c, "Owner")
	}
	owner.Name = strings.TrimSpace(req.Name)
	owner.Type = req.Type
	owner.Email = strings.TrimSpace(req.Email)

	if err := h.ownerRepo.Update(ctx, owner); err != nil {
		return common.SendServerError(c, "Failed to update owner")
	}
	return c.JSON(http.StatusOK, owner)
}

// DeleteOwner handles DELETE /owners/:id. The user link is removed first so
// a failed owner delete never leaves a dangling link.
func (h *OwnerHandlers) DeleteOwner(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "owner id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	linked, err := h.ownerLinkedToUser(c, userID, id)
	if err != nil {
		return common.SendServerError(c, "Failed to fetch owner")
	}
	if !linked {
		return common.SendNotFoundError(c, "Owner")
	}

	if err := h.userOwnerRepo.Delete(ctx, userID, id); err != nil {
		return common.SendServerError(c, "Failed to delete owner")
	}
	if err := h.ownerRepo.Delete(ctx, id); err != nil {
		return common.SendServerError(c, "Failed to delete owner")
	}

	h.onboardingSvc.Invalidate(ctx, userID)
	return c.NoContent(http.StatusNoContent)
}

// AddPropertyOwner handles POST /properties/:id/owners. Percentages across
// a property may never exceed 100.
func (h *OwnerHandlers) AddPropertyOwner(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	propertyID, err := common.ValidateUUID(c.Param("id"), "property id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	req := &propertyOwnerRequest{}
	if err := c.Bind(req); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}
	ownerID, err := common.ValidateUUID(req.OwnerID, "owner_id")
	if err != nil {
		return common.SendValidationError(c, "owner_id", err.Error())
	}
	if req.OwnershipPercentage <= 0 || req.OwnershipPercentage > 100 {
		return common.SendValidationError(c, "ownership_percentage", "ownership percentage must be greater than 0 and at most 100")
	}

	if _, err := h.propertyRepo.GetByID(ctx, userID, propertyID); err != nil {
		return common.SendNotFoundError(c, "Property")
	}
	linked, err := h.ownerLinkedToUser(c, userID, ownerID)
	if err != nil {
		return common.SendServerError(c, "Failed to fetch owner")
	}
	if !linked {
		return common.SendNotFoundError(c, "Owner")
	}

	existing, err := h.propertyOwnerRepo.SumPercentageByProperty(ctx, propertyID)
	if err != nil {
		return common.SendServerError(c, "Failed to check ownership percentages")
	}
	if existing+req.OwnershipPercentage > 100 {
		return common.SendClientError(c, "ownership percentages for a property cannot exceed 100")
	}

	link := &models.PropertyOwner{
		PropertyID:          propertyID,
		OwnerID:             ownerID,
		OwnershipPercentage: req.OwnershipPercentage,
	}
	if err := h.propertyOwnerRepo.Create(ctx, link); err != nil {
		return common.SendServerError(c, "Failed to link owner to property")
	}
	return c.JSON(http.StatusCreated, link)
}

// ListPropertyOwners handles GET /properties/:id/owners
func (h *OwnerHandlers) ListPropertyOwners(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	propertyID, err := common.ValidateUUID(c.Param("id"), "property id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if _, err := h.propertyRepo.GetByID(ctx, userID, propertyID); err != nil {
		return common.SendNotFoundError(c, "Property")
	}

	links, err := h.propertyOwnerRepo.ListByProperty(ctx, propertyID)
	if err != nil {
		return common.SendServerError(c, "Failed to list property owners")
	}
	return c.JSON(http.StatusOK, links)
}

// RemovePropertyOwner handles DELETE /properties/:id/owners/:ownerID
func (h *OwnerHandlers) RemovePropertyOwner(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	propertyID, err := common.ValidateUUID(c.Param("id"), "property id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}
	ownerID, err := common.ValidateUUID(c.Param("ownerID"), "owner id")
	if err != nil {
		return common.SendValidationError(c, "ownerID", err.Error())
	}

	if _, err := h.propertyRepo.GetByID(ctx, userID, propertyID); err != nil {
		return common.SendNotFoundError(c, "Property")
	}

	if err := h.propertyOwnerRepo.Delete(ctx, propertyID, ownerID); err != nil {
		return common.SendServerError(c, "Failed to remove property owner")
	}
	return c.NoContent(http.StatusNoContent)
}
