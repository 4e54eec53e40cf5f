package handlers

import (
	"net/http"

	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/common"
	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/services"

	"github.com/labstack/echo/v4"
)

type OnboardingHandlers struct {
	onboardingSvc services.OnboardingService
}

func NewOnboardingHandlers(onboardingSvc services.OnboardingService) *OnboardingHandlers {
	return &OnboardingHandlers{onboardingSvc: onboardingSvc}
}

// GetStatus handles GET /onboarding. Aggregation failures degrade to the
// default all-incomplete state rather than erroring; the LoadFailed flag
// tells the client which case it is looking at.
func (h *OnboardingHandlers) GetStatus(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	return c.JSON(http.StatusOK, h.onboardingSvc.Status(ctx, userID))
}
