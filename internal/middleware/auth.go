package middleware

import (
	"log"
	"net/http"
	"time"

	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/common"
	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/repositories"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// NewJWKS fetches and auto-refreshes the identity provider's JWKS.
// Authentication itself is delegated to the provider; the backend only
// verifies the tokens it issues.
func NewJWKS(jwksURL string) (*keyfunc.JWKS, error) {
	return keyfunc.Get(jwksURL, keyfunc.Options{
		RefreshInterval: time.Hour,
		RefreshErrorHandler: func(err error) {
			log.Printf("JWKS refresh failed: %v", err)
		},
	})
}

// IdentityContext maps the verified token's subject to a local user row
// (synced by the identity webhook) and stores the user ID in the request
// context. It runs after the echo-jwt middleware has validated the token.
func IdentityContext(userRepo repositories.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing token")
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid claims")
			}

			sub, ok := claims["sub"].(string)
			if !ok || sub == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing subject in token")
			}

			user, err := userRepo.GetByProviderID(c.Request().Context(), sub)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
			}

			ctx := common.WithUserID(c.Request().Context(), user.ID)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}
