package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/models"
	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/repositories"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// WebhookHandlers receives identity-provider events and mirrors them
// into the users table. Users are mutated nowhere else.
type WebhookHandlers struct {
	userRepo      repositories.UserRepository
	webhookSecret string
}

func NewWebhookHandlers(userRepo repositories.UserRepository, webhookSecret string) *WebhookHandlers {
	return &WebhookHandlers{
		userRepo:      userRepo,
		webhookSecret: webhookSecret,
	}
}

type identityEvent struct {
	Type string `json:"type"`
	Data struct {
		ID             string `json:"id"`
		FirstName      string `json:"first_name"`
		LastName       string `json:"last_name"`
		EmailAddresses []struct {
			ID           string `json:"id"`
			EmailAddress string `json:"email_address"`
		} `json:"email_addresses"`
		PrimaryEmailAddressID string `json:"primary_email_address_id"`
	} `json:"data"`
}

func (e *identityEvent) primaryEmail() string {
	for _, addr := range e.Data.EmailAddresses {
		if addr.ID == e.Data.PrimaryEmailAddressID {
			return addr.EmailAddress
		}
	}
	if len(e.Data.EmailAddresses) > 0 {
		return e.Data.EmailAddresses[0].EmailAddress
	}
	return ""
}

// verifySignature checks the three webhook headers: the signed content
// is "{id}.{timestamp}.{body}" and the signature header lists one or
// more "v1,<base64>" candidates.
func (h *WebhookHandlers) verifySignature(id, timestamp, signatureHeader string, body []byte) bool {
	secret := strings.TrimPrefix(h.webhookSecret, "whsec_")
	key, err := base64.StdEncoding.DecodeString(secret)
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, key)
	fmt.Fprintf(mac, "%s.%s.", id, timestamp)
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	for _, candidate := range strings.Fields(signatureHeader) {
		parts := strings.SplitN(candidate, ",", 2)
		if len(parts) != 2 || parts[0] != "v1" {
			continue
		}
		if hmac.Equal([]byte(parts[1]), []byte(expected)) {
			return true
		}
	}
	return false
}

// IdentityWebhook handles POST /webhooks/identity
func (h *WebhookHandlers) IdentityWebhook(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Failed to read request body")
	}

	id := c.Request().Header.Get("svix-id")
	timestamp := c.Request().Header.Get("svix-timestamp")
	signature := c.Request().Header.Get("svix-signature")
	if id == "" || timestamp == "" || signature == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing webhook headers")
	}

	if !h.verifySignature(id, timestamp, signature, body) {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid webhook signature")
	}

	event := &identityEvent{}
	if err := json.Unmarshal(body, event); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Malformed webhook payload")
	}

	if err := h.processIdentityEvent(c, event); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "success",
		"event":  event.Type,
	})
}

func (h *WebhookHandlers) processIdentityEvent(c echo.Context, event *identityEvent) error {
	switch event.Type {
	case "user.created":
		return h.handleUserCreated(c, event)
	case "user.updated":
		return h.handleUserUpdated(c, event)
	case "user.deleted":
		return h.handleUserDeleted(c, event)
	default:
		// Unrecognized events are acknowledged and ignored.
		log.Printf("ignoring identity event type %q", event.Type)
		return nil
	}
}

func (h *WebhookHandlers) handleUserCreated(c echo.Context, event *identityEvent) error {
	email := event.primaryEmail()
	if email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing primary email address")
	}

	user := &models.User{
		ID:         uuid.New(),
		ProviderID: event.Data.ID,
		Email:      email,
		FirstName:  event.Data.FirstName,
		LastName:   event.Data.LastName,
	}
	if err := h.userRepo.Create(c.Request().Context(), user); err != nil {
		log.Printf("failed to create user from webhook: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create user")
	}
	return nil
}

func (h *WebhookHandlers) handleUserUpdated(c echo.Context, event *identityEvent) error {
	email := event.primaryEmail()
	if email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing primary email address")
	}

	user := &models.User{
		ProviderID: event.Data.ID,
		Email:      email,
		FirstName:  event.Data.FirstName,
		LastName:   event.Data.LastName,
	}
	if err := h.userRepo.UpdateByProviderID(c.Request().Context(), user); err != nil {
		log.Printf("failed to update user from webhook: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update user")
	}
	return nil
}

func (h *WebhookHandlers) handleUserDeleted(c echo.Context, event *identityEvent) error {
	if err := h.userRepo.DeleteByProviderID(c.Request().Context(), event.Data.ID); err != nil {
		log.Printf("failed to delete user from webhook: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete user")
	}
	return nil
}
