package handlers

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByProviderID(ctx context.Context, providerID string) (*models.User, error) {
	args := m.Called(ctx, providerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateByProviderID(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteByProviderID(ctx context.Context, providerID string) error {
	args := m.Called(ctx, providerID)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, limit, offset int) ([]*models.User, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.User), args.Error(1)
}

const testWebhookKey = "dGVzdC1zZWNyZXQta2V5LWZvci13ZWJob29rcw==" // base64 of the raw key

type WebhookHandlersTestSuite struct {
	suite.Suite
	userRepo *MockUserRepository
	handlers *WebhookHandlers
	echo     *echo.Echo
}

func (suite *WebhookHandlersTestSuite) SetupTest() {
	suite.userRepo = &MockUserRepository{}
	suite.handlers = NewWebhookHandlers(suite.userRepo, "whsec_"+testWebhookKey)
	suite.echo = echo.New()
}

func (suite *WebhookHandlersTestSuite) TearDownTest() {
	suite.userRepo.AssertExpectations(suite.T())
}

func TestWebhookHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(WebhookHandlersTestSuite))
}

func signPayload(id, timestamp, body string) string {
	key, _ := base64.StdEncoding.DecodeString(testWebhookKey)
	mac := hmac.New(sha256.New, key)
	fmt.Fprintf(mac, "%s.%s.%s", id, timestamp, body)
	return "v1," + base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func (suite *WebhookHandlersTestSuite) signedRequest(body string) (*httptest.ResponseRecorder, echo.Context) {
	req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/identity", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("svix-id", "msg_1")
	req.Header.Set("svix-timestamp", "1700000000")
	req.Header.Set("svix-signature", signPayload("msg_1", "1700000000", body))
	rec := httptest.NewRecorder()
	return rec, suite.echo.NewContext(req, rec)
}

func (suite *WebhookHandlersTestSuite) TestUserCreated() {
	body := `{
		"type": "user.created",
		"data": {
			"id": "user_abc",
			"first_name": "Ana",
			"last_name": "Lopez",
			"email_addresses": [
				{"id": "em_2", "email_address": "other@example.com"},
				{"id": "em_1", "email_address": "ana@example.com"}
			],
			"primary_email_address_id": "em_1"
		}
	}`

	suite.userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.ProviderID == "user_abc" && u.Email == "ana@example.com" && u.FirstName == "Ana"
	})).Return(nil).Once()

	rec, c := suite.signedRequest(body)
	err := suite.handlers.IdentityWebhook(c)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), "user.created")
}

func (suite *WebhookHandlersTestSuite) TestUserUpdated() {
	body := `{
		"type": "user.updated",
		"data": {
			"id": "user_abc",
			"first_name": "Ana",
			"last_name": "Lopez-Diaz",
			"email_addresses": [{"id": "em_1", "email_address": "ana@example.com"}],
			"primary_email_address_id": "em_1"
		}
	}`

	suite.userRepo.On("UpdateByProviderID", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.ProviderID == "user_abc" && u.LastName == "Lopez-Diaz"
	})).Return(nil).Once()

	rec, c := suite.signedRequest(body)
	err := suite.handlers.IdentityWebhook(c)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
}

func (suite *WebhookHandlersTestSuite) TestUserDeleted() {
	body := `{"type": "user.deleted", "data": {"id": "user_abc"}}`

	suite.userRepo.On("DeleteByProviderID", mock.Anything, "user_abc").Return(nil).Once()

	rec, c := suite.signedRequest(body)
	err := suite.handlers.IdentityWebhook(c)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
}

func (suite *WebhookHandlersTestSuite) TestUnknownEventAcknowledged() {
	body := `{"type": "session.created", "data": {"id": "sess_1"}}`

	rec, c := suite.signedRequest(body)
	err := suite.handlers.IdentityWebhook(c)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), "session.created")
}

func (suite *WebhookHandlersTestSuite) TestMissingHeaders() {
	req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/identity", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	c := suite.echo.NewContext(req, rec)

	err := suite.handlers.IdentityWebhook(c)

	httpErr, ok := err.(*echo.HTTPError)
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), http.StatusBadRequest, httpErr.Code)
}

func (suite *WebhookHandlersTestSuite) TestBadSignature() {
	body := `{"type": "user.deleted", "data": {"id": "user_abc"}}`
	req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/identity", strings.NewReader(body))
	req.Header.Set("svix-id", "msg_1")
	req.Header.Set("svix-timestamp", "1700000000")
	req.Header.Set("svix-signature", "v1,bm90LXRoZS1yaWdodC1zaWduYXR1cmU=")
	rec := httptest.NewRecorder()
	c := suite.echo.NewContext(req, rec)

	err := suite.handlers.IdentityWebhook(c)

	httpErr, ok := err.(*echo.HTTPError)
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), http.StatusBadRequest, httpErr.Code)
}

func (suite *WebhookHandlersTestSuite) TestTamperedBodyRejected() {
	original := `{"type": "user.deleted", "data": {"id": "user_abc"}}`
	tampered := `{"type": "user.deleted", "data": {"id": "user_xyz"}}`

	req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/identity", strings.NewReader(tampered))
	req.Header.Set("svix-id", "msg_1")
	req.Header.Set("svix-timestamp", "1700000000")
	req.Header.Set("svix-signature", signPayload("msg_1", "1700000000", original))
	rec := httptest.NewRecorder()
	c := suite.echo.NewContext(req, rec)

	err := suite.handlers.IdentityWebhook(c)

	httpErr, ok := err.(*echo.HTTPError)
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), http.StatusBadRequest, httpErr.Code)
}

func (suite *WebhookHandlersTestSuite) TestCreatedEventWithoutEmail() {
	body := `{"type": "user.created", "data": {"id": "user_abc", "email_addresses": []}}`

	rec, c := suite.signedRequest(body)
	_ = rec
	err := suite.handlers.IdentityWebhook(c)

	httpErr, ok := err.(*echo.HTTPError)
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), http.StatusBadRequest, httpErr.Code)
}

func (suite *WebhookHandlersTestSuite) TestRepoFailureIsServerError() {
	body := `{"type": "user.deleted", "data": {"id": "user_abc"}}`

	suite.userRepo.On("DeleteByProviderID", mock.Anything, "user_abc").Return(errors.New("db down")).Once()

	_, c := suite.signedRequest(body)
	err := suite.handlers.IdentityWebhook(c)

	httpErr, ok := err.(*echo.HTTPError)
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), http.StatusInternalServerError, httpErr.Code)
}

func (suite *WebhookHandlersTestSuite) TestMalformedPayload() {
	rec, c := suite.signedRequest(`{not json`)
	_ = rec
	err := suite.handlers.IdentityWebhook(c)

	httpErr, ok := err.(*echo.HTTPError)
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), http.StatusBadRequest, httpErr.Code)
}
