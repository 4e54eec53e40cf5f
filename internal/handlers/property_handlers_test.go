package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/common"
	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockPropertyRepository struct {
	mock.Mock
}

func (m *MockPropertyRepository) Create(ctx context.Context, property *models.Property) error {
	args := m.Called(ctx, property)
	return args.Error(0)
}

func (m *MockPropertyRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Property, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Property), args.Error(1)
}

func (m *MockPropertyRepository) Update(ctx context.Context, property *models.Property) error {
	args := m.Called(ctx, property)
	return args.Error(0)
}

func (m *MockPropertyRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockPropertyRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Property, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Property), args.Error(1)
}

func (m *MockPropertyRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockPropertyRepository) ListByLegacyUser(ctx context.Context, userID uuid.UUID) ([]*models.Property, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Property), args.Error(1)
}

type MockOnboardingService struct {
	mock.Mock
}

func (m *MockOnboardingService) Status(ctx context.Context, userID uuid.UUID) *models.OnboardingStatus {
	args := m.Called(ctx, userID)
	return args.Get(0).(*models.OnboardingStatus)
}

func (m *MockOnboardingService) Invalidate(ctx context.Context, userID uuid.UUID) {
	m.Called(ctx, userID)
}

type PropertyHandlersTestSuite struct {
	suite.Suite
	propertyRepo  *MockPropertyRepository
	onboardingSvc *MockOnboardingService
	handlers      *PropertyHandlers
	echo          *echo.Echo
	userID        uuid.UUID
}

func (suite *PropertyHandlersTestSuite) SetupTest() {
	suite.propertyRepo = new(MockPropertyRepository)
	suite.onboardingSvc = new(MockOnboardingService)
	suite.handlers = NewPropertyHandlers(suite.propertyRepo, suite.onboardingSvc)
	suite.echo = echo.New()
	suite.userID = uuid.New()
}

// newContext builds an echo context for an authenticated request.
func (suite *PropertyHandlersTestSuite) newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	req = req.WithContext(common.WithUserID(req.Context(), suite.userID))
	rec := httptest.NewRecorder()
	return suite.echo.NewContext(req, rec), rec
}

func (suite *PropertyHandlersTestSuite) TestCreateProperty() {
	suite.propertyRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Property) bool {
		return p.UserID == suite.userID && p.Address == "12 Main St" && p.PrincipalAmount == 250000
	})).Return(nil)
	suite.onboardingSvc.On("Invalidate", mock.Anything, suite.userID).Return()

	c, rec := suite.newContext(http.MethodPost, "/v1/properties",
		`{"address":"12 Main St","acquired_on":"2020-06-15","principal_amount":250000,"rate_of_interest":4.5}`)

	err := suite.handlers.CreateProperty(c)
	suite.NoError(err)
	suite.Equal(http.StatusCreated, rec.Code)

	var created models.Property
	suite.NoError(json.Unmarshal(rec.Body.Bytes(), &created))
	suite.Equal("12 Main St", created.Address)
	suite.NotNil(created.AcquiredOn)
	suite.propertyRepo.AssertExpectations(suite.T())
	suite.onboardingSvc.AssertExpectations(suite.T())
}

func (suite *PropertyHandlersTestSuite) TestCreatePropertyWithoutAcquiredDate() {
	suite.propertyRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Property) bool {
		return p.AcquiredOn == nil
	})).Return(nil)
	suite.onboardingSvc.On("Invalidate", mock.Anything, suite.userID).Return()

	c, rec := suite.newContext(http.MethodPost, "/v1/properties",
		`{"address":"12 Main St","principal_amount":250000,"rate_of_interest":4.5}`)

	suite.NoError(suite.handlers.CreateProperty(c))
	suite.Equal(http.StatusCreated, rec.Code)
}

func (suite *PropertyHandlersTestSuite) TestCreatePropertyValidation() {
	tests := []struct {
		name string
		body string
	}{
		{"missing address", `{"principal_amount":250000}`},
		{"negative principal", `{"address":"12 Main St","principal_amount":-1}`},
		{"interest above 100", `{"address":"12 Main St","rate_of_interest":101}`},
		{"bad acquired date", `{"address":"12 Main St","acquired_on":"15/06/2020"}`},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			c, rec := suite.newContext(http.MethodPost, "/v1/properties", tt.body)
			suite.NoError(suite.handlers.CreateProperty(c))
			suite.Equal(http.StatusBadRequest, rec.Code)
			suite.Contains(rec.Body.String(), "VALIDATION_ERROR")
		})
	}
	suite.propertyRepo.AssertNotCalled(suite.T(), "Create")
}

func (suite *PropertyHandlersTestSuite) TestCreatePropertyUnauthenticated() {
	req := httptest.NewRequest(http.MethodPost, "/v1/properties", strings.NewReader(`{"address":"12 Main St"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := suite.echo.NewContext(req, rec)

	suite.NoError(suite.handlers.CreateProperty(c))
	suite.Equal(http.StatusUnauthorized, rec.Code)
	suite.Contains(rec.Body.String(), "UNAUTHORIZED")
}

func (suite *PropertyHandlersTestSuite) TestGetProperty() {
	property := &models.Property{ID: uuid.New(), UserID: suite.userID, Address: "12 Main St"}
	suite.propertyRepo.On("GetByID", mock.Anything, suite.userID, property.ID).Return(property, nil)

	c, rec := suite.newContext(http.MethodGet, "/v1/properties/"+property.ID.String(), "")
	c.SetParamNames("id")
	c.SetParamValues(property.ID.String())

	suite.NoError(suite.handlers.GetProperty(c))
	suite.Equal(http.StatusOK, rec.Code)
	suite.Contains(rec.Body.String(), "12 Main St")
}

func (suite *PropertyHandlersTestSuite) TestGetPropertyNotFound() {
	id := uuid.New()
	suite.propertyRepo.On("GetByID", mock.Anything, suite.userID, id).Return(nil, errors.New("no rows"))

	c, rec := suite.newContext(http.MethodGet, "/v1/properties/"+id.String(), "")
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	suite.NoError(suite.handlers.GetProperty(c))
	suite.Equal(http.StatusNotFound, rec.Code)
	suite.Contains(rec.Body.String(), "NOT_FOUND")
}

func (suite *PropertyHandlersTestSuite) TestGetPropertyInvalidID() {
	c, rec := suite.newContext(http.MethodGet, "/v1/properties/abc", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")

	suite.NoError(suite.handlers.GetProperty(c))
	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.propertyRepo.AssertNotCalled(suite.T(), "GetByID")
}

func (suite *PropertyHandlersTestSuite) TestListPropertiesDefaultsPagination() {
	properties := []*models.Property{
		{ID: uuid.New(), UserID: suite.userID, Address: "12 Main St"},
		{ID: uuid.New(), UserID: suite.userID, Address: "4 Oak Ave"},
	}
	suite.propertyRepo.On("ListByUser", mock.Anything, suite.userID, 50, 0).Return(properties, nil)

	c, rec := suite.newContext(http.MethodGet, "/v1/properties", "")

	suite.NoError(suite.handlers.ListProperties(c))
	suite.Equal(http.StatusOK, rec.Code)

	var listed []*models.Property
	suite.NoError(json.Unmarshal(rec.Body.Bytes(), &listed))
	suite.Len(listed, 2)
}

func (suite *PropertyHandlersTestSuite) TestListPropertiesCapsLimit() {
	suite.propertyRepo.On("ListByUser", mock.Anything, suite.userID, 1000, 0).Return([]*models.Property{}, nil)

	c, rec := suite.newContext(http.MethodGet, "/v1/properties?limit=5000", "")

	suite.NoError(suite.handlers.ListProperties(c))
	suite.Equal(http.StatusOK, rec.Code)
	suite.propertyRepo.AssertExpectations(suite.T())
}

func (suite *PropertyHandlersTestSuite) TestUpdateProperty() {
	property := &models.Property{ID: uuid.New(), UserID: suite.userID, Address: "12 Main St"}
	suite.propertyRepo.On("GetByID", mock.Anything, suite.userID, property.ID).Return(property, nil)
	suite.propertyRepo.On("Update", mock.Anything, mock.MatchedBy(func(p *models.Property) bool {
		return p.ID == property.ID && p.Address == "4 Oak Ave"
	})).Return(nil)

	c, rec := suite.newContext(http.MethodPut, "/v1/properties/"+property.ID.String(),
		`{"address":"4 Oak Ave","principal_amount":300000,"rate_of_interest":5}`)
	c.SetParamNames("id")
	c.SetParamValues(property.ID.String())

	suite.NoError(suite.handlers.UpdateProperty(c))
	suite.Equal(http.StatusOK, rec.Code)
	suite.propertyRepo.AssertExpectations(suite.T())
}

func (suite *PropertyHandlersTestSuite) TestDeleteProperty() {
	id := uuid.New()
	suite.propertyRepo.On("Delete", mock.Anything, suite.userID, id).Return(nil)
	suite.onboardingSvc.On("Invalidate", mock.Anything, suite.userID).Return()

	c, rec := suite.newContext(http.MethodDelete, "/v1/properties/"+id.String(), "")
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	suite.NoError(suite.handlers.DeleteProperty(c))
	suite.Equal(http.StatusNoContent, rec.Code)
	suite.onboardingSvc.AssertExpectations(suite.T())
}

func (suite *PropertyHandlersTestSuite) TestDeletePropertyRepoFailure() {
	id := uuid.New()
	suite.propertyRepo.On("Delete", mock.Anything, suite.userID, id).Return(errors.New("boom"))

	c, rec := suite.newContext(http.MethodDelete, "/v1/properties/"+id.String(), "")
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	suite.NoError(suite.handlers.DeleteProperty(c))
	suite.Equal(http.StatusInternalServerError, rec.Code)
	suite.onboardingSvc.AssertNotCalled(suite.T(), "Invalidate")
}

func TestPropertyHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(PropertyHandlersTestSuite))
}

func TestOnboardingHandlerReturnsStatus(t *testing.T) {
	svc := new(MockOnboardingService)
	userID := uuid.New()
	svc.On("Status", mock.Anything, userID).Return(&models.OnboardingStatus{
		PropertyCount: 1,
		Steps:         []models.OnboardingStep{{Key: "add_property", Complete: true}},
	})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/onboarding/status", nil)
	req = req.WithContext(common.WithUserID(req.Context(), userID))
	rec := httptest.NewRecorder()

	h := NewOnboardingHandlers(svc)
	assert.NoError(t, h.GetStatus(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"add_property"`)
	svc.AssertExpectations(t)
}

func TestOnboardingHandlerUnauthenticated(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/onboarding/status", nil)
	rec := httptest.NewRecorder()

	h := NewOnboardingHandlers(new(MockOnboardingService))
	assert.NoError(t, h.GetStatus(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
