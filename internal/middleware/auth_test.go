package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/common"
	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
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
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func identityTestContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/properties", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func tokenWithClaims(claims jwt.MapClaims) *jwt.Token {
	return &jwt.Token{Claims: claims, Valid: true}
}

func TestIdentityContextResolvesUser(t *testing.T) {
	userRepo := new(MockUserRepository)
	user := &models.User{ID: uuid.New(), ProviderID: "user_2abc", Email: "sam@example.com"}
	userRepo.On("GetByProviderID", mock.Anything, "user_2abc").Return(user, nil)

	c, rec := identityTestContext(t)
	c.Set("user", tokenWithClaims(jwt.MapClaims{"sub": "user_2abc"}))

	var gotID uuid.UUID
	var gotOK bool
	next := func(c echo.Context) error {
		gotID, gotOK = common.GetUserIDFromContext(c.Request().Context())
		return c.NoContent(http.StatusOK)
	}

	require.NoError(t, IdentityContext(userRepo)(next)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, gotOK)
	assert.Equal(t, user.ID, gotID)
}

func TestIdentityContextRejections(t *testing.T) {
	tests := []struct {
		name  string
		setup func(c echo.Context, userRepo *MockUserRepository)
		msg   string
	}{
		{
			name:  "no token on context",
			setup: func(c echo.Context, userRepo *MockUserRepository) {},
			msg:   "Missing token",
		},
		{
			name: "missing subject claim",
			setup: func(c echo.Context, userRepo *MockUserRepository) {
				c.Set("user", tokenWithClaims(jwt.MapClaims{"email": "sam@example.com"}))
			},
			msg: "Missing subject in token",
		},
		{
			name: "empty subject claim",
			setup: func(c echo.Context, userRepo *MockUserRepository) {
				c.Set("user", tokenWithClaims(jwt.MapClaims{"sub": ""}))
			},
			msg: "Missing subject in token",
		},
		{
			name: "subject not synced to a local user",
			setup: func(c echo.Context, userRepo *MockUserRepository) {
				c.Set("user", tokenWithClaims(jwt.MapClaims{"sub": "user_unknown"}))
				userRepo.On("GetByProviderID", mock.Anything, "user_unknown").Return(nil, errors.New("no rows"))
			},
			msg: "User not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(MockUserRepository)
			c, _ := identityTestContext(t)
			tt.setup(c, userRepo)

			next := func(c echo.Context) error {
				t.Fatal("next handler should not run")
				return nil
			}

			err := IdentityContext(userRepo)(next)(c)
			var httpErr *echo.HTTPError
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
			assert.Equal(t, tt.msg, httpErr.Message)
		})
	}
}
