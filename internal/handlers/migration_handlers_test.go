package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockMigrationService struct {
	mock.Mock
}

func (m *MockMigrationService) Run(ctx context.Context) *services.MigrationResult {
	args := m.Called(ctx)
	return args.Get(0).(*services.MigrationResult)
}

func (m *MockMigrationService) Status(ctx context.Context) (*services.MigrationStatus, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.MigrationStatus), args.Error(1)
}

func migrationGetContext(target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// A GET on the migration endpoint runs the backfill when properties are
// still pending.
func TestRunMigrationRunsWhenPending(t *testing.T) {
	svc := new(MockMigrationService)
	svc.On("Status", mock.Anything).Return(&services.MigrationStatus{PendingProperties: 3}, nil)
	svc.On("Run", mock.Anything).Return(&services.MigrationResult{Success: true, MigratedCount: 3, TotalUsers: 2})

	c, rec := migrationGetContext("/v1/admin/migration")
	h := NewMigrationHandlers(svc)

	assert.NoError(t, h.RunMigration(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ran":true`)
	assert.Contains(t, rec.Body.String(), `"migrated_count":3`)
	svc.AssertCalled(t, "Run", mock.Anything)
}

func TestRunMigrationShortCircuitsWhenComplete(t *testing.T) {
	svc := new(MockMigrationService)
	svc.On("Status", mock.Anything).Return(&services.MigrationStatus{MigratedProperties: 5, Complete: true}, nil)

	c, rec := migrationGetContext("/v1/admin/migration")
	h := NewMigrationHandlers(svc)

	assert.NoError(t, h.RunMigration(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ran":false`)
	svc.AssertNotCalled(t, "Run")
}

func TestRunMigrationAbortedRun(t *testing.T) {
	svc := new(MockMigrationService)
	svc.On("Status", mock.Anything).Return(&services.MigrationStatus{PendingProperties: 2}, nil)
	svc.On("Run", mock.Anything).Return(&services.MigrationResult{
		Success:       false,
		MigratedCount: 1,
		Error:         "migration aborted at user 2 of 3",
	})

	c, rec := migrationGetContext("/v1/admin/migration")
	h := NewMigrationHandlers(svc)

	assert.NoError(t, h.RunMigration(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "migration aborted")
}

func TestRunMigrationStatusFailure(t *testing.T) {
	svc := new(MockMigrationService)
	svc.On("Status", mock.Anything).Return(nil, errors.New("connection refused"))

	c, rec := migrationGetContext("/v1/admin/migration")
	h := NewMigrationHandlers(svc)

	assert.NoError(t, h.RunMigration(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	svc.AssertNotCalled(t, "Run")
}

func TestMigrationStatusEndpoint(t *testing.T) {
	svc := new(MockMigrationService)
	svc.On("Status", mock.Anything).Return(&services.MigrationStatus{PendingProperties: 1, MigratedProperties: 4}, nil)

	c, rec := migrationGetContext("/v1/admin/migration/status")
	h := NewMigrationHandlers(svc)

	assert.NoError(t, h.MigrationStatus(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"pending_properties":1`)
	svc.AssertNotCalled(t, "Run")
}
