package reports

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/models"

	"github.com/google/uuid"
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
	return args.Get(0).([]*models.Property), args.Error(1)
}

func (m *MockPropertyRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockPropertyRepository) ListByLegacyUser(ctx context.Context, userID uuid.UUID) ([]*models.Property, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*models.Property), args.Error(1)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Payment, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *MockPaymentRepository) Update(ctx context.Context, userID uuid.UUID, payment *models.Payment) error {
	args := m.Called(ctx, userID, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockPaymentRepository) ListByLease(ctx context.Context, userID, leaseID uuid.UUID) ([]*models.Payment, error) {
	args := m.Called(ctx, userID, leaseID)
	return args.Get(0).([]*models.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListByProperty(ctx context.Context, userID, propertyID uuid.UUID) ([]*models.Payment, error) {
	args := m.Called(ctx, userID, propertyID)
	return args.Get(0).([]*models.Payment), args.Error(1)
}

func (m *MockPaymentRepository) SumByProperty(ctx context.Context, userID, propertyID uuid.UUID) (float64, error) {
	args := m.Called(ctx, userID, propertyID)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockPaymentRepository) PropertyIDForLease(ctx context.Context, userID, leaseID uuid.UUID) (uuid.UUID, error) {
	args := m.Called(ctx, userID, leaseID)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) Create(ctx context.Context, expense *models.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Expense, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Expense), args.Error(1)
}

func (m *MockExpenseRepository) Update(ctx context.Context, userID uuid.UUID, expense *models.Expense) error {
	args := m.Called(ctx, userID, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockExpenseRepository) ListByProperty(ctx context.Context, userID, propertyID uuid.UUID) ([]*models.Expense, error) {
	args := m.Called(ctx, userID, propertyID)
	return args.Get(0).([]*models.Expense), args.Error(1)
}

func (m *MockExpenseRepository) SumByProperty(ctx context.Context, userID, propertyID uuid.UUID) (float64, error) {
	args := m.Called(ctx, userID, propertyID)
	return args.Get(0).(float64), args.Error(1)
}

type MockRenovationRepository struct {
	mock.Mock
}

func (m *MockRenovationRepository) Create(ctx context.Context, renovation *models.Renovation) error {
	args := m.Called(ctx, renovation)
	return args.Error(0)
}

func (m *MockRenovationRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Renovation, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Renovation), args.Error(1)
}

func (m *MockRenovationRepository) Update(ctx context.Context, userID uuid.UUID, renovation *models.Renovation) error {
	args := m.Called(ctx, userID, renovation)
	return args.Error(0)
}

func (m *MockRenovationRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockRenovationRepository) ListByProperty(ctx context.Context, userID, propertyID uuid.UUID) ([]*models.Renovation, error) {
	args := m.Called(ctx, userID, propertyID)
	return args.Get(0).([]*models.Renovation), args.Error(1)
}

func (m *MockRenovationRepository) SumCostByProperty(ctx context.Context, userID, propertyID uuid.UUID) (float64, error) {
	args := m.Called(ctx, userID, propertyID)
	return args.Get(0).(float64), args.Error(1)
}

type ReportServiceTestSuite struct {
	suite.Suite
	propertyRepo   *MockPropertyRepository
	paymentRepo    *MockPaymentRepository
	expenseRepo    *MockExpenseRepository
	renovationRepo *MockRenovationRepository
	service        *ReportService
	userID         uuid.UUID
	propertyID     uuid.UUID
	ctx            context.Context
}

func (suite *ReportServiceTestSuite) SetupTest() {
	suite.propertyRepo = &MockPropertyRepository{}
	suite.paymentRepo = &MockPaymentRepository{}
	suite.expenseRepo = &MockExpenseRepository{}
	suite.renovationRepo = &MockRenovationRepository{}
	suite.service = NewReportService(suite.propertyRepo, suite.paymentRepo, suite.expenseRepo, suite.renovationRepo, nil)
	suite.userID = uuid.New()
	suite.propertyID = uuid.New()
	suite.ctx = context.Background()
}

func (suite *ReportServiceTestSuite) TearDownTest() {
	suite.propertyRepo.AssertExpectations(suite.T())
	suite.paymentRepo.AssertExpectations(suite.T())
	suite.expenseRepo.AssertExpectations(suite.T())
	suite.renovationRepo.AssertExpectations(suite.T())
}

func TestReportServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportServiceTestSuite))
}

func (suite *ReportServiceTestSuite) expectSums(income, expenses, renovations float64) {
	suite.paymentRepo.On("SumByProperty", mock.Anything, suite.userID, suite.propertyID).Return(income, nil).Once()
	suite.expenseRepo.On("SumByProperty", mock.Anything, suite.userID, suite.propertyID).Return(expenses, nil).Once()
	suite.renovationRepo.On("SumCostByProperty", mock.Anything, suite.userID, suite.propertyID).Return(renovations, nil).Once()
}

func (suite *ReportServiceTestSuite) TestPropertyFinancials_NetCashFlow() {
	property := &models.Property{ID: suite.propertyID, Address: "12 Elm St"}
	suite.propertyRepo.On("GetByID", mock.Anything, suite.userID, suite.propertyID).Return(property, nil).Once()
	suite.expectSums(24000, 6000, 3000)

	report, err := suite.service.PropertyFinancials(suite.ctx, suite.userID, suite.propertyID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 24000.0, report.TotalIncome)
	assert.Equal(suite.T(), 6000.0, report.TotalExpenses)
	assert.Equal(suite.T(), 3000.0, report.RenovationCosts)
	assert.Equal(suite.T(), 15000.0, report.NetCashFlow)
	// no principal on record, so no ROI
	assert.Zero(suite.T(), report.ReturnOnInvestment)
	assert.Zero(suite.T(), report.AnnualizedROI)
}

func (suite *ReportServiceTestSuite) TestPropertyFinancials_ROIWithRecentAcquisition() {
	acquired := time.Now().AddDate(0, -6, 0) // held under a year
	property := &models.Property{
		ID:              suite.propertyID,
		Address:         "12 Elm St",
		PrincipalAmount: 300000,
		AcquiredOn:      &acquired,
	}
	suite.propertyRepo.On("GetByID", mock.Anything, suite.userID, suite.propertyID).Return(property, nil).Once()
	suite.expectSums(24000, 6000, 3000)

	report, err := suite.service.PropertyFinancials(suite.ctx, suite.userID, suite.propertyID)

	assert.NoError(suite.T(), err)
	assert.InDelta(suite.T(), 5.0, report.ReturnOnInvestment, 0.0001)
	// years held floors at 1, so annualized equals plain ROI
	assert.InDelta(suite.T(), 5.0, report.AnnualizedROI, 0.0001)
}

func (suite *ReportServiceTestSuite) TestPropertyFinancials_AnnualizedOverTwoYears() {
	acquired := time.Now().AddDate(-2, 0, -2)
	property := &models.Property{
		ID:              suite.propertyID,
		PrincipalAmount: 100000,
		AcquiredOn:      &acquired,
	}
	suite.propertyRepo.On("GetByID", mock.Anything, suite.userID, suite.propertyID).Return(property, nil).Once()
	suite.expectSums(30000, 10000, 0)

	report, err := suite.service.PropertyFinancials(suite.ctx, suite.userID, suite.propertyID)

	assert.NoError(suite.T(), err)
	assert.InDelta(suite.T(), 20.0, report.ReturnOnInvestment, 0.0001)
	assert.InDelta(suite.T(), 10.0, report.AnnualizedROI, 0.1)
}

func (suite *ReportServiceTestSuite) TestPropertyFinancials_PropertyNotFound() {
	suite.propertyRepo.On("GetByID", mock.Anything, suite.userID, suite.propertyID).
		Return(nil, errors.New("no rows")).Once()

	_, err := suite.service.PropertyFinancials(suite.ctx, suite.userID, suite.propertyID)

	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "failed to fetch property")
}
