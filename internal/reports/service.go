package reports

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/caching"
	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/models"
	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/repositories"

	"github.com/google/uuid"
)

const reportCacheTTL = 5 * time.Minute

// ReportService computes per-property financial summaries: rent income,
// expenses, renovation spend, net cash flow and return on investment.
type ReportService struct {
	propertyRepo   repositories.PropertyRepository
	paymentRepo    repositories.PaymentRepository
	expenseRepo    repositories.ExpenseRepository
	renovationRepo repositories.RenovationRepository
	cacheSvc       caching.CacheService
}

func NewReportService(
	propertyRepo repositories.PropertyRepository,
	paymentRepo repositories.PaymentRepository,
	expenseRepo repositories.ExpenseRepository,
	renovationRepo repositories.RenovationRepository,
	cacheSvc caching.CacheService,
) *ReportService {
	return &ReportService{
		propertyRepo:   propertyRepo,
		paymentRepo:    paymentRepo,
		expenseRepo:    expenseRepo,
		renovationRepo: renovationRepo,
		cacheSvc:       cacheSvc,
	}
}

func (s *ReportService) PropertyFinancials(ctx context.Context, userID, propertyID uuid.UUID) (*models.PropertyReport, error) {
	if s.cacheSvc != nil {
		if cached, err := s.cacheSvc.GetPropertyReport(ctx, userID, propertyID); err == nil {
			return cached, nil
		}
	}

	property, err := s.propertyRepo.GetByID(ctx, userID, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch property: %v", err)
	}

	income, err := s.paymentRepo.SumByProperty(ctx, userID, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum payments: %v", err)
	}
	expenses, err := s.expenseRepo.SumByProperty(ctx, userID, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum expenses: %v", err)
	}
	renovations, err := s.renovationRepo.SumCostByProperty(ctx, userID, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum renovation costs: %v", err)
	}

	report := &models.PropertyReport{
		PropertyID:      property.ID,
		Address:         property.Address,
		TotalIncome:     income,
		TotalExpenses:   expenses,
		RenovationCosts: renovations,
		NetCashFlow:     income - expenses - renovations,
		PrincipalAmount: property.PrincipalAmount,
		RateOfInterest:  property.RateOfInterest,
		GeneratedAt:     time.Now(),
	}
	if property.PrincipalAmount > 0 {
		report.ReturnOnInvestment = report.NetCashFlow / property.PrincipalAmount * 100
		report.AnnualizedROI = report.ReturnOnInvestment / yearsHeld(property.AcquiredOn, report.GeneratedAt)
	}

	if s.cacheSvc != nil {
		if err := s.cacheSvc.SetPropertyReport(ctx, userID, report, reportCacheTTL); err != nil {
			log.Printf("failed to cache property report: %v", err)
		}
	}
	return report, nil
}

// InvalidateProperty drops the cached report after a payment, expense or
// renovation write.
func (s *ReportService) InvalidateProperty(ctx context.Context, userID, propertyID uuid.UUID) {
	if s.cacheSvc == nil {
		return
	}
	if err := s.cacheSvc.DeletePropertyReport(ctx, userID, propertyID); err != nil {
		log.Printf("failed to invalidate property report: %v", err)
	}
}

// yearsHeld floors at one full year so young properties are not
// annualized upward.
func yearsHeld(acquiredOn *time.Time, now time.Time) float64 {
	if acquiredOn == nil {
		return 1
	}
	years := now.Sub(*acquiredOn).Hours() / (24 * 365)
	if years < 1 {
		return 1
	}
	return years
}
