package services

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

const onboardingCacheTTL = time.Minute

// OnboardingService derives the four-step setup checklist (owner,
// property, tenant, lease) for the dashboard.
type OnboardingService interface {
	Status(ctx context.Context, userID uuid.UUID) *models.OnboardingStatus
	Invalidate(ctx context.Context, userID uuid.UUID)
}

type onboardingService struct {
	ownerRepo    repositories.OwnerRepository
	propertyRepo repositories.PropertyRepository
	tenantRepo   repositories.TenantRepository
	leaseRepo    repositories.LeaseRepository
	cacheSvc     caching.CacheService
}

func NewOnboardingService(
	ownerRepo repositories.OwnerRepository,
	propertyRepo repositories.PropertyRepository,
	tenantRepo repositories.TenantRepository,
	leaseRepo repositories.LeaseRepository,
	cacheSvc caching.CacheService,
) OnboardingService {
	return &onboardingService{
		ownerRepo:    ownerRepo,
		propertyRepo: propertyRepo,
		tenantRepo:   tenantRepo,
		leaseRepo:    leaseRepo,
		cacheSvc:     cacheSvc,
	}
}

// Status never fails outward: a read failure yields the default
// all-incomplete state with LoadFailed set, so the dashboard can tell a
// broken read apart from a fresh account.
func (s *onboardingService) Status(ctx context.Context, userID uuid.UUID) *models.OnboardingStatus {
	if s.cacheSvc != nil {
		if cached, err := s.cacheSvc.GetOnboardingStatus(ctx, userID); err == nil {
			return cached
		}
	}

	status, err := s.aggregate(ctx, userID)
	if err != nil {
		log.Printf("onboarding aggregation failed for user %s: %v", userID.String(), err)
		return degradedStatus()
	}

	if s.cacheSvc != nil {
		if err := s.cacheSvc.SetOnboardingStatus(ctx, userID, status, onboardingCacheTTL); err != nil {
			log.Printf("failed to cache onboarding status: %v", err)
		}
	}
	return status
}

func (s *onboardingService) Invalidate(ctx context.Context, userID uuid.UUID) {
	if s.cacheSvc == nil {
		return
	}
	if err := s.cacheSvc.DeleteOnboardingStatus(ctx, userID); err != nil {
		log.Printf("failed to invalidate onboarding status: %v", err)
	}
}

func (s *onboardingService) aggregate(ctx context.Context, userID uuid.UUID) (*models.OnboardingStatus, error) {
	ownerCount, err := s.ownerRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count owners: %v", err)
	}
	propertyCount, err := s.propertyRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count properties: %v", err)
	}
	tenantCount, err := s.tenantRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count tenants: %v", err)
	}
	leaseCount, err := s.leaseRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count leases: %v", err)
	}

	// The lease call-to-action points at the oldest tenant's detail page
	// once any tenant exists.
	leaseHref := "/dashboard/tenants"
	leaseCTA := "Add Tenant First"
	if tenantCount > 0 {
		tenants, err := s.tenantRepo.ListByUser(ctx, userID, 1, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch first tenant: %v", err)
		}
		if len(tenants) > 0 {
			leaseHref = fmt.Sprintf("/dashboard/tenants/%s", tenants[0].ID.String())
			leaseCTA = "Add Lease"
		}
	}

	status := &models.OnboardingStatus{
		OwnerCount:    ownerCount,
		PropertyCount: propertyCount,
		TenantCount:   tenantCount,
		LeaseCount:    leaseCount,
		Steps: []models.OnboardingStep{
			{Key: "owner", Label: "Set up an owner", Complete: ownerCount > 0, CTAHref: "/dashboard/owners", CTALabel: "Add Owner"},
			{Key: "property", Label: "Add your first property", Complete: propertyCount > 0, CTAHref: "/dashboard/properties", CTALabel: "Add Property"},
			{Key: "tenant", Label: "Add a tenant", Complete: tenantCount > 0, CTAHref: "/dashboard/tenants", CTALabel: "Add Tenant"},
			{Key: "lease", Label: "Create a lease", Complete: leaseCount > 0, CTAHref: leaseHref, CTALabel: leaseCTA},
		},
	}
	status.IsComplete = ownerCount > 0 && propertyCount > 0 && tenantCount > 0 && leaseCount > 0
	status.ShowWelcome = ownerCount == 0 && propertyCount == 0 && tenantCount == 0 && leaseCount == 0
	return status, nil
}

func degradedStatus() *models.OnboardingStatus {
	return &models.OnboardingStatus{
		Steps: []models.OnboardingStep{
			{Key: "owner", Label: "Set up an owner", CTAHref: "/dashboard/owners", CTALabel: "Add Owner"},
			{Key: "property", Label: "Add your first property", CTAHref: "/dashboard/properties", CTALabel: "Add Property"},
			{Key: "tenant", Label: "Add a tenant", CTAHref: "/dashboard/tenants", CTALabel: "Add Tenant"},
			{Key: "lease", Label: "Create a lease", CTAHref: "/dashboard/tenants", CTALabel: "Add Tenant First"},
		},
		LoadFailed: true,
	}
}
