package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned when a key is absent.
var ErrCacheMiss = redis.Nil

type CacheService interface {
	// Onboarding status caching
	GetOnboardingStatus(ctx context.Context, userID uuid.UUID) (*models.OnboardingStatus, error)
	SetOnboardingStatus(ctx context.Context, userID uuid.UUID, status *models.OnboardingStatus, ttl time.Duration) error
	DeleteOnboardingStatus(ctx context.Context, userID uuid.UUID) error

	// Property report caching
	GetPropertyReport(ctx context.Context, userID, propertyID uuid.UUID) (*models.PropertyReport, error)
	SetPropertyReport(ctx context.Context, userID uuid.UUID, report *models.PropertyReport, ttl time.Duration) error
	DeletePropertyReport(ctx context.Context, userID, propertyID uuid.UUID) error

	// Generic string operations
	SetString(ctx context.Context, key string, value string, ttl time.Duration) error
	GetString(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	// Accept redis:// and rediss:// style addresses as well as host:port.
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		if hostPort := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"); hostPort != addr {
			parsedAddr = hostPort
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	}

	return &redisCacheService{client: client}
}

// NewRedisCacheServiceWithClient wraps an existing client; used in tests.
func NewRedisCacheServiceWithClient(client *redis.Client) CacheService {
	return &redisCacheService{client: client}
}

func onboardingKey(userID uuid.UUID) string {
	return fmt.Sprintf("renttrackr:onboarding:%s", userID.String())
}

func reportKey(userID, propertyID uuid.UUID) string {
	return fmt.Sprintf("renttrackr:report:%s:%s", userID.String(), propertyID.String())
}

func (r *redisCacheService) GetOnboardingStatus(ctx context.Context, userID uuid.UUID) (*models.OnboardingStatus, error) {
	data, err := r.client.Get(ctx, onboardingKey(userID)).Bytes()
	if err != nil {
		return nil, err
	}
	status := &models.OnboardingStatus{}
	if err := json.Unmarshal(data, status); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached onboarding status: %v", err)
	}
	return status, nil
}

func (r *redisCacheService) SetOnboardingStatus(ctx context.Context, userID uuid.UUID, status *models.OnboardingStatus, ttl time.Duration) error {
	data, err := json.Marshal(status)
	if err != nil {
		return fmt.Errorf("failed to marshal onboarding status: %v", err)
	}
	return r.client.Set(ctx, onboardingKey(userID), data, ttl).Err()
}

func (r *redisCacheService) DeleteOnboardingStatus(ctx context.Context, userID uuid.UUID) error {
	return r.client.Del(ctx, onboardingKey(userID)).Err()
}

func (r *redisCacheService) GetPropertyReport(ctx context.Context, userID, propertyID uuid.UUID) (*models.PropertyReport, error) {
	data, err := r.client.Get(ctx, reportKey(userID, propertyID)).Bytes()
	if err != nil {
		return nil, err
	}
	report := &models.PropertyReport{}
	if err := json.Unmarshal(data, report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached report: %v", err)
	}
	return report, nil
}

func (r *redisCacheService) SetPropertyReport(ctx context.Context, userID uuid.UUID, report *models.PropertyReport, ttl time.Duration) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %v", err)
	}
	return r.client.Set(ctx, reportKey(userID, report.PropertyID), data, ttl).Err()
}

func (r *redisCacheService) DeletePropertyReport(ctx context.Context, userID, propertyID uuid.UUID) error {
	return r.client.Del(ctx, reportKey(userID, propertyID)).Err()
}

func (r *redisCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *redisCacheService) GetString(ctx context.Context, key string) (string, error) {
	return r.client.Get(ctx, key).Result()
}

func (r *redisCacheService) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}
