package repositories

import (
	"context"

	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PropertyRepository interface {
	Create(ctx context.Context, property *models.Property) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Property, error)
	Update(ctx context.Context, property *models.Property) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Property, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
	// ListByLegacyUser returns every property whose legacy user_id column
	// matches, regardless of property_owners rows. Used by the ownership
	// backfill.
	ListByLegacyUser(ctx context.Context, userID uuid.UUID) ([]*models.Property, error)
}

type propertyRepo struct {
	db DB
}

func NewPropertyRepo(db DB) PropertyRepository {
	return &propertyRepo{db: db}
}

func (r *propertyRepo) Create(ctx context.Context, property *models.Property) error {
	query := `
		INSERT INTO properties (id, user_id, address, acquired_on, principal_amount, rate_of_interest, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, property.ID, property.UserID, property.Address, property.AcquiredOn, property.PrincipalAmount, property.RateOfInterest)
	return err
}

func (r *propertyRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Property, error) {
	property := &models.Property{}
	query := `
		SELECT id, user_id, address, acquired_on, principal_amount, rate_of_interest, created_at, updated_at
		FROM properties
		WHERE user_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, userID, id).Scan(&property.ID, &property.UserID, &property.Address, &property.AcquiredOn, &property.PrincipalAmount, &property.RateOfInterest, &property.CreatedAt, &property.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return property, nil
}

func (r *propertyRepo) Update(ctx context.Context, property *models.Property) error {
	query := `
		UPDATE properties
		SET address = $1, acquired_on = $2, principal_amount = $3, rate_of_interest = $4, updated_at = NOW()
		WHERE user_id = $5 AND id = $6
	`
	_, err := r.db.Exec(ctx, query, property.Address, property.AcquiredOn, property.PrincipalAmount, property.RateOfInterest, property.UserID, property.ID)
	return err
}

func (r *propertyRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := `DELETE FROM properties WHERE user_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, userID, id)
	return err
}

func (r *propertyRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Property, error) {
	query := `
		SELECT id, user_id, address, acquired_on, principal_amount, rate_of_interest, created_at, updated_at
		FROM properties
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProperties(rows)
}

func (r *propertyRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM properties WHERE user_id = $1`
	err := r.db.QueryRow(ctx, query, userID).Scan(&count)
	return count, err
}

func (r *propertyRepo) ListByLegacyUser(ctx context.Context, userID uuid.UUID) ([]*models.Property, error) {
	query := `
		SELECT id, user_id, address, acquired_on, principal_amount, rate_of_interest, created_at, updated_at
		FROM properties
		WHERE user_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProperties(rows)
}

func scanProperties(rows pgx.Rows) ([]*models.Property, error) {
	var properties []*models.Property
	for rows.Next() {
		property := &models.Property{}
		if err := rows.Scan(&property.ID, &property.UserID, &property.Address, &property.AcquiredOn, &property.PrincipalAmount, &property.RateOfInterest, &property.CreatedAt, &property.UpdatedAt); err != nil {
			return nil, err
		}
		properties = append(properties, property)
	}
	return properties, rows.Err()
}
