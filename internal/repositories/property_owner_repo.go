package repositories

import (
	"context"

	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/models"

	"github.com/google/uuid"
)

type PropertyOwnerRepository interface {
	Create(ctx context.Context, link *models.PropertyOwner) error
	ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]*models.PropertyOwner, error)
	CountByProperty(ctx context.Context, propertyID uuid.UUID) (int, error)
	SumPercentageByProperty(ctx context.Context, propertyID uuid.UUID) (float64, error)
	// CountPropertiesWithoutOwners counts properties with no
	// property_owners row, i.e. not yet migrated to explicit ownership.
	CountPropertiesWithoutOwners(ctx context.Context) (int, error)
	CountPropertiesWithOwners(ctx context.Context) (int, error)
	Delete(ctx context.Context, propertyID, ownerID uuid.UUID) error
}

type propertyOwnerRepo struct {
	db DB
}

func NewPropertyOwnerRepo(db DB) PropertyOwnerRepository {
	return &propertyOwnerRepo{db: db}
}

func (r *propertyOwnerRepo) Create(ctx context.Context, link *models.PropertyOwner) error {
	query := `
		INSERT INTO property_owners (property_id, owner_id, ownership_percentage, created_at)
		VALUES ($1, $2, $3, NOW())
	`
	_, err := r.db.Exec(ctx, query, link.PropertyID, link.OwnerID, link.OwnershipPercentage)
	return err
}

func (r *propertyOwnerRepo) ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]*models.PropertyOwner, error) {
	query := `
		SELECT property_id, owner_id, ownership_percentage, created_at
		FROM property_owners
		WHERE property_id = $1
		ORDER BY created_at ASC, owner_id ASC
	`
	rows, err := r.db.Query(ctx, query, propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []*models.PropertyOwner
	for rows.Next() {
		link := &models.PropertyOwner{}
		if err := rows.Scan(&link.PropertyID, &link.OwnerID, &link.OwnershipPercentage, &link.CreatedAt); err != nil {
			return nil, err
		}
		links = append(links, link)
	}
	return links, rows.Err()
}

func (r *propertyOwnerRepo) CountByProperty(ctx context.Context, propertyID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM property_owners WHERE property_id = $1`
	err := r.db.QueryRow(ctx, query, propertyID).Scan(&count)
	return count, err
}

func (r *propertyOwnerRepo) SumPercentageByProperty(ctx context.Context, propertyID uuid.UUID) (float64, error) {
	var sum float64
	query := `SELECT COALESCE(SUM(ownership_percentage), 0) FROM property_owners WHERE property_id = $1`
	err := r.db.QueryRow(ctx, query, propertyID).Scan(&sum)
	return sum, err
}

func (r *propertyOwnerRepo) CountPropertiesWithoutOwners(ctx context.Context) (int, error) {
	var count int
	query := `
		SELECT COUNT(*)
		FROM properties p
		WHERE NOT EXISTS (SELECT 1 FROM property_owners po WHERE po.property_id = p.id)
	`
	err := r.db.QueryRow(ctx, query).Scan(&count)
	return count, err
}

func (r *propertyOwnerRepo) CountPropertiesWithOwners(ctx context.Context) (int, error) {
	var count int
	query := `
		SELECT COUNT(*)
		FROM properties p
		WHERE EXISTS (SELECT 1 FROM property_owners po WHERE po.property_id = p.id)
	`
	err := r.db.QueryRow(ctx, query).Scan(&count)
	return count, err
}

func (r *propertyOwnerRepo) Delete(ctx context.Context, propertyID, ownerID uuid.UUID) error {
	query := `DELETE FROM property_owners WHERE property_id = $1 AND owner_id = $2`
	_, err := r.db.Exec(ctx, query, propertyID, ownerID)
	return err
}
