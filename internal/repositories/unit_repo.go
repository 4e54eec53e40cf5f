package repositories

import (
	"context"

	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type UnitRepository interface {
	Create(ctx context.Context, unit *models.Unit) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Unit, error)
	Update(ctx context.Context, userID uuid.UUID, unit *models.Unit) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	ListByProperty(ctx context.Context, userID, propertyID uuid.UUID) ([]*models.Unit, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Unit, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
}

type unitRepo struct {
	db DB
}

func NewUnitRepo(db DB) UnitRepository {
	return &unitRepo{db: db}
}

func (r *unitRepo) Create(ctx context.Context, unit *models.Unit) error {
	query := `
		INSERT INTO units (id, property_id, name, bedrooms, bathrooms, rent_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, unit.ID, unit.PropertyID, unit.Name, unit.Bedrooms, unit.Bathrooms, unit.RentAmount)
	return err
}

// Reads walk units -> properties so results stay scoped to the
// requesting user's legacy ownership column.

func (r *unitRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Unit, error) {
	unit := &models.Unit{}
	query := `
		SELECT u.id, u.property_id, u.name, u.bedrooms, u.bathrooms, u.rent_amount, u.created_at, u.updated_at
		FROM units u
		JOIN properties p ON p.id = u.property_id
		WHERE p.user_id = $1 AND u.id = $2
	`
	err := r.db.QueryRow(ctx, query, userID, id).Scan(&unit.ID, &unit.PropertyID, &unit.Name, &unit.Bedrooms, &unit.Bathrooms, &unit.RentAmount, &unit.CreatedAt, &unit.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return unit, nil
}

func (r *unitRepo) Update(ctx context.Context, userID uuid.UUID, unit *models.Unit) error {
	query := `
		UPDATE units u
		SET name = $1, bedrooms = $2, bathrooms = $3, rent_amount = $4, updated_at = NOW()
		FROM properties p
		WHERE p.id = u.property_id AND p.user_id = $5 AND u.id = $6
	`
	_, err := r.db.Exec(ctx, query, unit.Name, unit.Bedrooms, unit.Bathrooms, unit.RentAmount, userID, unit.ID)
	return err
}

func (r *unitRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := `
		DELETE FROM units u
		USING properties p
		WHERE p.id = u.property_id AND p.user_id = $1 AND u.id = $2
	`
	_, err := r.db.Exec(ctx, query, userID, id)
	return err
}

func (r *unitRepo) ListByProperty(ctx context.Context, userID, propertyID uuid.UUID) ([]*models.Unit, error) {
	query := `
		SELECT u.id, u.property_id, u.name, u.bedrooms, u.bathrooms, u.rent_amount, u.created_at, u.updated_at
		FROM units u
		JOIN properties p ON p.id = u.property_id
		WHERE p.user_id = $1 AND u.property_id = $2
		ORDER BY u.name ASC
	`
	rows, err := r.db.Query(ctx, query, userID, propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUnits(rows)
}

func (r *unitRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Unit, error) {
	query := `
		SELECT u.id, u.property_id, u.name, u.bedrooms, u.bathrooms, u.rent_amount, u.created_at, u.updated_at
		FROM units u
		JOIN properties p ON p.id = u.property_id
		WHERE p.user_id = $1
		ORDER BY u.created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUnits(rows)
}

func (r *unitRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	query := `
		SELECT COUNT(*)
		FROM units u
		JOIN properties p ON p.id = u.property_id
		WHERE p.user_id = $1
	`
	err := r.db.QueryRow(ctx, query, userID).Scan(&count)
	return count, err
}

func scanUnits(rows pgx.Rows) ([]*models.Unit, error) {
	var units []*models.Unit
	for rows.Next() {
		unit := &models.Unit{}
		if err := rows.Scan(&unit.ID, &unit.PropertyID, &unit.Name, &unit.Bedrooms, &unit.Bathrooms, &unit.RentAmount, &unit.CreatedAt, &unit.UpdatedAt); err != nil {
			return nil, err
		}
		units = append(units, unit)
	}
	return units, rows.Err()
}
