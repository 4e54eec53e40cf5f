package repositories

import (
	"context"

	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/models"

	"github.com/google/uuid"
)

type ParkingPermitRepository interface {
	Create(ctx context.Context, permit *models.ParkingPermit) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.ParkingPermit, error)
	Update(ctx context.Context, userID uuid.UUID, permit *models.ParkingPermit) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	ListByProperty(ctx context.Context, userID, propertyID uuid.UUID) ([]*models.ParkingPermit, error)
}

type parkingPermitRepo struct {
	db DB
}

func NewParkingPermitRepo(db DB) ParkingPermitRepository {
	return &parkingPermitRepo{db: db}
}

func (r *parkingPermitRepo) Create(ctx context.Context, permit *models.ParkingPermit) error {
	query := `
		INSERT INTO parking_permits (id, property_id, tenant_id, permit_number, vehicle_plate, valid_from, valid_until, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, permit.ID, permit.PropertyID, permit.TenantID, permit.PermitNumber, permit.VehiclePlate, permit.ValidFrom, permit.ValidUntil)
	return err
}

func (r *parkingPermitRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.ParkingPermit, error) {
	permit := &models.ParkingPermit{}
	query := `
		SELECT pp.id, pp.property_id, pp.tenant_id, pp.permit_number, pp.vehicle_plate, pp.valid_from, pp.valid_until, pp.created_at, pp.updated_at
		FROM parking_permits pp
		JOIN properties p ON p.id = pp.property_id
		WHERE p.user_id = $1 AND pp.id = $2
	`
	err := r.db.QueryRow(ctx, query, userID, id).Scan(&permit.ID, &permit.PropertyID, &permit.TenantID, &permit.PermitNumber, &permit.VehiclePlate, &permit.ValidFrom, &permit.ValidUntil, &permit.CreatedAt, &permit.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return permit, nil
}

func (r *parkingPermitRepo) Update(ctx context.Context, userID uuid.UUID, permit *models.ParkingPermit) error {
	query := `
		UPDATE parking_permits pp
		SET tenant_id = $1, permit_number = $2, vehicle_plate = $3, valid_from = $4, valid_until = $5, updated_at = NOW()
		FROM properties p
		WHERE p.id = pp.property_id AND p.user_id = $6 AND pp.id = $7
	`
	_, err := r.db.Exec(ctx, query, permit.TenantID, permit.PermitNumber, permit.VehiclePlate, permit.ValidFrom, permit.ValidUntil, userID, permit.ID)
	return err
}

func (r *parkingPermitRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := `
		DELETE FROM parking_permits pp
		USING properties p
		WHERE p.id = pp.property_id AND p.user_id = $1 AND pp.id = $2
	`
	_, err := r.db.Exec(ctx, query, userID, id)
	return err
}

func (r *parkingPermitRepo) ListByProperty(ctx context.Context, userID, propertyID uuid.UUID) ([]*models.ParkingPermit, error) {
	query := `
		SELECT pp.id, pp.property_id, pp.tenant_id, pp.permit_number, pp.vehicle_plate, pp.valid_from, pp.valid_until, pp.created_at, pp.updated_at
		FROM parking_permits pp
		JOIN properties p ON p.id = pp.property_id
		WHERE p.user_id = $1 AND pp.property_id = $2
		ORDER BY pp.valid_until DESC
	`
	rows, err := r.db.Query(ctx, query, userID, propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var permits []*models.ParkingPermit
	for rows.Next() {
		permit := &models.ParkingPermit{}
		if err := rows.Scan(&permit.ID, &permit.PropertyID, &permit.TenantID, &permit.PermitNumber, &permit.VehiclePlate, &permit.ValidFrom, &permit.ValidUntil, &permit.CreatedAt, &permit.UpdatedAt); err != nil {
			return nil, err
		}
		permits = append(permits, permit)
	}
	return permits, rows.Err()
}
