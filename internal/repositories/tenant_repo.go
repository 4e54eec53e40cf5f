package repositories

import (
	"context"

	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type TenantRepository interface {
	Create(ctx context.Context, tenant *models.Tenant) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Tenant, error)
	Update(ctx context.Context, userID uuid.UUID, tenant *models.Tenant) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	// ListByUser returns tenants oldest-first; the onboarding checklist
	// links its lease call-to-action to the first element.
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Tenant, error)
	ListByUnit(ctx context.Context, userID, unitID uuid.UUID) ([]*models.Tenant, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
}

type tenantRepo struct {
	db DB
}

func NewTenantRepo(db DB) TenantRepository {
	return &tenantRepo{db: db}
}

func (r *tenantRepo) Create(ctx context.Context, tenant *models.Tenant) error {
	query := `
		INSERT INTO tenants (id, unit_id, first_name, last_name, email, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, tenant.ID, tenant.UnitID, tenant.FirstName, tenant.LastName, tenant.Email, tenant.Phone)
	return err
}

func (r *tenantRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Tenant, error) {
	tenant := &models.Tenant{}
	query := `
		SELECT t.id, t.unit_id, t.first_name, t.last_name, t.email, t.phone, t.created_at, t.updated_at
		FROM tenants t
		JOIN units u ON u.id = t.unit_id
		JOIN properties p ON p.id = u.property_id
		WHERE p.user_id = $1 AND t.id = $2
	`
	err := r.db.QueryRow(ctx, query, userID, id).Scan(&tenant.ID, &tenant.UnitID, &tenant.FirstName, &tenant.LastName, &tenant.Email, &tenant.Phone, &tenant.CreatedAt, &tenant.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return tenant, nil
}

func (r *tenantRepo) Update(ctx context.Context, userID uuid.UUID, tenant *models.Tenant) error {
	query := `
		UPDATE tenants t
		SET first_name = $1, last_name = $2, email = $3, phone = $4, updated_at = NOW()
		FROM units u
		JOIN properties p ON p.id = u.property_id
		WHERE u.id = t.unit_id AND p.user_id = $5 AND t.id = $6
	`
	_, err := r.db.Exec(ctx, query, tenant.FirstName, tenant.LastName, tenant.Email, tenant.Phone, userID, tenant.ID)
	return err
}

func (r *tenantRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := `
		DELETE FROM tenants t
		USING units u, properties p
		WHERE u.id = t.unit_id AND p.id = u.property_id AND p.user_id = $1 AND t.id = $2
	`
	_, err := r.db.Exec(ctx, query, userID, id)
	return err
}

func (r *tenantRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Tenant, error) {
	query := `
		SELECT t.id, t.unit_id, t.first_name, t.last_name, t.email, t.phone, t.created_at, t.updated_at
		FROM tenants t
		JOIN units u ON u.id = t.unit_id
		JOIN properties p ON p.id = u.property_id
		WHERE p.user_id = $1
		ORDER BY t.created_at ASC, t.id ASC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTenants(rows)
}

func (r *tenantRepo) ListByUnit(ctx context.Context, userID, unitID uuid.UUID) ([]*models.Tenant, error) {
	query := `
		SELECT t.id, t.unit_id, t.first_name, t.last_name, t.email, t.phone, t.created_at, t.updated_at
		FROM tenants t
		JOIN units u ON u.id = t.unit_id
		JOIN properties p ON p.id = u.property_id
		WHERE p.user_id = $1 AND t.unit_id = $2
		ORDER BY t.created_at ASC
	`
	rows, err := r.db.Query(ctx, query, userID, unitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTenants(rows)
}

func (r *tenantRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	query := `
		SELECT COUNT(*)
		FROM tenants t
		JOIN units u ON u.id = t.unit_id
		JOIN properties p ON p.id = u.property_id
		WHERE p.user_id = $1
	`
	err := r.db.QueryRow(ctx, query, userID).Scan(&count)
	return count, err
}

func scanTenants(rows pgx.Rows) ([]*models.Tenant, error) {
	var tenants []*models.Tenant
	for rows.Next() {
		tenant := &models.Tenant{}
		if err := rows.Scan(&tenant.ID, &tenant.UnitID, &tenant.FirstName, &tenant.LastName, &tenant.Email, &tenant.Phone, &tenant.CreatedAt, &tenant.UpdatedAt); err != nil {
			return nil, err
		}
		tenants = append(tenants, tenant)
	}
	return tenants, rows.Err()
}
