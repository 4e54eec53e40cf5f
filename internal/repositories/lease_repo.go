package repositories

import (
	"context"
	"time"

	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// LeaseReminder carries just enough of a lease and its tenant to compose
// a reminder message.
type LeaseReminder struct {
	LeaseID     uuid.UUID
	TenantID    uuid.UUID
	TenantName  string
	TenantPhone *string
	RentAmount  float64
	EndDate     time.Time
}

type LeaseRepository interface {
	Create(ctx context.Context, lease *models.Lease) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Lease, error)
	Update(ctx context.Context, userID uuid.UUID, lease *models.Lease) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Lease, error)
	ListByTenant(ctx context.Context, userID, tenantID uuid.UUID) ([]*models.Lease, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
	// ListActiveReminders returns active leases joined with tenant contact
	// details, for the scheduled rent-reminder job.
	ListActiveReminders(ctx context.Context) ([]*LeaseReminder, error)
	// ListEndingBefore returns active leases whose end date falls before
	// the cutoff, for renewal reminders.
	ListEndingBefore(ctx context.Context, cutoff time.Time) ([]*LeaseReminder, error)
}

type leaseRepo struct {
	db DB
}

func NewLeaseRepo(db DB) LeaseRepository {
	return &leaseRepo{db: db}
}

func (r *leaseRepo) Create(ctx context.Context, lease *models.Lease) error {
	query := `
		INSERT INTO leases (id, tenant_id, unit_id, start_date, end_date, rent_amount, deposit_amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, lease.ID, lease.TenantID, lease.UnitID, lease.StartDate, lease.EndDate, lease.RentAmount, lease.DepositAmount, lease.Status)
	return err
}

func (r *leaseRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Lease, error) {
	lease := &models.Lease{}
	query := `
		SELECT l.id, l.tenant_id, l.unit_id, l.start_date, l.end_date, l.rent_amount, l.deposit_amount, l.status, l.created_at, l.updated_at
		FROM leases l
		JOIN units u ON u.id = l.unit_id
		JOIN properties p ON p.id = u.property_id
		WHERE p.user_id = $1 AND l.id = $2
	`
	err := r.db.QueryRow(ctx, query, userID, id).Scan(&lease.ID, &lease.TenantID, &lease.UnitID, &lease.StartDate, &lease.EndDate, &lease.RentAmount, &lease.DepositAmount, &lease.Status, &lease.CreatedAt, &lease.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return lease, nil
}

func (r *leaseRepo) Update(ctx context.Context, userID uuid.UUID, lease *models.Lease) error {
	query := `
		UPDATE leases l
		SET start_date = $1, end_date = $2, rent_amount = $3, deposit_amount = $4, status = $5, updated_at = NOW()
		FROM units u
		JOIN properties p ON p.id = u.property_id
		WHERE u.id = l.unit_id AND p.user_id = $6 AND l.id = $7
	`
	_, err := r.db.Exec(ctx, query, lease.StartDate, lease.EndDate, lease.RentAmount, lease.DepositAmount, lease.Status, userID, lease.ID)
	return err
}

func (r *leaseRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := `
		DELETE FROM leases l
		USING units u, properties p
		WHERE u.id = l.unit_id AND p.id = u.property_id AND p.user_id = $1 AND l.id = $2
	`
	_, err := r.db.Exec(ctx, query, userID, id)
	return err
}

func (r *leaseRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Lease, error) {
	query := `
		SELECT l.id, l.tenant_id, l.unit_id, l.start_date, l.end_date, l.rent_amount, l.deposit_amount, l.status, l.created_at, l.updated_at
		FROM leases l
		JOIN units u ON u.id = l.unit_id
		JOIN properties p ON p.id = u.property_id
		WHERE p.user_id = $1
		ORDER BY l.start_date DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLeases(rows)
}

func (r *leaseRepo) ListByTenant(ctx context.Context, userID, tenantID uuid.UUID) ([]*models.Lease, error) {
	query := `
		SELECT l.id, l.tenant_id, l.unit_id, l.start_date, l.end_date, l.rent_amount, l.deposit_amount, l.status, l.created_at, l.updated_at
		FROM leases l
		JOIN units u ON u.id = l.unit_id
		JOIN properties p ON p.id = u.property_id
		WHERE p.user_id = $1 AND l.tenant_id = $2
		ORDER BY l.start_date DESC
	`
	rows, err := r.db.Query(ctx, query, userID, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLeases(rows)
}

func (r *leaseRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	query := `
		SELECT COUNT(*)
		FROM leases l
		JOIN units u ON u.id = l.unit_id
		JOIN properties p ON p.id = u.property_id
		WHERE p.user_id = $1
	`
	err := r.db.QueryRow(ctx, query, userID).Scan(&count)
	return count, err
}

func (r *leaseRepo) ListActiveReminders(ctx context.Context) ([]*LeaseReminder, error) {
	query := `
		SELECT l.id, t.id, t.first_name || ' ' || t.last_name, t.phone, l.rent_amount, l.end_date
		FROM leases l
		JOIN tenants t ON t.id = l.tenant_id
		WHERE l.status = 'active'
		ORDER BY l.end_date ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLeaseReminders(rows)
}

func (r *leaseRepo) ListEndingBefore(ctx context.Context, cutoff time.Time) ([]*LeaseReminder, error) {
	query := `
		SELECT l.id, t.id, t.first_name || ' ' || t.last_name, t.phone, l.rent_amount, l.end_date
		FROM leases l
		JOIN tenants t ON t.id = l.tenant_id
		WHERE l.status = 'active' AND l.end_date < $1
		ORDER BY l.end_date ASC
	`
	rows, err := r.db.Query(ctx, query, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLeaseReminders(rows)
}

func scanLeases(rows pgx.Rows) ([]*models.Lease, error) {
	var leases []*models.Lease
	for rows.Next() {
		lease := &models.Lease{}
		if err := rows.Scan(&lease.ID, &lease.TenantID, &lease.UnitID, &lease.StartDate, &lease.EndDate, &lease.RentAmount, &lease.DepositAmount, &lease.Status, &lease.CreatedAt, &lease.UpdatedAt); err != nil {
			return nil, err
		}
		leases = append(leases, lease)
	}
	return leases, rows.Err()
}

func scanLeaseReminders(rows pgx.Rows) ([]*LeaseReminder, error) {
	var reminders []*LeaseReminder
	for rows.Next() {
		reminder := &LeaseReminder{}
		if err := rows.Scan(&reminder.LeaseID, &reminder.TenantID, &reminder.TenantName, &reminder.TenantPhone, &reminder.RentAmount, &reminder.EndDate); err != nil {
			return nil, err
		}
		reminders = append(reminders, reminder)
	}
	return reminders, rows.Err()
}
