package repositories

import (
	"context"

	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Payment, error)
	Update(ctx context.Context, userID uuid.UUID, payment *models.Payment) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	ListByLease(ctx context.Context, userID, leaseID uuid.UUID) ([]*models.Payment, error)
	ListByProperty(ctx context.Context, userID, propertyID uuid.UUID) ([]*models.Payment, error)
	SumByProperty(ctx context.Context, userID, propertyID uuid.UUID) (float64, error)
	// PropertyIDForLease resolves the property a lease belongs to, used
	// to invalidate cached reports after payment writes.
	PropertyIDForLease(ctx context.Context, userID, leaseID uuid.UUID) (uuid.UUID, error)
}

type paymentRepo struct {
	db DB
}

func NewPaymentRepo(db DB) PaymentRepository {
	return &paymentRepo{db: db}
}

func (r *paymentRepo) Create(ctx context.Context, payment *models.Payment) error {
	query := `
		INSERT INTO payments (id, lease_id, amount, paid_on, method, period, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, payment.ID, payment.LeaseID, payment.Amount, payment.PaidOn, payment.Method, payment.Period)
	return err
}

func (r *paymentRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Payment, error) {
	payment := &models.Payment{}
	query := `
		SELECT pay.id, pay.lease_id, pay.amount, pay.paid_on, pay.method, pay.period, pay.created_at, pay.updated_at
		FROM payments pay
		JOIN leases l ON l.id = pay.lease_id
		JOIN units u ON u.id = l.unit_id
		JOIN properties p ON p.id = u.property_id
		WHERE p.user_id = $1 AND pay.id = $2
	`
	err := r.db.QueryRow(ctx, query, userID, id).Scan(&payment.ID, &payment.LeaseID, &payment.Amount, &payment.PaidOn, &payment.Method, &payment.Period, &payment.CreatedAt, &payment.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return payment, nil
}

func (r *paymentRepo) Update(ctx context.Context, userID uuid.UUID, payment *models.Payment) error {
	query := `
		UPDATE payments pay
		SET amount = $1, paid_on = $2, method = $3, period = $4, updated_at = NOW()
		FROM leases l
		JOIN units u ON u.id = l.unit_id
		JOIN properties p ON p.id = u.property_id
		WHERE l.id = pay.lease_id AND p.user_id = $5 AND pay.id = $6
	`
	_, err := r.db.Exec(ctx, query, payment.Amount, payment.PaidOn, payment.Method, payment.Period, userID, payment.ID)
	return err
}

func (r *paymentRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := `
		DELETE FROM payments pay
		USING leases l, units u, properties p
		WHERE l.id = pay.lease_id AND u.id = l.unit_id AND p.id = u.property_id AND p.user_id = $1 AND pay.id = $2
	`
	_, err := r.db.Exec(ctx, query, userID, id)
	return err
}

func (r *paymentRepo) ListByLease(ctx context.Context, userID, leaseID uuid.UUID) ([]*models.Payment, error) {
	query := `
		SELECT pay.id, pay.lease_id, pay.amount, pay.paid_on, pay.method, pay.period, pay.created_at, pay.updated_at
		FROM payments pay
		JOIN leases l ON l.id = pay.lease_id
		JOIN units u ON u.id = l.unit_id
		JOIN properties p ON p.id = u.property_id
		WHERE p.user_id = $1 AND pay.lease_id = $2
		ORDER BY pay.paid_on DESC
	`
	rows, err := r.db.Query(ctx, query, userID, leaseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPayments(rows)
}

func (r *paymentRepo) ListByProperty(ctx context.Context, userID, propertyID uuid.UUID) ([]*models.Payment, error) {
	query := `
		SELECT pay.id, pay.lease_id, pay.amount, pay.paid_on, pay.method, pay.period, pay.created_at, pay.updated_at
		FROM payments pay
		JOIN leases l ON l.id = pay.lease_id
		JOIN units u ON u.id = l.unit_id
		JOIN properties p ON p.id = u.property_id
		WHERE p.user_id = $1 AND p.id = $2
		ORDER BY pay.paid_on DESC
	`
	rows, err := r.db.Query(ctx, query, userID, propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPayments(rows)
}

func (r *paymentRepo) SumByProperty(ctx context.Context, userID, propertyID uuid.UUID) (float64, error) {
	var sum float64
	query := `
		SELECT COALESCE(SUM(pay.amount), 0)
		FROM payments pay
		JOIN leases l ON l.id = pay.lease_id
		JOIN units u ON u.id = l.unit_id
		JOIN properties p ON p.id = u.property_id
		WHERE p.user_id = $1 AND p.id = $2
	`
	err := r.db.QueryRow(ctx, query, userID, propertyID).Scan(&sum)
	return sum, err
}

func (r *paymentRepo) PropertyIDForLease(ctx context.Context, userID, leaseID uuid.UUID) (uuid.UUID, error) {
	var propertyID uuid.UUID
	query := `
		SELECT p.id
		FROM leases l
		JOIN units u ON u.id = l.unit_id
		JOIN properties p ON p.id = u.property_id
		WHERE p.user_id = $1 AND l.id = $2
	`
	err := r.db.QueryRow(ctx, query, userID, leaseID).Scan(&propertyID)
	return propertyID, err
}

func scanPayments(rows pgx.Rows) ([]*models.Payment, error) {
	var payments []*models.Payment
	for rows.Next() {
		payment := &models.Payment{}
		if err := rows.Scan(&payment.ID, &payment.LeaseID, &payment.Amount, &payment.PaidOn, &payment.Method, &payment.Period, &payment.CreatedAt, &payment.UpdatedAt); err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}
	return payments, rows.Err()
}
