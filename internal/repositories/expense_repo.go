package repositories

import (
	"context"

	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/models"

	"github.com/google/uuid"
)

type ExpenseRepository interface {
	Create(ctx context.Context, expense *models.Expense) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Expense, error)
	Update(ctx context.Context, userID uuid.UUID, expense *models.Expense) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	ListByProperty(ctx context.Context, userID, propertyID uuid.UUID) ([]*models.Expense, error)
	SumByProperty(ctx context.Context, userID, propertyID uuid.UUID) (float64, error)
}

type expenseRepo struct {
	db DB
}

func NewExpenseRepo(db DB) ExpenseRepository {
	return &expenseRepo{db: db}
}

func (r *expenseRepo) Create(ctx context.Context, expense *models.Expense) error {
	query := `
		INSERT INTO expenses (id, property_id, category, amount, incurred_on, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, expense.ID, expense.PropertyID, expense.Category, expense.Amount, expense.IncurredOn, expense.Description)
	return err
}

func (r *expenseRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Expense, error) {
	expense := &models.Expense{}
	query := `
		SELECT e.id, e.property_id, e.category, e.amount, e.incurred_on, e.description, e.created_at, e.updated_at
		FROM expenses e
		JOIN properties p ON p.id = e.property_id
		WHERE p.user_id = $1 AND e.id = $2
	`
	err := r.db.QueryRow(ctx, query, userID, id).Scan(&expense.ID, &expense.PropertyID, &expense.Category, &expense.Amount, &expense.IncurredOn, &expense.Description, &expense.CreatedAt, &expense.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return expense, nil
}

func (r *expenseRepo) Update(ctx context.Context, userID uuid.UUID, expense *models.Expense) error {
	query := `
		UPDATE expenses e
		SET category = $1, amount = $2, incurred_on = $3, description = $4, updated_at = NOW()
		FROM properties p
		WHERE p.id = e.property_id AND p.user_id = $5 AND e.id = $6
	`
	_, err := r.db.Exec(ctx, query, expense.Category, expense.Amount, expense.IncurredOn, expense.Description, userID, expense.ID)
	return err
}

func (r *expenseRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := `
		DELETE FROM expenses e
		USING properties p
		WHERE p.id = e.property_id AND p.user_id = $1 AND e.id = $2
	`
	_, err := r.db.Exec(ctx, query, userID, id)
	return err
}

func (r *expenseRepo) ListByProperty(ctx context.Context, userID, propertyID uuid.UUID) ([]*models.Expense, error) {
	query := `
		SELECT e.id, e.property_id, e.category, e.amount, e.incurred_on, e.description, e.created_at, e.updated_at
		FROM expenses e
		JOIN properties p ON p.id = e.property_id
		WHERE p.user_id = $1 AND e.property_id = $2
		ORDER BY e.incurred_on DESC
	`
	rows, err := r.db.Query(ctx, query, userID, propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		expense := &models.Expense{}
		if err := rows.Scan(&expense.ID, &expense.PropertyID, &expense.Category, &expense.Amount, &expense.IncurredOn, &expense.Description, &expense.CreatedAt, &expense.UpdatedAt); err != nil {
			return nil, err
		}
		expenses = append(expenses, expense)
	}
	return expenses, rows.Err()
}

func (r *expenseRepo) SumByProperty(ctx context.Context, userID, propertyID uuid.UUID) (float64, error) {
	var sum float64
	query := `
		SELECT COALESCE(SUM(e.amount), 0)
		FROM expenses e
		JOIN properties p ON p.id = e.property_id
		WHERE p.user_id = $1 AND e.property_id = $2
	`
	err := r.db.QueryRow(ctx, query, userID, propertyID).Scan(&sum)
	return sum, err
}
