package repositories

import (
	"context"

	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/models"

	"github.com/google/uuid"
)

type RenovationRepository interface {
	Create(ctx context.Context, renovation *models.Renovation) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Renovation, error)
	Update(ctx context.Context, userID uuid.UUID, renovation *models.Renovation) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	ListByProperty(ctx context.Context, userID, propertyID uuid.UUID) ([]*models.Renovation, error)
	SumCostByProperty(ctx context.Context, userID, propertyID uuid.UUID) (float64, error)
}

type renovationRepo struct {
	db DB
}

func NewRenovationRepo(db DB) RenovationRepository {
	return &renovationRepo{db: db}
}

func (r *renovationRepo) Create(ctx context.Context, renovation *models.Renovation) error {
	query := `
		INSERT INTO renovations (id, property_id, name, cost, started_on, completed_on, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, renovation.ID, renovation.PropertyID, renovation.Name, renovation.Cost, renovation.StartedOn, renovation.CompletedOn, renovation.Notes)
	return err
}

func (r *renovationRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Renovation, error) {
	renovation := &models.Renovation{}
	query := `
		SELECT r.id, r.property_id, r.name, r.cost, r.started_on, r.completed_on, r.notes, r.created_at, r.updated_at
		FROM renovations r
		JOIN properties p ON p.id = r.property_id
		WHERE p.user_id = $1 AND r.id = $2
	`
	err := r.db.QueryRow(ctx, query, userID, id).Scan(&renovation.ID, &renovation.PropertyID, &renovation.Name, &renovation.Cost, &renovation.StartedOn, &renovation.CompletedOn, &renovation.Notes, &renovation.CreatedAt, &renovation.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return renovation, nil
}

func (r *renovationRepo) Update(ctx context.Context, userID uuid.UUID, renovation *models.Renovation) error {
	query := `
		UPDATE renovations r
		SET name = $1, cost = $2, started_on = $3, completed_on = $4, notes = $5, updated_at = NOW()
		FROM properties p
		WHERE p.id = r.property_id AND p.user_id = $6 AND r.id = $7
	`
	_, err := r.db.Exec(ctx, query, renovation.Name, renovation.Cost, renovation.StartedOn, renovation.CompletedOn, renovation.Notes, userID, renovation.ID)
	return err
}

func (r *renovationRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := `
		DELETE FROM renovations r
		USING properties p
		WHERE p.id = r.property_id AND p.user_id = $1 AND r.id = $2
	`
	_, err := r.db.Exec(ctx, query, userID, id)
	return err
}

func (r *renovationRepo) ListByProperty(ctx context.Context, userID, propertyID uuid.UUID) ([]*models.Renovation, error) {
	query := `
		SELECT r.id, r.property_id, r.name, r.cost, r.started_on, r.completed_on, r.notes, r.created_at, r.updated_at
		FROM renovations r
		JOIN properties p ON p.id = r.property_id
		WHERE p.user_id = $1 AND r.property_id = $2
		ORDER BY r.started_on DESC
	`
	rows, err := r.db.Query(ctx, query, userID, propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var renovations []*models.Renovation
	for rows.Next() {
		renovation := &models.Renovation{}
		if err := rows.Scan(&renovation.ID, &renovation.PropertyID, &renovation.Name, &renovation.Cost, &renovation.StartedOn, &renovation.CompletedOn, &renovation.Notes, &renovation.CreatedAt, &renovation.UpdatedAt); err != nil {
			return nil, err
		}
		renovations = append(renovations, renovation)
	}
	return renovations, rows.Err()
}

func (r *renovationRepo) SumCostByProperty(ctx context.Context, userID, propertyID uuid.UUID) (float64, error) {
	var sum float64
	query := `
		SELECT COALESCE(SUM(r.cost), 0)
		FROM renovations r
		JOIN properties p ON p.id = r.property_id
		WHERE p.user_id = $1 AND r.property_id = $2
	`
	err := r.db.QueryRow(ctx, query, userID, propertyID).Scan(&sum)
	return sum, err
}
