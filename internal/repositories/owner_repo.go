package repositories

import (
	"context"

	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/models"

	"github.com/google/uuid"
)

type OwnerRepository interface {
	Create(ctx context.Context, owner *models.Owner) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Owner, error)
	Update(ctx context.Context, owner *models.Owner) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Owner, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
}

type ownerRepo struct {
	db DB
}

func NewOwnerRepo(db DB) OwnerRepository {
	return &ownerRepo{db: db}
}

func (r *ownerRepo) Create(ctx context.Context, owner *models.Owner) error {
	query := `
		INSERT INTO owners (id, name, type, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, owner.ID, owner.Name, owner.Type, owner.Email)
	return err
}

func (r *ownerRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Owner, error) {
	owner := &models.Owner{}
	query := `
		SELECT id, name, type, email, created_at, updated_at
		FROM owners
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&owner.ID, &owner.Name, &owner.Type, &owner.Email, &owner.CreatedAt, &owner.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return owner, nil
}

func (r *ownerRepo) Update(ctx context.Context, owner *models.Owner) error {
	query := `
		UPDATE owners
		SET name = $1, type = $2, email = $3, updated_at = NOW()
		WHERE id = $4
	`
	_, err := r.db.Exec(ctx, query, owner.Name, owner.Type, owner.Email, owner.ID)
	return err
}

func (r *ownerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM owners WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

// ListByUser returns the owners linked to a user through user_owners, in
// link-creation order so the first element is stable across calls.
func (r *ownerRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Owner, error) {
	query := `
		SELECT o.id, o.name, o.type, o.email, o.created_at, o.updated_at
		FROM owners o
		JOIN user_owners uo ON uo.owner_id = o.id
		WHERE uo.user_id = $1
		ORDER BY uo.created_at ASC, o.id ASC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var owners []*models.Owner
	for rows.Next() {
		owner := &models.Owner{}
		if err := rows.Scan(&owner.ID, &owner.Name, &owner.Type, &owner.Email, &owner.CreatedAt, &owner.UpdatedAt); err != nil {
			return nil, err
		}
		owners = append(owners, owner)
	}
	return owners, rows.Err()
}

func (r *ownerRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM user_owners WHERE user_id = $1`
	err := r.db.QueryRow(ctx, query, userID).Scan(&count)
	return count, err
}
