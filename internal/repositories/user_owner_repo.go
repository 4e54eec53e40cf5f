package repositories

import (
	"context"

	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/models"

	"github.com/google/uuid"
)

type UserOwnerRepository interface {
	Create(ctx context.Context, link *models.UserOwner) error
	// ListByUser returns links in creation order with owner id as the
	// tie-break, so "first link" is deterministic.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.UserOwner, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
	Delete(ctx context.Context, userID, ownerID uuid.UUID) error
}

type userOwnerRepo struct {
	db DB
}

func NewUserOwnerRepo(db DB) UserOwnerRepository {
	return &userOwnerRepo{db: db}
}

func (r *userOwnerRepo) Create(ctx context.Context, link *models.UserOwner) error {
	query := `
		INSERT INTO user_owners (user_id, owner_id, role, created_at)
		VALUES ($1, $2, $3, NOW())
	`
	_, err := r.db.Exec(ctx, query, link.UserID, link.OwnerID, link.Role)
	return err
}

func (r *userOwnerRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.UserOwner, error) {
	query := `
		SELECT user_id, owner_id, role, created_at
		FROM user_owners
		WHERE user_id = $1
		ORDER BY created_at ASC, owner_id ASC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []*models.UserOwner
	for rows.Next() {
		link := &models.UserOwner{}
		if err := rows.Scan(&link.UserID, &link.OwnerID, &link.Role, &link.CreatedAt); err != nil {
			return nil, err
		}
		links = append(links, link)
	}
	return links, rows.Err()
}

func (r *userOwnerRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM user_owners WHERE user_id = $1`
	err := r.db.QueryRow(ctx, query, userID).Scan(&count)
	return count, err
}

func (r *userOwnerRepo) Delete(ctx context.Context, userID, ownerID uuid.UUID) error {
	query := `DELETE FROM user_owners WHERE user_id = $1 AND owner_id = $2`
	_, err := r.db.Exec(ctx, query, userID, ownerID)
	return err
}
