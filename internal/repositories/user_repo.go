package repositories

import (
	"context"

	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/models"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByProviderID(ctx context.Context, providerID string) (*models.User, error)
	UpdateByProviderID(ctx context.Context, user *models.User) error
	DeleteByProviderID(ctx context.Context, providerID string) error
	List(ctx context.Context, limit, offset int) ([]*models.User, error)
}

type userRepo struct {
	db DB
}

func NewUserRepo(db DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, provider_id, email, first_name, last_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, user.ID, user.ProviderID, user.Email, user.FirstName, user.LastName)
	return err
}

func (r *userRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, provider_id, email, first_name, last_name, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&user.ID, &user.ProviderID, &user.Email, &user.FirstName, &user.LastName, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepo) GetByProviderID(ctx context.Context, providerID string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, provider_id, email, first_name, last_name, created_at, updated_at
		FROM users
		WHERE provider_id = $1
	`
	err := r.db.QueryRow(ctx, query, providerID).Scan(&user.ID, &user.ProviderID, &user.Email, &user.FirstName, &user.LastName, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepo) UpdateByProviderID(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET email = $1, first_name = $2, last_name = $3, updated_at = NOW()
		WHERE provider_id = $4
	`
	_, err := r.db.Exec(ctx, query, user.Email, user.FirstName, user.LastName, user.ProviderID)
	return err
}

func (r *userRepo) DeleteByProviderID(ctx context.Context, providerID string) error {
	query := `DELETE FROM users WHERE provider_id = $1`
	_, err := r.db.Exec(ctx, query, providerID)
	return err
}

func (r *userRepo) List(ctx context.Context, limit, offset int) ([]*models.User, error) {
	query := `
		SELECT id, provider_id, email, first_name, last_name, created_at, updated_at
		FROM users
		ORDER BY created_at ASC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(&user.ID, &user.ProviderID, &user.Email, &user.FirstName, &user.LastName, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
