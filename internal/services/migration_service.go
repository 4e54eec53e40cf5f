package services

import (
	"context"
	"fmt"
	"log"

	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/models"
	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// MigrationResult is the outcome of one backfill run. Errors are carried
// as data so the HTTP layer can render them inline.
type MigrationResult struct {
	Success       bool   `json:"success"`
	MigratedCount int    `json:"migrated_count"`
	SkippedCount  int    `json:"skipped_count"`
	TotalUsers    int    `json:"total_users"`
	Error         string `json:"error,omitempty"`
}

// MigrationStatus is the read-only check used to short-circuit re-running
// the backfill when every property already has explicit ownership.
type MigrationStatus struct {
	PendingProperties  int  `json:"pending_properties"`
	MigratedProperties int  `json:"migrated_properties"`
	Complete           bool `json:"complete"`
}

// MigrationService converts legacy single-owner properties into the
// many-to-many owner model. The conversion is idempotent: users with an
// existing owner link reuse it, and properties that already carry any
// property_owners row are skipped.
type MigrationService interface {
	Run(ctx context.Context) *MigrationResult
	Status(ctx context.Context) (*MigrationStatus, error)
}

type migrationService struct {
	db                repositories.DB
	userRepo          repositories.UserRepository
	propertyOwnerRepo repositories.PropertyOwnerRepository
}

func NewMigrationService(db repositories.DB, userRepo repositories.UserRepository, propertyOwnerRepo repositories.PropertyOwnerRepository) MigrationService {
	return &migrationService{
		db:                db,
		userRepo:          userRepo,
		propertyOwnerRepo: propertyOwnerRepo,
	}
}

// Run walks every user. Each user's owner creation, admin link and
// property ownership rows commit in a single transaction, so a crash
// leaves whole users either migrated or untouched; a re-run picks up
// where the last one stopped.
func (s *migrationService) Run(ctx context.Context) *MigrationResult {
	result := &MigrationResult{}

	users, err := s.userRepo.List(ctx, 10000, 0)
	if err != nil {
		result.Error = fmt.Sprintf("failed to list users: %v", err)
		return result
	}
	result.TotalUsers = len(users)

	for _, user := range users {
		migrated, skipped, err := s.migrateUser(ctx, user)
		if err != nil {
			result.Error = fmt.Sprintf("migration aborted at user %s: %v", user.ID.String(), err)
			return result
		}
		result.MigratedCount += migrated
		result.SkippedCount += skipped
	}

	result.Success = true
	log.Printf("ownership backfill complete: %d migrated, %d skipped, %d users", result.MigratedCount, result.SkippedCount, result.TotalUsers)
	return result
}

func (s *migrationService) migrateUser(ctx context.Context, user *models.User) (migrated, skipped int, err error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return 0, 0, err
	}
	defer tx.Rollback(ctx)

	ownerID, err := s.resolveOwner(ctx, tx, user)
	if err != nil {
		return 0, 0, err
	}

	rows, err := tx.Query(ctx, `
		SELECT id
		FROM properties
		WHERE user_id = $1
		ORDER BY created_at ASC
	`, user.ID)
	if err != nil {
		return 0, 0, err
	}
	propertyIDs, err := scanIDs(rows)
	if err != nil {
		return 0, 0, err
	}

	for _, propertyID := range propertyIDs {
		var existing int
		err = tx.QueryRow(ctx, `SELECT COUNT(*) FROM property_owners WHERE property_id = $1`, propertyID).Scan(&existing)
		if err != nil {
			return 0, 0, err
		}
		if existing > 0 {
			// Already migrated; never touch existing rows.
			skipped++
			continue
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO property_owners (property_id, owner_id, ownership_percentage, created_at)
			VALUES ($1, $2, $3, NOW())
		`, propertyID, ownerID, 100.0)
		if err != nil {
			return 0, 0, err
		}
		migrated++
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, 0, err
	}
	return migrated, skipped, nil
}

// resolveOwner returns the user's primary owner, creating an individual
// owner plus an admin link when the user has none. Existing links are
// read in creation order so reuse is deterministic.
func (s *migrationService) resolveOwner(ctx context.Context, tx pgx.Tx, user *models.User) (uuid.UUID, error) {
	var ownerID uuid.UUID
	err := tx.QueryRow(ctx, `
		SELECT owner_id
		FROM user_owners
		WHERE user_id = $1
		ORDER BY created_at ASC, owner_id ASC
		LIMIT 1
	`, user.ID).Scan(&ownerID)
	if err == nil {
		return ownerID, nil
	}
	if err != pgx.ErrNoRows {
		return uuid.Nil, err
	}

	ownerID = uuid.New()
	_, err = tx.Exec(ctx, `
		INSERT INTO owners (id, name, type, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`, ownerID, user.DisplayName(), models.OwnerTypeIndividual, user.Email)
	if err != nil {
		return uuid.Nil, err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO user_owners (user_id, owner_id, role, created_at)
		VALUES ($1, $2, $3, NOW())
	`, user.ID, ownerID, models.UserOwnerRoleAdmin)
	if err != nil {
		return uuid.Nil, err
	}
	return ownerID, nil
}

func (s *migrationService) Status(ctx context.Context) (*MigrationStatus, error) {
	pending, err := s.propertyOwnerRepo.CountPropertiesWithoutOwners(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending properties: %v", err)
	}
	migrated, err := s.propertyOwnerRepo.CountPropertiesWithOwners(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count migrated properties: %v", err)
	}
	return &MigrationStatus{
		PendingProperties:  pending,
		MigratedProperties: migrated,
		Complete:           pending == 0,
	}, nil
}

func scanIDs(rows pgx.Rows) ([]uuid.UUID, error) {
	defer rows.Close()
	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
