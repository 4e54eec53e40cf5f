package models

import (
	"time"

	"github.com/google/uuid"
)

type Property struct {
	ID uuid.UUID `json:"id" db:"id"`
	// UserID is the legacy single-owner column. It is kept for backward
	// compatibility while ownership lives in property_owners, and still
	// scopes the CRUD surface.
	UserID          uuid.UUID  `json:"user_id" db:"user_id"`
	Address         string     `json:"address" db:"address"`
	AcquiredOn      *time.Time `json:"acquired_on" db:"acquired_on"`
	PrincipalAmount float64    `json:"principal_amount" db:"principal_amount"`
	RateOfInterest  float64    `json:"rate_of_interest" db:"rate_of_interest"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
}
