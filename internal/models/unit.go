package models

import (
	"time"

	"github.com/google/uuid"
)

type Unit struct {
	ID         uuid.UUID `json:"id" db:"id"`
	PropertyID uuid.UUID `json:"property_id" db:"property_id"`
	Name       string    `json:"name" db:"name"`
	Bedrooms   int       `json:"bedrooms" db:"bedrooms"`
	Bathrooms  float64   `json:"bathrooms" db:"bathrooms"`
	RentAmount float64   `json:"rent_amount" db:"rent_amount"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}
