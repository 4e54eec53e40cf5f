package models

import (
	"time"

	"github.com/google/uuid"
)

type Renovation struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	PropertyID  uuid.UUID  `json:"property_id" db:"property_id"`
	Name        string     `json:"name" db:"name"`
	Cost        float64    `json:"cost" db:"cost"`
	StartedOn   time.Time  `json:"started_on" db:"started_on"`
	CompletedOn *time.Time `json:"completed_on" db:"completed_on"`
	Notes       *string    `json:"notes" db:"notes"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}
