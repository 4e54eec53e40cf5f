package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	OwnerTypeIndividual = "individual"
	OwnerTypeEntity     = "entity"
)

type Owner struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Type      string    `json:"type" db:"type"`
	Email     string    `json:"email" db:"email"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
