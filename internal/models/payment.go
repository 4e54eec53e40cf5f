package models

import (
	"time"

	"github.com/google/uuid"
)

type Payment struct {
	ID      uuid.UUID `json:"id" db:"id"`
	LeaseID uuid.UUID `json:"lease_id" db:"lease_id"`
	Amount  float64   `json:"amount" db:"amount"`
	PaidOn  time.Time `json:"paid_on" db:"paid_on"`
	Method  string    `json:"method" db:"method"`
	// Period is the rent period the payment covers, YYYY-MM.
	Period    string    `json:"period" db:"period"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
