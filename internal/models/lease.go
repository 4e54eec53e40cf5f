package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	LeaseStatusActive  = "active"
	LeaseStatusPending = "pending"
	LeaseStatusEnded   = "ended"
)

type Lease struct {
	ID            uuid.UUID `json:"id" db:"id"`
	TenantID      uuid.UUID `json:"tenant_id" db:"tenant_id"`
	UnitID        uuid.UUID `json:"unit_id" db:"unit_id"`
	StartDate     time.Time `json:"start_date" db:"start_date"`
	EndDate       time.Time `json:"end_date" db:"end_date"`
	RentAmount    float64   `json:"rent_amount" db:"rent_amount"`
	DepositAmount float64   `json:"deposit_amount" db:"deposit_amount"`
	Status        string    `json:"status" db:"status"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}
