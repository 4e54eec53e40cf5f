package models

import (
	"time"

	"github.com/google/uuid"
)

type ParkingPermit struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	PropertyID   uuid.UUID  `json:"property_id" db:"property_id"`
	TenantID     *uuid.UUID `json:"tenant_id" db:"tenant_id"`
	PermitNumber string     `json:"permit_number" db:"permit_number"`
	VehiclePlate string     `json:"vehicle_plate" db:"vehicle_plate"`
	ValidFrom    time.Time  `json:"valid_from" db:"valid_from"`
	ValidUntil   time.Time  `json:"valid_until" db:"valid_until"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}
