package models

import (
	"time"

	"github.com/google/uuid"
)

// PropertyOwner links an Owner to a Property with a percentage stake.
// Percentages for a property are validated to sum to at most 100 at the
// write path; rows created by the ownership backfill always carry 100.
type PropertyOwner struct {
	PropertyID          uuid.UUID `json:"property_id" db:"property_id"`
	OwnerID             uuid.UUID `json:"owner_id" db:"owner_id"`
	OwnershipPercentage float64   `json:"ownership_percentage" db:"ownership_percentage"`
	CreatedAt           time.Time `json:"created_at" db:"created_at"`
}
