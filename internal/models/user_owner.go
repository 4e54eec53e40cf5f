package models

import (
	"time"

	"github.com/google/uuid"
)

const UserOwnerRoleAdmin = "admin"

type UserOwner struct {
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	OwnerID   uuid.UUID `json:"owner_id" db:"owner_id"`
	Role      string    `json:"role" db:"role"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
