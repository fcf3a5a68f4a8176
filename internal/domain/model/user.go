package model

import (
	"time"
)

// User is a platform operator account. Two privilege tiers exist: admins
// run contests, super admins additionally manage the admin accounts
// themselves. A super admin is always an admin too; this is enforced at
// creation time, not assumed of stored documents.
type User struct {
	ID             string    `json:"id"`
	Username       string    `json:"userName"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"` // Not exposed
	IsAdmin        bool      `json:"isAdmin"`
	IsSuper        bool      `json:"isSuper"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
