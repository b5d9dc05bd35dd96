package models

import "time"

// Roles form a closed set. Every user holds exactly one, fixed at creation.
const (
	RoleSubmitter  = "submitter"
	RoleSigner     = "signer"
	RoleVerifier   = "verifier"
	RoleManager    = "manager"
	RoleAccountant = "accountant"
)

// ValidRole reports whether role belongs to the closed role set.
func ValidRole(role string) bool {
	switch role {
	case RoleSubmitter, RoleSigner, RoleVerifier, RoleManager, RoleAccountant:
		return true
	}
	return false
}

// User represents application user. Email doubles as the login identifier.
// Users are created only by seeding and never updated afterwards.
type User struct {
	ID        uint      `gorm:"primaryKey"`
	Email     string    `gorm:"size:100;uniqueIndex;not null"`
	Role      string    `gorm:"size:50;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
