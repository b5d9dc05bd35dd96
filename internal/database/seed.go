package database

import (
	"fmt"
	"strings"

	"budget-tracker/internal/config"
	"budget-tracker/internal/models"

	"gorm.io/gorm"
)

// SeedUsers creates the given users if they do not exist yet, keyed by
// email (case-insensitive). Roles are validated against the closed role
// set. Returns the number of users actually created, so repeated runs
// against the same database are safe.
func SeedUsers(db *gorm.DB, users []config.BootstrapUser) (int, error) {
	created := 0
	for _, u := range users {
		email := strings.TrimSpace(u.Email)
		if email == "" {
			return created, fmt.Errorf("seed user: empty email")
		}
		if !models.ValidRole(u.Role) {
			return created, fmt.Errorf("seed user %s: unknown role %q", email, u.Role)
		}

		var count int64
		if err := db.Model(&models.User{}).
			Where("LOWER(email) = LOWER(?)", email).
			Count(&count).Error; err != nil {
			return created, fmt.Errorf("seed user %s: %w", email, err)
		}
		if count > 0 {
			continue
		}

		if err := db.Create(&models.User{Email: email, Role: u.Role}).Error; err != nil {
			return created, fmt.Errorf("seed user %s: %w", email, err)
		}
		created++
	}
	return created, nil
}
