package database

import (
	"path/filepath"
	"testing"

	"budget-tracker/internal/config"
	"budget-tracker/internal/models"

	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Init(config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "test.db")})
	if err != nil {
		t.Fatalf("init database: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestSeedUsersIdempotent(t *testing.T) {
	db := newTestDB(t)

	users := []config.BootstrapUser{
		{Email: "a1@example.com", Role: models.RoleSubmitter},
		{Email: "signer@example.com", Role: models.RoleSigner},
	}

	created, err := SeedUsers(db, users)
	if err != nil {
		t.Fatalf("SeedUsers failed: %v", err)
	}
	if created != 2 {
		t.Errorf("created = %d, want 2", created)
	}

	// second run creates nothing, email match is case-insensitive
	users[0].Email = "A1@EXAMPLE.COM"
	created, err = SeedUsers(db, users)
	if err != nil {
		t.Fatalf("second SeedUsers failed: %v", err)
	}
	if created != 0 {
		t.Errorf("created on rerun = %d, want 0", created)
	}

	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Errorf("user count = %d, want 2", count)
	}
}

func TestSeedUsersRejectsUnknownRole(t *testing.T) {
	db := newTestDB(t)

	_, err := SeedUsers(db, []config.BootstrapUser{
		{Email: "x@example.com", Role: "auditor"},
	})
	if err == nil {
		t.Fatal("SeedUsers with unknown role must fail")
	}
}
