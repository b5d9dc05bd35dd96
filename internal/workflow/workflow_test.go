package workflow

import (
	"errors"
	"path/filepath"
	"testing"

	"budget-tracker/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.BudgetRecord{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return NewEngine(db, decimal.NewFromInt(48000))
}

func createUser(t *testing.T, db *gorm.DB, email, role string) *models.User {
	t.Helper()
	user := &models.User{Email: email, Role: role}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return user
}

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCreateRecordBalanceSequence(t *testing.T) {
	e := newTestEngine(t)
	u := createUser(t, e.DB, "a1@example.com", models.RoleSubmitter)

	r1, err := e.CreateRecord(u, 3, 5, "taxi", amount("200"))
	if err != nil {
		t.Fatalf("CreateRecord failed: %v", err)
	}
	if got := r1.Balance.String(); got != "47800" {
		t.Errorf("first balance = %s, want 47800", got)
	}

	r2, err := e.CreateRecord(u, 3, 6, "stationery", amount("300"))
	if err != nil {
		t.Fatalf("CreateRecord failed: %v", err)
	}
	if got := r2.Balance.String(); got != "47500" {
		t.Errorf("second balance = %s, want 47500", got)
	}

	// the first record's balance stays frozen
	var reloaded models.BudgetRecord
	if err := e.DB.First(&reloaded, r1.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got := reloaded.Balance.String(); got != "47800" {
		t.Errorf("first balance after second creation = %s, want 47800", got)
	}
}

func TestCreateRecordBalancePerUser(t *testing.T) {
	e := newTestEngine(t)
	u1 := createUser(t, e.DB, "a1@example.com", models.RoleSubmitter)
	u2 := createUser(t, e.DB, "a2@example.com", models.RoleSubmitter)

	if _, err := e.CreateRecord(u1, 1, 1, "meals", amount("1000")); err != nil {
		t.Fatalf("CreateRecord failed: %v", err)
	}
	r, err := e.CreateRecord(u2, 1, 2, "meals", amount("500"))
	if err != nil {
		t.Fatalf("CreateRecord failed: %v", err)
	}
	// u1's spending does not count against u2
	if got := r.Balance.String(); got != "47500" {
		t.Errorf("u2 balance = %s, want 47500", got)
	}
}

func TestCreateRecordAcceptsAnySign(t *testing.T) {
	e := newTestEngine(t)
	u := createUser(t, e.DB, "a1@example.com", models.RoleSubmitter)

	r, err := e.CreateRecord(u, 2, 1, "refund", amount("-150"))
	if err != nil {
		t.Fatalf("CreateRecord with negative amount failed: %v", err)
	}
	if got := r.Balance.String(); got != "48150" {
		t.Errorf("balance = %s, want 48150", got)
	}

	if _, err := e.CreateRecord(u, 2, 2, "placeholder", amount("0")); err != nil {
		t.Fatalf("CreateRecord with zero amount failed: %v", err)
	}
}

func TestCreateRecordInitialState(t *testing.T) {
	e := newTestEngine(t)
	u := createUser(t, e.DB, "a1@example.com", models.RoleSubmitter)

	r, err := e.CreateRecord(u, 3, 5, "taxi", amount("200"))
	if err != nil {
		t.Fatalf("CreateRecord failed: %v", err)
	}
	if r.ReceiptReceived || r.ReceiptVerified || r.ManagerApproved || r.AccountantApproved {
		t.Error("new record must start with all approval flags false")
	}
	if r.Submitter != u.Email {
		t.Errorf("submitter = %s, want %s", r.Submitter, u.Email)
	}
	if r.UserID != u.ID {
		t.Errorf("owner = %d, want %d", r.UserID, u.ID)
	}
}

func TestApplyTransitions(t *testing.T) {
	e := newTestEngine(t)
	submitter := createUser(t, e.DB, "a1@example.com", models.RoleSubmitter)
	signer := createUser(t, e.DB, "s@example.com", models.RoleSigner)
	verifier := createUser(t, e.DB, "v@example.com", models.RoleVerifier)
	manager := createUser(t, e.DB, "m@example.com", models.RoleManager)
	accountant := createUser(t, e.DB, "acc@example.com", models.RoleAccountant)

	r1, err := e.CreateRecord(submitter, 3, 5, "taxi", amount("200"))
	if err != nil {
		t.Fatalf("CreateRecord failed: %v", err)
	}
	r2, err := e.CreateRecord(submitter, 3, 6, "stationery", amount("300"))
	if err != nil {
		t.Fatalf("CreateRecord failed: %v", err)
	}

	t.Run("signer sets receipt_received on one record only", func(t *testing.T) {
		got, err := e.Apply(signer, r1.ID, ReceiptReceived)
		if err != nil {
			t.Fatalf("Apply failed: %v", err)
		}
		if !got.ReceiptReceived {
			t.Error("receipt_received not set")
		}

		var other models.BudgetRecord
		if err := e.DB.First(&other, r2.ID).Error; err != nil {
			t.Fatalf("reload: %v", err)
		}
		if other.ReceiptReceived {
			t.Error("second record must be unchanged")
		}
	})

	t.Run("role mismatch is a silent no-op", func(t *testing.T) {
		got, err := e.Apply(verifier, r1.ID, ReceiptReceived)
		if err != nil {
			t.Fatalf("Apply with wrong role must not error, got %v", err)
		}
		if got.ReceiptVerified {
			t.Error("receipt_verified must stay false")
		}
		if !got.ReceiptReceived {
			t.Error("previously set flag must stay true")
		}
	})

	t.Run("flags are independent, accountant may approve first", func(t *testing.T) {
		got, err := e.Apply(accountant, r2.ID, AccountantApproved)
		if err != nil {
			t.Fatalf("Apply failed: %v", err)
		}
		if !got.AccountantApproved {
			t.Error("accountant_approved not set")
		}
		if got.ManagerApproved {
			t.Error("manager_approved must stay false")
		}
	})

	t.Run("multiple transitions apply only the caller's flag", func(t *testing.T) {
		got, err := e.Apply(manager, r2.ID, ManagerApproved, AccountantApproved)
		if err != nil {
			t.Fatalf("Apply failed: %v", err)
		}
		if !got.ManagerApproved {
			t.Error("manager_approved not set")
		}
		if !got.AccountantApproved {
			t.Error("accountant_approved set earlier must stay true")
		}
	})

	t.Run("flags are monotonic under repeated application", func(t *testing.T) {
		got, err := e.Apply(signer, r1.ID, ReceiptReceived)
		if err != nil {
			t.Fatalf("Apply failed: %v", err)
		}
		if !got.ReceiptReceived {
			t.Error("flag must remain true")
		}
	})

	t.Run("unknown record id fails", func(t *testing.T) {
		if _, err := e.Apply(signer, 9999, ReceiptReceived); !errors.Is(err, ErrRecordNotFound) {
			t.Errorf("Apply on missing record = %v, want ErrRecordNotFound", err)
		}
	})
}

func TestListVisible(t *testing.T) {
	e := newTestEngine(t)
	u1 := createUser(t, e.DB, "a1@example.com", models.RoleSubmitter)
	u2 := createUser(t, e.DB, "a2@example.com", models.RoleSubmitter)
	signer := createUser(t, e.DB, "s@example.com", models.RoleSigner)

	if _, err := e.CreateRecord(u1, 1, 1, "meals", amount("100")); err != nil {
		t.Fatalf("CreateRecord failed: %v", err)
	}
	if _, err := e.CreateRecord(u1, 1, 2, "taxi", amount("50")); err != nil {
		t.Fatalf("CreateRecord failed: %v", err)
	}
	if _, err := e.CreateRecord(u2, 1, 3, "printing", amount("80")); err != nil {
		t.Fatalf("CreateRecord failed: %v", err)
	}

	own, err := e.ListVisible(u1)
	if err != nil {
		t.Fatalf("ListVisible failed: %v", err)
	}
	if len(own) != 2 {
		t.Errorf("submitter sees %d records, want 2", len(own))
	}
	for _, r := range own {
		if r.UserID != u1.ID {
			t.Errorf("submitter sees foreign record %d", r.ID)
		}
	}

	all, err := e.ListVisible(signer)
	if err != nil {
		t.Fatalf("ListVisible failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("signer sees %d records, want 3", len(all))
	}
}
