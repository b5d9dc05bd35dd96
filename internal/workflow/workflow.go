// Package workflow implements the budget approval rules: the frozen
// running-balance computation at record creation, the visibility filter,
// and the four role-gated approval transitions.
package workflow

import (
	"errors"
	"fmt"

	"budget-tracker/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrRecordNotFound is returned when a transition references an unknown
// record id.
var ErrRecordNotFound = errors.New("record not found")

// Transition identifies one of the four approval flags.
type Transition string

const (
	ReceiptReceived    Transition = "receipt_received"
	ReceiptVerified    Transition = "receipt_verified"
	ManagerApproved    Transition = "manager_approved"
	AccountantApproved Transition = "accountant_approved"
)

// requiredRole maps each transition to the only role allowed to apply it.
// The four transitions are deliberately unordered: the accountant may
// approve before the manager, and a flag never goes back to false.
var requiredRole = map[Transition]string{
	ReceiptReceived:    models.RoleSigner,
	ReceiptVerified:    models.RoleVerifier,
	ManagerApproved:    models.RoleManager,
	AccountantApproved: models.RoleAccountant,
}

// Engine applies the approval workflow against the record store.
type Engine struct {
	DB      *gorm.DB
	Ceiling decimal.Decimal // shared budget ceiling, from configuration
}

func NewEngine(db *gorm.DB, ceiling decimal.Decimal) *Engine {
	return &Engine{DB: db, Ceiling: ceiling}
}

// CreateRecord persists a new budget record for owner with all approval
// flags false. The frozen balance is ceiling minus the owner's cumulative
// spending including this record, computed and written inside a single
// transaction so two concurrent submissions cannot both read a stale sum.
// Any authenticated caller may create records; the role is not checked.
func (e *Engine) CreateRecord(owner *models.User, month, day int, purpose string, amount decimal.Decimal) (*models.BudgetRecord, error) {
	record := &models.BudgetRecord{
		Month:     month,
		Day:       day,
		Purpose:   purpose,
		Amount:    amount,
		Submitter: owner.Email,
		UserID:    owner.ID,
	}

	err := e.DB.Transaction(func(tx *gorm.DB) error {
		var existing []models.BudgetRecord
		if err := tx.Select("amount").
			Where("user_id = ?", owner.ID).
			Find(&existing).Error; err != nil {
			return fmt.Errorf("sum existing amounts: %w", err)
		}

		spent := amount
		for i := range existing {
			spent = spent.Add(existing[i].Amount)
		}
		record.Balance = e.Ceiling.Sub(spent)

		if err := tx.Create(record).Error; err != nil {
			return fmt.Errorf("create record: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// Apply sets the flags named by transitions on the record, skipping any
// transition whose required role the caller does not hold. A role mismatch
// is a silent no-op, not an error; only an unknown record id fails, with
// ErrRecordNotFound. Flags are only ever written to true.
func (e *Engine) Apply(caller *models.User, recordID uint, transitions ...Transition) (*models.BudgetRecord, error) {
	var record models.BudgetRecord
	if err := e.DB.First(&record, recordID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("load record: %w", err)
	}

	updates := map[string]interface{}{}
	for _, t := range transitions {
		if requiredRole[t] == caller.Role {
			updates[string(t)] = true
		}
	}
	if len(updates) == 0 {
		return &record, nil
	}

	if err := e.DB.Model(&record).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update record: %w", err)
	}
	if err := e.DB.First(&record, recordID).Error; err != nil {
		return nil, fmt.Errorf("reload record: %w", err)
	}
	return &record, nil
}

// ListVisible returns the records the caller may see: submitters see only
// their own records, every other role sees the full set, in storage order.
func (e *Engine) ListVisible(caller *models.User) ([]models.BudgetRecord, error) {
	q := e.DB.Model(&models.BudgetRecord{})
	if caller.Role == models.RoleSubmitter {
		q = q.Where("user_id = ?", caller.ID)
	}

	var records []models.BudgetRecord
	if err := q.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return records, nil
}

// ListAll returns every record regardless of caller, for the exporter.
func (e *Engine) ListAll() ([]models.BudgetRecord, error) {
	var records []models.BudgetRecord
	if err := e.DB.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return records, nil
}
