package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetRecord 表示一筆預算記錄
// Balance is frozen at creation time: ceiling minus the owner's cumulative
// spending including this record. It is never recomputed.
type BudgetRecord struct {
	ID        uint            `gorm:"primaryKey"`
	Month     int             `gorm:"not null"`
	Day       int             `gorm:"not null"`
	Purpose   string          `gorm:"size:100;not null"`
	Amount    decimal.Decimal `gorm:"type:DECIMAL(20,2);not null"`
	Balance   decimal.Decimal `gorm:"type:DECIMAL(20,2);not null"`
	Submitter string          `gorm:"size:100;not null"` // denormalized owner email
	UserID    uint            `gorm:"index;not null"`

	// Four independent approval flags. Each flips false->true at most once,
	// in any order; nothing ever resets one.
	ReceiptReceived    bool `gorm:"not null;default:false"`
	ReceiptVerified    bool `gorm:"not null;default:false"`
	ManagerApproved    bool `gorm:"not null;default:false"`
	AccountantApproved bool `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
