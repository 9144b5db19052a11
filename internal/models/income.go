package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Income is an actual inflow recorded against a budget.
type Income struct {
	Base
	UserID   uint            `gorm:"not null;index" json:"user_id"`
	BudgetID uint            `gorm:"not null;index" json:"budget_id"`
	Date     time.Time       `gorm:"type:date;not null;index" json:"date"`
	Amount   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Source   *string         `gorm:"size:255" json:"source"`
	Note     *string         `gorm:"size:1000" json:"note"`

	// Relationships
	Budget *Budget `gorm:"foreignKey:BudgetID" json:"budget,omitempty"`
}
