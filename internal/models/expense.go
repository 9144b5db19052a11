package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is an actual outflow recorded against a budget item.
type Expense struct {
	Base
	UserID       uint            `gorm:"not null;index" json:"user_id"`
	BudgetID     uint            `gorm:"not null;index" json:"budget_id"`
	BudgetItemID uint            `gorm:"not null;index" json:"budget_item_id"`
	CategoryID   uint            `gorm:"not null;index" json:"category_id"`
	Date         time.Time       `gorm:"type:date;not null;index" json:"date"`
	Amount       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Merchant     *string         `gorm:"size:255" json:"merchant"`
	Note         *string         `gorm:"size:1000" json:"note"`

	// Relationships
	Budget     *Budget     `gorm:"foreignKey:BudgetID" json:"budget,omitempty"`
	BudgetItem *BudgetItem `gorm:"foreignKey:BudgetItemID" json:"budget_item,omitempty"`
	Category   *Category   `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
