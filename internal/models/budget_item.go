package models

import "github.com/shopspring/decimal"

// BudgetItem is a planned allocation of funds to one category within one
// budget. A budget holds at most one item per category.
type BudgetItem struct {
	Base
	BudgetID      uint            `gorm:"not null;uniqueIndex:idx_budget_items_budget_category" json:"budget_id"`
	CategoryID    uint            `gorm:"not null;uniqueIndex:idx_budget_items_budget_category" json:"category_id"`
	PlannedAmount decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"planned_amount"`
	Notes         *string         `gorm:"size:1000" json:"notes"`

	// Relationships
	Budget   *Budget   `gorm:"foreignKey:BudgetID" json:"budget,omitempty"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Expenses []Expense `gorm:"foreignKey:BudgetItemID" json:"expenses,omitempty"`
}
