package models

import "time"

// Budget is a per-user, per-calendar-month container for planned
// allocations and actual income/expenses. Month is always stored as the
// first day of the month at midnight UTC; (user_id, month) is unique.
type Budget struct {
	Base
	UserID uint      `gorm:"not null;uniqueIndex:idx_budgets_user_month" json:"user_id"`
	Month  time.Time `gorm:"type:date;not null;uniqueIndex:idx_budgets_user_month" json:"month"`
	Notes  *string   `gorm:"size:1000" json:"notes"`

	// Relationships
	BudgetItems []BudgetItem `gorm:"foreignKey:BudgetID;constraint:OnDelete:CASCADE" json:"budget_items,omitempty"`
	Incomes     []Income     `gorm:"foreignKey:BudgetID;constraint:OnDelete:CASCADE" json:"incomes,omitempty"`
	Expenses    []Expense    `gorm:"foreignKey:BudgetID;constraint:OnDelete:CASCADE" json:"expenses,omitempty"`
}

// PeriodStart returns the first day of the budget's month.
func (b *Budget) PeriodStart() time.Time {
	return time.Date(b.Month.Year(), b.Month.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// PeriodEnd returns the last day of the budget's month.
func (b *Budget) PeriodEnd() time.Time {
	return b.PeriodStart().AddDate(0, 1, -1)
}

// NormalizeMonth truncates t to the first day of its month at midnight UTC.
func NormalizeMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
