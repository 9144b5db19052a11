package models

// CategoryType represents the type of category.
type CategoryType string

const (
	CategoryTypeExpense CategoryType = "expense"
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeSavings CategoryType = "savings"
)

// Category represents a user-defined spending or income category.
// A (user_id, name, type) combination is unique.
type Category struct {
	Base
	UserID    uint         `gorm:"not null;uniqueIndex:idx_categories_user_name_type" json:"user_id"`
	Name      string       `gorm:"size:255;not null;uniqueIndex:idx_categories_user_name_type" json:"name"`
	Type      CategoryType `gorm:"size:16;not null;uniqueIndex:idx_categories_user_name_type" json:"type"`
	SortOrder int          `gorm:"not null;default:0" json:"sort_order"`
	IsDefault bool         `gorm:"not null;default:false" json:"is_default"`

	// Relationships
	BudgetItems []BudgetItem `gorm:"foreignKey:CategoryID" json:"budget_items,omitempty"`
	Expenses    []Expense    `gorm:"foreignKey:CategoryID" json:"expenses,omitempty"`
}
