package models

// User represents the user model in the database. Password is nil for
// accounts created through an OAuth provider that never set one.
type User struct {
	Base
	Name             string  `gorm:"not null" json:"name"`
	Email            string  `gorm:"uniqueIndex;not null" json:"email"`
	Password         *string `json:"-"`
	CurrencyCode     string  `gorm:"size:3;not null;default:USD" json:"currency_code"`
	Timezone         string  `gorm:"not null;default:UTC" json:"timezone"`
	Avatar           *string `gorm:"size:500" json:"avatar,omitempty"`
	Provider         *string `gorm:"size:32" json:"provider,omitempty"`
	ProviderID       *string `gorm:"size:191" json:"-"`
	RefreshTokenHash string  `gorm:"size:64" json:"-"`

	// Relationships
	Categories []Category `gorm:"foreignKey:UserID" json:"categories,omitempty"`
	Budgets    []Budget   `gorm:"foreignKey:UserID" json:"budgets,omitempty"`
	Expenses   []Expense  `gorm:"foreignKey:UserID" json:"expenses,omitempty"`
	Incomes    []Income   `gorm:"foreignKey:UserID" json:"incomes,omitempty"`
}

// HasPassword reports whether the user has a local password set.
func (u *User) HasPassword() bool {
	return u.Password != nil && *u.Password != ""
}
