package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"budgetwise/internal/auth"
	"budgetwise/internal/models"
	"budgetwise/internal/pagination"
)

// ProfileUpdate holds optional profile fields; nil means "leave unchanged".
type ProfileUpdate struct {
	Name         *string
	Email        *string
	CurrencyCode *string
	Timezone     *string
	Avatar       *string
}

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(name, email, password, currencyCode, timezone string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	UpdateProfile(userID uint, update ProfileUpdate) (*models.User, error)
	UpdatePassword(userID uint, currentPassword, newPassword string) error
	FindOrCreateOAuthUser(provider string, info *auth.UserInfo) (*models.User, error)
	StoreRefreshTokenHash(userID uint, tokenHash string) error
	GetRefreshTokenHash(userID uint) (string, error)
	ClearRefreshTokenHash(userID uint) error
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(userID uint, name string, categoryType models.CategoryType, sortOrder int, isDefault bool) (*models.Category, error)
	GetUserCategories(userID uint, categoryType *models.CategoryType) ([]models.Category, error)
	GetCategoryByID(userID, categoryID uint) (*models.Category, error)
	UpdateCategory(userID, categoryID uint, name string, categoryType models.CategoryType, sortOrder *int, isDefault *bool) (*models.Category, error)
	DeleteCategory(userID, categoryID uint) error
}

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	CreateBudget(userID uint, month time.Time, notes *string) (*models.Budget, error)
	GetUserBudgets(userID uint, now time.Time) (*BudgetList, error)
	GetOrCreateBudgetForMonth(userID uint, month time.Time) (*models.Budget, error)
	GetBudgetByID(userID, budgetID uint) (*models.Budget, error)
	GetBudgetDetail(userID, budgetID uint) (*BudgetDetail, error)
	UpdateBudget(userID, budgetID uint, month time.Time, notes *string) (*models.Budget, error)
	DeleteBudget(userID, budgetID uint) error
}

// BudgetItemServicer defines the contract for budget item business logic.
type BudgetItemServicer interface {
	CreateBudgetItem(userID, budgetID, categoryID uint, plannedAmount decimal.Decimal, notes *string) (*models.BudgetItem, error)
	UpdateBudgetItem(userID, itemID, categoryID uint, plannedAmount decimal.Decimal, notes *string) (*models.BudgetItem, error)
	DeleteBudgetItem(userID, itemID uint) error
}

// ExpenseFilter holds optional filter parameters for listing expenses.
type ExpenseFilter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	CategoryID *uint
	BudgetID   *uint
	Search     string
}

// ExpenseInput carries the writable fields of an expense.
type ExpenseInput struct {
	BudgetID     uint
	BudgetItemID uint
	CategoryID   uint
	Date         time.Time
	Amount       decimal.Decimal
	Merchant     *string
	Note         *string
}

// ExpenseServicer defines the contract for expense-related business logic.
type ExpenseServicer interface {
	ListExpenses(userID uint, filter ExpenseFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error)
	CreateExpense(userID uint, input ExpenseInput) (*models.Expense, error)
	GetExpenseByID(userID, expenseID uint) (*models.Expense, error)
	UpdateExpense(userID, expenseID uint, input ExpenseInput) (*models.Expense, error)
	DeleteExpense(userID, expenseID uint) error
}

// IncomeFilter holds optional filter parameters for listing incomes.
type IncomeFilter struct {
	BudgetID  *uint
	StartDate *time.Time
	EndDate   *time.Time
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
	Search    string
}

// IncomeInput carries the writable fields of an income.
type IncomeInput struct {
	BudgetID uint
	Date     time.Time
	Amount   decimal.Decimal
	Source   *string
	Note     *string
}

// IncomeServicer defines the contract for income-related business logic.
type IncomeServicer interface {
	ListIncomes(userID uint, filter IncomeFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Income], error)
	CreateIncome(userID uint, input IncomeInput) (*models.Income, error)
	GetIncomeByID(userID, incomeID uint) (*models.Income, error)
	UpdateIncome(userID, incomeID uint, input IncomeInput) (*models.Income, error)
	DeleteIncome(userID, incomeID uint) error
}

// ReportServicer defines the contract for the report assembler. The caller
// supplies "now" explicitly so report output is a pure function of the
// ledger snapshot and the clock.
type ReportServicer interface {
	Dashboard(userID uint, now time.Time) (*DashboardReport, error)
	CurrentMonthBudgetStats(userID uint, now time.Time) (*CurrentMonthStats, error)
	MonthlySummary(userID uint, year, month int) (*MonthlySummaryReport, error)
	BudgetVsActual(userID, budgetID uint) (*BudgetVsActualReport, error)
	SpendingTrends(userID uint, period string, categoryID *uint, now time.Time) (*SpendingTrendsReport, error)
}

// OAuthExchanger is the provider surface the auth flow needs; satisfied by
// *auth.Provider and by test fakes.
type OAuthExchanger interface {
	Name() string
	AuthURL(state string) string
	Exchange(ctx context.Context, code string) (*auth.UserInfo, error)
}
