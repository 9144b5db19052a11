package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"budgetwise/internal/models"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hashBytes, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	hash := string(hashBytes)

	user := &models.User{
		Name:         fmt.Sprintf("Test User %d", nextID()),
		Email:        email,
		Password:     &hash,
		CurrencyCode: "USD",
		Timezone:     "UTC",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestCategory creates a category of the given type.
func CreateTestCategory(t *testing.T, db *gorm.DB, userID uint, categoryType models.CategoryType) *models.Category {
	t.Helper()

	category := &models.Category{
		UserID: userID,
		Name:   fmt.Sprintf("Test Category %d", nextID()),
		Type:   categoryType,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestBudget creates a budget for the given month.
func CreateTestBudget(t *testing.T, db *gorm.DB, userID uint, month time.Time) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		UserID: userID,
		Month:  models.NormalizeMonth(month),
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// CreateTestBudgetItem allocates a planned amount to a category in a budget.
func CreateTestBudgetItem(t *testing.T, db *gorm.DB, budgetID, categoryID uint, planned string) *models.BudgetItem {
	t.Helper()

	item := &models.BudgetItem{
		BudgetID:      budgetID,
		CategoryID:    categoryID,
		PlannedAmount: decimal.RequireFromString(planned),
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("failed to create test budget item: %v", err)
	}
	return item
}

// CreateTestExpense records an expense against a budget item on the given date.
func CreateTestExpense(t *testing.T, db *gorm.DB, userID uint, item *models.BudgetItem, amount string, date time.Time) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		UserID:       userID,
		BudgetID:     item.BudgetID,
		BudgetItemID: item.ID,
		CategoryID:   item.CategoryID,
		Date:         date,
		Amount:       decimal.RequireFromString(amount),
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}

// CreateTestIncome records an income against a budget on the given date.
func CreateTestIncome(t *testing.T, db *gorm.DB, userID, budgetID uint, amount string, date time.Time) *models.Income {
	t.Helper()

	income := &models.Income{
		UserID:   userID,
		BudgetID: budgetID,
		Date:     date,
		Amount:   decimal.RequireFromString(amount),
	}
	if err := db.Create(income).Error; err != nil {
		t.Fatalf("failed to create test income: %v", err)
	}
	return income
}
