package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"budgetwise/internal/models"
	"budgetwise/internal/testutil"
)

func TestCreateBudgetItem(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetItemService(db, NewBudgetService(db))

		user := testutil.CreateTestUser(t, db)
		budget := testutil.CreateTestBudget(t, db, user.ID, time.Now())
		category := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		item, err := svc.CreateBudgetItem(user.ID, budget.ID, category.ID, decimal.RequireFromString("250.00"), nil)
		testutil.AssertNoError(t, err)

		if item.ID == 0 {
			t.Fatal("expected non-zero item ID")
		}
		if item.Category == nil || item.Category.ID != category.ID {
			t.Error("expected category preloaded")
		}
	})

	t.Run("duplicate_category_in_budget", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetItemService(db, NewBudgetService(db))

		user := testutil.CreateTestUser(t, db)
		budget := testutil.CreateTestBudget(t, db, user.ID, time.Now())
		category := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		_, err := svc.CreateBudgetItem(user.ID, budget.ID, category.ID, decimal.RequireFromString("100.00"), nil)
		testutil.AssertNoError(t, err)

		_, err = svc.CreateBudgetItem(user.ID, budget.ID, category.ID, decimal.RequireFromString("200.00"), nil)
		testutil.AssertAppError(t, err, "DUPLICATE_BUDGET_ITEM")
	})

	t.Run("same_category_in_other_budget_allowed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetItemService(db, NewBudgetService(db))

		user := testutil.CreateTestUser(t, db)
		march := testutil.CreateTestBudget(t, db, user.ID, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
		april := testutil.CreateTestBudget(t, db, user.ID, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC))
		category := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		_, err := svc.CreateBudgetItem(user.ID, march.ID, category.ID, decimal.RequireFromString("100.00"), nil)
		testutil.AssertNoError(t, err)
		_, err = svc.CreateBudgetItem(user.ID, april.ID, category.ID, decimal.RequireFromString("100.00"), nil)
		testutil.AssertNoError(t, err)
	})

	t.Run("other_users_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetItemService(db, NewBudgetService(db))

		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		budget := testutil.CreateTestBudget(t, db, user.ID, time.Now())
		category := testutil.CreateTestCategory(t, db, other.ID, models.CategoryTypeExpense)

		_, err := svc.CreateBudgetItem(user.ID, budget.ID, category.ID, decimal.RequireFromString("100.00"), nil)
		testutil.AssertAppError(t, err, "FORBIDDEN")
	})

	t.Run("other_users_budget", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetItemService(db, NewBudgetService(db))

		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		budget := testutil.CreateTestBudget(t, db, other.ID, time.Now())
		category := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		_, err := svc.CreateBudgetItem(user.ID, budget.ID, category.ID, decimal.RequireFromString("100.00"), nil)
		testutil.AssertAppError(t, err, "FORBIDDEN")
	})
}

func TestUpdateBudgetItem(t *testing.T) {
	t.Run("change_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetItemService(db, NewBudgetService(db))

		user := testutil.CreateTestUser(t, db)
		budget := testutil.CreateTestBudget(t, db, user.ID, time.Now())
		category := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		item := testutil.CreateTestBudgetItem(t, db, budget.ID, category.ID, "100.00")

		updated, err := svc.UpdateBudgetItem(user.ID, item.ID, category.ID, decimal.RequireFromString("150.00"), nil)
		testutil.AssertNoError(t, err)

		if !updated.PlannedAmount.Equal(decimal.RequireFromString("150.00")) {
			t.Errorf("expected planned 150.00, got %s", updated.PlannedAmount)
		}
	})

	t.Run("move_to_taken_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetItemService(db, NewBudgetService(db))

		user := testutil.CreateTestUser(t, db)
		budget := testutil.CreateTestBudget(t, db, user.ID, time.Now())
		groceries := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		dining := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		testutil.CreateTestBudgetItem(t, db, budget.ID, groceries.ID, "100.00")
		item := testutil.CreateTestBudgetItem(t, db, budget.ID, dining.ID, "200.00")

		_, err := svc.UpdateBudgetItem(user.ID, item.ID, groceries.ID, decimal.RequireFromString("200.00"), nil)
		testutil.AssertAppError(t, err, "DUPLICATE_BUDGET_ITEM")
	})

	t.Run("missing_item", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetItemService(db, NewBudgetService(db))

		user := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		_, err := svc.UpdateBudgetItem(user.ID, 9999, category.ID, decimal.RequireFromString("1.00"), nil)
		testutil.AssertAppError(t, err, "BUDGET_ITEM_NOT_FOUND")
	})
}

func TestDeleteBudgetItem(t *testing.T) {
	t.Run("removes_item_and_its_expenses", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetItemService(db, NewBudgetService(db))

		user := testutil.CreateTestUser(t, db)
		budget := testutil.CreateTestBudget(t, db, user.ID, time.Now())
		category := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		item := testutil.CreateTestBudgetItem(t, db, budget.ID, category.ID, "100.00")
		testutil.CreateTestExpense(t, db, user.ID, item, "10.00", time.Now())

		err := svc.DeleteBudgetItem(user.ID, item.ID)
		testutil.AssertNoError(t, err)

		var count int64
		db.Model(&models.Expense{}).Where("budget_item_id = ?", item.ID).Count(&count)
		if count != 0 {
			t.Errorf("expected item's expenses removed, found %d", count)
		}
	})

	t.Run("other_users_item_forbidden", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetItemService(db, NewBudgetService(db))

		owner := testutil.CreateTestUser(t, db)
		intruder := testutil.CreateTestUser(t, db)
		budget := testutil.CreateTestBudget(t, db, owner.ID, time.Now())
		category := testutil.CreateTestCategory(t, db, owner.ID, models.CategoryTypeExpense)
		item := testutil.CreateTestBudgetItem(t, db, budget.ID, category.ID, "100.00")

		err := svc.DeleteBudgetItem(intruder.ID, item.ID)
		testutil.AssertAppError(t, err, "FORBIDDEN")
	})
}
