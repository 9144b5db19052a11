package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "budgetwise/internal/errors"
	"budgetwise/internal/models"
	"budgetwise/internal/pagination"
)

// expenseService handles expense-related business logic.
type expenseService struct {
	db      *gorm.DB
	budgets BudgetServicer
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB, budgets BudgetServicer) ExpenseServicer {
	return &expenseService{db: db, budgets: budgets}
}

// ListExpenses returns the user's expenses newest first, filtered and
// paginated.
func (s *expenseService) ListExpenses(userID uint, filter ExpenseFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error) {
	query := s.db.Model(&models.Expense{}).Where("user_id = ?", userID)

	if filter.StartDate != nil {
		query = query.Where("date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("date <= ?", *filter.EndDate)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.BudgetID != nil {
		query = query.Where("budget_id = ?", *filter.BudgetID)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("merchant LIKE ? OR note LIKE ?", pattern, pattern)
	}

	query = query.Preload("Category").Order("date DESC, id DESC")

	response, err := pagination.Find[models.Expense](query, page)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return response, nil
}

// CreateExpense records an expense against a budget item. The write is
// transactional so the item's soft cap is enforced against a consistent view
// of its current spending.
func (s *expenseService) CreateExpense(userID uint, input ExpenseInput) (*models.Expense, error) {
	if err := s.validateInput(userID, input); err != nil {
		return nil, err
	}

	expense := &models.Expense{
		UserID:       userID,
		BudgetID:     input.BudgetID,
		BudgetItemID: input.BudgetItemID,
		CategoryID:   input.CategoryID,
		Date:         input.Date,
		Amount:       input.Amount,
		Merchant:     input.Merchant,
		Note:         input.Note,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.checkSoftCap(tx, input.BudgetItemID, input.Amount, 0); err != nil {
			return err
		}
		return tx.Create(expense).Error
	})
	if err != nil {
		return nil, asAppError(err)
	}
	if err := s.db.Preload("Category").Preload("BudgetItem").First(expense, expense.ID).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expense, nil
}

// GetExpenseByID retrieves an expense after checking ownership.
func (s *expenseService) GetExpenseByID(userID, expenseID uint) (*models.Expense, error) {
	var expense models.Expense
	if err := s.db.Preload("Category").Preload("BudgetItem").First(&expense, expenseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if expense.UserID != userID {
		return nil, apperrors.ErrForbidden
	}
	return &expense, nil
}

// UpdateExpense rewrites an expense. When the expense stays on the same
// budget item its own prior amount does not count against the cap.
func (s *expenseService) UpdateExpense(userID, expenseID uint, input ExpenseInput) (*models.Expense, error) {
	expense, err := s.GetExpenseByID(userID, expenseID)
	if err != nil {
		return nil, err
	}
	if err := s.validateInput(userID, input); err != nil {
		return nil, err
	}

	excludeID := uint(0)
	if input.BudgetItemID == expense.BudgetItemID {
		excludeID = expense.ID
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.checkSoftCap(tx, input.BudgetItemID, input.Amount, excludeID); err != nil {
			return err
		}
		expense.BudgetID = input.BudgetID
		expense.BudgetItemID = input.BudgetItemID
		expense.CategoryID = input.CategoryID
		expense.Date = input.Date
		expense.Amount = input.Amount
		expense.Merchant = input.Merchant
		expense.Note = input.Note
		return tx.Save(expense).Error
	})
	if err != nil {
		return nil, asAppError(err)
	}
	if err := s.db.Preload("Category").Preload("BudgetItem").First(expense, expense.ID).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expense, nil
}

// DeleteExpense removes an expense.
func (s *expenseService) DeleteExpense(userID, expenseID uint) error {
	expense, err := s.GetExpenseByID(userID, expenseID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(expense).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// validateInput checks that the referenced budget, item, and category all
// exist, belong to the user, and agree with each other.
func (s *expenseService) validateInput(userID uint, input ExpenseInput) error {
	if _, err := s.budgets.GetBudgetByID(userID, input.BudgetID); err != nil {
		return err
	}

	var item models.BudgetItem
	if err := s.db.First(&item, input.BudgetItemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrBudgetItemNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if item.BudgetID != input.BudgetID {
		return apperrors.ErrItemBudgetMismatch
	}

	var category models.Category
	if err := s.db.First(&category, input.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrCategoryNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if category.UserID != userID {
		return apperrors.ErrForbidden
	}
	return nil
}

// checkSoftCap rejects a write that would push the item's spending past its
// planned amount. excludeID omits the expense being rewritten from the sum.
func (s *expenseService) checkSoftCap(tx *gorm.DB, itemID uint, amount decimal.Decimal, excludeID uint) error {
	var item models.BudgetItem
	if err := tx.First(&item, itemID).Error; err != nil {
		return err
	}

	query := tx.Model(&models.Expense{}).Select("amount").Where("budget_item_id = ?", itemID)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var existing []models.Expense
	if err := query.Find(&existing).Error; err != nil {
		return err
	}

	spent := decimal.Zero
	for _, expense := range existing {
		spent = spent.Add(expense.Amount)
	}

	if spent.Add(amount).GreaterThan(item.PlannedAmount) {
		remaining := item.PlannedAmount.Sub(spent)
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}
		return apperrors.WithMessage(apperrors.ErrBudgetLimitExceeded,
			fmt.Sprintf("Expense exceeds the remaining budget of %s for this item", remaining.StringFixed(2)))
	}
	return nil
}

// asAppError passes AppErrors through and wraps everything else as internal.
func asAppError(err error) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperrors.Wrap(apperrors.ErrInternalServer, err)
}
