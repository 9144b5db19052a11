package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "budgetwise/internal/errors"
	"budgetwise/internal/models"
)

// budgetItemService handles budget item business logic. Ownership is always
// resolved through the parent budget.
type budgetItemService struct {
	db      *gorm.DB
	budgets BudgetServicer
}

// NewBudgetItemService creates a new BudgetItemServicer.
func NewBudgetItemService(db *gorm.DB, budgets BudgetServicer) BudgetItemServicer {
	return &budgetItemService{db: db, budgets: budgets}
}

// CreateBudgetItem allocates a planned amount to a category inside a budget.
// Each category may appear at most once per budget.
func (s *budgetItemService) CreateBudgetItem(userID, budgetID, categoryID uint, plannedAmount decimal.Decimal, notes *string) (*models.BudgetItem, error) {
	if _, err := s.budgets.GetBudgetByID(userID, budgetID); err != nil {
		return nil, err
	}
	if err := s.checkCategory(userID, categoryID); err != nil {
		return nil, err
	}

	var count int64
	s.db.Model(&models.BudgetItem{}).
		Where("budget_id = ? AND category_id = ?", budgetID, categoryID).
		Count(&count)
	if count > 0 {
		return nil, apperrors.ErrDuplicateBudgetItem
	}

	item := &models.BudgetItem{
		BudgetID:      budgetID,
		CategoryID:    categoryID,
		PlannedAmount: plannedAmount,
		Notes:         notes,
	}
	if err := s.db.Create(item).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.db.Preload("Category").First(item, item.ID).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return item, nil
}

// UpdateBudgetItem changes an item's category, planned amount, or notes.
func (s *budgetItemService) UpdateBudgetItem(userID, itemID, categoryID uint, plannedAmount decimal.Decimal, notes *string) (*models.BudgetItem, error) {
	item, err := s.getOwnedItem(userID, itemID)
	if err != nil {
		return nil, err
	}
	if err := s.checkCategory(userID, categoryID); err != nil {
		return nil, err
	}

	var count int64
	s.db.Model(&models.BudgetItem{}).
		Where("budget_id = ? AND category_id = ? AND id <> ?", item.BudgetID, categoryID, itemID).
		Count(&count)
	if count > 0 {
		return nil, apperrors.ErrDuplicateBudgetItem
	}

	item.CategoryID = categoryID
	item.PlannedAmount = plannedAmount
	item.Notes = notes
	if err := s.db.Save(item).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.db.Preload("Category").First(item, item.ID).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return item, nil
}

// DeleteBudgetItem removes an item along with the expenses recorded against
// it, in one transaction.
func (s *budgetItemService) DeleteBudgetItem(userID, itemID uint) error {
	item, err := s.getOwnedItem(userID, itemID)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("budget_item_id = ?", item.ID).Delete(&models.Expense{}).Error; err != nil {
			return err
		}
		return tx.Delete(item).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// getOwnedItem loads an item and verifies the parent budget belongs to the
// user.
func (s *budgetItemService) getOwnedItem(userID, itemID uint) (*models.BudgetItem, error) {
	var item models.BudgetItem
	if err := s.db.Preload("Budget").First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetItemNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if item.Budget == nil || item.Budget.UserID != userID {
		return nil, apperrors.ErrForbidden
	}
	return &item, nil
}

// checkCategory verifies the category exists and belongs to the user.
func (s *budgetItemService) checkCategory(userID, categoryID uint) error {
	var category models.Category
	if err := s.db.First(&category, categoryID).Error; err != nil {
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
