package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "budgetwise/internal/errors"
	"budgetwise/internal/models"
)

// categoryService handles category-related business logic.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// CreateCategory creates a category owned by the user. The (name, type) pair
// must be unique within the owner's categories.
func (s *categoryService) CreateCategory(userID uint, name string, categoryType models.CategoryType, sortOrder int, isDefault bool) (*models.Category, error) {
	var count int64
	s.db.Model(&models.Category{}).
		Where("user_id = ? AND name = ? AND type = ?", userID, name, categoryType).
		Count(&count)
	if count > 0 {
		return nil, apperrors.ErrDuplicateCategory
	}

	category := &models.Category{
		UserID:    userID,
		Name:      name,
		Type:      categoryType,
		SortOrder: sortOrder,
		IsDefault: isDefault,
	}
	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return category, nil
}

// GetUserCategories lists the user's categories, optionally filtered by type,
// ordered by sort_order then name.
func (s *categoryService) GetUserCategories(userID uint, categoryType *models.CategoryType) ([]models.Category, error) {
	query := s.db.Where("user_id = ?", userID)
	if categoryType != nil {
		query = query.Where("type = ?", *categoryType)
	}

	var categories []models.Category
	if err := query.Order("sort_order ASC, name ASC").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

// GetCategoryByID retrieves a category after checking ownership.
func (s *categoryService) GetCategoryByID(userID, categoryID uint) (*models.Category, error) {
	var category models.Category
	if err := s.db.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if category.UserID != userID {
		return nil, apperrors.ErrForbidden
	}
	return &category, nil
}

// UpdateCategory updates a category's fields. Renames are checked against the
// owner's other categories of the same type.
func (s *categoryService) UpdateCategory(userID, categoryID uint, name string, categoryType models.CategoryType, sortOrder *int, isDefault *bool) (*models.Category, error) {
	category, err := s.GetCategoryByID(userID, categoryID)
	if err != nil {
		return nil, err
	}

	var count int64
	s.db.Model(&models.Category{}).
		Where("user_id = ? AND name = ? AND type = ? AND id <> ?", userID, name, categoryType, categoryID).
		Count(&count)
	if count > 0 {
		return nil, apperrors.ErrDuplicateCategory
	}

	category.Name = name
	category.Type = categoryType
	if sortOrder != nil {
		category.SortOrder = *sortOrder
	}
	if isDefault != nil {
		category.IsDefault = *isDefault
	}

	if err := s.db.Save(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return category, nil
}

// DeleteCategory removes a category unless budget items or expenses still
// reference it.
func (s *categoryService) DeleteCategory(userID, categoryID uint) error {
	category, err := s.GetCategoryByID(userID, categoryID)
	if err != nil {
		return err
	}

	var itemCount int64
	s.db.Model(&models.BudgetItem{}).Where("category_id = ?", categoryID).Count(&itemCount)
	if itemCount > 0 {
		return apperrors.WithMessage(apperrors.ErrCategoryInUse, "Category is referenced by budget items")
	}

	var expenseCount int64
	s.db.Model(&models.Expense{}).Where("category_id = ?", categoryID).Count(&expenseCount)
	if expenseCount > 0 {
		return apperrors.WithMessage(apperrors.ErrCategoryInUse, "Category is referenced by expenses")
	}

	if err := s.db.Delete(category).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
