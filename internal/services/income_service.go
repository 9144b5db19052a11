package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "budgetwise/internal/errors"
	"budgetwise/internal/models"
	"budgetwise/internal/pagination"
)

// incomeService handles income-related business logic.
type incomeService struct {
	db      *gorm.DB
	budgets BudgetServicer
}

// NewIncomeService creates a new IncomeServicer.
func NewIncomeService(db *gorm.DB, budgets BudgetServicer) IncomeServicer {
	return &incomeService{db: db, budgets: budgets}
}

// ListIncomes returns the user's incomes newest first, filtered and
// paginated.
func (s *incomeService) ListIncomes(userID uint, filter IncomeFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Income], error) {
	query := s.db.Model(&models.Income{}).Where("user_id = ?", userID)

	if filter.BudgetID != nil {
		query = query.Where("budget_id = ?", *filter.BudgetID)
	}
	if filter.StartDate != nil {
		query = query.Where("date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("date <= ?", *filter.EndDate)
	}
	if filter.MinAmount != nil {
		query = query.Where("amount >= ?", *filter.MinAmount)
	}
	if filter.MaxAmount != nil {
		query = query.Where("amount <= ?", *filter.MaxAmount)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("source LIKE ? OR note LIKE ?", pattern, pattern)
	}

	query = query.Order("date DESC, id DESC")

	response, err := pagination.Find[models.Income](query, page)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return response, nil
}

// CreateIncome records an income against a budget the user owns.
func (s *incomeService) CreateIncome(userID uint, input IncomeInput) (*models.Income, error) {
	if _, err := s.budgets.GetBudgetByID(userID, input.BudgetID); err != nil {
		return nil, err
	}

	income := &models.Income{
		UserID:   userID,
		BudgetID: input.BudgetID,
		Date:     input.Date,
		Amount:   input.Amount,
		Source:   input.Source,
		Note:     input.Note,
	}
	if err := s.db.Create(income).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return income, nil
}

// GetIncomeByID retrieves an income after checking ownership.
func (s *incomeService) GetIncomeByID(userID, incomeID uint) (*models.Income, error) {
	var income models.Income
	if err := s.db.First(&income, incomeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrIncomeNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if income.UserID != userID {
		return nil, apperrors.ErrForbidden
	}
	return &income, nil
}

// UpdateIncome rewrites an income, re-checking budget ownership when the
// income moves.
func (s *incomeService) UpdateIncome(userID, incomeID uint, input IncomeInput) (*models.Income, error) {
	income, err := s.GetIncomeByID(userID, incomeID)
	if err != nil {
		return nil, err
	}
	if _, err := s.budgets.GetBudgetByID(userID, input.BudgetID); err != nil {
		return nil, err
	}

	income.BudgetID = input.BudgetID
	income.Date = input.Date
	income.Amount = input.Amount
	income.Source = input.Source
	income.Note = input.Note

	if err := s.db.Save(income).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return income, nil
}

// DeleteIncome removes an income.
func (s *incomeService) DeleteIncome(userID, incomeID uint) error {
	income, err := s.GetIncomeByID(userID, incomeID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(income).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
