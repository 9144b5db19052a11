package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "budgetwise/internal/errors"
	"budgetwise/internal/finance"
	"budgetwise/internal/models"
)

// BudgetItemHealth is the per-item health view rendered inside a budget
// detail. Amounts are fixed to two decimal places, utilization to one.
type BudgetItemHealth struct {
	ID                    uint               `json:"id"`
	CategoryID            uint               `json:"category_id"`
	Category              string             `json:"category"`
	PlannedAmount         string             `json:"planned_amount"`
	SpentAmount           string             `json:"spent_amount"`
	RemainingAmount       string             `json:"remaining_amount"`
	UtilizationPercentage string             `json:"utilization_percentage"`
	IsOverBudget          bool               `json:"is_over_budget"`
	Status                finance.ItemStatus `json:"status"`
}

// BudgetSummaryView is the rendered summary block of a budget detail.
type BudgetSummaryView struct {
	TotalPlanned          string  `json:"total_planned"`
	ActualSpent           string  `json:"actual_spent"`
	TotalIncome           string  `json:"total_income"`
	TotalExpenses         string  `json:"total_expenses"`
	Savings               string  `json:"savings"`
	Balance               string  `json:"balance"`
	UnallocatedIncome     string  `json:"unallocated_income"`
	OverBudgetItemsCount  int     `json:"over_budget_items_count"`
	UnderBudgetItemsCount int     `json:"under_budget_items_count"`
	BudgetHealthScore     float64 `json:"budget_health_score"`
	IsZeroBased           bool    `json:"is_zero_based"`
}

// BudgetDetail bundles a budget with its computed summary and item health.
type BudgetDetail struct {
	Budget            *models.Budget     `json:"budget"`
	Summary           BudgetSummaryView  `json:"summary"`
	BudgetItemsHealth []BudgetItemHealth `json:"budget_items_health"`
}

// BudgetListSummary aggregates the user's budgets for the list view.
type BudgetListSummary struct {
	TotalBudgets              int    `json:"total_budgets"`
	CurrentMonthBudgets       int    `json:"current_month_budgets"`
	CurrentMonthPlannedAmount string `json:"current_month_planned_amount"`
	CurrentMonthActualAmount  string `json:"current_month_actual_amount"`
	CurrentMonthBalance       string `json:"current_month_balance"`
}

// BudgetList is the budget index payload.
type BudgetList struct {
	Budgets []models.Budget   `json:"budgets"`
	Summary BudgetListSummary `json:"summary"`
}

// budgetService handles budget-related business logic.
type budgetService struct {
	db *gorm.DB
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db}
}

// CreateBudget creates a budget for the given month. The month is normalized
// to its first day and must be unique per user.
func (s *budgetService) CreateBudget(userID uint, month time.Time, notes *string) (*models.Budget, error) {
	month = models.NormalizeMonth(month)

	var count int64
	s.db.Model(&models.Budget{}).Where("user_id = ? AND month = ?", userID, month).Count(&count)
	if count > 0 {
		return nil, apperrors.ErrBudgetMonthExists
	}

	budget := &models.Budget{
		UserID: userID,
		Month:  month,
		Notes:  notes,
	}
	if err := s.db.Create(budget).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budget, nil
}

// GetUserBudgets lists the user's budgets newest first, with an aggregate
// summary focused on the month containing now.
func (s *budgetService) GetUserBudgets(userID uint, now time.Time) (*BudgetList, error) {
	var budgets []models.Budget
	err := s.db.Where("user_id = ?", userID).
		Preload("BudgetItems").
		Preload("BudgetItems.Category").
		Order("month DESC").
		Find(&budgets).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	currentMonth := models.NormalizeMonth(now)
	summary := BudgetListSummary{TotalBudgets: len(budgets)}
	planned := decimal.Zero
	actual := decimal.Zero

	for _, budget := range budgets {
		if !budget.Month.Equal(currentMonth) {
			continue
		}
		summary.CurrentMonthBudgets++
		for _, item := range budget.BudgetItems {
			planned = planned.Add(item.PlannedAmount)
		}
		spent, err := s.totalSpent(budget.ID)
		if err != nil {
			return nil, err
		}
		actual = actual.Add(spent)
	}

	summary.CurrentMonthPlannedAmount = planned.StringFixed(2)
	summary.CurrentMonthActualAmount = actual.StringFixed(2)
	summary.CurrentMonthBalance = planned.Sub(actual).StringFixed(2)

	return &BudgetList{Budgets: budgets, Summary: summary}, nil
}

// GetOrCreateBudgetForMonth returns the user's budget for the month,
// creating an empty one when it does not exist yet.
func (s *budgetService) GetOrCreateBudgetForMonth(userID uint, month time.Time) (*models.Budget, error) {
	month = models.NormalizeMonth(month)

	var budget models.Budget
	err := s.db.Where("user_id = ? AND month = ?", userID, month).First(&budget).Error
	if err == nil {
		return &budget, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.CreateBudget(userID, month, nil)
}

// GetBudgetByID retrieves a budget after checking ownership.
func (s *budgetService) GetBudgetByID(userID, budgetID uint) (*models.Budget, error) {
	var budget models.Budget
	if err := s.db.First(&budget, budgetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if budget.UserID != userID {
		return nil, apperrors.ErrForbidden
	}
	return &budget, nil
}

// GetBudgetDetail loads a budget with its items and computes per-item health
// and the budget summary. Spending attributes to items by budget_item_id.
func (s *budgetService) GetBudgetDetail(userID, budgetID uint) (*BudgetDetail, error) {
	budget, err := s.GetBudgetByID(userID, budgetID)
	if err != nil {
		return nil, err
	}

	err = s.db.Preload("BudgetItems").
		Preload("BudgetItems.Category").
		Preload("Incomes").
		First(budget, budget.ID).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var expenses []models.Expense
	if err := s.db.Where("budget_id = ?", budget.ID).Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	spentByItem := make(map[uint][]decimal.Decimal)
	for _, expense := range expenses {
		spentByItem[expense.BudgetItemID] = append(spentByItem[expense.BudgetItemID], expense.Amount)
	}

	itemHealths := make([]finance.ItemHealth, 0, len(budget.BudgetItems))
	for _, item := range budget.BudgetItems {
		categoryName := ""
		if item.Category != nil {
			categoryName = item.Category.Name
		}
		itemHealths = append(itemHealths, finance.ComputeItemHealth(item.ID, categoryName, item.PlannedAmount, spentByItem[item.ID]))
	}

	incomes := make([]decimal.Decimal, 0, len(budget.Incomes))
	for _, income := range budget.Incomes {
		incomes = append(incomes, income.Amount)
	}
	allExpenses := make([]decimal.Decimal, 0, len(expenses))
	for _, expense := range expenses {
		allExpenses = append(allExpenses, expense.Amount)
	}

	summary := finance.ComputeBudgetSummary(itemHealths, incomes, allExpenses)

	detail := &BudgetDetail{
		Budget:            budget,
		Summary:           renderBudgetSummary(summary),
		BudgetItemsHealth: make([]BudgetItemHealth, 0, len(itemHealths)),
	}
	for i, health := range itemHealths {
		detail.BudgetItemsHealth = append(detail.BudgetItemsHealth, BudgetItemHealth{
			ID:                    health.BudgetItemID,
			CategoryID:            budget.BudgetItems[i].CategoryID,
			Category:              health.CategoryName,
			PlannedAmount:         health.Planned.StringFixed(2),
			SpentAmount:           health.Spent.StringFixed(2),
			RemainingAmount:       health.Remaining.StringFixed(2),
			UtilizationPercentage: health.Utilization.StringFixed(1),
			IsOverBudget:          health.Status == finance.StatusOverBudget,
			Status:                health.Status,
		})
	}
	return detail, nil
}

// UpdateBudget changes a budget's month or notes. Moving to a month that
// already has another budget conflicts.
func (s *budgetService) UpdateBudget(userID, budgetID uint, month time.Time, notes *string) (*models.Budget, error) {
	budget, err := s.GetBudgetByID(userID, budgetID)
	if err != nil {
		return nil, err
	}

	month = models.NormalizeMonth(month)

	var count int64
	s.db.Model(&models.Budget{}).
		Where("user_id = ? AND month = ? AND id <> ?", userID, month, budgetID).
		Count(&count)
	if count > 0 {
		return nil, apperrors.ErrBudgetMonthExists
	}

	budget.Month = month
	budget.Notes = notes
	if err := s.db.Save(budget).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budget, nil
}

// DeleteBudget removes a budget and everything recorded under it in one
// transaction.
func (s *budgetService) DeleteBudget(userID, budgetID uint) error {
	budget, err := s.GetBudgetByID(userID, budgetID)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("budget_id = ?", budget.ID).Delete(&models.Expense{}).Error; err != nil {
			return err
		}
		if err := tx.Where("budget_id = ?", budget.ID).Delete(&models.Income{}).Error; err != nil {
			return err
		}
		if err := tx.Where("budget_id = ?", budget.ID).Delete(&models.BudgetItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(budget).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// totalSpent returns the sum of expense amounts recorded under a budget.
func (s *budgetService) totalSpent(budgetID uint) (decimal.Decimal, error) {
	var expenses []models.Expense
	if err := s.db.Select("amount").Where("budget_id = ?", budgetID).Find(&expenses).Error; err != nil {
		return decimal.Zero, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	total := decimal.Zero
	for _, expense := range expenses {
		total = total.Add(expense.Amount)
	}
	return total, nil
}

// renderBudgetSummary formats engine output for the API surface.
func renderBudgetSummary(summary finance.BudgetSummary) BudgetSummaryView {
	score, _ := summary.HealthScore.Float64()
	return BudgetSummaryView{
		TotalPlanned:          summary.TotalPlanned.StringFixed(2),
		ActualSpent:           summary.TotalExpenses.StringFixed(2),
		TotalIncome:           summary.TotalIncome.StringFixed(2),
		TotalExpenses:         summary.TotalExpenses.StringFixed(2),
		Savings:               summary.Savings.StringFixed(2),
		Balance:               summary.Balance.StringFixed(2),
		UnallocatedIncome:     summary.Unallocated.StringFixed(2),
		OverBudgetItemsCount:  summary.OverBudgetItems,
		UnderBudgetItemsCount: summary.UnderBudgetItems,
		BudgetHealthScore:     score,
		IsZeroBased:           summary.IsZeroBased,
	}
}
