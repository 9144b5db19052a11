package services

import (
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "budgetwise/internal/errors"
	"budgetwise/internal/finance"
	"budgetwise/internal/models"
)

// PeriodTotals rolls income, expenses, and their difference up over one
// aggregation window.
type PeriodTotals struct {
	Income   string `json:"income"`
	Expenses string `json:"expenses"`
	Net      string `json:"net"`
}

// DashboardOverview compares the current month against the previous one
// and carries the year-to-date and all-time roll-ups.
type DashboardOverview struct {
	CurrentMonthIncome   string       `json:"current_month_income"`
	CurrentMonthExpenses string       `json:"current_month_expenses"`
	CurrentMonthSavings  string       `json:"current_month_savings"`
	IncomeChange         float64      `json:"income_change"`
	ExpenseChange        float64      `json:"expense_change"`
	YearToDate           PeriodTotals `json:"year_to_date"`
	AllTime              PeriodTotals `json:"all_time"`
}

// TopCategory is one entry of the dashboard's current-month spend ranking.
type TopCategory struct {
	CategoryID uint   `json:"category_id"`
	Category   string `json:"category"`
	Total      string `json:"total"`
}

// ActiveBudget is the dashboard's condensed view of a current-month budget.
type ActiveBudget struct {
	BudgetID        uint    `json:"budget_id"`
	Month           string  `json:"month"`
	TotalPlanned    string  `json:"total_planned"`
	TotalSpent      string  `json:"total_spent"`
	RemainingAmount string  `json:"remaining_amount"`
	HealthScore     float64 `json:"health_score"`
}

// DashboardReport is the aggregate payload behind the dashboard endpoint.
type DashboardReport struct {
	Overview       DashboardOverview `json:"overview"`
	RecentExpenses []models.Expense  `json:"recent_expenses"`
	RecentIncomes  []models.Income   `json:"recent_incomes"`
	TopCategories  []TopCategory     `json:"top_categories"`
	ActiveBudgets  []ActiveBudget    `json:"active_budgets"`
}

// CategoryBreakdown is one slice of a monthly expense breakdown.
type CategoryBreakdown struct {
	CategoryID uint    `json:"category_id"`
	Category   string  `json:"category"`
	Total      string  `json:"total"`
	Percentage float64 `json:"percentage"`
}

// SourceBreakdown is one slice of a monthly income breakdown.
type SourceBreakdown struct {
	Source     string  `json:"source"`
	Total      string  `json:"total"`
	Percentage float64 `json:"percentage"`
}

// MonthlySummaryReport summarizes one calendar month of activity.
type MonthlySummaryReport struct {
	Year               int                 `json:"year"`
	Month              int                 `json:"month"`
	Period             string              `json:"period"`
	TotalIncome        string              `json:"total_income"`
	TotalExpenses      string              `json:"total_expenses"`
	NetSavings         string              `json:"net_savings"`
	SavingsRate        float64             `json:"savings_rate"`
	ExpensesByCategory []CategoryBreakdown `json:"expenses_by_category"`
	IncomeBySource     []SourceBreakdown   `json:"income_by_source"`
}

// BudgetVsActualItem compares one item's plan against the category's actual
// spending inside the budget period.
type BudgetVsActualItem struct {
	CategoryID     uint               `json:"category_id"`
	Category       string             `json:"category"`
	Budgeted       string             `json:"budgeted"`
	Actual         string             `json:"actual"`
	Variance       string             `json:"variance"`
	PercentageUsed float64            `json:"percentage_used"`
	Status         finance.ItemStatus `json:"status"`
	IsOverBudget   bool               `json:"is_over_budget"`
}

// BudgetVsActualReport is the plan-versus-actual payload for a budget.
type BudgetVsActualReport struct {
	BudgetID       uint                 `json:"budget_id"`
	Month          string               `json:"month"`
	Items          []BudgetVsActualItem `json:"items"`
	TotalBudgeted  string               `json:"total_budgeted"`
	TotalActual    string               `json:"total_actual"`
	TotalVariance  string               `json:"total_variance"`
	PercentageUsed float64              `json:"percentage_used"`
}

// SpendingTrendsReport carries a monthly spending series over a lookback
// window.
type SpendingTrendsReport struct {
	Period         string               `json:"period"`
	StartDate      string               `json:"start_date"`
	EndDate        string               `json:"end_date"`
	Trends         []finance.TrendPoint `json:"trends"`
	TotalSpent     string               `json:"total_spent"`
	MonthlyAverage string               `json:"monthly_average"`
}

// CurrentMonthItemStat is one item's plan-versus-actual for the running
// month, attributed by category over the month's dates.
type CurrentMonthItemStat struct {
	CategoryID     uint               `json:"category_id"`
	Category       string             `json:"category"`
	Budgeted       string             `json:"budgeted"`
	Spent          string             `json:"spent"`
	Remaining      string             `json:"remaining"`
	PercentageUsed float64            `json:"percentage_used"`
	Status         finance.ItemStatus `json:"status"`
	IsOverBudget   bool               `json:"is_over_budget"`
}

// CategoryHealth counts the running month's budget items by status.
type CategoryHealth struct {
	TotalCategories      int `json:"total_categories"`
	HealthyCategories    int `json:"healthy_categories"`
	WarningCategories    int `json:"warning_categories"`
	OverBudgetCategories int `json:"over_budget_categories"`
}

// VelocityView renders the engine's velocity output for the API surface.
type VelocityView struct {
	DaysTotal          int     `json:"days_total"`
	DaysElapsed        int     `json:"days_elapsed"`
	DaysRemaining      int     `json:"days_remaining"`
	PeriodProgress     float64 `json:"period_progress"`
	DailyBudget        string  `json:"daily_budget"`
	ActualDailySpend   string  `json:"actual_daily_spend"`
	ProjectedPeriodEnd string  `json:"projected_period_end"`
	OnTrack            bool    `json:"on_track"`
}

// CurrentMonthStats reports how the running month's budget is tracking.
// HasBudget false means the user has no budget for this month and every
// other field is zero-valued.
type CurrentMonthStats struct {
	HasBudget      bool                   `json:"has_budget"`
	BudgetID       *uint                  `json:"budget_id,omitempty"`
	Month          string                 `json:"month"`
	TotalBudgeted  string                 `json:"total_budgeted"`
	TotalSpent     string                 `json:"total_spent"`
	Remaining      string                 `json:"remaining"`
	PercentageUsed float64                `json:"percentage_used"`
	Items          []CurrentMonthItemStat `json:"items"`
	CategoryHealth CategoryHealth         `json:"category_health"`
	Velocity       *VelocityView          `json:"velocity,omitempty"`
}

// reportService assembles read-only reports from the ledger.
type reportService struct {
	db      *gorm.DB
	budgets BudgetServicer
}

// NewReportService creates a new ReportServicer.
func NewReportService(db *gorm.DB, budgets BudgetServicer) ReportServicer {
	return &reportService{db: db, budgets: budgets}
}

// Dashboard assembles the home-screen aggregate: a month-over-month
// overview with year-to-date and all-time roll-ups, the five most recent
// expenses and incomes, the current month's top spending categories, and
// the active budgets.
func (s *reportService) Dashboard(userID uint, now time.Time) (*DashboardReport, error) {
	currentStart := models.NormalizeMonth(now)
	currentEnd := currentStart.AddDate(0, 1, -1)
	previousStart := currentStart.AddDate(0, -1, 0)
	previousEnd := currentStart.AddDate(0, 0, -1)
	yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)

	currentIncome, err := s.sumIncomes(userID, currentStart, currentEnd)
	if err != nil {
		return nil, err
	}
	currentExpenses, err := s.sumExpenses(userID, currentStart, currentEnd, nil)
	if err != nil {
		return nil, err
	}
	previousIncome, err := s.sumIncomes(userID, previousStart, previousEnd)
	if err != nil {
		return nil, err
	}
	previousExpenses, err := s.sumExpenses(userID, previousStart, previousEnd, nil)
	if err != nil {
		return nil, err
	}
	ytdIncome, err := s.sumIncomes(userID, yearStart, currentEnd)
	if err != nil {
		return nil, err
	}
	ytdExpenses, err := s.sumExpenses(userID, yearStart, currentEnd, nil)
	if err != nil {
		return nil, err
	}
	allTimeIncome, err := s.sumAllIncomes(userID)
	if err != nil {
		return nil, err
	}
	allTimeExpenses, err := s.sumAllExpenses(userID)
	if err != nil {
		return nil, err
	}

	incomeChange, _ := finance.PercentChange(currentIncome, previousIncome).Float64()
	expenseChange, _ := finance.PercentChange(currentExpenses, previousExpenses).Float64()

	report := &DashboardReport{
		Overview: DashboardOverview{
			CurrentMonthIncome:   currentIncome.StringFixed(2),
			CurrentMonthExpenses: currentExpenses.StringFixed(2),
			CurrentMonthSavings:  currentIncome.Sub(currentExpenses).StringFixed(2),
			IncomeChange:         incomeChange,
			ExpenseChange:        expenseChange,
			YearToDate: PeriodTotals{
				Income:   ytdIncome.StringFixed(2),
				Expenses: ytdExpenses.StringFixed(2),
				Net:      ytdIncome.Sub(ytdExpenses).StringFixed(2),
			},
			AllTime: PeriodTotals{
				Income:   allTimeIncome.StringFixed(2),
				Expenses: allTimeExpenses.StringFixed(2),
				Net:      allTimeIncome.Sub(allTimeExpenses).StringFixed(2),
			},
		},
	}

	err = s.db.Where("user_id = ?", userID).
		Preload("Category").
		Order("date DESC, id DESC").
		Limit(5).
		Find(&report.RecentExpenses).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	err = s.db.Where("user_id = ?", userID).
		Preload("Budget").
		Order("date DESC, id DESC").
		Limit(5).
		Find(&report.RecentIncomes).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	report.TopCategories, err = s.topCategories(userID, currentStart, currentEnd, 5)
	if err != nil {
		return nil, err
	}

	report.ActiveBudgets, err = s.activeBudgets(userID, currentStart)
	if err != nil {
		return nil, err
	}

	return report, nil
}

// CurrentMonthBudgetStats reports plan-versus-actual and spending velocity
// for the month containing now.
func (s *reportService) CurrentMonthBudgetStats(userID uint, now time.Time) (*CurrentMonthStats, error) {
	monthStart := models.NormalizeMonth(now)
	monthEnd := monthStart.AddDate(0, 1, -1)

	var budget models.Budget
	err := s.db.Where("user_id = ? AND month = ?", userID, monthStart).
		Preload("BudgetItems").
		Preload("BudgetItems.Category").
		First(&budget).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &CurrentMonthStats{
				HasBudget: false,
				Month:     monthStart.Format("2006-01"),
				Items:     []CurrentMonthItemStat{},
			}, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	totalBudgeted := decimal.Zero
	totalSpent := decimal.Zero
	items := make([]CurrentMonthItemStat, 0, len(budget.BudgetItems))
	counts := CategoryHealth{TotalCategories: len(budget.BudgetItems)}

	for _, item := range budget.BudgetItems {
		spent, err := s.sumExpenses(userID, monthStart, monthEnd, &item.CategoryID)
		if err != nil {
			return nil, err
		}

		categoryName := ""
		if item.Category != nil {
			categoryName = item.Category.Name
		}
		health := finance.ComputeItemHealth(item.ID, categoryName, item.PlannedAmount, []decimal.Decimal{spent})
		used, _ := health.Utilization.Round(2).Float64()
		switch health.Status {
		case finance.StatusOverBudget:
			counts.OverBudgetCategories++
		case finance.StatusWarning:
			counts.WarningCategories++
		default:
			counts.HealthyCategories++
		}
		items = append(items, CurrentMonthItemStat{
			CategoryID:     item.CategoryID,
			Category:       categoryName,
			Budgeted:       item.PlannedAmount.StringFixed(2),
			Spent:          spent.StringFixed(2),
			Remaining:      health.Remaining.StringFixed(2),
			PercentageUsed: used,
			Status:         health.Status,
			IsOverBudget:   health.IsOverBudget,
		})

		totalBudgeted = totalBudgeted.Add(item.PlannedAmount)
		totalSpent = totalSpent.Add(spent)
	}

	percentageUsed := 0.0
	if totalBudgeted.IsPositive() {
		percentageUsed, _ = totalSpent.Div(totalBudgeted).Mul(decimal.NewFromInt(100)).Round(2).Float64()
	}

	velocity := finance.ComputeVelocity(budget.PeriodStart(), budget.PeriodEnd(), totalBudgeted, totalSpent, now)
	progress, _ := velocity.PeriodProgress.Float64()

	budgetID := budget.ID
	return &CurrentMonthStats{
		HasBudget:      true,
		BudgetID:       &budgetID,
		Month:          monthStart.Format("2006-01"),
		TotalBudgeted:  totalBudgeted.StringFixed(2),
		TotalSpent:     totalSpent.StringFixed(2),
		Remaining:      totalBudgeted.Sub(totalSpent).StringFixed(2),
		PercentageUsed: percentageUsed,
		Items:          items,
		CategoryHealth: counts,
		Velocity: &VelocityView{
			DaysTotal:          velocity.DaysTotal,
			DaysElapsed:        velocity.DaysElapsed,
			DaysRemaining:      velocity.DaysRemaining,
			PeriodProgress:     progress,
			DailyBudget:        velocity.DailyBudget.StringFixed(2),
			ActualDailySpend:   velocity.ActualDailySpend.StringFixed(2),
			ProjectedPeriodEnd: velocity.ProjectedPeriodEnd.StringFixed(2),
			OnTrack:            velocity.OnTrack,
		},
	}, nil
}

// MonthlySummary totals one calendar month and breaks expenses down by
// category and incomes down by source.
func (s *reportService) MonthlySummary(userID uint, year, month int) (*MonthlySummaryReport, error) {
	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)

	var expenses []models.Expense
	err := s.db.Where("user_id = ? AND date >= ? AND date <= ?", userID, monthStart, monthEnd).
		Preload("Category").
		Find(&expenses).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var incomes []models.Income
	err = s.db.Where("user_id = ? AND date >= ? AND date <= ?", userID, monthStart, monthEnd).
		Find(&incomes).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	totalExpenses := decimal.Zero
	byCategory := make(map[uint]*CategoryBreakdown)
	categoryTotals := make(map[uint]decimal.Decimal)
	for _, expense := range expenses {
		totalExpenses = totalExpenses.Add(expense.Amount)
		categoryTotals[expense.CategoryID] = categoryTotals[expense.CategoryID].Add(expense.Amount)
		if _, ok := byCategory[expense.CategoryID]; !ok {
			name := ""
			if expense.Category != nil {
				name = expense.Category.Name
			}
			byCategory[expense.CategoryID] = &CategoryBreakdown{CategoryID: expense.CategoryID, Category: name}
		}
	}

	totalIncome := decimal.Zero
	sourceTotals := make(map[string]decimal.Decimal)
	for _, income := range incomes {
		totalIncome = totalIncome.Add(income.Amount)
		source := "Other"
		if income.Source != nil && *income.Source != "" {
			source = *income.Source
		}
		sourceTotals[source] = sourceTotals[source].Add(income.Amount)
	}

	expensesByCategory := make([]CategoryBreakdown, 0, len(byCategory))
	for categoryID, breakdown := range byCategory {
		total := categoryTotals[categoryID]
		breakdown.Total = total.StringFixed(2)
		breakdown.Percentage = share(total, totalExpenses)
		expensesByCategory = append(expensesByCategory, *breakdown)
	}
	sort.Slice(expensesByCategory, func(i, j int) bool {
		if expensesByCategory[i].Percentage != expensesByCategory[j].Percentage {
			return expensesByCategory[i].Percentage > expensesByCategory[j].Percentage
		}
		return expensesByCategory[i].Category < expensesByCategory[j].Category
	})

	incomeBySource := make([]SourceBreakdown, 0, len(sourceTotals))
	for source, total := range sourceTotals {
		incomeBySource = append(incomeBySource, SourceBreakdown{
			Source:     source,
			Total:      total.StringFixed(2),
			Percentage: share(total, totalIncome),
		})
	}
	sort.Slice(incomeBySource, func(i, j int) bool {
		if incomeBySource[i].Percentage != incomeBySource[j].Percentage {
			return incomeBySource[i].Percentage > incomeBySource[j].Percentage
		}
		return incomeBySource[i].Source < incomeBySource[j].Source
	})

	net := totalIncome.Sub(totalExpenses)
	savingsRate := 0.0
	if totalIncome.IsPositive() {
		savingsRate, _ = net.Div(totalIncome).Mul(decimal.NewFromInt(100)).Round(2).Float64()
	}

	return &MonthlySummaryReport{
		Year:               year,
		Month:              month,
		Period:             monthStart.Format("2006-01"),
		TotalIncome:        totalIncome.StringFixed(2),
		TotalExpenses:      totalExpenses.StringFixed(2),
		NetSavings:         net.StringFixed(2),
		SavingsRate:        savingsRate,
		ExpensesByCategory: expensesByCategory,
		IncomeBySource:     incomeBySource,
	}, nil
}

// BudgetVsActual compares each item's plan to the actual spending recorded
// for the item's category inside the budget period, regardless of which
// budget item an expense was filed under.
func (s *reportService) BudgetVsActual(userID, budgetID uint) (*BudgetVsActualReport, error) {
	budget, err := s.budgets.GetBudgetByID(userID, budgetID)
	if err != nil {
		return nil, err
	}

	var items []models.BudgetItem
	err = s.db.Where("budget_id = ?", budget.ID).
		Preload("Category").
		Find(&items).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	report := &BudgetVsActualReport{
		BudgetID: budget.ID,
		Month:    budget.Month.Format("2006-01"),
		Items:    make([]BudgetVsActualItem, 0, len(items)),
	}
	totalBudgeted := decimal.Zero
	totalActual := decimal.Zero

	for _, item := range items {
		actual, err := s.sumExpenses(userID, budget.PeriodStart(), budget.PeriodEnd(), &item.CategoryID)
		if err != nil {
			return nil, err
		}

		categoryName := ""
		if item.Category != nil {
			categoryName = item.Category.Name
		}
		health := finance.ComputeItemHealth(item.ID, categoryName, item.PlannedAmount, []decimal.Decimal{actual})
		used, _ := health.Utilization.Round(2).Float64()
		report.Items = append(report.Items, BudgetVsActualItem{
			CategoryID:     item.CategoryID,
			Category:       categoryName,
			Budgeted:       item.PlannedAmount.StringFixed(2),
			Actual:         actual.StringFixed(2),
			Variance:       item.PlannedAmount.Sub(actual).StringFixed(2),
			PercentageUsed: used,
			Status:         health.Status,
			IsOverBudget:   health.IsOverBudget,
		})

		totalBudgeted = totalBudgeted.Add(item.PlannedAmount)
		totalActual = totalActual.Add(actual)
	}

	report.TotalBudgeted = totalBudgeted.StringFixed(2)
	report.TotalActual = totalActual.StringFixed(2)
	report.TotalVariance = totalBudgeted.Sub(totalActual).StringFixed(2)
	if totalBudgeted.IsPositive() {
		report.PercentageUsed, _ = totalActual.Div(totalBudgeted).Mul(decimal.NewFromInt(100)).Round(2).Float64()
	}
	return report, nil
}

// SpendingTrends buckets the user's expenses by calendar month over a
// lookback window, optionally narrowed to a single owned category.
func (s *reportService) SpendingTrends(userID uint, period string, categoryID *uint, now time.Time) (*SpendingTrendsReport, error) {
	months := trendMonths(period)
	endDate := models.NormalizeMonth(now).AddDate(0, 1, -1)
	startDate := models.NormalizeMonth(now).AddDate(0, -(months - 1), 0)

	query := s.db.Model(&models.Expense{}).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, startDate, endDate)

	if categoryID != nil {
		var category models.Category
		if err := s.db.First(&category, *categoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrCategoryNotFound
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if category.UserID != userID {
			return nil, apperrors.ErrForbidden
		}
		query = query.Where("category_id = ?", *categoryID)
	}

	var expenses []models.Expense
	if err := query.Select("date, amount").Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	entries := make([]finance.TrendEntry, 0, len(expenses))
	total := decimal.Zero
	for _, expense := range expenses {
		entries = append(entries, finance.TrendEntry{Date: expense.Date, Amount: expense.Amount})
		total = total.Add(expense.Amount)
	}

	trends := finance.BucketMonthly(entries)
	average := decimal.Zero
	if len(trends) > 0 {
		average = total.Div(decimal.NewFromInt(int64(len(trends)))).Round(2)
	}

	return &SpendingTrendsReport{
		Period:         period,
		StartDate:      startDate.Format("2006-01-02"),
		EndDate:        endDate.Format("2006-01-02"),
		Trends:         trends,
		TotalSpent:     total.StringFixed(2),
		MonthlyAverage: average.StringFixed(2),
	}, nil
}

// sumExpenses totals a user's expenses over an inclusive date span,
// optionally for one category.
func (s *reportService) sumExpenses(userID uint, start, end time.Time, categoryID *uint) (decimal.Decimal, error) {
	query := s.db.Model(&models.Expense{}).
		Select("amount").
		Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end)
	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}

	var expenses []models.Expense
	if err := query.Find(&expenses).Error; err != nil {
		return decimal.Zero, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	total := decimal.Zero
	for _, expense := range expenses {
		total = total.Add(expense.Amount)
	}
	return total, nil
}

// sumIncomes totals a user's incomes over an inclusive date span.
func (s *reportService) sumIncomes(userID uint, start, end time.Time) (decimal.Decimal, error) {
	var incomes []models.Income
	err := s.db.Model(&models.Income{}).
		Select("amount").
		Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Find(&incomes).Error
	if err != nil {
		return decimal.Zero, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	total := decimal.Zero
	for _, income := range incomes {
		total = total.Add(income.Amount)
	}
	return total, nil
}

// sumAllExpenses totals every expense the user has ever recorded.
func (s *reportService) sumAllExpenses(userID uint) (decimal.Decimal, error) {
	var expenses []models.Expense
	err := s.db.Model(&models.Expense{}).
		Select("amount").
		Where("user_id = ?", userID).
		Find(&expenses).Error
	if err != nil {
		return decimal.Zero, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	total := decimal.Zero
	for _, expense := range expenses {
		total = total.Add(expense.Amount)
	}
	return total, nil
}

// sumAllIncomes totals every income the user has ever recorded.
func (s *reportService) sumAllIncomes(userID uint) (decimal.Decimal, error) {
	var incomes []models.Income
	err := s.db.Model(&models.Income{}).
		Select("amount").
		Where("user_id = ?", userID).
		Find(&incomes).Error
	if err != nil {
		return decimal.Zero, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	total := decimal.Zero
	for _, income := range incomes {
		total = total.Add(income.Amount)
	}
	return total, nil
}

// topCategories ranks the user's spending by category over a date span.
func (s *reportService) topCategories(userID uint, start, end time.Time, limit int) ([]TopCategory, error) {
	var expenses []models.Expense
	err := s.db.Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Preload("Category").
		Find(&expenses).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	totals := make(map[uint]decimal.Decimal)
	names := make(map[uint]string)
	for _, expense := range expenses {
		totals[expense.CategoryID] = totals[expense.CategoryID].Add(expense.Amount)
		if expense.Category != nil {
			names[expense.CategoryID] = expense.Category.Name
		}
	}

	ranked := make([]TopCategory, 0, len(totals))
	for categoryID, total := range totals {
		ranked = append(ranked, TopCategory{
			CategoryID: categoryID,
			Category:   names[categoryID],
			Total:      total.StringFixed(2),
		})
	}
	sort.Slice(ranked, func(i, j int) bool {
		ti, _ := decimal.NewFromString(ranked[i].Total)
		tj, _ := decimal.NewFromString(ranked[j].Total)
		if !ti.Equal(tj) {
			return ti.GreaterThan(tj)
		}
		return ranked[i].Category < ranked[j].Category
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// activeBudgets summarizes the budgets covering the month that starts at
// currentStart.
func (s *reportService) activeBudgets(userID uint, currentStart time.Time) ([]ActiveBudget, error) {
	var budgets []models.Budget
	err := s.db.Where("user_id = ? AND month = ?", userID, currentStart).
		Preload("BudgetItems").
		Preload("BudgetItems.Category").
		Find(&budgets).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	active := make([]ActiveBudget, 0, len(budgets))
	for _, budget := range budgets {
		var expenses []models.Expense
		if err := s.db.Where("budget_id = ?", budget.ID).Find(&expenses).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		spentByItem := make(map[uint][]decimal.Decimal)
		totalSpent := decimal.Zero
		for _, expense := range expenses {
			spentByItem[expense.BudgetItemID] = append(spentByItem[expense.BudgetItemID], expense.Amount)
			totalSpent = totalSpent.Add(expense.Amount)
		}

		totalPlanned := decimal.Zero
		itemHealths := make([]finance.ItemHealth, 0, len(budget.BudgetItems))
		for _, item := range budget.BudgetItems {
			categoryName := ""
			if item.Category != nil {
				categoryName = item.Category.Name
			}
			itemHealths = append(itemHealths, finance.ComputeItemHealth(item.ID, categoryName, item.PlannedAmount, spentByItem[item.ID]))
			totalPlanned = totalPlanned.Add(item.PlannedAmount)
		}

		score, _ := finance.HealthScore(itemHealths).Float64()
		active = append(active, ActiveBudget{
			BudgetID:        budget.ID,
			Month:           budget.Month.Format("2006-01"),
			TotalPlanned:    totalPlanned.StringFixed(2),
			TotalSpent:      totalSpent.StringFixed(2),
			RemainingAmount: totalPlanned.Sub(totalSpent).StringFixed(2),
			HealthScore:     score,
		})
	}
	return active, nil
}

// trendMonths maps a lookback period name to a month count. Unknown values
// fall back to six months; the binding layer validates the name.
func trendMonths(period string) int {
	switch period {
	case "1year":
		return 12
	case "2years":
		return 24
	default:
		return 6
	}
}

// share returns part/whole as a percentage rounded to two places, zero when
// the whole is not positive.
func share(part, whole decimal.Decimal) float64 {
	if !whole.IsPositive() {
		return 0
	}
	value, _ := part.Div(whole).Mul(decimal.NewFromInt(100)).Round(2).Float64()
	return value
}
