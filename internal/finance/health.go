// Package finance implements the budget aggregation engine: pure,
// side-effect-free computations over already-fetched ledger rows.
// Callers (services) perform all querying and ownership checks; nothing
// in this package touches the database or the clock. All monetary values
// are decimal to avoid cent-level drift from binary floats.
package finance

import "github.com/shopspring/decimal"

// ItemStatus classifies how a budget item is tracking against its plan.
type ItemStatus string

const (
	StatusHealthy    ItemStatus = "healthy"
	StatusWarning    ItemStatus = "warning"
	StatusOverBudget ItemStatus = "over_budget"
)

var (
	hundred          = decimal.NewFromInt(100)
	warningThreshold = decimal.NewFromInt(80)
	warningWeight    = decimal.NewFromInt(70)

	// One-cent tolerance for the zero-based budgeting check.
	zeroBasedTolerance = decimal.RequireFromString("0.01")
)

// ItemHealth is the computed state of a single budget item. Utilization
// keeps full precision; display rounding happens at serialization time.
type ItemHealth struct {
	BudgetItemID uint
	CategoryName string
	Planned      decimal.Decimal
	Spent        decimal.Decimal
	Remaining    decimal.Decimal
	Utilization  decimal.Decimal
	IsOverBudget bool
	Status       ItemStatus
}

// ComputeItemHealth derives the health of one budget item from its
// planned amount and the expense amounts attributed to it. A zero
// planned amount yields zero utilization. Utilization of exactly 80%
// is still healthy; warning starts strictly above the threshold.
func ComputeItemHealth(itemID uint, categoryName string, planned decimal.Decimal, expenses []decimal.Decimal) ItemHealth {
	spent := decimal.Zero
	for _, amount := range expenses {
		spent = spent.Add(amount)
	}

	utilization := decimal.Zero
	if !planned.IsZero() {
		utilization = spent.Div(planned).Mul(hundred)
	}

	health := ItemHealth{
		BudgetItemID: itemID,
		CategoryName: categoryName,
		Planned:      planned,
		Spent:        spent,
		Remaining:    planned.Sub(spent),
		Utilization:  utilization,
		IsOverBudget: spent.GreaterThan(planned),
	}

	switch {
	case health.IsOverBudget:
		health.Status = StatusOverBudget
	case utilization.GreaterThan(warningThreshold):
		health.Status = StatusWarning
	default:
		health.Status = StatusHealthy
	}
	return health
}

// HealthScore computes the weighted budget health score in [0, 100]:
// healthy items contribute 100 points, warning items 70, over-budget
// items 0, averaged over all items and rounded to one decimal. An empty
// budget scores a vacuous 100.
func HealthScore(items []ItemHealth) decimal.Decimal {
	if len(items) == 0 {
		return hundred
	}

	score := decimal.Zero
	for _, item := range items {
		switch item.Status {
		case StatusHealthy:
			score = score.Add(hundred)
		case StatusWarning:
			score = score.Add(warningWeight)
		}
	}
	return score.Div(decimal.NewFromInt(int64(len(items)))).Round(1)
}

// BudgetSummary aggregates a whole budget: plan totals, actuals, and the
// zero-based budgeting reconciliation. Savings and Balance are both
// income minus expenses; the API exposes the two names separately.
type BudgetSummary struct {
	TotalPlanned     decimal.Decimal
	TotalIncome      decimal.Decimal
	TotalExpenses    decimal.Decimal
	Savings          decimal.Decimal
	Balance          decimal.Decimal
	Unallocated      decimal.Decimal
	OverBudgetItems  int
	UnderBudgetItems int
	HealthScore      decimal.Decimal
	IsZeroBased      bool
}

// ComputeBudgetSummary reduces the item health list plus the budget's
// income and expense amounts into a BudgetSummary. An item counts as
// under budget when it still has a positive remaining amount.
func ComputeBudgetSummary(items []ItemHealth, incomes, expenses []decimal.Decimal) BudgetSummary {
	totalPlanned := decimal.Zero
	overBudget := 0
	underBudget := 0
	for _, item := range items {
		totalPlanned = totalPlanned.Add(item.Planned)
		if item.IsOverBudget {
			overBudget++
		}
		if item.Remaining.IsPositive() {
			underBudget++
		}
	}

	totalIncome := decimal.Zero
	for _, amount := range incomes {
		totalIncome = totalIncome.Add(amount)
	}
	totalExpenses := decimal.Zero
	for _, amount := range expenses {
		totalExpenses = totalExpenses.Add(amount)
	}

	net := totalIncome.Sub(totalExpenses)
	unallocated := totalIncome.Sub(totalPlanned)

	return BudgetSummary{
		TotalPlanned:     totalPlanned,
		TotalIncome:      totalIncome,
		TotalExpenses:    totalExpenses,
		Savings:          net,
		Balance:          net,
		Unallocated:      unallocated,
		OverBudgetItems:  overBudget,
		UnderBudgetItems: underBudget,
		HealthScore:      HealthScore(items),
		IsZeroBased:      unallocated.Abs().LessThan(zeroBasedTolerance),
	}
}

// PercentChange returns ((current-previous)/previous)*100 rounded to two
// decimals, or zero when previous is not positive. Zero, never NaN or
// infinity, is the documented answer for a zero base.
func PercentChange(current, previous decimal.Decimal) decimal.Decimal {
	if !previous.IsPositive() {
		return decimal.Zero
	}
	return current.Sub(previous).Div(previous).Mul(hundred).Round(2)
}
