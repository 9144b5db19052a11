package finance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Velocity projects end-of-period spending from the daily spend rate so
// far. Monetary fields and the progress percentage are rounded to two
// decimals for display.
type Velocity struct {
	DaysTotal          int
	DaysElapsed        int
	DaysRemaining      int
	PeriodProgress     decimal.Decimal
	DailyBudget        decimal.Decimal
	ActualDailySpend   decimal.Decimal
	ProjectedPeriodEnd decimal.Decimal
	OnTrack            bool
}

// ComputeVelocity derives spending velocity for the period [start, end]
// (inclusive calendar days) as of now. DaysElapsed is clamped to
// [1, DaysTotal]: once the period is over the projection equals actual
// spend instead of decaying as the clock keeps running. Division by zero
// spans yields zero rates.
func ComputeVelocity(start, end time.Time, totalBudgeted, totalSpent decimal.Decimal, now time.Time) Velocity {
	daysTotal := daysBetween(start, end) + 1
	if daysTotal < 0 {
		daysTotal = 0
	}

	daysElapsed := daysBetween(start, now) + 1
	if daysElapsed < 1 {
		daysElapsed = 1
	}
	if daysElapsed > daysTotal {
		daysElapsed = daysTotal
	}

	daysRemaining := daysTotal - daysElapsed
	if daysRemaining < 0 {
		daysRemaining = 0
	}

	progress := decimal.Zero
	dailyBudget := decimal.Zero
	if daysTotal > 0 {
		total := decimal.NewFromInt(int64(daysTotal))
		progress = decimal.NewFromInt(int64(daysElapsed)).Div(total).Mul(hundred).Round(2)
		dailyBudget = totalBudgeted.Div(total)
	}

	actualDaily := decimal.Zero
	if daysElapsed > 0 {
		actualDaily = totalSpent.Div(decimal.NewFromInt(int64(daysElapsed)))
	}

	projected := actualDaily.Mul(decimal.NewFromInt(int64(daysTotal)))

	return Velocity{
		DaysTotal:          daysTotal,
		DaysElapsed:        daysElapsed,
		DaysRemaining:      daysRemaining,
		PeriodProgress:     progress,
		DailyBudget:        dailyBudget.Round(2),
		ActualDailySpend:   actualDaily.Round(2),
		ProjectedPeriodEnd: projected.Round(2),
		OnTrack:            projected.LessThanOrEqual(totalBudgeted),
	}
}

// daysBetween counts whole calendar days from a to b, ignoring the time
// of day of either bound.
func daysBetween(a, b time.Time) int {
	a = time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	b = time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
