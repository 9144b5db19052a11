package finance

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// TrendEntry is one dated amount feeding the spending trend report.
type TrendEntry struct {
	Date   time.Time
	Amount decimal.Decimal
}

// TrendPoint is one (year, month) bucket of summed amounts.
type TrendPoint struct {
	Period string
	Year   int
	Month  int
	Total  decimal.Decimal
}

// BucketMonthly groups entries by calendar (year, month), sums each
// bucket, and returns the buckets in chronological order. The Period
// label is YYYY-MM. Grouping happens here rather than in SQL so the
// engine stays free of persistence concerns and behaves identically on
// every database.
func BucketMonthly(entries []TrendEntry) []TrendPoint {
	totals := make(map[int]decimal.Decimal)
	for _, entry := range entries {
		key := entry.Date.Year()*12 + int(entry.Date.Month()) - 1
		totals[key] = totals[key].Add(entry.Amount)
	}

	points := make([]TrendPoint, 0, len(totals))
	for key, total := range totals {
		year := key / 12
		month := key%12 + 1
		points = append(points, TrendPoint{
			Period: fmt.Sprintf("%04d-%02d", year, month),
			Year:   year,
			Month:  month,
			Total:  total,
		})
	}

	sort.Slice(points, func(i, j int) bool {
		if points[i].Year != points[j].Year {
			return points[i].Year < points[j].Year
		}
		return points[i].Month < points[j].Month
	})
	return points
}
