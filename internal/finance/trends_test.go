package finance

import (
	"testing"
	"time"
)

func TestBucketMonthly(t *testing.T) {
	t.Run("groups_and_orders_chronologically", func(t *testing.T) {
		entries := []TrendEntry{
			{Date: date(2025, time.March, 5), Amount: d("20")},
			{Date: date(2024, time.December, 31), Amount: d("5")},
			{Date: date(2025, time.January, 10), Amount: d("10")},
			{Date: date(2025, time.January, 20), Amount: d("15")},
		}

		points := BucketMonthly(entries)
		if len(points) != 3 {
			t.Fatalf("expected 3 buckets, got %d", len(points))
		}

		wantPeriods := []string{"2024-12", "2025-01", "2025-03"}
		for i, want := range wantPeriods {
			if points[i].Period != want {
				t.Errorf("bucket %d: expected period %s, got %s", i, want, points[i].Period)
			}
		}
		if !points[1].Total.Equal(d("25")) {
			t.Errorf("expected 2025-01 total 25, got %s", points[1].Total)
		}
	})

	t.Run("empty_input", func(t *testing.T) {
		if points := BucketMonthly(nil); len(points) != 0 {
			t.Errorf("expected no buckets, got %d", len(points))
		}
	})

	t.Run("year_boundary_keys_do_not_collide", func(t *testing.T) {
		entries := []TrendEntry{
			{Date: date(2024, time.January, 1), Amount: d("1")},
			{Date: date(2025, time.January, 1), Amount: d("2")},
		}
		points := BucketMonthly(entries)
		if len(points) != 2 {
			t.Fatalf("expected 2 buckets, got %d", len(points))
		}
		if points[0].Year != 2024 || points[1].Year != 2025 {
			t.Errorf("unexpected years: %d, %d", points[0].Year, points[1].Year)
		}
	})
}
