package ledger

import (
	"testing"
	"time"

	"github.com/kartikn/roomfund/internal/models"
)

func ts(year int, month time.Month, day, hour, minute int) int64 {
	return time.Date(year, month, day, hour, minute, 0, 0, time.UTC).Unix()
}

func TestDailyTotals(t *testing.T) {
	t.Run("buckets follow the fixed offset, not the server zone", func(t *testing.T) {
		// 19:00Z and 20:00Z are 00:30 and 01:30 the next day at +5:30;
		// 17:59Z is still 23:29 the same day.
		expenses := []models.Expense{
			{ID: "e1", Amount: 100, CreatedAt: ts(2024, time.January, 1, 19, 0)},
			{ID: "e2", Amount: 50, CreatedAt: ts(2024, time.January, 1, 20, 0)},
			{ID: "e3", Amount: 25, CreatedAt: ts(2024, time.January, 1, 17, 59)},
		}

		totals := DailyTotals(expenses)
		if len(totals) != 2 {
			t.Fatalf("bucket count = %d, want 2", len(totals))
		}

		if totals[0].Date != "2024-01-02" || !almostEqual(totals[0].Total, 150) {
			t.Errorf("first bucket = %+v, want 2024-01-02 / 150", totals[0])
		}
		if totals[1].Date != "2024-01-01" || !almostEqual(totals[1].Total, 25) {
			t.Errorf("second bucket = %+v, want 2024-01-01 / 25", totals[1])
		}
	})

	t.Run("ordered most recent day first", func(t *testing.T) {
		expenses := []models.Expense{
			{ID: "e1", Amount: 10, CreatedAt: ts(2024, time.March, 1, 6, 0)},
			{ID: "e2", Amount: 20, CreatedAt: ts(2024, time.March, 5, 6, 0)},
			{ID: "e3", Amount: 30, CreatedAt: ts(2024, time.March, 3, 6, 0)},
		}

		totals := DailyTotals(expenses)
		want := []string{"2024-03-05", "2024-03-03", "2024-03-01"}
		if len(totals) != len(want) {
			t.Fatalf("bucket count = %d, want %d", len(totals), len(want))
		}
		for i, date := range want {
			if totals[i].Date != date {
				t.Errorf("totals[%d].Date = %s, want %s", i, totals[i].Date, date)
			}
		}
	})

	t.Run("no expenses yields no buckets", func(t *testing.T) {
		if totals := DailyTotals(nil); len(totals) != 0 {
			t.Errorf("expected empty result, got %v", totals)
		}
	})
}
