package ledger

import (
	"sort"
	"time"

	"github.com/kartikn/roomfund/internal/models"
)

// civilZone is the fixed offset used to bucket expenses into calendar days.
// Rooms operate on IST days (UTC+5:30) no matter where the server runs;
// deriving "today" from the machine's local zone is exactly the bug this
// fixed anchor exists to prevent.
var civilZone = time.FixedZone("UTC+05:30", 5*3600+30*60)

// DailyTotal is the total spend for one civil day.
type DailyTotal struct {
	Date  string // "YYYY-MM-DD" in civilZone
	Total float64
}

// DailyTotals groups expenses by the civil date of their creation timestamp
// and sums the amounts, most recent day first. It is always recomputed from
// the ledger; there is no persisted running counter to drift out of sync.
func DailyTotals(expenses []models.Expense) []DailyTotal {
	byDate := make(map[string]float64)
	for _, e := range expenses {
		date := time.Unix(e.CreatedAt, 0).In(civilZone).Format("2006-01-02")
		byDate[date] += e.Amount
	}

	totals := make([]DailyTotal, 0, len(byDate))
	for date, total := range byDate {
		totals = append(totals, DailyTotal{Date: date, Total: total})
	}
	sort.Slice(totals, func(i, j int) bool {
		return totals[i].Date > totals[j].Date
	})
	return totals
}
