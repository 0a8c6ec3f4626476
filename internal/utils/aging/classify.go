package aging

import (
	"time"

	"github.com/rentora-app/rentora_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Bucket labels, in report order. The overdue bucket is distinct from the
// positive day ranges, never folded into them.
const (
	LabelOverdue = "Vadesi Geçmiş"
	Label0To30   = "0-30 Gün"
	Label31To60  = "31-60 Gün"
	Label61To90  = "61-90 Gün"
	Label90Plus  = "90+ Gün"
)

// Item is a classified instrument with its computed days-until-due.
type Item struct {
	Instrument   domain.FinancialInstrument `json:"instrument"`
	DaysUntilDue int                        `json:"daysUntilDue"`
}

// Bucket aggregates the instruments falling into one day range.
type Bucket struct {
	Label  string          `json:"label"`
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
	Items  []Item          `json:"items"`
}

// Report is the full aging classification of a set of instruments.
type Report struct {
	Buckets     []Bucket        `json:"buckets"`
	TotalCount  int             `json:"totalCount"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

// midnight truncates a timestamp to the start of its day in UTC so that the
// day difference is a whole number regardless of time-of-day.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysUntilDue computes the whole-day distance from asOf to due. Negative
// means overdue.
func DaysUntilDue(due, asOf time.Time) int {
	return int(midnight(due).Sub(midnight(asOf)).Hours() / 24)
}

// bucketIndex places a days-until-due value into its half-open range:
// overdue (<0), [0,30), [30,60), [60,90), [90,inf). An item exactly on a
// boundary belongs to the upper-adjacent bucket.
func bucketIndex(days int) int {
	switch {
	case days < 0:
		return 0
	case days < 30:
		return 1
	case days < 60:
		return 2
	case days < 90:
		return 3
	default:
		return 4
	}
}

// Classify partitions the given instruments into aging buckets relative to
// asOf. Every instrument lands in exactly one bucket; the function is total
// and never fails. Bucket amounts sum to the total of the input amounts.
func Classify(instruments []domain.FinancialInstrument, asOf time.Time) Report {
	buckets := []Bucket{
		{Label: LabelOverdue, Amount: decimal.Zero},
		{Label: Label0To30, Amount: decimal.Zero},
		{Label: Label31To60, Amount: decimal.Zero},
		{Label: Label61To90, Amount: decimal.Zero},
		{Label: Label90Plus, Amount: decimal.Zero},
	}

	total := decimal.Zero
	for _, inst := range instruments {
		days := DaysUntilDue(inst.DueDate, asOf)
		idx := bucketIndex(days)
		buckets[idx].Count++
		buckets[idx].Amount = buckets[idx].Amount.Add(inst.Amount)
		buckets[idx].Items = append(buckets[idx].Items, Item{Instrument: inst, DaysUntilDue: days})
		total = total.Add(inst.Amount)
	}

	return Report{
		Buckets:     buckets,
		TotalCount:  len(instruments),
		TotalAmount: total,
	}
}
