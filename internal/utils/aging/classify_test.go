package aging

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/rentora-app/rentora_backend/internal/core/domain"
)

func instrumentDue(due time.Time, amount int64) domain.FinancialInstrument {
	return domain.FinancialInstrument{
		InstrumentID: "inst-" + due.Format("2006-01-02"),
		CompanyID:    "company-1",
		Kind:         domain.InstrumentCheck,
		Side:         domain.SideReceivable,
		Amount:       decimal.NewFromInt(amount),
		DueDate:      due,
		Status:       "portfolio",
	}
}

func TestDaysUntilDue(t *testing.T) {
	asOf := time.Date(2026, 8, 30, 23, 45, 0, 0, time.UTC)

	// Time of day must not influence the whole-day distance
	assert.Equal(t, 0, DaysUntilDue(time.Date(2026, 8, 30, 1, 0, 0, 0, time.UTC), asOf))
	assert.Equal(t, 1, DaysUntilDue(time.Date(2026, 8, 31, 0, 30, 0, 0, time.UTC), asOf))
	assert.Equal(t, -1, DaysUntilDue(time.Date(2026, 8, 29, 23, 59, 0, 0, time.UTC), asOf))
	assert.Equal(t, 30, DaysUntilDue(time.Date(2026, 9, 29, 12, 0, 0, 0, time.UTC), asOf))
}

func TestClassifyBucketBoundaries(t *testing.T) {
	asOf := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	day := func(offset int) time.Time { return asOf.AddDate(0, 0, offset) }

	report := Classify([]domain.FinancialInstrument{
		instrumentDue(day(-1), 10),  // overdue
		instrumentDue(day(0), 20),   // 0-30
		instrumentDue(day(29), 30),  // 0-30
		instrumentDue(day(30), 40),  // boundary day lands in the upper bucket
		instrumentDue(day(59), 50),  // 31-60
		instrumentDue(day(60), 60),  // 61-90
		instrumentDue(day(89), 70),  // 61-90
		instrumentDue(day(90), 80),  // 90+
		instrumentDue(day(365), 90), // 90+
	}, asOf)

	labels := make([]string, len(report.Buckets))
	counts := make([]int, len(report.Buckets))
	for i, b := range report.Buckets {
		labels[i] = b.Label
		counts[i] = b.Count
	}
	assert.Equal(t, []string{LabelOverdue, Label0To30, Label31To60, Label61To90, Label90Plus}, labels)
	assert.Equal(t, []int{1, 2, 2, 2, 2}, counts)

	assert.True(t, report.Buckets[0].Amount.Equal(decimal.NewFromInt(10)))
	assert.True(t, report.Buckets[1].Amount.Equal(decimal.NewFromInt(50)))
	assert.True(t, report.Buckets[2].Amount.Equal(decimal.NewFromInt(90)))
	assert.True(t, report.Buckets[3].Amount.Equal(decimal.NewFromInt(130)))
	assert.True(t, report.Buckets[4].Amount.Equal(decimal.NewFromInt(170)))
}

func TestClassifyConservation(t *testing.T) {
	asOf := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	instruments := []domain.FinancialInstrument{
		instrumentDue(asOf.AddDate(0, 0, -45), 1250),
		instrumentDue(asOf.AddDate(0, 0, 12), 300),
		instrumentDue(asOf.AddDate(0, 0, 75), 999),
		instrumentDue(asOf.AddDate(0, 1, 0), 417),
	}

	report := Classify(instruments, asOf)

	// Every instrument lands in exactly one bucket and amounts are conserved
	bucketCount := 0
	bucketTotal := decimal.Zero
	for _, b := range report.Buckets {
		bucketCount += b.Count
		bucketTotal = bucketTotal.Add(b.Amount)
		assert.Len(t, b.Items, b.Count)
	}
	assert.Equal(t, len(instruments), bucketCount)
	assert.Equal(t, len(instruments), report.TotalCount)
	assert.True(t, bucketTotal.Equal(report.TotalAmount))
	assert.True(t, report.TotalAmount.Equal(decimal.NewFromInt(2966)))
}

func TestClassifyEmptyInput(t *testing.T) {
	report := Classify(nil, time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC))
	assert.Len(t, report.Buckets, 5, "All buckets are present even when empty")
	assert.Equal(t, 0, report.TotalCount)
	assert.True(t, report.TotalAmount.IsZero())
	for _, b := range report.Buckets {
		assert.Equal(t, 0, b.Count)
		assert.True(t, b.Amount.IsZero())
	}
}
