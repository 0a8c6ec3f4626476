package services

import (
	"context"
	"time"

	"github.com/rentora-app/rentora_backend/internal/core/domain"
	"github.com/rentora-app/rentora_backend/internal/utils/aging"
)

// AgingReport is an aging classification of open financial instruments
// split by side.
type AgingReport struct {
	Receivable aging.Report
	Payable    aging.Report
}

// ReportingSvcFacade produces read-only reports over ledger data.
type ReportingSvcFacade interface {
	// AgingFor classifies the company's open instruments into due-date
	// buckets as of the given reference time. A non-nil kind restricts the
	// report to checks or promissory notes.
	AgingFor(ctx context.Context, companyID string, kind *domain.InstrumentKind, asOf time.Time) (*AgingReport, error)
}
