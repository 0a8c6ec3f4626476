package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rentora-app/rentora_backend/internal/core/domain"
	portsrepo "github.com/rentora-app/rentora_backend/internal/core/ports/repositories"
	portssvc "github.com/rentora-app/rentora_backend/internal/core/ports/services"
	"github.com/rentora-app/rentora_backend/internal/utils/aging"
)

// reportingService produces read-only reports over ledger data.
type reportingService struct {
	instrumentRepo portsrepo.InstrumentRepository
}

// NewReportingService creates a new reporting service.
func NewReportingService(instrumentRepo portsrepo.InstrumentRepository) portssvc.ReportingSvcFacade {
	return &reportingService{instrumentRepo: instrumentRepo}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// AgingFor classifies the company's open checks and promissory notes into
// due-date buckets, split into a receivable and a payable report. A non-nil
// kind restricts the report to that instrument type.
func (s *reportingService) AgingFor(ctx context.Context, companyID string, kind *domain.InstrumentKind, asOf time.Time) (*portssvc.AgingReport, error) {
	instruments, err := s.instrumentRepo.ListInstruments(ctx, companyID, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to list instruments for company %s: %w", companyID, err)
	}

	var receivable, payable []domain.FinancialInstrument
	for _, inst := range instruments {
		if inst.Side == domain.SidePayable {
			payable = append(payable, inst)
		} else {
			receivable = append(receivable, inst)
		}
	}

	return &portssvc.AgingReport{
		Receivable: aging.Classify(receivable, asOf),
		Payable:    aging.Classify(payable, asOf),
	}, nil
}
