package services

import (
	"time"

	portsrepo "github.com/rentora-app/rentora_backend/internal/core/ports/repositories"
	portssvc "github.com/rentora-app/rentora_backend/internal/core/ports/services"
	"github.com/rentora-app/rentora_backend/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Chart = NewChartService(repos.AccountRepo)
	container.Ledger = NewLedgerService(repos.JournalRepo, repos.AccountRepo)
	container.Stock = NewStockService(repos.StockRepo)
	container.AccountCard = NewAccountCardService(repos.AccountCardRepo)
	container.Reporting = NewReportingService(repos.InstrumentRepo)

	// The orchestrator sits on top of the other services.
	container.Posting = NewPostingService(
		container.Chart,
		container.Ledger,
		container.Stock,
		container.AccountCard,
		repos.InvoiceRepo,
		repos.PostingLogRepo,
		cfg.PostingMaxRetries,
		time.Duration(cfg.PostingRetryBackoffMS)*time.Millisecond,
	)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.ChartSvcFacade   = (*chartService)(nil)
	_ portssvc.LedgerSvcFacade  = (*ledgerService)(nil)
	_ portssvc.StockSvcFacade   = (*stockService)(nil)
	_ portssvc.PostingSvcFacade = (*postingService)(nil)
)
