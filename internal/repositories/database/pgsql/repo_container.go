package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/rentora-app/rentora_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:     newPgxAccountRepository(dbPool),
		JournalRepo:     newPgxJournalRepository(dbPool),
		StockRepo:       newPgxStockRepository(dbPool),
		InvoiceRepo:     newPgxInvoiceRepository(dbPool),
		AccountCardRepo: newPgxAccountCardRepository(dbPool),
		InstrumentRepo:  newPgxInstrumentRepository(dbPool),
		PostingLogRepo:  newPgxPostingLogRepository(dbPool),
	}
}
