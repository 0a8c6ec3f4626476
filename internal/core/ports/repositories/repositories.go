package repositories

// RepositoryProvider holds all the repositories the service layer depends on.
type RepositoryProvider struct {
	AccountRepo     AccountRepositoryFacade
	JournalRepo     JournalRepositoryWithTx
	StockRepo       StockRepositoryWithTx
	InvoiceRepo     InvoiceRepository
	AccountCardRepo AccountCardRepository
	InstrumentRepo  InstrumentRepository
	PostingLogRepo  PostingLogRepository
}
