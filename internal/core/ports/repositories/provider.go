package repositories

// RepositoryProvider bundles the repository implementations handed to the
// service layer at startup.
type RepositoryProvider struct {
	CurrencyRepo     CurrencyRepositoryFacade
	ExchangeRateRepo ExchangeRateRepositoryFacade
	WalletRepo       WalletRepositoryFacade
	LedgerRepo       LedgerRepositoryFacade
}
