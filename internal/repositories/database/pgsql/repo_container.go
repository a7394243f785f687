package pgsql

import (
	portsrepo "github.com/SscSPs/wallet_ledger_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool Pool) portsrepo.RepositoryProvider {
	currencyRepo := newPgxCurrencyRepository(dbPool)
	exchangeRateRepo := newPgxExchangeRateRepository(dbPool)
	walletRepo := newPgxWalletRepository(dbPool)
	ledgerRepo := newPgxLedgerRepository(dbPool, walletRepo)

	return portsrepo.RepositoryProvider{
		CurrencyRepo:     currencyRepo,
		ExchangeRateRepo: exchangeRateRepo,
		WalletRepo:       walletRepo,
		LedgerRepo:       ledgerRepo,
	}
}
