package services

import (
	portsrepo "github.com/SscSPs/wallet_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/wallet_ledger_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Currency catalog first since the other services validate codes through it.
	container.Currency = NewCurrencyService(repos.CurrencyRepo)
	container.ExchangeRate = NewExchangeRateService(repos.ExchangeRateRepo, container.Currency)
	container.Wallet = NewWalletService(repos.WalletRepo, container.Currency)
	container.Ledger = NewLedgerService(repos.LedgerRepo, container.Wallet, container.ExchangeRate, container.Currency)

	return container
}
