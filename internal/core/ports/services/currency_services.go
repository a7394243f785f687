package services

import (
	"context"

	"github.com/SscSPs/wallet_ledger_app/internal/core/domain"
)

// CurrencySvcFacade exposes the closed currency catalog. The set of
// currencies is fixed at seeding time; there are no mutation operations.
type CurrencySvcFacade interface {
	// GetCurrencyByCode retrieves a specific currency by its code.
	GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)

	// ListCurrencies retrieves all available currencies.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}
