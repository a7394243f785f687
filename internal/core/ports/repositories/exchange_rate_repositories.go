package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/wallet_ledger_app/internal/core/domain"
)

// ExchangeRateReader defines read operations for exchange rate data
type ExchangeRateReader interface {
	// FindRateByCurrencyAndDate retrieves the rate row for an exact
	// (currency, date) pair. There is no fallback to earlier dates; a miss
	// is apperrors.ErrRateUnavailable.
	FindRateByCurrencyAndDate(ctx context.Context, currencyCode string, date time.Time) (*domain.ExchangeRate, error)
}

// ExchangeRateWriter defines write operations for exchange rate data
type ExchangeRateWriter interface {
	// SaveExchangeRate persists a new exchange rate row. A duplicate
	// (currency, date) pair is apperrors.ErrDuplicate; rows are never
	// overwritten.
	SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error
}

// ExchangeRateRepositoryFacade combines all exchange rate-related repository interfaces
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}
