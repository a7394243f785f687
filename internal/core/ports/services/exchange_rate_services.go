package services

import (
	"context"
	"time"

	"github.com/SscSPs/wallet_ledger_app/internal/core/domain"
	"github.com/SscSPs/wallet_ledger_app/internal/dto"
	"github.com/shopspring/decimal"
)

// ExchangeRateReaderSvc defines rate lookups and currency conversion.
type ExchangeRateReaderSvc interface {
	// GetRate returns the base-currency rate for a currency on the given
	// date (today when nil). The base currency itself is always 1.
	GetRate(ctx context.Context, currencyCode string, date *time.Time) (decimal.Decimal, error)

	// Convert computes the equivalent of amount in the target currency via
	// the ratio of the two base rates, rounded half-even to 2 places.
	Convert(ctx context.Context, fromCode, toCode string, amount decimal.Decimal) (decimal.Decimal, error)
}

// ExchangeRateWriterSvc defines write operations for exchange rate data
type ExchangeRateWriterSvc interface {
	// SetRate persists a new exchange rate for a (currency, date) pair.
	SetRate(ctx context.Context, req dto.SetExchangeRateRequest) (*domain.ExchangeRate, error)
}

// ExchangeRateSvcFacade combines all exchange rate-related service interfaces
type ExchangeRateSvcFacade interface {
	ExchangeRateReaderSvc
	ExchangeRateWriterSvc
}
