package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate stores the base-currency rate of a currency for one date.
// Unique per (currency_code, rate_date); rows are never updated or deleted.
type ExchangeRate struct {
	ExchangeRateID string          `db:"exchange_rate_id"`
	CurrencyCode   string          `db:"currency_code"`
	RateDate       time.Time       `db:"rate_date"`
	Rate           decimal.Decimal `db:"rate"`
	CreatedAt      time.Time       `db:"created_at"`
}
