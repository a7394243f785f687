package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate stores the value of one unit of a currency in base-currency
// units for a specific calendar date. Rows are append-only: at most one rate
// exists per (currency, date) pair and it is never updated or deleted.
type ExchangeRate struct {
	ExchangeRateID string          `json:"exchangeRateID"` // Primary Key (UUID)
	CurrencyCode   string          `json:"currencyCode"`   // FK -> Currency.currencyCode
	RateDate       time.Time       `json:"rateDate"`       // Calendar date the rate is effective for
	Rate           decimal.Decimal `json:"rate"`           // Positive; 1 unit of currency in base units
	CreatedAt      time.Time       `json:"createdAt"`
}
