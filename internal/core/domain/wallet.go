package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet is a customer's single-currency balance account. The owner name is
// the unique external identity; the currency is fixed for the wallet's
// lifetime. Balance carries a 2-digit scale and never goes negative; it is
// mutated only through the ledger's atomic operations.
type Wallet struct {
	WalletID      string          `json:"walletID"` // Primary Key (UUID)
	Name          string          `json:"name"`     // Unique owner name
	Country       string          `json:"country"`
	City          string          `json:"city"`
	CurrencyCode  string          `json:"currencyCode"` // FK -> Currency.currencyCode
	Balance       decimal.Decimal `json:"balance"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}
