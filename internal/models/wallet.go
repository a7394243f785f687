package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet represents a customer's wallet row. Name is unique; balance is
// constrained non-negative at the database level as well as in the ledger.
type Wallet struct {
	WalletID      string          `db:"wallet_id"`
	Name          string          `db:"name"`
	Country       string          `db:"country"`
	City          string          `db:"city"`
	CurrencyCode  string          `db:"currency_code"`
	Balance       decimal.Decimal `db:"balance"`
	CreatedAt     time.Time       `db:"created_at"`
	LastUpdatedAt time.Time       `db:"last_updated_at"`
}
