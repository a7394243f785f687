package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is an append-only ledger record row. FromWalletID is NULL for
// replenishments funded from outside the system.
type Transaction struct {
	TransactionID    string          `db:"transaction_id"`
	FromWalletID     *string         `db:"from_wallet_id"`
	ToWalletID       string          `db:"to_wallet_id"`
	FromAmount       decimal.Decimal `db:"from_amount"`
	FromCurrencyCode string          `db:"from_currency_code"`
	ToAmount         decimal.Decimal `db:"to_amount"`
	DateTime         time.Time       `db:"date_time"`

	// Joined columns for log queries.
	FromWalletName *string `db:"from_wallet_name"`
	ToWalletName   string  `db:"to_wallet_name"`
	ToCurrencyCode string  `db:"to_currency_code"`
}
