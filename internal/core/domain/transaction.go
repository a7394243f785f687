package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OutsideSource is the display name used for transactions with no source
// wallet (external funding via replenishment).
const OutsideSource = "outside"

// Transaction is an immutable record of one successful ledger operation. A
// nil FromWalletID means the funds came from outside the system. The
// destination amount is denominated in the destination wallet's currency;
// since wallets never change currency that currency is reconstructible from
// the destination wallet and is not stored separately.
type Transaction struct {
	TransactionID    string          `json:"transactionID"` // Primary Key (UUID)
	FromWalletID     *string         `json:"fromWalletID"`  // FK -> Wallet.walletID, nil for external funding
	ToWalletID       string          `json:"toWalletID"`    // FK -> Wallet.walletID
	FromAmount       decimal.Decimal `json:"fromAmount"`
	FromCurrencyCode string          `json:"fromCurrencyCode"` // FK -> Currency.currencyCode
	ToAmount         decimal.Decimal `json:"toAmount"`
	DateTime         time.Time       `json:"dateTime"`

	// Denormalized fields populated by log queries for presentation; not
	// persisted on the transaction row itself.
	FromWalletName *string `json:"fromWalletName,omitempty"`
	ToWalletName   string  `json:"toWalletName,omitempty"`
	ToCurrencyCode string  `json:"toCurrencyCode,omitempty"`
}

// SourceName returns the source wallet name for display, or OutsideSource
// when the transaction was externally funded.
func (t Transaction) SourceName() string {
	if t.FromWalletName == nil {
		return OutsideSource
	}
	return *t.FromWalletName
}
