package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/wallet_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerWriter executes ledger operations as single atomic units: wallet row
// locks, balance adjustments and the transaction append either all commit or
// all roll back.
type LedgerWriter interface {
	// ExecuteReplenishment credits toAmount to the named wallet and appends
	// one transaction record with no source wallet.
	ExecuteReplenishment(ctx context.Context, walletName string, fromAmount decimal.Decimal, fromCurrencyCode string, toAmount decimal.Decimal, now time.Time) (*domain.Wallet, error)

	// ExecuteTransfer debits fromAmount from the source wallet, credits
	// toAmount to the destination wallet and appends one transaction
	// record. Returns the refreshed wallets ordered [from, to].
	ExecuteTransfer(ctx context.Context, fromName, toName string, fromAmount decimal.Decimal, fromCurrencyCode string, toAmount decimal.Decimal, now time.Time) ([]domain.Wallet, error)
}

// TransactionLogReader defines read operations over the append-only log.
type TransactionLogReader interface {
	// ListTransactions returns all transactions where the named customer is
	// source or destination, bounded by the optional inclusive dates,
	// ordered by date_time then transaction_id ascending.
	ListTransactions(ctx context.Context, customerName string, fromDate, toDate *time.Time) ([]domain.Transaction, error)
}

// LedgerRepositoryFacade combines the ledger write and log read interfaces.
type LedgerRepositoryFacade interface {
	LedgerWriter
	TransactionLogReader
}
