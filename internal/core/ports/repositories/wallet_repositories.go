package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/wallet_ledger_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// WalletReader defines read operations for wallet data
type WalletReader interface {
	// FindWalletByName retrieves a wallet by its unique owner name.
	FindWalletByName(ctx context.Context, name string) (*domain.Wallet, error)

	// FindWalletsByNames retrieves multiple wallets keyed by owner name.
	FindWalletsByNames(ctx context.Context, names []string) (map[string]domain.Wallet, error)
}

// WalletWriter defines write operations for wallet data
type WalletWriter interface {
	// SaveWallet persists a new wallet. A duplicate owner name is
	// apperrors.ErrDuplicate.
	SaveWallet(ctx context.Context, wallet domain.Wallet) error
}

// WalletTransactionSupport defines operations used inside ledger transactions.
type WalletTransactionSupport interface {
	// FindWalletsByNamesForUpdate selects wallets in a fixed total order
	// (by name) and locks the rows for the duration of the transaction.
	FindWalletsByNamesForUpdate(ctx context.Context, tx pgx.Tx, names []string) (map[string]domain.Wallet, error)

	// AdjustWalletBalancesInTx applies signed balance deltas, keyed by
	// wallet ID, to previously locked wallets within the given transaction.
	// A delta that would make a balance negative is
	// apperrors.ErrInsufficientFunds.
	AdjustWalletBalancesInTx(ctx context.Context, tx pgx.Tx, deltas map[string]decimal.Decimal, now time.Time) error
}

// WalletRepositoryFacade combines all wallet-related repository interfaces
type WalletRepositoryFacade interface {
	WalletReader
	WalletWriter
	WalletTransactionSupport
}

// WalletRepositoryWithTx extends WalletRepositoryFacade with transaction capabilities
type WalletRepositoryWithTx interface {
	WalletRepositoryFacade
	TransactionManager
}
