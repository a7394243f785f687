package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/wallet_ledger_app/internal/apperrors"
	"github.com/SscSPs/wallet_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/wallet_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/wallet_ledger_app/internal/models"
	"github.com/SscSPs/wallet_ledger_app/internal/utils/mapping"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const insertTransactionQuery = `
	INSERT INTO transactions (transaction_id, from_wallet_id, to_wallet_id, from_amount, from_currency_code, to_amount, date_time)
	VALUES ($1, $2, $3, $4, $5, $6, $7);
`

type PgxLedgerRepository struct {
	BaseRepository
	walletRepo portsrepo.WalletRepositoryFacade
}

// newPgxLedgerRepository creates a new repository for ledger operations and
// the transaction log.
func newPgxLedgerRepository(pool Pool, walletRepo portsrepo.WalletRepositoryFacade) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
		walletRepo:     walletRepo,
	}
}

// Ensure implementation matches interface
var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

// ExecuteReplenishment credits toAmount to the named wallet and appends one
// transaction record with no source wallet, all within one DB transaction.
func (r *PgxLedgerRepository) ExecuteReplenishment(ctx context.Context, walletName string, fromAmount decimal.Decimal, fromCurrencyCode string, toAmount decimal.Decimal, now time.Time) (*domain.Wallet, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx) // No-op once committed

	// 1. Lock the destination wallet row
	locked, err := r.walletRepo.FindWalletsByNamesForUpdate(ctx, tx, []string{walletName})
	if err != nil {
		return nil, fmt.Errorf("failed to lock wallet for replenishment: %w", err)
	}
	wallet := locked[walletName]

	// 2. Credit the balance
	deltas := map[string]decimal.Decimal{wallet.WalletID: toAmount}
	if err := r.walletRepo.AdjustWalletBalancesInTx(ctx, tx, deltas, now); err != nil {
		return nil, fmt.Errorf("failed to credit wallet %s: %w", wallet.WalletID, err)
	}

	// 3. Append the transaction record
	_, err = tx.Exec(ctx, insertTransactionQuery,
		uuid.NewString(),
		nil, // funded from outside the system
		wallet.WalletID,
		fromAmount,
		fromCurrencyCode,
		toAmount,
		now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert replenishment transaction: %w", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	wallet.Balance = wallet.Balance.Add(toAmount)
	wallet.LastUpdatedAt = now
	return &wallet, nil
}

// ExecuteTransfer debits fromAmount from the source wallet, credits toAmount
// to the destination wallet and appends one transaction record, all within
// one DB transaction. The funds check runs against the locked source row, so
// a concurrent debit cannot slip past it.
func (r *PgxLedgerRepository) ExecuteTransfer(ctx context.Context, fromName, toName string, fromAmount decimal.Decimal, fromCurrencyCode string, toAmount decimal.Decimal, now time.Time) ([]domain.Wallet, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx) // No-op once committed

	// 1. Lock both wallet rows in name order
	locked, err := r.walletRepo.FindWalletsByNamesForUpdate(ctx, tx, []string{fromName, toName})
	if err != nil {
		return nil, fmt.Errorf("failed to lock wallets for transfer: %w", err)
	}
	from := locked[fromName]
	to := locked[toName]

	// 2. Authoritative funds check on the locked balance
	if from.Balance.LessThan(fromAmount) {
		return nil, fmt.Errorf("%w: wallet %q holds %s %s", apperrors.ErrInsufficientFunds, from.Name, from.Balance.StringFixed(2), from.CurrencyCode)
	}

	// 3. Apply both balance changes
	deltas := map[string]decimal.Decimal{
		from.WalletID: fromAmount.Neg(),
		to.WalletID:   toAmount,
	}
	if err := r.walletRepo.AdjustWalletBalancesInTx(ctx, tx, deltas, now); err != nil {
		return nil, fmt.Errorf("failed to adjust balances for transfer: %w", err)
	}

	// 4. Append the transaction record
	_, err = tx.Exec(ctx, insertTransactionQuery,
		uuid.NewString(),
		from.WalletID,
		to.WalletID,
		fromAmount,
		fromCurrencyCode,
		toAmount,
		now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert transfer transaction: %w", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	from.Balance = from.Balance.Sub(fromAmount)
	from.LastUpdatedAt = now
	to.Balance = to.Balance.Add(toAmount)
	to.LastUpdatedAt = now
	return []domain.Wallet{from, to}, nil
}

// ListTransactions returns all transactions where the named customer is the
// source or the destination. The optional dates bound the result inclusively
// on calendar days; ordering is date_time then transaction_id ascending so
// same-instant records come back in a stable order.
func (r *PgxLedgerRepository) ListTransactions(ctx context.Context, customerName string, fromDate, toDate *time.Time) ([]domain.Transaction, error) {
	query := `
		SELECT t.transaction_id, t.from_wallet_id, t.to_wallet_id, t.from_amount, t.from_currency_code, t.to_amount, t.date_time,
		       fw.name AS from_wallet_name, tw.name AS to_wallet_name, tw.currency_code AS to_currency_code
		FROM transactions t
		JOIN wallets tw ON tw.wallet_id = t.to_wallet_id
		LEFT JOIN wallets fw ON fw.wallet_id = t.from_wallet_id
		WHERE (tw.name = $1 OR fw.name = $1)`
	args := []any{customerName}

	if fromDate != nil {
		args = append(args, *fromDate)
		query += fmt.Sprintf(" AND t.date_time >= $%d", len(args))
	}
	if toDate != nil {
		// Inclusive upper bound: everything before the start of the next day
		args = append(args, toDate.Add(24*time.Hour))
		query += fmt.Sprintf(" AND t.date_time < $%d", len(args))
	}
	query += " ORDER BY t.date_time ASC, t.transaction_id ASC;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for %q: %w", customerName, err)
	}
	defer rows.Close()

	modelTxns := make([]models.Transaction, 0)
	for rows.Next() {
		var modelTxn models.Transaction
		err := rows.Scan(
			&modelTxn.TransactionID,
			&modelTxn.FromWalletID,
			&modelTxn.ToWalletID,
			&modelTxn.FromAmount,
			&modelTxn.FromCurrencyCode,
			&modelTxn.ToAmount,
			&modelTxn.DateTime,
			&modelTxn.FromWalletName,
			&modelTxn.ToWalletName,
			&modelTxn.ToCurrencyCode,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		modelTxns = append(modelTxns, modelTxn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}

	return mapping.ToDomainTransactionSlice(modelTxns), nil
}
