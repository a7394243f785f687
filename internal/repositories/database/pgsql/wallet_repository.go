package pgsql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/SscSPs/wallet_ledger_app/internal/apperrors"
	"github.com/SscSPs/wallet_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/wallet_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/wallet_ledger_app/internal/models"
	"github.com/SscSPs/wallet_ledger_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

const walletColumns = `wallet_id, name, country, city, currency_code, balance, created_at, last_updated_at`

type PgxWalletRepository struct {
	BaseRepository
}

// newPgxWalletRepository creates a new repository for wallet data.
func newPgxWalletRepository(pool Pool) portsrepo.WalletRepositoryWithTx {
	return &PgxWalletRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.WalletRepositoryWithTx = (*PgxWalletRepository)(nil)

func scanWallet(row pgx.Row) (models.Wallet, error) {
	var modelWallet models.Wallet
	err := row.Scan(
		&modelWallet.WalletID,
		&modelWallet.Name,
		&modelWallet.Country,
		&modelWallet.City,
		&modelWallet.CurrencyCode,
		&modelWallet.Balance,
		&modelWallet.CreatedAt,
		&modelWallet.LastUpdatedAt,
	)
	return modelWallet, err
}

// SaveWallet inserts a new wallet.
func (r *PgxWalletRepository) SaveWallet(ctx context.Context, wallet domain.Wallet) error {
	modelWallet := mapping.ToModelWallet(wallet)

	query := `
		INSERT INTO wallets (` + walletColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`

	_, err := r.Pool.Exec(ctx, query,
		modelWallet.WalletID,
		modelWallet.Name,
		modelWallet.Country,
		modelWallet.City,
		modelWallet.CurrencyCode,
		modelWallet.Balance,
		modelWallet.CreatedAt,
		modelWallet.LastUpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return fmt.Errorf("%w: wallet with name %q already exists", apperrors.ErrDuplicate, modelWallet.Name)
			}
		}
		return fmt.Errorf("failed to save wallet %s: %w", modelWallet.WalletID, err)
	}
	return nil
}

// FindWalletByName retrieves a wallet by its unique owner name.
func (r *PgxWalletRepository) FindWalletByName(ctx context.Context, name string) (*domain.Wallet, error) {
	query := `
		SELECT ` + walletColumns + `
		FROM wallets
		WHERE name = $1;
	`
	modelWallet, err := scanWallet(r.Pool.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: wallet %q", apperrors.ErrNotFound, name)
		}
		return nil, fmt.Errorf("failed to find wallet by name %q: %w", name, err)
	}

	domainWallet := mapping.ToDomainWallet(modelWallet)
	return &domainWallet, nil
}

// FindWalletsByNames retrieves multiple wallets keyed by owner name. Names
// with no wallet are simply absent from the result.
func (r *PgxWalletRepository) FindWalletsByNames(ctx context.Context, names []string) (map[string]domain.Wallet, error) {
	if len(names) == 0 {
		return map[string]domain.Wallet{}, nil
	}

	query := `
		SELECT ` + walletColumns + `
		FROM wallets
		WHERE name = ANY($1);
	`
	rows, err := r.Pool.Query(ctx, query, names)
	if err != nil {
		return nil, fmt.Errorf("failed to query wallets by names: %w", err)
	}
	defer rows.Close()

	walletsMap := make(map[string]domain.Wallet, len(names))
	for rows.Next() {
		modelWallet, err := scanWallet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wallet row: %w", err)
		}
		walletsMap[modelWallet.Name] = mapping.ToDomainWallet(modelWallet)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating wallet rows: %w", err)
	}

	return walletsMap, nil
}

// FindWalletsByNamesForUpdate retrieves wallets by owner names and locks the
// rows for update. Rows are locked in name order so that concurrent ledger
// operations always acquire locks in the same total order. Must be called
// within a transaction.
func (r *PgxWalletRepository) FindWalletsByNamesForUpdate(ctx context.Context, tx pgx.Tx, names []string) (map[string]domain.Wallet, error) {
	if len(names) == 0 {
		return map[string]domain.Wallet{}, nil
	}

	query := `
		SELECT ` + walletColumns + `
		FROM wallets
		WHERE name = ANY($1)
		ORDER BY name
		FOR UPDATE;
	`

	rows, err := tx.Query(ctx, query, names)
	if err != nil {
		return nil, fmt.Errorf("failed to query wallets by names for update: %w", err)
	}
	defer rows.Close()

	walletsMap := make(map[string]domain.Wallet, len(names))
	for rows.Next() {
		modelWallet, err := scanWallet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan locked wallet row: %w", err)
		}
		walletsMap[modelWallet.Name] = mapping.ToDomainWallet(modelWallet)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locked wallet rows: %w", err)
	}

	// Check that every requested wallet was found and locked
	if len(walletsMap) != len(names) {
		missing := []string{}
		for _, name := range names {
			if _, found := walletsMap[name]; !found {
				missing = append(missing, name)
			}
		}
		slog.WarnContext(ctx, "Some wallets requested for update lock were not found", "missing_wallets", missing)
		return nil, fmt.Errorf("%w: could not find or lock all requested wallets, missing: %v", apperrors.ErrNotFound, missing)
	}

	return walletsMap, nil
}

// AdjustWalletBalancesInTx applies signed balance deltas, keyed by wallet ID,
// within a transaction. The non-negative guard in the WHERE clause is the
// authoritative insufficient-funds check: a debit past zero matches no row
// and the whole transaction rolls back.
func (r *PgxWalletRepository) AdjustWalletBalancesInTx(ctx context.Context, tx pgx.Tx, deltas map[string]decimal.Decimal, now time.Time) error {
	if len(deltas) == 0 {
		return nil
	}

	query := `
		UPDATE wallets
		SET balance = balance + $2, last_updated_at = $3
		WHERE wallet_id = $1 AND balance + $2 >= 0;
	`

	// Apply in wallet ID order so batches are deterministic.
	walletIDs := make([]string, 0, len(deltas))
	for walletID := range deltas {
		walletIDs = append(walletIDs, walletID)
	}
	sort.Strings(walletIDs)

	batch := &pgx.Batch{}
	queued := make([]string, 0, len(deltas))
	for _, walletID := range walletIDs {
		delta := deltas[walletID]
		if delta.IsZero() {
			continue
		}
		batch.Queue(query, walletID, delta, now)
		queued = append(queued, walletID)
	}

	if batch.Len() == 0 {
		return nil
	}

	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		ct, err := br.Exec()
		if err != nil {
			if batchErr == nil {
				var pgErr *pgconn.PgError
				if errors.As(err, &pgErr) && pgErr.Code == "23514" { // check_violation
					batchErr = fmt.Errorf("%w: balance of wallet %s would go negative", apperrors.ErrInsufficientFunds, queued[i])
				} else {
					batchErr = fmt.Errorf("failed to adjust balance for wallet %s: %w", queued[i], err)
				}
			}
		} else if ct.RowsAffected() == 0 {
			// The row exists (it is locked), so the guard rejected the debit.
			if batchErr == nil {
				batchErr = fmt.Errorf("%w: balance of wallet %s would go negative", apperrors.ErrInsufficientFunds, queued[i])
			}
		}
	}

	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close balance adjustment batch: %w", err)
	}

	return batchErr
}
