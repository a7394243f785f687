package pgsql

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/wallet_ledger_app/internal/apperrors"
)

func newLedgerRepoWithMock(t *testing.T) (*PgxLedgerRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	walletRepo := &PgxWalletRepository{BaseRepository: BaseRepository{Pool: mock}}
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: mock},
		walletRepo:     walletRepo,
	}, mock
}

var serializableTx = pgx.TxOptions{IsoLevel: pgx.Serializable}

func TestLedgerRepo_ExecuteReplenishment(t *testing.T) {
	repo, mock := newLedgerRepoWithMock(t)

	wallet := newTestWallet("Ivan Ivanov")
	now := time.Now().UTC().Truncate(time.Microsecond)
	fromAmount := decimal.RequireFromString("100.00")
	toAmount := decimal.RequireFromString("90.31")

	mock.ExpectBeginTx(serializableTx)
	mock.ExpectQuery("SELECT .+ FROM wallets .+ FOR UPDATE").
		WithArgs([]string{wallet.Name}).
		WillReturnRows(walletRow(wallet))
	eb := mock.ExpectBatch()
	eb.ExpectExec("UPDATE wallets").
		WithArgs(wallet.WalletID, toAmount, now).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec("INSERT INTO transactions").
		WithArgs(pgxmock.AnyArg(), nil, wallet.WalletID, fromAmount, "USD", toAmount, now).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	refreshed, err := repo.ExecuteReplenishment(context.Background(), wallet.Name, fromAmount, "USD", toAmount, now)
	require.NoError(t, err)
	require.NotNil(t, refreshed)
	assert.True(t, wallet.Balance.Add(toAmount).Equal(refreshed.Balance))
	assert.Equal(t, now, refreshed.LastUpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerRepo_ExecuteTransfer(t *testing.T) {
	repo, mock := newLedgerRepoWithMock(t)

	from := newTestWallet("Ivan Ivanov")
	to := newTestWallet("Petr Petrov")
	now := time.Now().UTC().Truncate(time.Microsecond)
	fromAmount := decimal.RequireFromString("40.00")
	toAmount := decimal.RequireFromString("44.29")

	mock.ExpectBeginTx(serializableTx)
	mock.ExpectQuery("SELECT .+ FROM wallets .+ FOR UPDATE").
		WithArgs([]string{from.Name, to.Name}).
		WillReturnRows(pgxmock.NewRows(walletTestColumns()).
			AddRow(from.WalletID, from.Name, from.Country, from.City, from.CurrencyCode, from.Balance, from.CreatedAt, from.LastUpdatedAt).
			AddRow(to.WalletID, to.Name, to.Country, to.City, to.CurrencyCode, to.Balance, to.CreatedAt, to.LastUpdatedAt))

	eb := mock.ExpectBatch()
	ids := []string{from.WalletID, to.WalletID}
	deltas := map[string]decimal.Decimal{
		from.WalletID: fromAmount.Neg(),
		to.WalletID:   toAmount,
	}
	if ids[1] < ids[0] {
		ids[0], ids[1] = ids[1], ids[0]
	}
	for _, id := range ids {
		eb.ExpectExec("UPDATE wallets").
			WithArgs(id, deltas[id], now).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	}
	mock.ExpectExec("INSERT INTO transactions").
		WithArgs(pgxmock.AnyArg(), from.WalletID, to.WalletID, fromAmount, from.CurrencyCode, toAmount, now).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	refreshed, err := repo.ExecuteTransfer(context.Background(), from.Name, to.Name, fromAmount, from.CurrencyCode, toAmount, now)
	require.NoError(t, err)
	require.Len(t, refreshed, 2)
	assert.True(t, from.Balance.Sub(fromAmount).Equal(refreshed[0].Balance))
	assert.True(t, to.Balance.Add(toAmount).Equal(refreshed[1].Balance))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerRepo_ExecuteTransfer_InsufficientFunds(t *testing.T) {
	repo, mock := newLedgerRepoWithMock(t)

	from := newTestWallet("Ivan Ivanov") // balance 100.00
	to := newTestWallet("Petr Petrov")
	now := time.Now().UTC()
	fromAmount := decimal.RequireFromString("150.00")

	mock.ExpectBeginTx(serializableTx)
	mock.ExpectQuery("SELECT .+ FROM wallets .+ FOR UPDATE").
		WithArgs([]string{from.Name, to.Name}).
		WillReturnRows(pgxmock.NewRows(walletTestColumns()).
			AddRow(from.WalletID, from.Name, from.Country, from.City, from.CurrencyCode, from.Balance, from.CreatedAt, from.LastUpdatedAt).
			AddRow(to.WalletID, to.Name, to.Country, to.City, to.CurrencyCode, to.Balance, to.CreatedAt, to.LastUpdatedAt))
	mock.ExpectRollback()

	refreshed, err := repo.ExecuteTransfer(context.Background(), from.Name, to.Name, fromAmount, from.CurrencyCode, fromAmount, now)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientFunds)
	assert.Nil(t, refreshed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerRepo_ListTransactions_DateBounds(t *testing.T) {
	repo, mock := newLedgerRepoWithMock(t)

	fromDate := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	toDate := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	txnTime := time.Date(2024, 3, 10, 14, 30, 0, 0, time.UTC)
	fromWalletID := "wallet-a"
	fromName := "Ivan Ivanov"

	columns := []string{"transaction_id", "from_wallet_id", "to_wallet_id", "from_amount", "from_currency_code", "to_amount", "date_time", "from_wallet_name", "to_wallet_name", "to_currency_code"}

	mock.ExpectQuery("SELECT .+ FROM transactions").
		WithArgs("Petr Petrov", fromDate, toDate.Add(24*time.Hour)).
		WillReturnRows(pgxmock.NewRows(columns).
			AddRow("txn-1", &fromWalletID, "wallet-b", decimal.RequireFromString("40.00"), "EUR", decimal.RequireFromString("313.62"), txnTime, &fromName, "Petr Petrov", "CNY").
			AddRow("txn-2", nil, "wallet-b", decimal.RequireFromString("10.00"), "USD", decimal.RequireFromString("70.80"), txnTime.Add(time.Hour), nil, "Petr Petrov", "CNY"))

	transactions, err := repo.ListTransactions(context.Background(), "Petr Petrov", &fromDate, &toDate)
	require.NoError(t, err)
	require.Len(t, transactions, 2)
	assert.Equal(t, fromName, transactions[0].SourceName())
	assert.Equal(t, "outside", transactions[1].SourceName())
	assert.Equal(t, "CNY", transactions[0].ToCurrencyCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}
