package services

import (
	"context"

	"github.com/SscSPs/wallet_ledger_app/internal/core/domain"
	"github.com/SscSPs/wallet_ledger_app/internal/dto"
)

// LedgerWriterSvc defines the two atomic ledger operations.
type LedgerWriterSvc interface {
	// Replenish funds a wallet from outside the system, converting from the
	// source currency to the wallet's currency. Returns the refreshed wallet.
	Replenish(ctx context.Context, req dto.ReplenishmentRequest) (*domain.Wallet, error)

	// Transfer moves funds between two wallets, converting between their
	// currencies. Returns the refreshed wallets ordered [from, to].
	Transfer(ctx context.Context, req dto.TransferRequest) ([]domain.Wallet, error)
}

// TransactionLogReaderSvc defines queries over the append-only log.
type TransactionLogReaderSvc interface {
	// ListTransactions returns all transactions involving the named
	// customer within the optional inclusive date bounds.
	ListTransactions(ctx context.Context, req dto.ListTransactionsRequest) ([]domain.Transaction, error)
}

// LedgerSvcFacade combines the ledger operation and log query interfaces.
type LedgerSvcFacade interface {
	LedgerWriterSvc
	TransactionLogReaderSvc
}
