package services

import (
	"context"

	"github.com/SscSPs/wallet_ledger_app/internal/core/domain"
	"github.com/SscSPs/wallet_ledger_app/internal/dto"
)

// WalletReaderSvc defines read operations for wallet data
type WalletReaderSvc interface {
	// GetWalletByName retrieves a wallet by its unique owner name.
	GetWalletByName(ctx context.Context, name string) (*domain.Wallet, error)

	// GetWalletsByNames retrieves multiple wallets keyed by owner name.
	GetWalletsByNames(ctx context.Context, names []string) (map[string]domain.Wallet, error)
}

// WalletWriterSvc defines write operations for wallet data
type WalletWriterSvc interface {
	// CreateWallet onboards a new customer wallet with a zero balance.
	CreateWallet(ctx context.Context, req dto.CreateWalletRequest) (*domain.Wallet, error)
}

// WalletSvcFacade combines all wallet-related service interfaces
type WalletSvcFacade interface {
	WalletReaderSvc
	WalletWriterSvc
}
