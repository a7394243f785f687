package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/wallet_ledger_app/internal/apperrors"
	"github.com/SscSPs/wallet_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/wallet_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/wallet_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/wallet_ledger_app/internal/dto"
	"github.com/SscSPs/wallet_ledger_app/internal/middleware"
)

// walletService handles customer onboarding and wallet lookups. Balances are
// never mutated here; that is the ledger's job.
type walletService struct {
	walletRepo  portsrepo.WalletRepositoryFacade
	currencySvc portssvc.CurrencySvcFacade
}

// NewWalletService creates a new WalletService.
func NewWalletService(walletRepo portsrepo.WalletRepositoryFacade, currencySvc portssvc.CurrencySvcFacade) portssvc.WalletSvcFacade {
	return &walletService{
		walletRepo:  walletRepo,
		currencySvc: currencySvc,
	}
}

var _ portssvc.WalletSvcFacade = (*walletService)(nil)

// CreateWallet onboards a customer wallet with a zero balance. The owner
// name must be unique (apperrors.ErrDuplicate otherwise) and the currency is
// fixed for the wallet's lifetime.
func (s *walletService) CreateWallet(ctx context.Context, req dto.CreateWalletRequest) (*domain.Wallet, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: wallet owner name is required", apperrors.ErrValidation)
	}

	code := strings.ToUpper(req.CurrencyCode)
	if _, err := s.currencySvc.GetCurrencyByCode(ctx, code); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: currency %q", apperrors.ErrNotFound, code)
		}
		return nil, fmt.Errorf("failed to validate currency %q: %w", code, err)
	}

	now := time.Now().UTC()
	wallet := domain.Wallet{
		WalletID:      uuid.NewString(),
		Name:          name,
		Country:       req.Country,
		City:          req.City,
		CurrencyCode:  code,
		Balance:       decimal.Zero,
		CreatedAt:     now,
		LastUpdatedAt: now,
	}

	if err := s.walletRepo.SaveWallet(ctx, wallet); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			logger.Error("Failed to save wallet", slog.String("name", name), slog.String("error", err.Error()))
		}
		return nil, fmt.Errorf("failed to create wallet %q: %w", name, err)
	}

	logger.Info("Wallet created", slog.String("wallet_id", wallet.WalletID), slog.String("currency", code))
	return &wallet, nil
}

// GetWalletByName retrieves a wallet by its unique owner name.
func (s *walletService) GetWalletByName(ctx context.Context, name string) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.FindWalletByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet %q: %w", name, err)
	}
	return wallet, nil
}

// GetWalletsByNames retrieves multiple wallets keyed by owner name. Names
// with no wallet are simply absent from the map.
func (s *walletService) GetWalletsByNames(ctx context.Context, names []string) (map[string]domain.Wallet, error) {
	wallets, err := s.walletRepo.FindWalletsByNames(ctx, names)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallets: %w", err)
	}
	return wallets, nil
}
