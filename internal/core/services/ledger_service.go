package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/wallet_ledger_app/internal/apperrors"
	"github.com/SscSPs/wallet_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/wallet_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/wallet_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/wallet_ledger_app/internal/dto"
	"github.com/SscSPs/wallet_ledger_app/internal/middleware"
)

// ledgerService orchestrates the two atomic ledger operations and the
// transaction log query. It validates inputs and computes converted amounts,
// then delegates the all-or-nothing unit of work (row locks, balance deltas,
// transaction append) to the ledger repository.
type ledgerService struct {
	ledgerRepo  portsrepo.LedgerRepositoryFacade
	walletSvc   portssvc.WalletSvcFacade
	rateSvc     portssvc.ExchangeRateSvcFacade
	currencySvc portssvc.CurrencySvcFacade
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(
	ledgerRepo portsrepo.LedgerRepositoryFacade,
	walletSvc portssvc.WalletSvcFacade,
	rateSvc portssvc.ExchangeRateSvcFacade,
	currencySvc portssvc.CurrencySvcFacade,
) portssvc.LedgerSvcFacade {
	return &ledgerService{
		ledgerRepo:  ledgerRepo,
		walletSvc:   walletSvc,
		rateSvc:     rateSvc,
		currencySvc: currencySvc,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// Replenish funds a wallet from outside the system. The incoming amount is
// coerced to wallet scale (2 places, half-even), then converted from the
// source currency to the wallet's own currency before the balance credit;
// exactly one transaction record is appended.
func (s *ledgerService) Replenish(ctx context.Context, req dto.ReplenishmentRequest) (*domain.Wallet, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	amount := req.Amount.RoundBank(moneyScale)
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: replenishment amount must be positive", apperrors.ErrValidation)
	}

	currency, err := s.currencySvc.GetCurrencyByCode(ctx, req.CurrencyCode)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve source currency: %w", err)
	}

	wallet, err := s.walletSvc.GetWalletByName(ctx, req.CustomerName)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve destination wallet: %w", err)
	}

	converted, err := s.rateSvc.Convert(ctx, currency.CurrencyCode, wallet.CurrencyCode, amount)
	if err != nil {
		return nil, fmt.Errorf("failed to convert replenishment amount: %w", err)
	}
	if converted.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount is below the smallest %s unit", apperrors.ErrValidation, wallet.CurrencyCode)
	}

	refreshed, err := s.ledgerRepo.ExecuteReplenishment(ctx, wallet.Name, amount, currency.CurrencyCode, converted, time.Now().UTC())
	if err != nil {
		logger.Error("Replenishment failed", slog.String("wallet", wallet.Name), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to replenish wallet %q: %w", wallet.Name, err)
	}

	logger.Info("Wallet replenished",
		slog.String("wallet", wallet.Name),
		slog.String("from_amount", amount.String()),
		slog.String("from_currency", currency.CurrencyCode),
		slog.String("to_amount", converted.String()),
	)
	return refreshed, nil
}

// Transfer moves funds between two wallets. The amount is coerced to wallet
// scale (2 places, half-even) and debited from the source in its own
// currency; the destination is credited with the converted amount. The
// insufficient-funds check compares the raw amount against the source
// balance, both in the source currency, before any conversion; the
// authoritative re-check happens on the locked row inside the transaction.
func (s *ledgerService) Transfer(ctx context.Context, req dto.TransferRequest) ([]domain.Wallet, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	amount := req.Amount.RoundBank(moneyScale)
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: transfer amount must be positive", apperrors.ErrValidation)
	}
	if req.FromCustomer == req.ToCustomer {
		return nil, fmt.Errorf("%w: source and destination wallets cannot be the same", apperrors.ErrValidation)
	}

	wallets, err := s.walletSvc.GetWalletsByNames(ctx, []string{req.FromCustomer, req.ToCustomer})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve transfer wallets: %w", err)
	}
	from, ok := wallets[req.FromCustomer]
	if !ok {
		return nil, fmt.Errorf("%w: wallet %q", apperrors.ErrNotFound, req.FromCustomer)
	}
	to, ok := wallets[req.ToCustomer]
	if !ok {
		return nil, fmt.Errorf("%w: wallet %q", apperrors.ErrNotFound, req.ToCustomer)
	}

	if from.Balance.LessThan(amount) {
		return nil, fmt.Errorf("%w: wallet %q holds %s %s", apperrors.ErrInsufficientFunds, from.Name, from.Balance.StringFixed(2), from.CurrencyCode)
	}

	converted, err := s.rateSvc.Convert(ctx, from.CurrencyCode, to.CurrencyCode, amount)
	if err != nil {
		return nil, fmt.Errorf("failed to convert transfer amount: %w", err)
	}
	if converted.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount is below the smallest %s unit", apperrors.ErrValidation, to.CurrencyCode)
	}

	refreshed, err := s.ledgerRepo.ExecuteTransfer(ctx, from.Name, to.Name, amount, from.CurrencyCode, converted, time.Now().UTC())
	if err != nil {
		if !errors.Is(err, apperrors.ErrInsufficientFunds) {
			logger.Error("Transfer failed", slog.String("from", from.Name), slog.String("to", to.Name), slog.String("error", err.Error()))
		}
		return nil, fmt.Errorf("failed to transfer from %q to %q: %w", from.Name, to.Name, err)
	}

	logger.Info("Transfer completed",
		slog.String("from", from.Name),
		slog.String("to", to.Name),
		slog.String("amount", amount.String()),
		slog.String("converted", converted.String()),
	)
	return refreshed, nil
}

// ListTransactions returns all log records where the named customer is the
// source or the destination, bounded by the optional inclusive calendar
// dates, in stable date_time then transaction_id ascending order.
func (s *ledgerService) ListTransactions(ctx context.Context, req dto.ListTransactionsRequest) ([]domain.Transaction, error) {
	if req.CustomerName == "" {
		return nil, fmt.Errorf("%w: customer name is required", apperrors.ErrValidation)
	}

	fromDate, err := parseLogDate(req.FromDate)
	if err != nil {
		return nil, err
	}
	toDate, err := parseLogDate(req.ToDate)
	if err != nil {
		return nil, err
	}
	if fromDate != nil && toDate != nil && toDate.Before(*fromDate) {
		return nil, fmt.Errorf("%w: toDate precedes fromDate", apperrors.ErrValidation)
	}

	transactions, err := s.ledgerRepo.ListTransactions(ctx, req.CustomerName, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions for %q: %w", req.CustomerName, err)
	}
	if transactions == nil {
		return []domain.Transaction{}, nil
	}
	return transactions, nil
}

func parseLogDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dto.DateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", apperrors.ErrValidation, value)
	}
	parsed = parsed.UTC()
	return &parsed, nil
}
