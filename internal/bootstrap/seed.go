// Package bootstrap populates the database with the closed currency catalog
// and, optionally, demo data for local development.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/wallet_ledger_app/internal/apperrors"
	"github.com/SscSPs/wallet_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/wallet_ledger_app/internal/core/ports/repositories"
)

// supportedCurrencies is the closed catalog. Adding a currency means a new
// release, not a runtime operation.
var supportedCurrencies = []domain.Currency{
	{CurrencyCode: "USD", Symbol: "$", Name: "US Dollar"},
	{CurrencyCode: "EUR", Symbol: "€", Name: "Euro"},
	{CurrencyCode: "CAD", Symbol: "$", Name: "Canadian Dollar"},
	{CurrencyCode: "CNY", Symbol: "¥", Name: "Chinese Yuan"},
}

// SeedCurrencies inserts the supported currencies. Safe to run on every
// startup; existing rows are left untouched.
func SeedCurrencies(ctx context.Context, repos portsrepo.RepositoryProvider) error {
	for _, currency := range supportedCurrencies {
		if err := repos.CurrencyRepo.SaveCurrency(ctx, currency); err != nil {
			return fmt.Errorf("failed to seed currency %s: %w", currency.CurrencyCode, err)
		}
	}
	return nil
}

type demoRate struct {
	currencyCode string
	rate         string
}

type demoWallet struct {
	name         string
	country      string
	city         string
	currencyCode string
}

var demoRates = []demoRate{
	{"EUR", "1.10731"},
	{"CAD", "0.753602"},
	{"CNY", "0.141249"},
}

var demoWallets = []demoWallet{
	{"Ivan Ivanov", "Ukraine", "Kyiv", "EUR"},
	{"Petr Petrov", "Ukraine", "Kyiv", "CNY"},
	{"Sergey Sergeev", "Ukraine", "Kyiv", "USD"},
}

// SeedDemoData inserts today's rates and a few demo wallets. Duplicate rows
// from earlier runs are skipped, so this too is safe to re-run.
func SeedDemoData(ctx context.Context, logger *slog.Logger, repos portsrepo.RepositoryProvider) error {
	now := time.Now().UTC()
	today := now.Truncate(24 * time.Hour)

	for _, dr := range demoRates {
		rate := domain.ExchangeRate{
			ExchangeRateID: uuid.NewString(),
			CurrencyCode:   dr.currencyCode,
			RateDate:       today,
			Rate:           decimal.RequireFromString(dr.rate),
			CreatedAt:      now,
		}
		if err := repos.ExchangeRateRepo.SaveExchangeRate(ctx, rate); err != nil {
			if errors.Is(err, apperrors.ErrDuplicate) {
				continue
			}
			return fmt.Errorf("failed to seed rate for %s: %w", dr.currencyCode, err)
		}
		logger.Info("Seeded demo rate", slog.String("currency", dr.currencyCode), slog.String("rate", dr.rate))
	}

	for _, dw := range demoWallets {
		wallet := domain.Wallet{
			WalletID:      uuid.NewString(),
			Name:          dw.name,
			Country:       dw.country,
			City:          dw.city,
			CurrencyCode:  dw.currencyCode,
			Balance:       decimal.Zero,
			CreatedAt:     now,
			LastUpdatedAt: now,
		}
		if err := repos.WalletRepo.SaveWallet(ctx, wallet); err != nil {
			if errors.Is(err, apperrors.ErrDuplicate) {
				continue
			}
			return fmt.Errorf("failed to seed wallet %q: %w", dw.name, err)
		}
		logger.Info("Seeded demo wallet", slog.String("name", dw.name), slog.String("currency", dw.currencyCode))
	}

	return nil
}
