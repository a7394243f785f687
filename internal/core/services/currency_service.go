package services

import (
	"context"
	"fmt"
	"strings"

	portsrepo "github.com/SscSPs/wallet_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/wallet_ledger_app/internal/core/ports/services"

	"github.com/SscSPs/wallet_ledger_app/internal/core/domain"
)

// currencyService exposes the closed, seeded currency catalog.
type currencyService struct {
	currencyRepo portsrepo.CurrencyReader
}

// NewCurrencyService creates a new CurrencyService.
func NewCurrencyService(currencyRepo portsrepo.CurrencyReader) portssvc.CurrencySvcFacade {
	return &currencyService{currencyRepo: currencyRepo}
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

// GetCurrencyByCode resolves a currency by code. Codes are normalized to
// uppercase; an unknown or unseeded code is apperrors.ErrNotFound.
func (s *currencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, strings.ToUpper(currencyCode))
	if err != nil {
		return nil, fmt.Errorf("failed to get currency %q: %w", currencyCode, err)
	}
	return currency, nil
}

// ListCurrencies retrieves all seeded currencies.
func (s *currencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	currencies, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	if currencies == nil {
		return []domain.Currency{}, nil
	}
	return currencies, nil
}
