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

// moneyScale is the number of decimal places carried by converted amounts
// and wallet balances.
const moneyScale = 2

// exchangeRateService implements the rate table and the conversion engine.
//
// All conversion results are rounded half-to-even (banker's rounding) at 2
// decimal places. The rule is applied in exactly one place, Convert, so
// results are bit-reproducible for a given rate table.
type exchangeRateService struct {
	rateRepo    portsrepo.ExchangeRateRepositoryFacade
	currencySvc portssvc.CurrencySvcFacade
}

// NewExchangeRateService creates a new ExchangeRateService.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepositoryFacade, currencySvc portssvc.CurrencySvcFacade) portssvc.ExchangeRateSvcFacade {
	return &exchangeRateService{
		rateRepo:    rateRepo,
		currencySvc: currencySvc,
	}
}

var _ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)

// rateDay normalizes a timestamp to its UTC calendar date.
func rateDay(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}

// SetRate persists a new exchange rate for a (currency, date) pair. The pair
// is append-only: an existing row for the same currency and date is
// apperrors.ErrDuplicate and the stored value is retained unchanged.
func (s *exchangeRateService) SetRate(ctx context.Context, req dto.SetExchangeRateRequest) (*domain.ExchangeRate, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	code := strings.ToUpper(req.CurrencyCode)
	if req.Rate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}
	if code == domain.BaseCurrencyCode {
		return nil, fmt.Errorf("%w: base currency rate is fixed at 1", apperrors.ErrValidation)
	}

	if _, err := s.currencySvc.GetCurrencyByCode(ctx, code); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: currency %q", apperrors.ErrNotFound, code)
		}
		return nil, fmt.Errorf("failed to validate currency %q: %w", code, err)
	}

	date := rateDay(time.Now())
	if req.RateDate != "" {
		parsed, err := time.Parse(dto.DateLayout, req.RateDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid rate date %q", apperrors.ErrValidation, req.RateDate)
		}
		date = rateDay(parsed)
	}

	rate := domain.ExchangeRate{
		ExchangeRateID: uuid.NewString(),
		CurrencyCode:   code,
		RateDate:       date,
		Rate:           req.Rate,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.rateRepo.SaveExchangeRate(ctx, rate); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			logger.Error("Failed to save exchange rate", slog.String("currency", code), slog.String("error", err.Error()))
		}
		return nil, fmt.Errorf("failed to set rate for %s on %s: %w", code, date.Format(dto.DateLayout), err)
	}

	logger.Info("Exchange rate set", slog.String("currency", code), slog.String("date", date.Format(dto.DateLayout)), slog.String("rate", rate.Rate.String()))
	return &rate, nil
}

// GetRate returns the base-currency rate for a currency on the given date
// (today when nil). The base currency is always 1 without a lookup. There is
// no fallback to earlier dates: a missing row for the exact date is
// apperrors.ErrRateUnavailable even when rates exist for other dates.
func (s *exchangeRateService) GetRate(ctx context.Context, currencyCode string, date *time.Time) (decimal.Decimal, error) {
	code := strings.ToUpper(currencyCode)
	if code == domain.BaseCurrencyCode {
		return decimal.NewFromInt(1), nil
	}

	day := rateDay(time.Now())
	if date != nil {
		day = rateDay(*date)
	}

	row, err := s.rateRepo.FindRateByCurrencyAndDate(ctx, code, day)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get rate for %s on %s: %w", code, day.Format(dto.DateLayout), err)
	}
	return row.Rate, nil
}

// Convert computes the equivalent of amount in the target currency using
// today's rates: amount * rate(from)/rate(to), rounded half-to-even to 2
// places. Converting a currency to itself uses a 1:1 rate; the amount is
// still coerced to 2 places so every conversion leaves through the same
// rounding rule.
func (s *exchangeRateService) Convert(ctx context.Context, fromCode, toCode string, amount decimal.Decimal) (decimal.Decimal, error) {
	from := strings.ToUpper(fromCode)
	to := strings.ToUpper(toCode)

	if from == to {
		return amount.RoundBank(moneyScale), nil
	}

	fromRate, err := s.GetRate(ctx, from, nil)
	if err != nil {
		return decimal.Zero, err
	}
	toRate, err := s.GetRate(ctx, to, nil)
	if err != nil {
		return decimal.Zero, err
	}

	return amount.Mul(fromRate).Div(toRate).RoundBank(moneyScale), nil
}
