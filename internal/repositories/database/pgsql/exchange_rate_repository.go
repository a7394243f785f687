package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/wallet_ledger_app/internal/apperrors"
	"github.com/SscSPs/wallet_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/wallet_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/wallet_ledger_app/internal/models"
	"github.com/SscSPs/wallet_ledger_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type PgxExchangeRateRepository struct {
	BaseRepository
}

// newPgxExchangeRateRepository creates a new repository for exchange rate data.
func newPgxExchangeRateRepository(pool Pool) portsrepo.ExchangeRateRepositoryFacade {
	return &PgxExchangeRateRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.ExchangeRateRepositoryFacade = (*PgxExchangeRateRepository)(nil)

// SaveExchangeRate inserts a new rate row. Rows are append-only: a second
// write for the same (currency, date) pair is a duplicate, never an update.
func (r *PgxExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	modelRate := mapping.ToModelExchangeRate(rate)

	query := `
		INSERT INTO exchange_rates (exchange_rate_id, currency_code, rate_date, rate, created_at)
		VALUES ($1, $2, $3, $4, $5);
	`

	_, err := r.Pool.Exec(ctx, query,
		modelRate.ExchangeRateID,
		modelRate.CurrencyCode,
		modelRate.RateDate,
		modelRate.Rate,
		modelRate.CreatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return fmt.Errorf("%w: rate for %s on %s already exists", apperrors.ErrDuplicate, modelRate.CurrencyCode, modelRate.RateDate.Format("2006-01-02"))
			}
		}
		return fmt.Errorf("failed to save exchange rate for %s: %w", modelRate.CurrencyCode, err)
	}
	return nil
}

// FindRateByCurrencyAndDate retrieves the rate row for the exact
// (currency, date) pair. A miss is a miss; no earlier date is consulted.
func (r *PgxExchangeRateRepository) FindRateByCurrencyAndDate(ctx context.Context, currencyCode string, date time.Time) (*domain.ExchangeRate, error) {
	query := `
		SELECT exchange_rate_id, currency_code, rate_date, rate, created_at
		FROM exchange_rates
		WHERE currency_code = $1 AND rate_date = $2;
	`
	var modelRate models.ExchangeRate
	err := r.Pool.QueryRow(ctx, query, currencyCode, date).Scan(
		&modelRate.ExchangeRateID,
		&modelRate.CurrencyCode,
		&modelRate.RateDate,
		&modelRate.Rate,
		&modelRate.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no rate for %s on %s", apperrors.ErrRateUnavailable, currencyCode, date.Format("2006-01-02"))
		}
		return nil, fmt.Errorf("failed to find rate for %s on %s: %w", currencyCode, date.Format("2006-01-02"), err)
	}

	domainRate := mapping.ToDomainExchangeRate(modelRate)
	return &domainRate, nil
}
