package mapping

import (
	"github.com/SscSPs/wallet_ledger_app/internal/core/domain"
	"github.com/SscSPs/wallet_ledger_app/internal/models"
)

// ToModelExchangeRate converts a domain ExchangeRate to a model ExchangeRate
func ToModelExchangeRate(d domain.ExchangeRate) models.ExchangeRate {
	return models.ExchangeRate{
		ExchangeRateID: d.ExchangeRateID,
		CurrencyCode:   d.CurrencyCode,
		RateDate:       d.RateDate,
		Rate:           d.Rate,
		CreatedAt:      d.CreatedAt,
	}
}

// ToDomainExchangeRate converts a model ExchangeRate to a domain ExchangeRate
func ToDomainExchangeRate(m models.ExchangeRate) domain.ExchangeRate {
	return domain.ExchangeRate{
		ExchangeRateID: m.ExchangeRateID,
		CurrencyCode:   m.CurrencyCode,
		RateDate:       m.RateDate,
		Rate:           m.Rate,
		CreatedAt:      m.CreatedAt,
	}
}
