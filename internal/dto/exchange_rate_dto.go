package dto

import (
	"time"

	"github.com/SscSPs/wallet_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// SetExchangeRateRequest defines the structure for setting a new exchange rate.
// RateDate defaults to today when omitted.
type SetExchangeRateRequest struct {
	CurrencyCode string          `json:"currencyCode" binding:"required,len=3,uppercase"`
	Rate         decimal.Decimal `json:"rate" binding:"required,gtzero"`
	RateDate     string          `json:"rateDate" binding:"omitempty,datetime=2006-01-02"`
}

// ExchangeRateResponse defines the structure for API responses containing exchange rate details.
type ExchangeRateResponse struct {
	ExchangeRateID string          `json:"exchangeRateID"`
	CurrencyCode   string          `json:"currencyCode"`
	Rate           decimal.Decimal `json:"rate"`
	RateDate       string          `json:"rateDate"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// RateResponse carries a single resolved rate value.
type RateResponse struct {
	CurrencyCode string          `json:"currencyCode"`
	Date         string          `json:"date"`
	Rate         decimal.Decimal `json:"rate"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to ExchangeRateResponse DTO
func ToExchangeRateResponse(rate *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		ExchangeRateID: rate.ExchangeRateID,
		CurrencyCode:   rate.CurrencyCode,
		Rate:           rate.Rate,
		RateDate:       rate.RateDate.Format(DateLayout),
		CreatedAt:      rate.CreatedAt,
	}
}
