package dto

import (
	"github.com/SscSPs/wallet_ledger_app/internal/core/domain"
)

// CurrencyResponse defines the structure for API responses containing currency details.
type CurrencyResponse struct {
	CurrencyCode string `json:"currencyCode"`
	Symbol       string `json:"symbol"`
	Name         string `json:"name"`
}

// ToCurrencyResponse converts a domain.Currency to CurrencyResponse DTO
func ToCurrencyResponse(c *domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		CurrencyCode: c.CurrencyCode,
		Symbol:       c.Symbol,
		Name:         c.Name,
	}
}

// ToCurrencyResponses converts a slice of domain currencies to response DTOs
func ToCurrencyResponses(cs []domain.Currency) []CurrencyResponse {
	resp := make([]CurrencyResponse, len(cs))
	for i := range cs {
		resp[i] = ToCurrencyResponse(&cs[i])
	}
	return resp
}
