package domain

// BaseCurrencyCode is the reference currency all exchange rates are expressed
// against. Its own rate is always 1 and is never stored.
const BaseCurrencyCode = "USD"

// Currency represents a supported currency in the domain.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // Primary Key (e.g., "USD")
	Symbol       string `json:"symbol"`       // e.g., "$"
	Name         string `json:"name"`         // e.g., "US Dollar"
}
