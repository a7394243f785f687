package dto

import (
	"time"

	"github.com/SscSPs/wallet_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Transaction log output formats.
const (
	FormatCSV = "csv"
	FormatXML = "xml"
)

// ReplenishmentRequest defines the structure for funding a wallet from
// outside the system.
type ReplenishmentRequest struct {
	CustomerName string          `json:"customerName" binding:"required,max=100"`
	Amount       decimal.Decimal `json:"amount" binding:"required,gtzero"`
	CurrencyCode string          `json:"currencyCode" binding:"required,len=3,uppercase"`
}

// TransferRequest defines the structure for a wallet-to-wallet transfer. The
// amount is denominated in the source wallet's currency.
type TransferRequest struct {
	FromCustomer string          `json:"fromCustomer" binding:"required,max=100"`
	ToCustomer   string          `json:"toCustomer" binding:"required,max=100"`
	Amount       decimal.Decimal `json:"amount" binding:"required,gtzero"`
}

// ListTransactionsRequest defines the structure for querying the transaction
// log. Date bounds are inclusive calendar dates.
type ListTransactionsRequest struct {
	CustomerName string `json:"customerName" binding:"required,max=100"`
	FromDate     string `json:"fromDate" binding:"omitempty,datetime=2006-01-02"`
	ToDate       string `json:"toDate" binding:"omitempty,datetime=2006-01-02"`
	Format       string `json:"format" binding:"omitempty,oneof=csv xml"`
}

// TransactionResponse defines the structure for API responses containing a
// single ledger record.
type TransactionResponse struct {
	TransactionID string          `json:"transactionID"`
	FromCustomer  string          `json:"fromCustomer"`
	FromAmount    decimal.Decimal `json:"fromAmount"`
	FromCurrency  string          `json:"fromCurrency"`
	ToCustomer    string          `json:"toCustomer"`
	ToAmount      decimal.Decimal `json:"toAmount"`
	ToCurrency    string          `json:"toCurrency"`
	DateTime      time.Time       `json:"dateTime"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: t.TransactionID,
		FromCustomer:  t.SourceName(),
		FromAmount:    t.FromAmount,
		FromCurrency:  t.FromCurrencyCode,
		ToCustomer:    t.ToWalletName,
		ToAmount:      t.ToAmount,
		ToCurrency:    t.ToCurrencyCode,
		DateTime:      t.DateTime,
	}
}

// ToTransactionResponses converts a slice of domain transactions to response DTOs
func ToTransactionResponses(ts []domain.Transaction) []TransactionResponse {
	resp := make([]TransactionResponse, len(ts))
	for i := range ts {
		resp[i] = ToTransactionResponse(&ts[i])
	}
	return resp
}
