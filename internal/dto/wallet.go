package dto

import (
	"time"

	"github.com/SscSPs/wallet_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateWalletRequest defines the structure for onboarding a customer wallet.
type CreateWalletRequest struct {
	Name         string `json:"name" binding:"required,max=100"`
	Country      string `json:"country" binding:"required,max=100"`
	City         string `json:"city" binding:"required,max=100"`
	CurrencyCode string `json:"currencyCode" binding:"required,len=3,uppercase"`
}

// WalletResponse defines the structure for API responses containing wallet details.
type WalletResponse struct {
	WalletID     string          `json:"walletID"`
	Name         string          `json:"name"`
	Country      string          `json:"country"`
	City         string          `json:"city"`
	CurrencyCode string          `json:"currencyCode"`
	Balance      decimal.Decimal `json:"balance"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// ToWalletResponse converts a domain.Wallet to WalletResponse DTO
func ToWalletResponse(w *domain.Wallet) WalletResponse {
	return WalletResponse{
		WalletID:     w.WalletID,
		Name:         w.Name,
		Country:      w.Country,
		City:         w.City,
		CurrencyCode: w.CurrencyCode,
		Balance:      w.Balance,
		CreatedAt:    w.CreatedAt,
	}
}

// ToWalletResponses converts a slice of domain wallets to response DTOs
func ToWalletResponses(ws []domain.Wallet) []WalletResponse {
	resp := make([]WalletResponse, len(ws))
	for i := range ws {
		resp[i] = ToWalletResponse(&ws[i])
	}
	return resp
}
