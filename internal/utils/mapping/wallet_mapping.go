package mapping

import (
	"github.com/SscSPs/wallet_ledger_app/internal/core/domain"
	"github.com/SscSPs/wallet_ledger_app/internal/models"
)

// ToModelWallet converts a domain Wallet to a model Wallet
func ToModelWallet(d domain.Wallet) models.Wallet {
	return models.Wallet{
		WalletID:      d.WalletID,
		Name:          d.Name,
		Country:       d.Country,
		City:          d.City,
		CurrencyCode:  d.CurrencyCode,
		Balance:       d.Balance,
		CreatedAt:     d.CreatedAt,
		LastUpdatedAt: d.LastUpdatedAt,
	}
}

// ToDomainWallet converts a model Wallet to a domain Wallet
func ToDomainWallet(m models.Wallet) domain.Wallet {
	return domain.Wallet{
		WalletID:      m.WalletID,
		Name:          m.Name,
		Country:       m.Country,
		City:          m.City,
		CurrencyCode:  m.CurrencyCode,
		Balance:       m.Balance,
		CreatedAt:     m.CreatedAt,
		LastUpdatedAt: m.LastUpdatedAt,
	}
}

// ToDomainWalletSlice converts a slice of model Wallets to a slice of domain Wallets
func ToDomainWalletSlice(ms []models.Wallet) []domain.Wallet {
	ds := make([]domain.Wallet, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainWallet(m)
	}
	return ds
}
