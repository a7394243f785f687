package mapping

import (
	"github.com/SscSPs/wallet_ledger_app/internal/core/domain"
	"github.com/SscSPs/wallet_ledger_app/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:    d.TransactionID,
		FromWalletID:     d.FromWalletID,
		ToWalletID:       d.ToWalletID,
		FromAmount:       d.FromAmount,
		FromCurrencyCode: d.FromCurrencyCode,
		ToAmount:         d.ToAmount,
		DateTime:         d.DateTime,
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:    m.TransactionID,
		FromWalletID:     m.FromWalletID,
		ToWalletID:       m.ToWalletID,
		FromAmount:       m.FromAmount,
		FromCurrencyCode: m.FromCurrencyCode,
		ToAmount:         m.ToAmount,
		DateTime:         m.DateTime,
		FromWalletName:   m.FromWalletName,
		ToWalletName:     m.ToWalletName,
		ToCurrencyCode:   m.ToCurrencyCode,
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions to a slice of domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
