package domain_test

import (
	"testing"

	"github.com/SscSPs/wallet_ledger_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestTransaction_SourceName(t *testing.T) {
	tests := []struct {
		name        string
		transaction domain.Transaction
		want        string
	}{
		{
			name:        "replenishment has no source wallet",
			transaction: domain.Transaction{FromWalletID: nil, FromWalletName: nil},
			want:        domain.OutsideSource,
		},
		{
			name: "transfer names the source wallet",
			transaction: domain.Transaction{
				FromWalletID:   stringPtr("wallet-1"),
				FromWalletName: stringPtr("Ivan Ivanov"),
			},
			want: "Ivan Ivanov",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.transaction.SourceName())
		})
	}
}

func stringPtr(s string) *string { return &s }
