package domain_test

import (
	"testing"

	"github.com/ICON-SARL/ngnasoro-sub006/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignedAmount(t *testing.T) {
	amount := decimal.NewFromInt(250000)

	testCases := []struct {
		name     string
		txnType  domain.TransactionType
		expected decimal.Decimal
	}{
		{"deposit credits", domain.Deposit, amount},
		{"loan disbursement credits", domain.LoanDisbursement, amount},
		{"withdrawal debits", domain.Withdrawal, amount.Neg()},
		{"loan repayment debits", domain.LoanRepayment, amount.Neg()},
		{"payment debits", domain.Payment, amount.Neg()},
		{"transfer keeps caller sign", domain.Transfer, amount},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			signed, err := domain.SignedAmount(tc.txnType, amount)
			require.NoError(t, err)
			assert.True(t, tc.expected.Equal(signed), "expected %s got %s", tc.expected, signed)
		})
	}
}

func TestSignedAmountUnknownType(t *testing.T) {
	_, err := domain.SignedAmount(domain.TransactionType("cashback"), decimal.NewFromInt(10))
	assert.Error(t, err)
}

func TestIsCredit(t *testing.T) {
	credit := domain.Transaction{Amount: decimal.NewFromInt(500)}
	debit := domain.Transaction{Amount: decimal.NewFromInt(-500)}

	assert.True(t, credit.IsCredit())
	assert.False(t, debit.IsCredit())
}
