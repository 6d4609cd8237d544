package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a ledger movement.
type TransactionType string

const (
	Deposit          TransactionType = "deposit"
	Withdrawal       TransactionType = "withdrawal"
	LoanDisbursement TransactionType = "loan_disbursement"
	LoanRepayment    TransactionType = "loan_repayment"
	Transfer         TransactionType = "transfer"
	Payment          TransactionType = "payment"
)

// TransactionStatus is the supervision state of a ledger entry.
// Entries are written as success; flagged is the only later mutation allowed,
// applied by supervision without touching amount or balance_after.
type TransactionStatus string

const (
	TxnSuccess TransactionStatus = "success"
	TxnPending TransactionStatus = "pending"
	TxnFailed  TransactionStatus = "failed"
	TxnFlagged TransactionStatus = "flagged"
)

// Transaction is an append-only ledger entry. Amount is signed: positive
// credits the account, negative debits it.
type Transaction struct {
	TransactionID string            `json:"transactionID"` // Primary Key (UUID)
	AccountID     string            `json:"accountID"`     // FK -> accounts.account_id
	ClientID      string            `json:"clientID"`      // FK -> clients.client_id
	SFDID         string            `json:"sfdID"`         // FK -> sfds.sfd_id
	Amount        decimal.Decimal   `json:"amount"`        // Signed
	Type          TransactionType   `json:"type"`
	Status        TransactionStatus `json:"status"`
	ReferenceID   string            `json:"referenceID"` // e.g. loan or subsidy request ID
	Description   string            `json:"description"`
	PerformedBy   string            `json:"performedBy"`  // UserID of the cashier/admin
	BalanceAfter  decimal.Decimal   `json:"balanceAfter"` // Account balance after this entry
	CreatedAt     time.Time         `json:"createdAt"`
}

// SignedAmount converts a positive request amount into the signed ledger
// amount for a transaction type. Deposits and loan disbursements credit the
// account; withdrawals, repayments and payments debit it. Transfers carry the
// caller's sign and are returned unchanged.
func SignedAmount(t TransactionType, amount decimal.Decimal) (decimal.Decimal, error) {
	switch t {
	case Deposit, LoanDisbursement:
		return amount, nil
	case Withdrawal, LoanRepayment, Payment:
		return amount.Neg(), nil
	case Transfer:
		return amount, nil
	default:
		return decimal.Zero, fmt.Errorf("unknown transaction type %q", t)
	}
}

// IsCredit reports whether the entry increases the account balance.
func (t Transaction) IsCredit() bool {
	return t.Amount.IsPositive()
}
