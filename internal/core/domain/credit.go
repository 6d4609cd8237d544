package domain

import "github.com/shopspring/decimal"

// CreditStatus is the state of a credit application.
// pending -> approved | rejected, terminal once decided.
type CreditStatus string

const (
	CreditPending  CreditStatus = "pending"
	CreditApproved CreditStatus = "approved"
	CreditRejected CreditStatus = "rejected"
)

// CreditApplication is a client's request for a loan, created by an SFD admin
// and decided by a super-admin. Approval disburses the loan to the client's
// account atomically with the status transition.
type CreditApplication struct {
	ApplicationID  string          `json:"applicationID"` // Primary Key (UUID)
	ClientID       string          `json:"clientID"`
	SFDID          string          `json:"sfdID"`
	Amount         decimal.Decimal `json:"amount"` // Requested principal, positive
	DurationMonths int             `json:"durationMonths"`
	Purpose        string          `json:"purpose"`
	Status         CreditStatus    `json:"status"`
	ReviewedBy     string          `json:"reviewedBy"` // UserID, "" while pending
	ReviewComment  string          `json:"reviewComment"`
	AuditFields
}

// IsDecided reports whether the application reached a terminal state.
func (a CreditApplication) IsDecided() bool {
	return a.Status != CreditPending
}
