package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionSummaryRow aggregates ledger movements of one type.
type TransactionSummaryRow struct {
	Type        TransactionType `json:"type"`
	Count       int64           `json:"count"`
	TotalCredit decimal.Decimal `json:"totalCredit"` // Sum of positive amounts
	TotalDebit  decimal.Decimal `json:"totalDebit"`  // Sum of absolute negative amounts
}

// SFDTransactionSummary is the per-institution activity report over a window.
type SFDTransactionSummary struct {
	SFDID       string                  `json:"sfdID"`
	From        time.Time               `json:"from"`
	To          time.Time               `json:"to"`
	Rows        []TransactionSummaryRow `json:"rows"`
	NetMovement decimal.Decimal         `json:"netMovement"` // Sum of signed amounts
}

// SubsidyOverview is the platform-wide view of MEREF capital allocation.
type SubsidyOverview struct {
	TotalGranted   decimal.Decimal `json:"totalGranted"`   // Sum of approved subsidy requests
	TotalPending   decimal.Decimal `json:"totalPending"`   // Sum of requests awaiting decision
	ActiveSFDCount int64           `json:"activeSFDCount"`
	GeneratedAt    time.Time       `json:"generatedAt"`
}
