package dto

import (
	"time"

	"github.com/ICON-SARL/ngnasoro-sub006/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionSummaryParams defines query parameters for the activity report.
type TransactionSummaryParams struct {
	From string `form:"from" binding:"required"` // RFC3339
	To   string `form:"to" binding:"required"`   // RFC3339
}

// TransactionSummaryRowResponse aggregates ledger movements of one type.
type TransactionSummaryRowResponse struct {
	Type        domain.TransactionType `json:"type"`
	Count       int64                  `json:"count"`
	TotalCredit decimal.Decimal        `json:"totalCredit"`
	TotalDebit  decimal.Decimal        `json:"totalDebit"`
}

// TransactionSummaryResponse is the per-institution activity report.
type TransactionSummaryResponse struct {
	SFDID       string                          `json:"sfdID"`
	From        time.Time                       `json:"from"`
	To          time.Time                       `json:"to"`
	Rows        []TransactionSummaryRowResponse `json:"rows"`
	NetMovement decimal.Decimal                 `json:"netMovement"`
}

// ToTransactionSummaryResponse converts a domain.SFDTransactionSummary to its response DTO
func ToTransactionSummaryResponse(s *domain.SFDTransactionSummary) TransactionSummaryResponse {
	rows := make([]TransactionSummaryRowResponse, len(s.Rows))
	for i, r := range s.Rows {
		rows[i] = TransactionSummaryRowResponse{
			Type:        r.Type,
			Count:       r.Count,
			TotalCredit: r.TotalCredit,
			TotalDebit:  r.TotalDebit,
		}
	}
	return TransactionSummaryResponse{
		SFDID:       s.SFDID,
		From:        s.From,
		To:          s.To,
		Rows:        rows,
		NetMovement: s.NetMovement,
	}
}

// SubsidyOverviewResponse is the platform-wide view of subsidy allocation.
type SubsidyOverviewResponse struct {
	TotalGranted   decimal.Decimal `json:"totalGranted"`
	TotalPending   decimal.Decimal `json:"totalPending"`
	ActiveSFDCount int64           `json:"activeSFDCount"`
	GeneratedAt    time.Time       `json:"generatedAt"`
}

// ToSubsidyOverviewResponse converts a domain.SubsidyOverview to its response DTO
func ToSubsidyOverviewResponse(o *domain.SubsidyOverview) SubsidyOverviewResponse {
	return SubsidyOverviewResponse{
		TotalGranted:   o.TotalGranted,
		TotalPending:   o.TotalPending,
		ActiveSFDCount: o.ActiveSFDCount,
		GeneratedAt:    o.GeneratedAt,
	}
}
