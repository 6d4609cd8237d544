package models

import "github.com/shopspring/decimal"

// SubsidyRequest is the database representation of a MEREF subsidy request.
type SubsidyRequest struct {
	RequestID       string          `db:"request_id"`
	SFDID           string          `db:"sfd_id"`
	Amount          decimal.Decimal `db:"amount"`
	Purpose         string          `db:"purpose"`
	Priority        string          `db:"priority"`
	Status          string          `db:"status"`
	DecidedBy       string          `db:"decided_by"`
	DecisionComment string          `db:"decision_comment"`
	AuditFields
}

// FundRequest is the database representation of a fund transfer request.
type FundRequest struct {
	RequestID       string          `db:"request_id"`
	SFDID           string          `db:"sfd_id"`
	Amount          decimal.Decimal `db:"amount"`
	Purpose         string          `db:"purpose"`
	Status          string          `db:"status"`
	DecidedBy       string          `db:"decided_by"`
	DecisionComment string          `db:"decision_comment"`
	AuditFields
}
