package models

import "github.com/shopspring/decimal"

// CreditApplication is the database representation of a loan application.
type CreditApplication struct {
	ApplicationID  string          `db:"application_id"`
	ClientID       string          `db:"client_id"`
	SFDID          string          `db:"sfd_id"`
	Amount         decimal.Decimal `db:"amount"`
	DurationMonths int             `db:"duration_months"`
	Purpose        string          `db:"purpose"`
	Status         string          `db:"status"`
	ReviewedBy     string          `db:"reviewed_by"`
	ReviewComment  string          `db:"review_comment"`
	AuditFields
}
