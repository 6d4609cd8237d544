package models

import "github.com/shopspring/decimal"

// SFD is the database representation of a microfinance institution.
type SFD struct {
	SFDID          string          `db:"sfd_id"`
	Name           string          `db:"name"`
	Code           string          `db:"code"`
	Region         string          `db:"region"`
	Status         string          `db:"status"`
	SubsidyBalance decimal.Decimal `db:"subsidy_balance"`
	AuditFields
}
