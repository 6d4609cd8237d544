package models

import "github.com/shopspring/decimal"

// Account is the database representation of a client money account.
type Account struct {
	AccountID    string          `db:"account_id"`
	ClientID     string          `db:"client_id"`
	SFDID        string          `db:"sfd_id"`
	Balance      decimal.Decimal `db:"balance"`
	CurrencyCode string          `db:"currency_code"`
	IsActive     bool            `db:"is_active"`
	AuditFields
}
