package domain

import (
	"github.com/shopspring/decimal"
)

// DefaultCurrencyCode is the platform-wide currency. All SFDs operate in FCFA.
const DefaultCurrencyCode = "FCFA"

// Account represents a client's money account held at an SFD.
// One row per client; the balance is maintained transactionally alongside
// the append-only transaction ledger.
type Account struct {
	AccountID    string          `json:"accountID"`    // Primary Key (UUID)
	ClientID     string          `json:"clientID"`     // FK -> clients.client_id (NON-NULL, unique)
	SFDID        string          `json:"sfdID"`        // FK -> sfds.sfd_id (NON-NULL)
	Balance      decimal.Decimal `json:"balance"`      // Never negative after a debit
	CurrencyCode string          `json:"currencyCode"` // Always "FCFA" today
	IsActive     bool            `json:"isActive"`
	AuditFields
}
