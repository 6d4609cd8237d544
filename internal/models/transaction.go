package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the database representation of a ledger entry.
// Rows are append-only; only status may be updated (supervision flagging).
type Transaction struct {
	TransactionID string          `db:"transaction_id"`
	AccountID     string          `db:"account_id"`
	ClientID      string          `db:"client_id"`
	SFDID         string          `db:"sfd_id"`
	Amount        decimal.Decimal `db:"amount"`
	Type          string          `db:"type"`
	Status        string          `db:"status"`
	ReferenceID   string          `db:"reference_id"`
	Description   string          `db:"description"`
	PerformedBy   string          `db:"performed_by"`
	BalanceAfter  decimal.Decimal `db:"balance_after"`
	CreatedAt     time.Time       `db:"created_at"`
}
