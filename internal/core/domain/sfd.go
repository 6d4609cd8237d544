package domain

import "github.com/shopspring/decimal"

// SFDStatus is the operating state of an institution.
type SFDStatus string

const (
	SFDActive    SFDStatus = "active"
	SFDSuspended SFDStatus = "suspended"
)

// SFD is a Société de Financement Décentralisé, a microfinance institution
// funded through the MEREF subsidy programme.
type SFD struct {
	SFDID          string          `json:"sfdID"` // Primary Key (UUID)
	Name           string          `json:"name"`
	Code           string          `json:"code"` // Short unique registry code
	Region         string          `json:"region"`
	Status         SFDStatus       `json:"status"`
	SubsidyBalance decimal.Decimal `json:"subsidyBalance"` // MEREF float granted via approved subsidy requests
	AuditFields
}
