package domain

import "github.com/shopspring/decimal"

// RequestStatus is the state of a subsidy or fund request.
// pending -> approved | rejected; fund requests additionally reach completed
// once the transfer is executed.
type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestApproved  RequestStatus = "approved"
	RequestRejected  RequestStatus = "rejected"
	RequestCompleted RequestStatus = "completed"
)

// RequestPriority orders pending requests for super-admin review.
type RequestPriority string

const (
	PriorityLow    RequestPriority = "low"
	PriorityNormal RequestPriority = "normal"
	PriorityHigh   RequestPriority = "high"
)

// SubsidyRequest is an SFD admin's request for MEREF subsidy capital.
// Approval credits the institution's subsidy balance.
type SubsidyRequest struct {
	RequestID       string          `json:"requestID"` // Primary Key (UUID)
	SFDID           string          `json:"sfdID"`
	Amount          decimal.Decimal `json:"amount"` // Positive
	Purpose         string          `json:"purpose"`
	Priority        RequestPriority `json:"priority"`
	Status          RequestStatus   `json:"status"`
	DecidedBy       string          `json:"decidedBy"` // UserID, "" while pending
	DecisionComment string          `json:"decisionComment"`
	AuditFields
}

// FundRequest is a request to move approved subsidy capital to an SFD's
// operating funds. Same shape as SubsidyRequest plus the completed state.
type FundRequest struct {
	RequestID       string          `json:"requestID"` // Primary Key (UUID)
	SFDID           string          `json:"sfdID"`
	Amount          decimal.Decimal `json:"amount"`
	Purpose         string          `json:"purpose"`
	Status          RequestStatus   `json:"status"`
	DecidedBy       string          `json:"decidedBy"`
	DecisionComment string          `json:"decisionComment"`
	AuditFields
}

// IsDecided reports whether the request left the pending state.
func (r SubsidyRequest) IsDecided() bool {
	return r.Status != RequestPending
}

// IsDecided reports whether the request left the pending state.
func (r FundRequest) IsDecided() bool {
	return r.Status != RequestPending
}
