package dto

import (
	"time"

	"github.com/ICON-SARL/ngnasoro-sub006/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateSubsidyRequestRequest defines the data needed to submit a subsidy request.
type CreateSubsidyRequestRequest struct {
	Amount   decimal.Decimal        `json:"amount" binding:"required,decimalgt0"`
	Purpose  string                 `json:"purpose" binding:"required"`
	Priority domain.RequestPriority `json:"priority" binding:"omitempty,oneof=low normal high"`
}

// CreateFundRequestRequest defines the data needed to submit a fund request.
type CreateFundRequestRequest struct {
	Amount  decimal.Decimal `json:"amount" binding:"required,decimalgt0"`
	Purpose string          `json:"purpose" binding:"required"`
}

// DecideRequestRequest defines the decision maker's comment.
type DecideRequestRequest struct {
	Comment string `json:"comment"`
}

// SubsidyRequestResponse defines the data returned for a subsidy request.
// Mirrors domain.SubsidyRequest.
type SubsidyRequestResponse struct {
	RequestID       string                 `json:"requestID"`
	SFDID           string                 `json:"sfdID"`
	Amount          decimal.Decimal        `json:"amount"`
	Purpose         string                 `json:"purpose"`
	Priority        domain.RequestPriority `json:"priority"`
	Status          domain.RequestStatus   `json:"status"`
	DecidedBy       string                 `json:"decidedBy,omitempty"`
	DecisionComment string                 `json:"decisionComment,omitempty"`
	CreatedAt       time.Time              `json:"createdAt"`
	CreatedBy       string                 `json:"createdBy"`
	LastUpdatedAt   time.Time              `json:"lastUpdatedAt"`
	LastUpdatedBy   string                 `json:"lastUpdatedBy"`
}

// ToSubsidyRequestResponse converts a domain.SubsidyRequest to its response DTO
func ToSubsidyRequestResponse(r *domain.SubsidyRequest) SubsidyRequestResponse {
	return SubsidyRequestResponse{
		RequestID:       r.RequestID,
		SFDID:           r.SFDID,
		Amount:          r.Amount,
		Purpose:         r.Purpose,
		Priority:        r.Priority,
		Status:          r.Status,
		DecidedBy:       r.DecidedBy,
		DecisionComment: r.DecisionComment,
		CreatedAt:       r.CreatedAt,
		CreatedBy:       r.CreatedBy,
		LastUpdatedAt:   r.LastUpdatedAt,
		LastUpdatedBy:   r.LastUpdatedBy,
	}
}

// FundRequestResponse defines the data returned for a fund request.
// Mirrors domain.FundRequest.
type FundRequestResponse struct {
	RequestID       string               `json:"requestID"`
	SFDID           string               `json:"sfdID"`
	Amount          decimal.Decimal      `json:"amount"`
	Purpose         string               `json:"purpose"`
	Status          domain.RequestStatus `json:"status"`
	DecidedBy       string               `json:"decidedBy,omitempty"`
	DecisionComment string               `json:"decisionComment,omitempty"`
	CreatedAt       time.Time            `json:"createdAt"`
	CreatedBy       string               `json:"createdBy"`
	LastUpdatedAt   time.Time            `json:"lastUpdatedAt"`
	LastUpdatedBy   string               `json:"lastUpdatedBy"`
}

// ToFundRequestResponse converts a domain.FundRequest to its response DTO
func ToFundRequestResponse(r *domain.FundRequest) FundRequestResponse {
	return FundRequestResponse{
		RequestID:       r.RequestID,
		SFDID:           r.SFDID,
		Amount:          r.Amount,
		Purpose:         r.Purpose,
		Status:          r.Status,
		DecidedBy:       r.DecidedBy,
		DecisionComment: r.DecisionComment,
		CreatedAt:       r.CreatedAt,
		CreatedBy:       r.CreatedBy,
		LastUpdatedAt:   r.LastUpdatedAt,
		LastUpdatedBy:   r.LastUpdatedBy,
	}
}

// ListRequestsParams defines query parameters for listing subsidy or fund requests.
type ListRequestsParams struct {
	Status string `form:"status" binding:"omitempty,oneof=pending approved rejected completed"`
	SFDID  string `form:"sfdID"`
	Limit  int    `form:"limit,default=20"`
	Offset int    `form:"offset,default=0"`
}

// ListSubsidyRequestsResponse wraps the list of subsidy requests.
type ListSubsidyRequestsResponse struct {
	Requests []SubsidyRequestResponse `json:"requests"`
}

// ToListSubsidyRequestsResponse converts domain subsidy requests to the response DTO
func ToListSubsidyRequestsResponse(requests []domain.SubsidyRequest) ListSubsidyRequestsResponse {
	res := make([]SubsidyRequestResponse, len(requests))
	for i, r := range requests {
		res[i] = ToSubsidyRequestResponse(&r)
	}
	return ListSubsidyRequestsResponse{Requests: res}
}

// ListFundRequestsResponse wraps the list of fund requests.
type ListFundRequestsResponse struct {
	Requests []FundRequestResponse `json:"requests"`
}

// ToListFundRequestsResponse converts domain fund requests to the response DTO
func ToListFundRequestsResponse(requests []domain.FundRequest) ListFundRequestsResponse {
	res := make([]FundRequestResponse, len(requests))
	for i, r := range requests {
		res[i] = ToFundRequestResponse(&r)
	}
	return ListFundRequestsResponse{Requests: res}
}
