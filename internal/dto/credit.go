package dto

import (
	"time"

	"github.com/ICON-SARL/ngnasoro-sub006/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCreditApplicationRequest defines the data needed to submit a credit application.
type CreateCreditApplicationRequest struct {
	ClientID       string          `json:"clientID" binding:"required"`
	Amount         decimal.Decimal `json:"amount" binding:"required,decimalgt0"`
	DurationMonths int             `json:"durationMonths" binding:"required,gte=1,lte=120"`
	Purpose        string          `json:"purpose" binding:"required"`
}

// DecideCreditRequest defines the reviewer's comment on a decision.
type DecideCreditRequest struct {
	Comment string `json:"comment"`
}

// CreditApplicationResponse defines the data returned for a credit application.
// Mirrors domain.CreditApplication.
type CreditApplicationResponse struct {
	ApplicationID  string              `json:"applicationID"`
	ClientID       string              `json:"clientID"`
	SFDID          string              `json:"sfdID"`
	Amount         decimal.Decimal     `json:"amount"`
	DurationMonths int                 `json:"durationMonths"`
	Purpose        string              `json:"purpose"`
	Status         domain.CreditStatus `json:"status"`
	ReviewedBy     string              `json:"reviewedBy,omitempty"`
	ReviewComment  string              `json:"reviewComment,omitempty"`
	CreatedAt      time.Time           `json:"createdAt"`
	CreatedBy      string              `json:"createdBy"`
	LastUpdatedAt  time.Time           `json:"lastUpdatedAt"`
	LastUpdatedBy  string              `json:"lastUpdatedBy"`
}

// ToCreditApplicationResponse converts a domain.CreditApplication to its response DTO
func ToCreditApplicationResponse(a *domain.CreditApplication) CreditApplicationResponse {
	return CreditApplicationResponse{
		ApplicationID:  a.ApplicationID,
		ClientID:       a.ClientID,
		SFDID:          a.SFDID,
		Amount:         a.Amount,
		DurationMonths: a.DurationMonths,
		Purpose:        a.Purpose,
		Status:         a.Status,
		ReviewedBy:     a.ReviewedBy,
		ReviewComment:  a.ReviewComment,
		CreatedAt:      a.CreatedAt,
		CreatedBy:      a.CreatedBy,
		LastUpdatedAt:  a.LastUpdatedAt,
		LastUpdatedBy:  a.LastUpdatedBy,
	}
}

// ListCreditApplicationsParams defines query parameters for listing applications.
type ListCreditApplicationsParams struct {
	Status string `form:"status" binding:"omitempty,oneof=pending approved rejected"`
	Limit  int    `form:"limit,default=20"`
	Offset int    `form:"offset,default=0"`
}

// ListCreditApplicationsResponse wraps the list of applications.
type ListCreditApplicationsResponse struct {
	Applications []CreditApplicationResponse `json:"applications"`
}

// ToListCreditApplicationsResponse converts domain applications to the response DTO
func ToListCreditApplicationsResponse(apps []domain.CreditApplication) ListCreditApplicationsResponse {
	res := make([]CreditApplicationResponse, len(apps))
	for i, a := range apps {
		res[i] = ToCreditApplicationResponse(&a)
	}
	return ListCreditApplicationsResponse{Applications: res}
}
