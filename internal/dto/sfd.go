package dto

import (
	"time"

	"github.com/ICON-SARL/ngnasoro-sub006/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateSFDRequest defines the data needed to register a partner institution.
type CreateSFDRequest struct {
	Name   string `json:"name" binding:"required"`
	Code   string `json:"code" binding:"required,alphanum,min=2,max=12"`
	Region string `json:"region"`
}

// UpdateSFDRequest defines the data allowed for updating an SFD.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateSFDRequest struct {
	Name   *string `json:"name"`
	Region *string `json:"region"`
}

// UpdateSFDStatusRequest defines the data for a status change.
type UpdateSFDStatusRequest struct {
	Status domain.SFDStatus `json:"status" binding:"required,oneof=active suspended"`
}

// SFDResponse defines the data returned for an SFD.
// Mirrors domain.SFD.
type SFDResponse struct {
	SFDID          string           `json:"sfdID"`
	Name           string           `json:"name"`
	Code           string           `json:"code"`
	Region         string           `json:"region,omitempty"`
	Status         domain.SFDStatus `json:"status"`
	SubsidyBalance decimal.Decimal  `json:"subsidyBalance"`
	CreatedAt      time.Time        `json:"createdAt"`
	CreatedBy      string           `json:"createdBy"`
	LastUpdatedAt  time.Time        `json:"lastUpdatedAt"`
	LastUpdatedBy  string           `json:"lastUpdatedBy"`
}

// ToSFDResponse converts a domain.SFD to SFDResponse DTO
func ToSFDResponse(s *domain.SFD) SFDResponse {
	return SFDResponse{
		SFDID:          s.SFDID,
		Name:           s.Name,
		Code:           s.Code,
		Region:         s.Region,
		Status:         s.Status,
		SubsidyBalance: s.SubsidyBalance,
		CreatedAt:      s.CreatedAt,
		CreatedBy:      s.CreatedBy,
		LastUpdatedAt:  s.LastUpdatedAt,
		LastUpdatedBy:  s.LastUpdatedBy,
	}
}

// ListSFDsParams defines query parameters for listing SFDs.
type ListSFDsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListSFDsResponse wraps the list of SFDs.
type ListSFDsResponse struct {
	SFDs []SFDResponse `json:"sfds"`
}

// ToListSFDsResponse converts a slice of domain.SFD to ListSFDsResponse DTO
func ToListSFDsResponse(sfds []domain.SFD) ListSFDsResponse {
	res := make([]SFDResponse, len(sfds))
	for i, s := range sfds {
		res[i] = ToSFDResponse(&s)
	}
	return ListSFDsResponse{SFDs: res}
}
