package dto

import (
	"time"

	"github.com/ICON-SARL/ngnasoro-sub006/internal/core/domain"
)

// CreateClientRequest defines the data needed to register a client with an SFD.
type CreateClientRequest struct {
	SFDID    string `json:"sfdID" binding:"required"`
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"omitempty,email"`
	Phone    string `json:"phone"`
}

// UpdateClientRequest defines the data allowed for updating a client.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateClientRequest struct {
	FullName *string `json:"fullName"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Phone    *string `json:"phone"`
}

// VerifyKYCRequest defines the data for a verification decision.
type VerifyKYCRequest struct {
	Status domain.KYCStatus `json:"status" binding:"required,oneof=verified rejected"`
	Level  int              `json:"level" binding:"gte=0,lte=2"`
}

// ClientResponse defines the data returned for a client.
// Mirrors domain.Client.
type ClientResponse struct {
	ClientID      string           `json:"clientID"`
	SFDID         string           `json:"sfdID"`
	FullName      string           `json:"fullName"`
	Email         string           `json:"email,omitempty"`
	Phone         string           `json:"phone,omitempty"`
	KYCStatus     domain.KYCStatus `json:"kycStatus"`
	KYCLevel      int              `json:"kycLevel"`
	IsActive      bool             `json:"isActive"`
	CreatedAt     time.Time        `json:"createdAt"`
	CreatedBy     string           `json:"createdBy"`
	LastUpdatedAt time.Time        `json:"lastUpdatedAt"`
	LastUpdatedBy string           `json:"lastUpdatedBy"`
}

// ToClientResponse converts a domain.Client to ClientResponse DTO
func ToClientResponse(c *domain.Client) ClientResponse {
	return ClientResponse{
		ClientID:      c.ClientID,
		SFDID:         c.SFDID,
		FullName:      c.FullName,
		Email:         c.Email,
		Phone:         c.Phone,
		KYCStatus:     c.KYCStatus,
		KYCLevel:      c.KYCLevel,
		IsActive:      c.IsActive,
		CreatedAt:     c.CreatedAt,
		CreatedBy:     c.CreatedBy,
		LastUpdatedAt: c.LastUpdatedAt,
		LastUpdatedBy: c.LastUpdatedBy,
	}
}

// ListClientsParams defines query parameters for listing clients.
type ListClientsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListClientsResponse wraps the list of clients.
type ListClientsResponse struct {
	Clients []ClientResponse `json:"clients"`
}

// ToListClientsResponse converts a slice of domain.Client to ListClientsResponse DTO
func ToListClientsResponse(clients []domain.Client) ListClientsResponse {
	res := make([]ClientResponse, len(clients))
	for i, c := range clients {
		res[i] = ToClientResponse(&c)
	}
	return ListClientsResponse{Clients: res}
}
