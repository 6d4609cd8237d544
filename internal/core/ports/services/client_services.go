package services

import (
	"context"

	"github.com/ICON-SARL/ngnasoro-sub006/internal/core/domain"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/dto"
)

// ClientReaderSvc defines read operations for client data
type ClientReaderSvc interface {
	// GetClientByID retrieves a client by ID.
	GetClientByID(ctx context.Context, actor domain.AuthContext, clientID string) (*domain.Client, error)

	// ListClients retrieves a paginated list of clients for an SFD.
	ListClients(ctx context.Context, actor domain.AuthContext, sfdID string, limit, offset int) ([]domain.Client, error)
}

// ClientWriterSvc defines write operations for client data
type ClientWriterSvc interface {
	// CreateClient registers a new client with an SFD.
	CreateClient(ctx context.Context, actor domain.AuthContext, req dto.CreateClientRequest) (*domain.Client, error)

	// UpdateClient updates an existing client's details.
	UpdateClient(ctx context.Context, actor domain.AuthContext, clientID string, req dto.UpdateClientRequest) (*domain.Client, error)

	// DeactivateClient marks a client as inactive.
	DeactivateClient(ctx context.Context, actor domain.AuthContext, clientID string) error
}

// KYCSvc defines the identity verification path
type KYCSvc interface {
	// VerifyKYC records a verification decision on a client's identity documents.
	VerifyKYC(ctx context.Context, actor domain.AuthContext, clientID string, req dto.VerifyKYCRequest) (*domain.Client, error)
}

// ClientSvcFacade combines all client-related service interfaces
type ClientSvcFacade interface {
	ClientReaderSvc
	ClientWriterSvc
	KYCSvc
}
