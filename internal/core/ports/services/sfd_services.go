package services

import (
	"context"

	"github.com/ICON-SARL/ngnasoro-sub006/internal/core/domain"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/dto"
)

// SFDReaderSvc defines read operations for SFD data
type SFDReaderSvc interface {
	// GetSFDByID retrieves an SFD by ID.
	GetSFDByID(ctx context.Context, actor domain.AuthContext, sfdID string) (*domain.SFD, error)

	// ListSFDs retrieves a paginated list of SFDs.
	ListSFDs(ctx context.Context, actor domain.AuthContext, limit, offset int) ([]domain.SFD, error)
}

// SFDWriterSvc defines write operations for SFD data
type SFDWriterSvc interface {
	// CreateSFD registers a new partner institution.
	CreateSFD(ctx context.Context, actor domain.AuthContext, req dto.CreateSFDRequest) (*domain.SFD, error)

	// UpdateSFD updates an existing SFD's details.
	UpdateSFD(ctx context.Context, actor domain.AuthContext, sfdID string, req dto.UpdateSFDRequest) (*domain.SFD, error)

	// UpdateSFDStatus changes the operational status of an SFD.
	UpdateSFDStatus(ctx context.Context, actor domain.AuthContext, sfdID string, status domain.SFDStatus) (*domain.SFD, error)
}

// SFDSvcFacade combines all SFD-related service interfaces
type SFDSvcFacade interface {
	SFDReaderSvc
	SFDWriterSvc
}
