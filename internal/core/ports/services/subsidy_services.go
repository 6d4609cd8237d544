package services

import (
	"context"

	"github.com/ICON-SARL/ngnasoro-sub006/internal/core/domain"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/dto"
)

// SubsidyRequestSvc defines operations on subsidy requests
type SubsidyRequestSvc interface {
	// SubmitSubsidyRequest records a new subsidy request in pending status.
	SubmitSubsidyRequest(ctx context.Context, actor domain.AuthContext, req dto.CreateSubsidyRequestRequest) (*domain.SubsidyRequest, error)

	// GetSubsidyRequestByID retrieves a subsidy request by ID.
	GetSubsidyRequestByID(ctx context.Context, actor domain.AuthContext, requestID string) (*domain.SubsidyRequest, error)

	// ListSubsidyRequests retrieves a paginated list of subsidy requests,
	// optionally filtered by status.
	ListSubsidyRequests(ctx context.Context, actor domain.AuthContext, sfdID string, status *domain.RequestStatus, limit, offset int) ([]domain.SubsidyRequest, error)

	// ApproveSubsidyRequest approves a pending request and credits the SFD's
	// subsidy balance in a single database transaction.
	ApproveSubsidyRequest(ctx context.Context, actor domain.AuthContext, requestID string, req dto.DecideRequestRequest) (*domain.SubsidyRequest, error)

	// RejectSubsidyRequest rejects a pending request.
	RejectSubsidyRequest(ctx context.Context, actor domain.AuthContext, requestID string, req dto.DecideRequestRequest) (*domain.SubsidyRequest, error)
}

// FundRequestSvc defines operations on fund requests
type FundRequestSvc interface {
	// SubmitFundRequest records a new fund request in pending status.
	SubmitFundRequest(ctx context.Context, actor domain.AuthContext, req dto.CreateFundRequestRequest) (*domain.FundRequest, error)

	// GetFundRequestByID retrieves a fund request by ID.
	GetFundRequestByID(ctx context.Context, actor domain.AuthContext, requestID string) (*domain.FundRequest, error)

	// ListFundRequests retrieves a paginated list of fund requests,
	// optionally filtered by status.
	ListFundRequests(ctx context.Context, actor domain.AuthContext, sfdID string, status *domain.RequestStatus, limit, offset int) ([]domain.FundRequest, error)

	// ApproveFundRequest approves a pending fund request.
	ApproveFundRequest(ctx context.Context, actor domain.AuthContext, requestID string, req dto.DecideRequestRequest) (*domain.FundRequest, error)

	// RejectFundRequest rejects a pending fund request.
	RejectFundRequest(ctx context.Context, actor domain.AuthContext, requestID string, req dto.DecideRequestRequest) (*domain.FundRequest, error)

	// CompleteFundRequest marks an approved fund request as completed once
	// the funds have been transferred.
	CompleteFundRequest(ctx context.Context, actor domain.AuthContext, requestID string) (*domain.FundRequest, error)
}

// StaleRequestSvc defines the scheduled sweep over aging pending requests
type StaleRequestSvc interface {
	// SweepStaleRequests finds pending subsidy and fund requests older than
	// the cutoff and notifies the reviewers. It returns the number of
	// requests flagged.
	SweepStaleRequests(ctx context.Context) (int, error)
}

// SubsidySvcFacade combines all subsidy-related service interfaces
type SubsidySvcFacade interface {
	SubsidyRequestSvc
	FundRequestSvc
	StaleRequestSvc
}
