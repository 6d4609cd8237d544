package repositories

import (
	"context"
	"time"

	"github.com/ICON-SARL/ngnasoro-sub006/internal/core/domain"
)

// SubsidyRequestReader defines read operations for subsidy request data
type SubsidyRequestReader interface {
	// FindSubsidyRequestByID retrieves a specific subsidy request by its ID.
	FindSubsidyRequestByID(ctx context.Context, requestID string) (*domain.SubsidyRequest, error)

	// ListSubsidyRequests retrieves a paginated list of subsidy requests,
	// optionally filtered by SFD and status.
	ListSubsidyRequests(ctx context.Context, sfdID string, status *domain.RequestStatus, limit int, offset int) ([]domain.SubsidyRequest, error)

	// ListStaleSubsidyRequests retrieves pending subsidy requests created before the cutoff.
	ListStaleSubsidyRequests(ctx context.Context, cutoff time.Time) ([]domain.SubsidyRequest, error)
}

// SubsidyRequestWriter defines write operations for subsidy request data
type SubsidyRequestWriter interface {
	// SaveSubsidyRequest persists a new subsidy request.
	SaveSubsidyRequest(ctx context.Context, request domain.SubsidyRequest) error
}

// SubsidyDecisionSupport defines the decision paths for subsidy requests.
// Approval credits the SFD's subsidy balance in the same database transaction
// as the status change, the audit row and the notification.
type SubsidyDecisionSupport interface {
	// ApproveAndCredit marks the request approved and credits the SFD's
	// subsidy balance atomically.
	ApproveAndCredit(ctx context.Context, request domain.SubsidyRequest, audit domain.AuditLogEvent, notification *domain.Notification) error

	// Decide records a rejection or completion, with its audit event and
	// optional notification, in a single database transaction.
	Decide(ctx context.Context, request domain.SubsidyRequest, audit domain.AuditLogEvent, notification *domain.Notification) error
}

// FundRequestReader defines read operations for fund request data
type FundRequestReader interface {
	// FindFundRequestByID retrieves a specific fund request by its ID.
	FindFundRequestByID(ctx context.Context, requestID string) (*domain.FundRequest, error)

	// ListFundRequests retrieves a paginated list of fund requests,
	// optionally filtered by SFD and status.
	ListFundRequests(ctx context.Context, sfdID string, status *domain.RequestStatus, limit int, offset int) ([]domain.FundRequest, error)

	// ListStaleFundRequests retrieves pending fund requests created before the cutoff.
	ListStaleFundRequests(ctx context.Context, cutoff time.Time) ([]domain.FundRequest, error)
}

// FundRequestWriter defines write operations for fund request data
type FundRequestWriter interface {
	// SaveFundRequest persists a new fund request.
	SaveFundRequest(ctx context.Context, request domain.FundRequest) error

	// DecideFundRequest records a decision on a fund request, with its audit
	// event and optional notification, in a single database transaction.
	DecideFundRequest(ctx context.Context, request domain.FundRequest, audit domain.AuditLogEvent, notification *domain.Notification) error
}

// SubsidyRepositoryFacade combines all subsidy-related repository interfaces
// This is a facade for clients that need access to all operations
type SubsidyRepositoryFacade interface {
	SubsidyRequestReader
	SubsidyRequestWriter
	SubsidyDecisionSupport
	FundRequestReader
	FundRequestWriter
}
