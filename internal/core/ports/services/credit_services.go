package services

import (
	"context"

	"github.com/ICON-SARL/ngnasoro-sub006/internal/core/domain"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/dto"
)

// CreditReaderSvc defines read operations for credit applications
type CreditReaderSvc interface {
	// GetApplicationByID retrieves a credit application by ID.
	GetApplicationByID(ctx context.Context, actor domain.AuthContext, applicationID string) (*domain.CreditApplication, error)

	// ListApplications retrieves a paginated list of applications,
	// optionally filtered by status.
	ListApplications(ctx context.Context, actor domain.AuthContext, sfdID string, status *domain.CreditStatus, limit, offset int) ([]domain.CreditApplication, error)
}

// CreditWriterSvc defines the application submission path
type CreditWriterSvc interface {
	// SubmitApplication records a new credit application in pending status.
	SubmitApplication(ctx context.Context, actor domain.AuthContext, req dto.CreateCreditApplicationRequest) (*domain.CreditApplication, error)
}

// CreditReviewSvc defines the decision paths over pending applications
type CreditReviewSvc interface {
	// ApproveApplication approves a pending application and disburses the
	// loan to the client's account in a single database transaction.
	ApproveApplication(ctx context.Context, actor domain.AuthContext, applicationID string, req dto.DecideCreditRequest) (*domain.CreditApplication, error)

	// RejectApplication rejects a pending application.
	RejectApplication(ctx context.Context, actor domain.AuthContext, applicationID string, req dto.DecideCreditRequest) (*domain.CreditApplication, error)
}

// CreditSvcFacade combines all credit-related service interfaces
type CreditSvcFacade interface {
	CreditReaderSvc
	CreditWriterSvc
	CreditReviewSvc
}
