package repositories

import (
	"context"

	"github.com/ICON-SARL/ngnasoro-sub006/internal/core/domain"
)

// CreditReader defines read operations for credit application data
type CreditReader interface {
	// FindCreditApplicationByID retrieves a specific application by its ID.
	FindCreditApplicationByID(ctx context.Context, applicationID string) (*domain.CreditApplication, error)

	// ListCreditApplications retrieves a paginated list of applications,
	// optionally filtered by SFD and status.
	ListCreditApplications(ctx context.Context, sfdID string, status *domain.CreditStatus, limit int, offset int) ([]domain.CreditApplication, error)
}

// CreditWriter defines write operations for credit application data
type CreditWriter interface {
	// SaveCreditApplication persists a new application.
	SaveCreditApplication(ctx context.Context, application domain.CreditApplication) error

	// UpdateCreditApplication updates an existing application's details.
	UpdateCreditApplication(ctx context.Context, application domain.CreditApplication) error
}

// CreditDecisionSupport defines the decision paths for credit applications.
// Approval disburses the loan: the status change, the disbursement
// transaction, the audit row and the notification commit together.
type CreditDecisionSupport interface {
	// ApproveAndDisburse marks the application approved and posts the loan
	// disbursement to the client's account in the same database transaction.
	// It returns the disbursement transaction with BalanceAfter populated.
	ApproveAndDisburse(ctx context.Context, application domain.CreditApplication, disbursement domain.Transaction, audit domain.AuditLogEvent, notification *domain.Notification) (*domain.Transaction, error)

	// Reject marks the application rejected, recording the audit event and
	// notification in the same database transaction.
	Reject(ctx context.Context, application domain.CreditApplication, audit domain.AuditLogEvent, notification *domain.Notification) error
}

// CreditRepositoryFacade combines all credit-related repository interfaces
// This is a facade for clients that need access to all operations
type CreditRepositoryFacade interface {
	CreditReader
	CreditWriter
	CreditDecisionSupport
}
