package repositories

import (
	"context"
	"time"

	"github.com/ICON-SARL/ngnasoro-sub006/internal/core/domain"
)

// ClientReader defines read operations for client data
type ClientReader interface {
	// FindClientByID retrieves a specific client by their ID.
	FindClientByID(ctx context.Context, clientID string) (*domain.Client, error)

	// ListClientsBySFD retrieves a paginated list of clients for a given SFD.
	ListClientsBySFD(ctx context.Context, sfdID string, limit int, offset int) ([]domain.Client, error)
}

// ClientWriter defines write operations for client data
type ClientWriter interface {
	// SaveClient persists a new client.
	SaveClient(ctx context.Context, client domain.Client) error

	// UpdateClient updates an existing client's details.
	UpdateClient(ctx context.Context, client domain.Client) error

	// DeactivateClient marks a client as inactive.
	DeactivateClient(ctx context.Context, clientID string, userID string, now time.Time) error
}

// KYCUpdater defines operations on a client's verification state.
type KYCUpdater interface {
	// UpdateKYCStatus changes the verification status and level of a client,
	// recording the audit event in the same database transaction.
	UpdateKYCStatus(ctx context.Context, clientID string, status domain.KYCStatus, level int, audit domain.AuditLogEvent, updatedBy string, now time.Time) error
}

// ClientRepositoryFacade combines all client-related repository interfaces
// This is a facade for clients that need access to all operations
type ClientRepositoryFacade interface {
	ClientReader
	ClientWriter
	KYCUpdater
}
