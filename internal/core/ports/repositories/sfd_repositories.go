package repositories

import (
	"context"

	"github.com/ICON-SARL/ngnasoro-sub006/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// SFDReader defines read operations for SFD data
type SFDReader interface {
	// FindSFDByID retrieves a specific SFD by its ID.
	FindSFDByID(ctx context.Context, sfdID string) (*domain.SFD, error)

	// FindSFDByCode retrieves an SFD by its short institution code.
	FindSFDByCode(ctx context.Context, code string) (*domain.SFD, error)

	// ListSFDs retrieves a paginated list of SFDs.
	ListSFDs(ctx context.Context, limit int, offset int) ([]domain.SFD, error)
}

// SFDWriter defines write operations for SFD data
type SFDWriter interface {
	// SaveSFD persists a new SFD.
	SaveSFD(ctx context.Context, sfd domain.SFD) error

	// UpdateSFD updates an existing SFD's details.
	UpdateSFD(ctx context.Context, sfd domain.SFD) error

	// UpdateSFDStatus changes the operational status of an SFD.
	UpdateSFDStatus(ctx context.Context, sfdID string, status domain.SFDStatus, updatedBy string) error
}

// SubsidyBalanceSupport defines operations on an SFD's subsidy balance
// that run inside an existing database transaction.
type SubsidyBalanceSupport interface {
	// FindSFDByIDForUpdate selects an SFD row and locks it for update.
	FindSFDByIDForUpdate(ctx context.Context, tx pgx.Tx, sfdID string) (*domain.SFD, error)

	// CreditSubsidyBalanceInTx adds the given amount to the SFD's subsidy
	// balance within the supplied transaction.
	CreditSubsidyBalanceInTx(ctx context.Context, tx pgx.Tx, sfdID string, amount decimal.Decimal, updatedBy string) error
}

// SFDRepositoryFacade combines all SFD-related repository interfaces
// This is a facade for clients that need access to all operations
type SFDRepositoryFacade interface {
	SFDReader
	SFDWriter
	SubsidyBalanceSupport
}

// SFDRepositoryWithTx extends SFDRepositoryFacade with transaction capabilities
type SFDRepositoryWithTx interface {
	SFDRepositoryFacade
	TransactionManager
}
