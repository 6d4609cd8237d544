package repositories

import (
	"context"
	"time"

	"github.com/ICON-SARL/ngnasoro-sub006/internal/core/domain"
)

// ReportingRepository defines operations for retrieving aggregated report data
type ReportingRepository interface {
	// GetTransactionSummaryData aggregates an SFD's transactions by type for a period.
	GetTransactionSummaryData(ctx context.Context, sfdID string, from, to time.Time) ([]domain.TransactionSummaryRow, error)

	// GetSubsidyOverviewData aggregates subsidy totals across the platform.
	GetSubsidyOverviewData(ctx context.Context) (*domain.SubsidyOverview, error)
}
