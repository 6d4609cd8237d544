package services

import (
	"context"
	"time"

	"github.com/ICON-SARL/ngnasoro-sub006/internal/core/domain"
)

// ReportingService defines operations for generating aggregated reports
type ReportingService interface {
	// GetTransactionSummary aggregates an SFD's transactions by type for a period.
	GetTransactionSummary(ctx context.Context, actor domain.AuthContext, sfdID string, from, to time.Time) (*domain.SFDTransactionSummary, error)

	// GetSubsidyOverview aggregates subsidy totals across the platform.
	GetSubsidyOverview(ctx context.Context, actor domain.AuthContext) (*domain.SubsidyOverview, error)
}
