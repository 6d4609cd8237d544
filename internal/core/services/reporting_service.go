package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ICON-SARL/ngnasoro-sub006/internal/apperrors"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/core/domain"
	portsrepo "github.com/ICON-SARL/ngnasoro-sub006/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

type reportingService struct {
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates the service producing aggregated reports.
func NewReportingService(reportingRepo portsrepo.ReportingRepository) *reportingService {
	return &reportingService{reportingRepo: reportingRepo}
}

// GetTransactionSummary aggregates an SFD's ledger activity by transaction
// type over a window, plus the net signed movement across the window.
func (s *reportingService) GetTransactionSummary(ctx context.Context, actor domain.AuthContext, sfdID string, from, to time.Time) (*domain.SFDTransactionSummary, error) {
	if !actor.Can(domain.CapReportRead) {
		return nil, apperrors.ErrForbidden
	}
	if actor.Role != domain.RoleSuperAdmin && actor.SFDID != sfdID {
		return nil, fmt.Errorf("%w: cannot report on another SFD", apperrors.ErrForbidden)
	}
	if !to.After(from) {
		return nil, fmt.Errorf("%w: reporting window is empty", apperrors.ErrValidation)
	}

	rows, err := s.reportingRepo.GetTransactionSummaryData(ctx, sfdID, from, to)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []domain.TransactionSummaryRow{}
	}

	net := decimal.Zero
	for _, row := range rows {
		net = net.Add(row.TotalCredit).Sub(row.TotalDebit)
	}

	return &domain.SFDTransactionSummary{
		SFDID:       sfdID,
		From:        from,
		To:          to,
		Rows:        rows,
		NetMovement: net,
	}, nil
}

// GetSubsidyOverview aggregates MEREF capital allocation across the platform.
func (s *reportingService) GetSubsidyOverview(ctx context.Context, actor domain.AuthContext) (*domain.SubsidyOverview, error) {
	if !actor.Can(domain.CapReportRead) {
		return nil, apperrors.ErrForbidden
	}
	if actor.Role != domain.RoleSuperAdmin {
		return nil, fmt.Errorf("%w: platform overview is restricted to supervision", apperrors.ErrForbidden)
	}
	return s.reportingRepo.GetSubsidyOverviewData(ctx)
}
