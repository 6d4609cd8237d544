package pgsql

import (
	"context"
	"time"

	"github.com/ICON-SARL/ngnasoro-sub006/internal/apperrors"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/core/domain"
	portsrepo "github.com/ICON-SARL/ngnasoro-sub006/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type ReportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new repository for aggregated report data.
func newReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &ReportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure ReportingRepository implements portsrepo.ReportingRepository
var _ portsrepo.ReportingRepository = (*ReportingRepository)(nil)

// GetTransactionSummaryData aggregates an SFD's transactions by type for a
// period. Aggregation happens in SQL, not in application memory.
func (r *ReportingRepository) GetTransactionSummaryData(ctx context.Context, sfdID string, from, to time.Time) ([]domain.TransactionSummaryRow, error) {
	query := `
		SELECT
			type,
			COUNT(*) AS cnt,
			COALESCE(SUM(CASE WHEN amount > 0 THEN amount ELSE 0 END), 0) AS total_credit,
			COALESCE(SUM(CASE WHEN amount < 0 THEN -amount ELSE 0 END), 0) AS total_debit
		FROM transactions
		WHERE sfd_id = $1
		  AND created_at >= $2
		  AND created_at <= $3
		  AND status <> 'failed'
		GROUP BY type
		ORDER BY type;
	`
	rows, err := r.Pool.Query(ctx, query, sfdID, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transaction summary for SFD "+sfdID, err)
	}
	defer rows.Close()

	var result []domain.TransactionSummaryRow
	for rows.Next() {
		var (
			txnType     string
			count       int64
			totalCredit decimal.Decimal
			totalDebit  decimal.Decimal
		)
		if err := rows.Scan(&txnType, &count, &totalCredit, &totalDebit); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction summary row", err)
		}
		result = append(result, domain.TransactionSummaryRow{
			Type:        domain.TransactionType(txnType),
			Count:       count,
			TotalCredit: totalCredit,
			TotalDebit:  totalDebit,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating transaction summary rows", err)
	}

	return result, nil
}

// GetSubsidyOverviewData aggregates subsidy totals across the platform.
func (r *ReportingRepository) GetSubsidyOverviewData(ctx context.Context) (*domain.SubsidyOverview, error) {
	query := `
		SELECT
			COALESCE((SELECT SUM(amount) FROM subsidy_requests WHERE status = 'approved'), 0) AS total_granted,
			COALESCE((SELECT SUM(amount) FROM subsidy_requests WHERE status = 'pending'), 0) AS total_pending,
			(SELECT COUNT(*) FROM sfds WHERE status = 'active') AS active_sfd_count;
	`
	var overview domain.SubsidyOverview
	err := r.Pool.QueryRow(ctx, query).Scan(
		&overview.TotalGranted,
		&overview.TotalPending,
		&overview.ActiveSFDCount,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query subsidy overview", err)
	}
	overview.GeneratedAt = time.Now().UTC()

	return &overview, nil
}
