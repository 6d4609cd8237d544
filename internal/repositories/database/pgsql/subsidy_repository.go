package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/ICON-SARL/ngnasoro-sub006/internal/apperrors"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/core/domain"
	portsrepo "github.com/ICON-SARL/ngnasoro-sub006/internal/core/ports/repositories"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/models"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const subsidyColumns = `request_id, sfd_id, amount, purpose, priority, status, decided_by, decision_comment, created_at, created_by, last_updated_at, last_updated_by`

const fundColumns = `request_id, sfd_id, amount, purpose, status, decided_by, decision_comment, created_at, created_by, last_updated_at, last_updated_by`

type PgxSubsidyRepository struct {
	BaseRepository
	sfdRepo          portsrepo.SubsidyBalanceSupport
	auditRepo        portsrepo.AuditWriter
	notificationRepo portsrepo.NotificationWriter
}

// newPgxSubsidyRepository creates a new repository for subsidy and fund
// requests. The SFD repository is injected so approval can credit the
// institution's subsidy balance in the same database transaction.
func newPgxSubsidyRepository(pool *pgxpool.Pool, sfdRepo portsrepo.SubsidyBalanceSupport, auditRepo portsrepo.AuditWriter, notificationRepo portsrepo.NotificationWriter) portsrepo.SubsidyRepositoryFacade {
	return &PgxSubsidyRepository{
		BaseRepository:   BaseRepository{Pool: pool},
		sfdRepo:          sfdRepo,
		auditRepo:        auditRepo,
		notificationRepo: notificationRepo,
	}
}

// Ensure PgxSubsidyRepository implements portsrepo.SubsidyRepositoryFacade
var _ portsrepo.SubsidyRepositoryFacade = (*PgxSubsidyRepository)(nil)

// SaveSubsidyRequest inserts a new subsidy request.
func (r *PgxSubsidyRepository) SaveSubsidyRequest(ctx context.Context, request domain.SubsidyRequest) error {
	m := mapping.ToModelSubsidyRequest(request)

	query := `
		INSERT INTO subsidy_requests (` + subsidyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.RequestID,
		m.SFDID,
		m.Amount,
		m.Purpose,
		m.Priority,
		m.Status,
		m.DecidedBy,
		m.DecisionComment,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save subsidy request %s: %w", m.RequestID, err)
	}
	return nil
}

// FindSubsidyRequestByID retrieves a subsidy request by its ID.
func (r *PgxSubsidyRepository) FindSubsidyRequestByID(ctx context.Context, requestID string) (*domain.SubsidyRequest, error) {
	query := `SELECT ` + subsidyColumns + ` FROM subsidy_requests WHERE request_id = $1;`

	m, err := scanSubsidyRow(r.Pool.QueryRow(ctx, query, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find subsidy request by ID %s: %w", requestID, err)
	}

	domainReq := mapping.ToDomainSubsidyRequest(*m)
	return &domainReq, nil
}

// ListSubsidyRequests retrieves a paginated list of subsidy requests,
// optionally filtered by SFD and status.
func (r *PgxSubsidyRepository) ListSubsidyRequests(ctx context.Context, sfdID string, status *domain.RequestStatus, limit int, offset int) ([]domain.SubsidyRequest, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT ` + subsidyColumns + ` FROM subsidy_requests WHERE 1=1`
	args := []interface{}{}

	if sfdID != "" {
		args = append(args, sfdID)
		query += ` AND sfd_id = $` + strconv.Itoa(len(args))
	}
	if status != nil {
		args = append(args, string(*status))
		query += ` AND status = $` + strconv.Itoa(len(args))
	}

	args = append(args, limit, offset)
	query += ` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list subsidy requests: %w", err)
	}
	defer rows.Close()

	var requests []models.SubsidyRequest
	for rows.Next() {
		m, err := scanSubsidyRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan subsidy request row: %w", err)
		}
		requests = append(requests, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subsidy request rows: %w", err)
	}

	return mapping.ToDomainSubsidyRequestSlice(requests), nil
}

// ListStaleSubsidyRequests retrieves pending subsidy requests created before the cutoff.
func (r *PgxSubsidyRepository) ListStaleSubsidyRequests(ctx context.Context, cutoff time.Time) ([]domain.SubsidyRequest, error) {
	query := `
		SELECT ` + subsidyColumns + `
		FROM subsidy_requests
		WHERE status = 'pending' AND created_at < $1
		ORDER BY created_at ASC;
	`
	rows, err := r.Pool.Query(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list stale subsidy requests: %w", err)
	}
	defer rows.Close()

	var requests []models.SubsidyRequest
	for rows.Next() {
		m, err := scanSubsidyRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan subsidy request row: %w", err)
		}
		requests = append(requests, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subsidy request rows: %w", err)
	}

	return mapping.ToDomainSubsidyRequestSlice(requests), nil
}

// ApproveAndCredit marks the request approved and credits the SFD's subsidy
// balance. The status change, the balance credit, the audit row and the
// notification commit together.
func (r *PgxSubsidyRepository) ApproveAndCredit(ctx context.Context, request domain.SubsidyRequest, audit domain.AuditLogEvent, notification *domain.Notification) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Will be ignored if transaction is committed successfully

	if err := r.markSubsidyDecidedInTx(ctx, tx, request); err != nil {
		return err
	}

	if _, err := r.sfdRepo.FindSFDByIDForUpdate(ctx, tx, request.SFDID); err != nil {
		return err
	}
	if err := r.sfdRepo.CreditSubsidyBalanceInTx(ctx, tx, request.SFDID, request.Amount, request.DecidedBy); err != nil {
		return err
	}

	if err := r.auditRepo.SaveAuditEventInTx(ctx, tx, audit); err != nil {
		return err
	}
	if notification != nil {
		if err := r.notificationRepo.SaveNotificationInTx(ctx, tx, *notification); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

// Decide records a rejection or completion, with its audit event and optional
// notification, in a single database transaction.
func (r *PgxSubsidyRepository) Decide(ctx context.Context, request domain.SubsidyRequest, audit domain.AuditLogEvent, notification *domain.Notification) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Will be ignored if transaction is committed successfully

	if err := r.markSubsidyDecidedInTx(ctx, tx, request); err != nil {
		return err
	}

	if err := r.auditRepo.SaveAuditEventInTx(ctx, tx, audit); err != nil {
		return err
	}
	if notification != nil {
		if err := r.notificationRepo.SaveNotificationInTx(ctx, tx, *notification); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

// markSubsidyDecidedInTx writes the decision onto a still-pending request row.
func (r *PgxSubsidyRepository) markSubsidyDecidedInTx(ctx context.Context, tx pgx.Tx, request domain.SubsidyRequest) error {
	m := mapping.ToModelSubsidyRequest(request)

	query := `
		UPDATE subsidy_requests
		SET status = $2, decided_by = $3, decision_comment = $4, last_updated_at = $5, last_updated_by = $6
		WHERE request_id = $1 AND status = 'pending';
	`
	tag, err := tx.Exec(ctx, query,
		m.RequestID,
		m.Status,
		m.DecidedBy,
		m.DecisionComment,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to record decision on subsidy request "+m.RequestID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: subsidy request %s has already been decided", apperrors.ErrConflict, m.RequestID)
	}
	return nil
}

// SaveFundRequest inserts a new fund request.
func (r *PgxSubsidyRepository) SaveFundRequest(ctx context.Context, request domain.FundRequest) error {
	m := mapping.ToModelFundRequest(request)

	query := `
		INSERT INTO fund_requests (` + fundColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.RequestID,
		m.SFDID,
		m.Amount,
		m.Purpose,
		m.Status,
		m.DecidedBy,
		m.DecisionComment,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save fund request %s: %w", m.RequestID, err)
	}
	return nil
}

// FindFundRequestByID retrieves a fund request by its ID.
func (r *PgxSubsidyRepository) FindFundRequestByID(ctx context.Context, requestID string) (*domain.FundRequest, error) {
	query := `SELECT ` + fundColumns + ` FROM fund_requests WHERE request_id = $1;`

	m, err := scanFundRow(r.Pool.QueryRow(ctx, query, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find fund request by ID %s: %w", requestID, err)
	}

	domainReq := mapping.ToDomainFundRequest(*m)
	return &domainReq, nil
}

// ListFundRequests retrieves a paginated list of fund requests,
// optionally filtered by SFD and status.
func (r *PgxSubsidyRepository) ListFundRequests(ctx context.Context, sfdID string, status *domain.RequestStatus, limit int, offset int) ([]domain.FundRequest, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT ` + fundColumns + ` FROM fund_requests WHERE 1=1`
	args := []interface{}{}

	if sfdID != "" {
		args = append(args, sfdID)
		query += ` AND sfd_id = $` + strconv.Itoa(len(args))
	}
	if status != nil {
		args = append(args, string(*status))
		query += ` AND status = $` + strconv.Itoa(len(args))
	}

	args = append(args, limit, offset)
	query += ` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list fund requests: %w", err)
	}
	defer rows.Close()

	var requests []models.FundRequest
	for rows.Next() {
		m, err := scanFundRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fund request row: %w", err)
		}
		requests = append(requests, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fund request rows: %w", err)
	}

	return mapping.ToDomainFundRequestSlice(requests), nil
}

// ListStaleFundRequests retrieves pending fund requests created before the cutoff.
func (r *PgxSubsidyRepository) ListStaleFundRequests(ctx context.Context, cutoff time.Time) ([]domain.FundRequest, error) {
	query := `
		SELECT ` + fundColumns + `
		FROM fund_requests
		WHERE status = 'pending' AND created_at < $1
		ORDER BY created_at ASC;
	`
	rows, err := r.Pool.Query(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list stale fund requests: %w", err)
	}
	defer rows.Close()

	var requests []models.FundRequest
	for rows.Next() {
		m, err := scanFundRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fund request row: %w", err)
		}
		requests = append(requests, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fund request rows: %w", err)
	}

	return mapping.ToDomainFundRequestSlice(requests), nil
}

// DecideFundRequest records a decision on a fund request, with its audit
// event and optional notification, in a single database transaction.
// Completion moves an approved request; other decisions move a pending one.
func (r *PgxSubsidyRepository) DecideFundRequest(ctx context.Context, request domain.FundRequest, audit domain.AuditLogEvent, notification *domain.Notification) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Will be ignored if transaction is committed successfully

	m := mapping.ToModelFundRequest(request)

	fromStatus := string(domain.RequestPending)
	if request.Status == domain.RequestCompleted {
		fromStatus = string(domain.RequestApproved)
	}

	query := `
		UPDATE fund_requests
		SET status = $2, decided_by = $3, decision_comment = $4, last_updated_at = $5, last_updated_by = $6
		WHERE request_id = $1 AND status = $7;
	`
	tag, err := tx.Exec(ctx, query,
		m.RequestID,
		m.Status,
		m.DecidedBy,
		m.DecisionComment,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		fromStatus,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to record decision on fund request "+m.RequestID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: fund request %s is not in the %s state", apperrors.ErrConflict, m.RequestID, fromStatus)
	}

	if err := r.auditRepo.SaveAuditEventInTx(ctx, tx, audit); err != nil {
		return err
	}
	if notification != nil {
		if err := r.notificationRepo.SaveNotificationInTx(ctx, tx, *notification); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

// scanSubsidyRow scans one subsidy request row from a pgx.Row or pgx.Rows.
func scanSubsidyRow(row pgx.Row) (*models.SubsidyRequest, error) {
	var m models.SubsidyRequest
	err := row.Scan(
		&m.RequestID,
		&m.SFDID,
		&m.Amount,
		&m.Purpose,
		&m.Priority,
		&m.Status,
		&m.DecidedBy,
		&m.DecisionComment,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// scanFundRow scans one fund request row from a pgx.Row or pgx.Rows.
func scanFundRow(row pgx.Row) (*models.FundRequest, error) {
	var m models.FundRequest
	err := row.Scan(
		&m.RequestID,
		&m.SFDID,
		&m.Amount,
		&m.Purpose,
		&m.Status,
		&m.DecidedBy,
		&m.DecisionComment,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
