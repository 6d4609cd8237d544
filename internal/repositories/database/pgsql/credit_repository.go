package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/ICON-SARL/ngnasoro-sub006/internal/apperrors"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/core/domain"
	portsrepo "github.com/ICON-SARL/ngnasoro-sub006/internal/core/ports/repositories"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/models"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const creditColumns = `application_id, client_id, sfd_id, amount, duration_months, purpose, status, reviewed_by, review_comment, created_at, created_by, last_updated_at, last_updated_by`

type PgxCreditRepository struct {
	BaseRepository
	ledgerRepo       portsrepo.TransactionApplier
	auditRepo        portsrepo.AuditWriter
	notificationRepo portsrepo.NotificationWriter
}

// newPgxCreditRepository creates a new repository for credit applications.
// The ledger repository is injected so approval can disburse the loan in the
// same database transaction as the status change.
func newPgxCreditRepository(pool *pgxpool.Pool, ledgerRepo portsrepo.TransactionApplier, auditRepo portsrepo.AuditWriter, notificationRepo portsrepo.NotificationWriter) portsrepo.CreditRepositoryFacade {
	return &PgxCreditRepository{
		BaseRepository:   BaseRepository{Pool: pool},
		ledgerRepo:       ledgerRepo,
		auditRepo:        auditRepo,
		notificationRepo: notificationRepo,
	}
}

// Ensure PgxCreditRepository implements portsrepo.CreditRepositoryFacade
var _ portsrepo.CreditRepositoryFacade = (*PgxCreditRepository)(nil)

// SaveCreditApplication inserts a new application.
func (r *PgxCreditRepository) SaveCreditApplication(ctx context.Context, application domain.CreditApplication) error {
	m := mapping.ToModelCreditApplication(application)

	query := `
		INSERT INTO credit_applications (` + creditColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query, creditInsertArgs(m)...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: application with ID %s already exists", apperrors.ErrDuplicate, m.ApplicationID)
		}
		return fmt.Errorf("failed to save credit application %s: %w", m.ApplicationID, err)
	}
	return nil
}

func creditInsertArgs(m models.CreditApplication) []interface{} {
	return []interface{}{
		m.ApplicationID,
		m.ClientID,
		m.SFDID,
		m.Amount,
		m.DurationMonths,
		m.Purpose,
		m.Status,
		m.ReviewedBy,
		m.ReviewComment,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	}
}

// FindCreditApplicationByID retrieves an application by its ID.
func (r *PgxCreditRepository) FindCreditApplicationByID(ctx context.Context, applicationID string) (*domain.CreditApplication, error) {
	query := `SELECT ` + creditColumns + ` FROM credit_applications WHERE application_id = $1;`

	m, err := scanCreditRow(r.Pool.QueryRow(ctx, query, applicationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find credit application by ID %s: %w", applicationID, err)
	}

	domainApp := mapping.ToDomainCreditApplication(*m)
	return &domainApp, nil
}

// ListCreditApplications retrieves a paginated list of applications,
// optionally filtered by SFD and status.
func (r *PgxCreditRepository) ListCreditApplications(ctx context.Context, sfdID string, status *domain.CreditStatus, limit int, offset int) ([]domain.CreditApplication, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT ` + creditColumns + ` FROM credit_applications WHERE 1=1`
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
		return nil, fmt.Errorf("failed to list credit applications: %w", err)
	}
	defer rows.Close()

	var apps []models.CreditApplication
	for rows.Next() {
		m, err := scanCreditRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan credit application row: %w", err)
		}
		apps = append(apps, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating credit application rows: %w", err)
	}

	return mapping.ToDomainCreditApplicationSlice(apps), nil
}

// UpdateCreditApplication updates an existing application's details.
func (r *PgxCreditRepository) UpdateCreditApplication(ctx context.Context, application domain.CreditApplication) error {
	m := mapping.ToModelCreditApplication(application)

	query := `
		UPDATE credit_applications
		SET amount = $2, duration_months = $3, purpose = $4, last_updated_at = $5, last_updated_by = $6
		WHERE application_id = $1 AND status = 'pending';
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.ApplicationID,
		m.Amount,
		m.DurationMonths,
		m.Purpose,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update credit application %s: %w", m.ApplicationID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: application %s is not pending", apperrors.ErrConflict, m.ApplicationID)
	}
	return nil
}

// ApproveAndDisburse marks the application approved and posts the loan
// disbursement to the client's account. The status change, the ledger entry,
// the audit row and the notification commit together; no partial state
// survives a failure.
func (r *PgxCreditRepository) ApproveAndDisburse(ctx context.Context, application domain.CreditApplication, disbursement domain.Transaction, audit domain.AuditLogEvent, notification *domain.Notification) (*domain.Transaction, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx) // Will be ignored if transaction is committed successfully

	if err := r.markDecidedInTx(ctx, tx, application); err != nil {
		return nil, err
	}

	saved, err := r.ledgerRepo.ApplyTransactionInTx(ctx, tx, disbursement)
	if err != nil {
		return nil, err
	}

	if err := r.auditRepo.SaveAuditEventInTx(ctx, tx, audit); err != nil {
		return nil, err
	}
	if notification != nil {
		if err := r.notificationRepo.SaveNotificationInTx(ctx, tx, *notification); err != nil {
			return nil, err
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return saved, nil
}

// Reject marks the application rejected, with its audit event and
// notification, in a single database transaction.
func (r *PgxCreditRepository) Reject(ctx context.Context, application domain.CreditApplication, audit domain.AuditLogEvent, notification *domain.Notification) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Will be ignored if transaction is committed successfully

	if err := r.markDecidedInTx(ctx, tx, application); err != nil {
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

// markDecidedInTx writes the decision onto a still-pending application row.
// The status guard makes concurrent double decisions impossible.
func (r *PgxCreditRepository) markDecidedInTx(ctx context.Context, tx pgx.Tx, application domain.CreditApplication) error {
	m := mapping.ToModelCreditApplication(application)

	query := `
		UPDATE credit_applications
		SET status = $2, reviewed_by = $3, review_comment = $4, last_updated_at = $5, last_updated_by = $6
		WHERE application_id = $1 AND status = 'pending';
	`
	tag, err := tx.Exec(ctx, query,
		m.ApplicationID,
		m.Status,
		m.ReviewedBy,
		m.ReviewComment,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to record decision on application "+m.ApplicationID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: application %s has already been decided", apperrors.ErrConflict, m.ApplicationID)
	}
	return nil
}

// scanCreditRow scans one credit application row from a pgx.Row or pgx.Rows.
func scanCreditRow(row pgx.Row) (*models.CreditApplication, error) {
	var m models.CreditApplication
	err := row.Scan(
		&m.ApplicationID,
		&m.ClientID,
		&m.SFDID,
		&m.Amount,
		&m.DurationMonths,
		&m.Purpose,
		&m.Status,
		&m.ReviewedBy,
		&m.ReviewComment,
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
