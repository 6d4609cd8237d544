package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ICON-SARL/ngnasoro-sub006/internal/apperrors"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/core/domain"
	portsrepo "github.com/ICON-SARL/ngnasoro-sub006/internal/core/ports/repositories"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/models"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const clientColumns = `client_id, sfd_id, full_name, email, phone, kyc_status, kyc_level, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxClientRepository struct {
	BaseRepository
	auditRepo portsrepo.AuditWriter
}

// newPgxClientRepository creates a new repository for client data.
func newPgxClientRepository(pool *pgxpool.Pool, auditRepo portsrepo.AuditWriter) portsrepo.ClientRepositoryFacade {
	return &PgxClientRepository{
		BaseRepository: BaseRepository{Pool: pool},
		auditRepo:      auditRepo,
	}
}

// Ensure PgxClientRepository implements portsrepo.ClientRepositoryFacade
var _ portsrepo.ClientRepositoryFacade = (*PgxClientRepository)(nil)

// SaveClient inserts a new client.
func (r *PgxClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	m := mapping.ToModelClient(client)

	query := `
		INSERT INTO clients (` + clientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ClientID,
		m.SFDID,
		m.FullName,
		m.Email,
		m.Phone,
		m.KYCStatus,
		m.KYCLevel,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: client with ID %s already exists", apperrors.ErrDuplicate, m.ClientID)
		}
		return fmt.Errorf("failed to save client %s: %w", m.ClientID, err)
	}
	return nil
}

// FindClientByID retrieves a client by their ID.
func (r *PgxClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE client_id = $1;`

	m, err := scanClientRow(r.Pool.QueryRow(ctx, query, clientID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find client by ID %s: %w", clientID, err)
	}

	domainClient := mapping.ToDomainClient(*m)
	return &domainClient, nil
}

// ListClientsBySFD retrieves a paginated list of clients for a given SFD.
func (r *PgxClientRepository) ListClientsBySFD(ctx context.Context, sfdID string, limit int, offset int) ([]domain.Client, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT ` + clientColumns + `
		FROM clients
		WHERE sfd_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, sfdID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients for SFD %s: %w", sfdID, err)
	}
	defer rows.Close()

	var clients []models.Client
	for rows.Next() {
		m, err := scanClientRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client row: %w", err)
		}
		clients = append(clients, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating client rows: %w", err)
	}

	return mapping.ToDomainClientSlice(clients), nil
}

// UpdateClient updates an existing client's details.
func (r *PgxClientRepository) UpdateClient(ctx context.Context, client domain.Client) error {
	m := mapping.ToModelClient(client)

	query := `
		UPDATE clients
		SET full_name = $2, email = $3, phone = $4, last_updated_at = $5, last_updated_by = $6
		WHERE client_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.ClientID,
		m.FullName,
		m.Email,
		m.Phone,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update client %s: %w", m.ClientID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("client " + m.ClientID + " not found")
	}
	return nil
}

// DeactivateClient marks a client as inactive.
func (r *PgxClientRepository) DeactivateClient(ctx context.Context, clientID string, userID string, now time.Time) error {
	query := `
		UPDATE clients
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE client_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, clientID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate client %s: %w", clientID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("client " + clientID + " not found")
	}
	return nil
}

// UpdateKYCStatus changes the verification status and level of a client,
// writing the audit event in the same database transaction as the update.
func (r *PgxClientRepository) UpdateKYCStatus(ctx context.Context, clientID string, status domain.KYCStatus, level int, audit domain.AuditLogEvent, updatedBy string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Will be ignored if transaction is committed successfully

	query := `
		UPDATE clients
		SET kyc_status = $2, kyc_level = $3, last_updated_at = $4, last_updated_by = $5
		WHERE client_id = $1;
	`
	tag, err := tx.Exec(ctx, query, clientID, string(status), level, now, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update KYC status for client "+clientID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("client " + clientID + " not found")
	}

	if err := r.auditRepo.SaveAuditEventInTx(ctx, tx, audit); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// scanClientRow scans one client row from a pgx.Row or pgx.Rows.
func scanClientRow(row pgx.Row) (*models.Client, error) {
	var m models.Client
	err := row.Scan(
		&m.ClientID,
		&m.SFDID,
		&m.FullName,
		&m.Email,
		&m.Phone,
		&m.KYCStatus,
		&m.KYCLevel,
		&m.IsActive,
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
