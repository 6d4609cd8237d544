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
	"github.com/shopspring/decimal"
)

const sfdColumns = `sfd_id, name, code, region, status, subsidy_balance, created_at, created_by, last_updated_at, last_updated_by`

type PgxSFDRepository struct {
	BaseRepository
}

// newPgxSFDRepository creates a new repository for SFD data.
func newPgxSFDRepository(pool *pgxpool.Pool) portsrepo.SFDRepositoryWithTx {
	return &PgxSFDRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxSFDRepository implements portsrepo.SFDRepositoryWithTx
var _ portsrepo.SFDRepositoryWithTx = (*PgxSFDRepository)(nil)

// SaveSFD inserts a new SFD.
func (r *PgxSFDRepository) SaveSFD(ctx context.Context, sfd domain.SFD) error {
	m := mapping.ToModelSFD(sfd)

	query := `
		INSERT INTO sfds (` + sfdColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.SFDID,
		m.Name,
		m.Code,
		m.Region,
		m.Status,
		m.SubsidyBalance,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: SFD with code %s already exists", apperrors.ErrDuplicate, m.Code)
		}
		return fmt.Errorf("failed to save SFD %s: %w", m.SFDID, err)
	}
	return nil
}

// FindSFDByID retrieves an SFD by its ID.
func (r *PgxSFDRepository) FindSFDByID(ctx context.Context, sfdID string) (*domain.SFD, error) {
	query := `SELECT ` + sfdColumns + ` FROM sfds WHERE sfd_id = $1;`

	m, err := scanSFDRow(r.Pool.QueryRow(ctx, query, sfdID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find SFD by ID %s: %w", sfdID, err)
	}

	domainSFD := mapping.ToDomainSFD(*m)
	return &domainSFD, nil
}

// FindSFDByCode retrieves an SFD by its short institution code.
func (r *PgxSFDRepository) FindSFDByCode(ctx context.Context, code string) (*domain.SFD, error) {
	query := `SELECT ` + sfdColumns + ` FROM sfds WHERE code = $1;`

	m, err := scanSFDRow(r.Pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find SFD by code %s: %w", code, err)
	}

	domainSFD := mapping.ToDomainSFD(*m)
	return &domainSFD, nil
}

// ListSFDs retrieves a paginated list of SFDs.
func (r *PgxSFDRepository) ListSFDs(ctx context.Context, limit int, offset int) ([]domain.SFD, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT ` + sfdColumns + `
		FROM sfds
		ORDER BY name ASC
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list SFDs: %w", err)
	}
	defer rows.Close()

	var sfds []models.SFD
	for rows.Next() {
		m, err := scanSFDRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan SFD row: %w", err)
		}
		sfds = append(sfds, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating SFD rows: %w", err)
	}

	return mapping.ToDomainSFDSlice(sfds), nil
}

// UpdateSFD updates an existing SFD's details.
func (r *PgxSFDRepository) UpdateSFD(ctx context.Context, sfd domain.SFD) error {
	m := mapping.ToModelSFD(sfd)

	query := `
		UPDATE sfds
		SET name = $2, region = $3, last_updated_at = $4, last_updated_by = $5
		WHERE sfd_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.SFDID,
		m.Name,
		m.Region,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update SFD %s: %w", m.SFDID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("SFD " + m.SFDID + " not found")
	}
	return nil
}

// UpdateSFDStatus changes the operational status of an SFD.
func (r *PgxSFDRepository) UpdateSFDStatus(ctx context.Context, sfdID string, status domain.SFDStatus, updatedBy string) error {
	query := `
		UPDATE sfds
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE sfd_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, sfdID, string(status), time.Now().UTC(), updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update status of SFD %s: %w", sfdID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("SFD " + sfdID + " not found")
	}
	return nil
}

// FindSFDByIDForUpdate selects an SFD row and locks it for update.
func (r *PgxSFDRepository) FindSFDByIDForUpdate(ctx context.Context, tx pgx.Tx, sfdID string) (*domain.SFD, error) {
	query := `SELECT ` + sfdColumns + ` FROM sfds WHERE sfd_id = $1 FOR UPDATE;`

	m, err := scanSFDRow(tx.QueryRow(ctx, query, sfdID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock SFD "+sfdID, err)
	}

	domainSFD := mapping.ToDomainSFD(*m)
	return &domainSFD, nil
}

// CreditSubsidyBalanceInTx adds the given amount to the SFD's subsidy balance
// within the supplied transaction.
func (r *PgxSFDRepository) CreditSubsidyBalanceInTx(ctx context.Context, tx pgx.Tx, sfdID string, amount decimal.Decimal, updatedBy string) error {
	query := `
		UPDATE sfds
		SET subsidy_balance = subsidy_balance + $2, last_updated_at = $3, last_updated_by = $4
		WHERE sfd_id = $1;
	`
	tag, err := tx.Exec(ctx, query, sfdID, amount, time.Now().UTC(), updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to credit subsidy balance of SFD "+sfdID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("SFD " + sfdID + " not found")
	}
	return nil
}

// scanSFDRow scans one SFD row from a pgx.Row or pgx.Rows.
func scanSFDRow(row pgx.Row) (*models.SFD, error) {
	var m models.SFD
	err := row.Scan(
		&m.SFDID,
		&m.Name,
		&m.Code,
		&m.Region,
		&m.Status,
		&m.SubsidyBalance,
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
