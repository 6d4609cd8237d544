package pgsql

import (
	"context"
	"strconv"

	"github.com/ICON-SARL/ngnasoro-sub006/internal/apperrors"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/core/domain"
	portsrepo "github.com/ICON-SARL/ngnasoro-sub006/internal/core/ports/repositories"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/models"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/utils/mapping"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const auditColumns = `event_id, category, severity, status, action, actor_id, target_id, sfd_id, details, created_at`

type PgxAuditRepository struct {
	BaseRepository
}

// newPgxAuditRepository creates a new repository for audit events.
func newPgxAuditRepository(pool *pgxpool.Pool) portsrepo.AuditRepositoryFacade {
	return &PgxAuditRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAuditRepository implements portsrepo.AuditRepositoryFacade
var _ portsrepo.AuditRepositoryFacade = (*PgxAuditRepository)(nil)

// SaveAuditEvent persists an audit event outside of any wider transaction.
func (r *PgxAuditRepository) SaveAuditEvent(ctx context.Context, event domain.AuditLogEvent) error {
	modelEvent, err := mapping.ToModelAuditLogEvent(event)
	if err != nil {
		return apperrors.NewAppError(500, "failed to marshal audit details for event "+event.EventID, err)
	}
	if _, err := r.Pool.Exec(ctx, insertAuditQuery, auditInsertArgs(modelEvent)...); err != nil {
		return apperrors.NewAppError(500, "failed to insert audit event "+event.EventID, err)
	}
	return nil
}

// SaveAuditEventInTx persists an audit event inside an existing transaction so
// mutations and their trail commit together.
func (r *PgxAuditRepository) SaveAuditEventInTx(ctx context.Context, tx pgx.Tx, event domain.AuditLogEvent) error {
	modelEvent, err := mapping.ToModelAuditLogEvent(event)
	if err != nil {
		return apperrors.NewAppError(500, "failed to marshal audit details for event "+event.EventID, err)
	}
	if _, err := tx.Exec(ctx, insertAuditQuery, auditInsertArgs(modelEvent)...); err != nil {
		return apperrors.NewAppError(500, "failed to insert audit event "+event.EventID, err)
	}
	return nil
}

const insertAuditQuery = `
	INSERT INTO audit_logs (` + auditColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
`

func auditInsertArgs(m models.AuditLogEvent) []interface{} {
	return []interface{}{
		m.EventID,
		m.Category,
		m.Severity,
		m.Status,
		m.Action,
		m.ActorID,
		m.TargetID,
		m.SFDID,
		m.Details,
		m.CreatedAt,
	}
}

// ListAuditEvents retrieves a filtered, paginated list of audit events using
// token-based pagination, newest first.
func (r *PgxAuditRepository) ListAuditEvents(ctx context.Context, filter domain.AuditLogFilter, limit int, nextToken *string) ([]domain.AuditLogEvent, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	query := `SELECT ` + auditColumns + ` FROM audit_logs WHERE 1=1`
	args := []interface{}{}

	appendFilter := func(clause string, value interface{}) {
		args = append(args, value)
		query += " AND " + clause + " $" + strconv.Itoa(len(args))
	}

	if filter.Category != "" {
		appendFilter("category =", string(filter.Category))
	}
	if filter.Severity != "" {
		appendFilter("severity =", string(filter.Severity))
	}
	if filter.Status != "" {
		appendFilter("status =", string(filter.Status))
	}
	if filter.SFDID != "" {
		appendFilter("sfd_id =", filter.SFDID)
	}
	if !filter.From.IsZero() {
		appendFilter("created_at >=", filter.From)
	}
	if !filter.To.IsZero() {
		appendFilter("created_at <=", filter.To)
	}

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeCursor(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastCreatedAt, lastID)
		query += " AND (created_at, event_id) < ($" + strconv.Itoa(len(args)-1) + ", $" + strconv.Itoa(len(args)) + ")"
	}

	args = append(args, fetchLimit)
	query += " ORDER BY created_at DESC, event_id DESC LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query audit events", err)
	}
	defer rows.Close()

	events := make([]models.AuditLogEvent, 0, fetchLimit)
	for rows.Next() {
		var m models.AuditLogEvent
		err := rows.Scan(
			&m.EventID,
			&m.Category,
			&m.Severity,
			&m.Status,
			&m.Action,
			&m.ActorID,
			&m.TargetID,
			&m.SFDID,
			&m.Details,
			&m.CreatedAt,
		)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan audit event row", err)
		}
		events = append(events, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating audit event rows", err)
	}

	var nextTokenVal *string
	results := events
	if len(events) > limit {
		last := events[limit-1]
		token := pagination.EncodeCursor(last.CreatedAt, last.EventID)
		nextTokenVal = &token
		results = events[:limit]
	}

	domainEvents, err := mapping.ToDomainAuditLogEventSlice(results)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to decode audit details", err)
	}
	return domainEvents, nextTokenVal, nil
}
