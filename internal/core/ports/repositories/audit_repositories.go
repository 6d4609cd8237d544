package repositories

import (
	"context"

	"github.com/ICON-SARL/ngnasoro-sub006/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// AuditWriter defines write operations for audit events
type AuditWriter interface {
	// SaveAuditEvent persists an audit event.
	SaveAuditEvent(ctx context.Context, event domain.AuditLogEvent) error

	// SaveAuditEventInTx persists an audit event within an existing database
	// transaction so mutations and their trail commit together.
	SaveAuditEventInTx(ctx context.Context, tx pgx.Tx, event domain.AuditLogEvent) error
}

// AuditReader defines read operations for audit events
type AuditReader interface {
	// ListAuditEvents retrieves a filtered, paginated list of audit events
	// using token-based pagination, newest first.
	ListAuditEvents(ctx context.Context, filter domain.AuditLogFilter, limit int, nextToken *string) ([]domain.AuditLogEvent, *string, error)
}

// AuditRepositoryFacade combines all audit-related repository interfaces
type AuditRepositoryFacade interface {
	AuditWriter
	AuditReader
}
