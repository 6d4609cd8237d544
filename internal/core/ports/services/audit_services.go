package services

import (
	"context"

	"github.com/ICON-SARL/ngnasoro-sub006/internal/core/domain"
)

// AuditSvcFacade defines operations over the audit trail
type AuditSvcFacade interface {
	// RecordEvent persists an audit event outside of any mutation path.
	// Mutation paths write their own events in the same database transaction.
	RecordEvent(ctx context.Context, event domain.AuditLogEvent) error

	// ListEvents retrieves a filtered, paginated list of audit events
	// using token-based pagination, newest first.
	ListEvents(ctx context.Context, actor domain.AuthContext, filter domain.AuditLogFilter, limit int, nextToken *string) ([]domain.AuditLogEvent, *string, error)
}
