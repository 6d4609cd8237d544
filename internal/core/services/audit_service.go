package services

import (
	"context"
	"fmt"

	"github.com/ICON-SARL/ngnasoro-sub006/internal/apperrors"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/core/domain"
	portsrepo "github.com/ICON-SARL/ngnasoro-sub006/internal/core/ports/repositories"
)

type auditService struct {
	auditRepo portsrepo.AuditRepositoryFacade
}

// NewAuditService creates the service exposing the audit trail.
func NewAuditService(auditRepo portsrepo.AuditRepositoryFacade) *auditService {
	return &auditService{auditRepo: auditRepo}
}

func (s *auditService) RecordEvent(ctx context.Context, event domain.AuditLogEvent) error {
	return s.auditRepo.SaveAuditEvent(ctx, event)
}

func (s *auditService) ListEvents(ctx context.Context, actor domain.AuthContext, filter domain.AuditLogFilter, limit int, nextToken *string) ([]domain.AuditLogEvent, *string, error) {
	if !actor.Can(domain.CapAuditRead) {
		return nil, nil, apperrors.ErrForbidden
	}
	// Non-platform roles only see their own institution's trail.
	if actor.Role != domain.RoleSuperAdmin {
		if filter.SFDID != "" && filter.SFDID != actor.SFDID {
			return nil, nil, fmt.Errorf("%w: cannot read another SFD's audit trail", apperrors.ErrForbidden)
		}
		filter.SFDID = actor.SFDID
	}

	events, token, err := s.auditRepo.ListAuditEvents(ctx, filter, limit, nextToken)
	if err != nil {
		return nil, nil, err
	}
	if events == nil {
		events = []domain.AuditLogEvent{}
	}
	return events, token, nil
}
