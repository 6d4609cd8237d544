package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/ICON-SARL/ngnasoro-sub006/internal/apperrors"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/core/domain"
	portsrepo "github.com/ICON-SARL/ngnasoro-sub006/internal/core/ports/repositories"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/dto"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type sfdService struct {
	sfdRepo   portsrepo.SFDRepositoryFacade
	auditRepo portsrepo.AuditWriter
}

// NewSFDService creates the service managing partner institutions.
func NewSFDService(sfdRepo portsrepo.SFDRepositoryFacade, auditRepo portsrepo.AuditWriter) *sfdService {
	return &sfdService{
		sfdRepo:   sfdRepo,
		auditRepo: auditRepo,
	}
}

func (s *sfdService) GetSFDByID(ctx context.Context, actor domain.AuthContext, sfdID string) (*domain.SFD, error) {
	if actor.Role != domain.RoleSuperAdmin && actor.SFDID != sfdID {
		return nil, apperrors.ErrForbidden
	}
	return s.sfdRepo.FindSFDByID(ctx, sfdID)
}

func (s *sfdService) ListSFDs(ctx context.Context, actor domain.AuthContext, limit, offset int) ([]domain.SFD, error) {
	if !actor.Can(domain.CapSFDManage) {
		return nil, apperrors.ErrForbidden
	}
	sfds, err := s.sfdRepo.ListSFDs(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	if sfds == nil {
		sfds = []domain.SFD{}
	}
	return sfds, nil
}

func (s *sfdService) CreateSFD(ctx context.Context, actor domain.AuthContext, req dto.CreateSFDRequest) (*domain.SFD, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if !actor.Can(domain.CapSFDManage) {
		return nil, apperrors.ErrForbidden
	}

	now := time.Now().UTC()
	sfd := domain.SFD{
		SFDID:          uuid.NewString(),
		Name:           req.Name,
		Code:           req.Code,
		Region:         req.Region,
		Status:         domain.SFDActive,
		SubsidyBalance: decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.sfdRepo.SaveSFD(ctx, sfd); err != nil {
		logger.Error("Failed to save SFD", slog.String("error", err.Error()), slog.String("code", req.Code))
		return nil, err
	}

	s.recordSFDEvent(ctx, actor, sfd.SFDID, "sfd.create", map[string]any{"code": sfd.Code, "name": sfd.Name}, now)
	logger.Info("SFD registered", slog.String("sfd_id", sfd.SFDID), slog.String("code", sfd.Code))
	return &sfd, nil
}

func (s *sfdService) UpdateSFD(ctx context.Context, actor domain.AuthContext, sfdID string, req dto.UpdateSFDRequest) (*domain.SFD, error) {
	if !actor.Can(domain.CapSFDManage) {
		return nil, apperrors.ErrForbidden
	}

	sfd, err := s.sfdRepo.FindSFDByID(ctx, sfdID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		sfd.Name = *req.Name
	}
	if req.Region != nil {
		sfd.Region = *req.Region
	}
	sfd.LastUpdatedAt = time.Now().UTC()
	sfd.LastUpdatedBy = actor.UserID

	if err := s.sfdRepo.UpdateSFD(ctx, *sfd); err != nil {
		return nil, err
	}
	return sfd, nil
}

// UpdateSFDStatus suspends or reactivates an institution. Suspension stops
// new client enrollment but leaves existing ledger data readable.
func (s *sfdService) UpdateSFDStatus(ctx context.Context, actor domain.AuthContext, sfdID string, status domain.SFDStatus) (*domain.SFD, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if !actor.Can(domain.CapSFDManage) {
		return nil, apperrors.ErrForbidden
	}

	sfd, err := s.sfdRepo.FindSFDByID(ctx, sfdID)
	if err != nil {
		return nil, err
	}
	previous := sfd.Status

	if err := s.sfdRepo.UpdateSFDStatus(ctx, sfdID, status, actor.UserID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	s.recordSFDEvent(ctx, actor, sfdID, "sfd.status_change", map[string]any{
		"previous_status": string(previous),
		"new_status":      string(status),
	}, now)

	sfd.Status = status
	sfd.LastUpdatedAt = now
	sfd.LastUpdatedBy = actor.UserID

	logger.Info("SFD status changed",
		slog.String("sfd_id", sfdID),
		slog.String("status", string(status)),
	)
	return sfd, nil
}

func (s *sfdService) recordSFDEvent(ctx context.Context, actor domain.AuthContext, sfdID, action string, details map[string]any, now time.Time) {
	event := domain.AuditLogEvent{
		EventID:   uuid.NewString(),
		Category:  domain.AuditCategorySFD,
		Severity:  domain.SeverityInfo,
		Status:    domain.AuditSuccess,
		Action:    action,
		ActorID:   actor.UserID,
		TargetID:  sfdID,
		SFDID:     sfdID,
		Details:   details,
		CreatedAt: now,
	}
	if err := s.auditRepo.SaveAuditEvent(ctx, event); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to record SFD audit event", slog.String("error", err.Error()))
	}
}
