package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ICON-SARL/ngnasoro-sub006/internal/apperrors"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/core/domain"
	portsrepo "github.com/ICON-SARL/ngnasoro-sub006/internal/core/ports/repositories"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/dto"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/middleware"
	"github.com/google/uuid"
)

type clientService struct {
	clientRepo portsrepo.ClientRepositoryFacade
	sfdRepo    portsrepo.SFDReader
}

// NewClientService creates the service managing client enrollment and KYC.
func NewClientService(clientRepo portsrepo.ClientRepositoryFacade, sfdRepo portsrepo.SFDReader) *clientService {
	return &clientService{
		clientRepo: clientRepo,
		sfdRepo:    sfdRepo,
	}
}

// scopedSFDID resolves the SFD an actor may operate on. Super admins may name
// any SFD; everyone else is pinned to their own.
func scopedSFDID(actor domain.AuthContext, requested string) (string, error) {
	if actor.Role == domain.RoleSuperAdmin {
		return requested, nil
	}
	if requested != "" && requested != actor.SFDID {
		return "", fmt.Errorf("%w: cannot operate on another SFD", apperrors.ErrForbidden)
	}
	return actor.SFDID, nil
}

func (s *clientService) GetClientByID(ctx context.Context, actor domain.AuthContext, clientID string) (*domain.Client, error) {
	if !actor.Can(domain.CapLedgerRead) && !actor.Can(domain.CapClientManage) {
		return nil, apperrors.ErrForbidden
	}
	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.RoleSuperAdmin && actor.SFDID != client.SFDID {
		return nil, fmt.Errorf("%w: client belongs to another SFD", apperrors.ErrForbidden)
	}
	return client, nil
}

func (s *clientService) ListClients(ctx context.Context, actor domain.AuthContext, sfdID string, limit, offset int) ([]domain.Client, error) {
	if !actor.Can(domain.CapClientManage) && !actor.Can(domain.CapLedgerRead) {
		return nil, apperrors.ErrForbidden
	}
	scoped, err := scopedSFDID(actor, sfdID)
	if err != nil {
		return nil, err
	}
	clients, err := s.clientRepo.ListClientsBySFD(ctx, scoped, limit, offset)
	if err != nil {
		return nil, err
	}
	if clients == nil {
		clients = []domain.Client{}
	}
	return clients, nil
}

func (s *clientService) CreateClient(ctx context.Context, actor domain.AuthContext, req dto.CreateClientRequest) (*domain.Client, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if !actor.Can(domain.CapClientManage) {
		return nil, apperrors.ErrForbidden
	}

	sfdID, err := scopedSFDID(actor, req.SFDID)
	if err != nil {
		return nil, err
	}
	sfd, err := s.sfdRepo.FindSFDByID(ctx, sfdID)
	if err != nil {
		return nil, err
	}
	if sfd.Status != domain.SFDActive {
		return nil, fmt.Errorf("%w: SFD %s is suspended", apperrors.ErrConflict, sfd.SFDID)
	}

	now := time.Now().UTC()
	client := domain.Client{
		ClientID:  uuid.NewString(),
		SFDID:     sfd.SFDID,
		FullName:  req.FullName,
		Email:     req.Email,
		Phone:     req.Phone,
		KYCStatus: domain.KYCNone,
		KYCLevel:  0,
		IsActive:  true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.clientRepo.SaveClient(ctx, client); err != nil {
		logger.Error("Failed to save client", slog.String("error", err.Error()), slog.String("sfd_id", sfd.SFDID))
		return nil, err
	}

	logger.Info("Client enrolled", slog.String("client_id", client.ClientID), slog.String("sfd_id", sfd.SFDID))
	return &client, nil
}

func (s *clientService) UpdateClient(ctx context.Context, actor domain.AuthContext, clientID string, req dto.UpdateClientRequest) (*domain.Client, error) {
	if !actor.Can(domain.CapClientManage) {
		return nil, apperrors.ErrForbidden
	}

	client, err := s.GetClientByID(ctx, actor, clientID)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		client.FullName = *req.FullName
	}
	if req.Email != nil {
		client.Email = *req.Email
	}
	if req.Phone != nil {
		client.Phone = *req.Phone
	}
	client.LastUpdatedAt = time.Now().UTC()
	client.LastUpdatedBy = actor.UserID

	if err := s.clientRepo.UpdateClient(ctx, *client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *clientService) DeactivateClient(ctx context.Context, actor domain.AuthContext, clientID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	if !actor.Can(domain.CapClientManage) {
		return apperrors.ErrForbidden
	}
	if _, err := s.GetClientByID(ctx, actor, clientID); err != nil {
		return err
	}
	if err := s.clientRepo.DeactivateClient(ctx, clientID, actor.UserID, time.Now().UTC()); err != nil {
		return err
	}
	logger.Info("Client deactivated", slog.String("client_id", clientID))
	return nil
}

// VerifyKYC records a verification decision. The status change and its audit
// event are committed together.
func (s *clientService) VerifyKYC(ctx context.Context, actor domain.AuthContext, clientID string, req dto.VerifyKYCRequest) (*domain.Client, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if !actor.Can(domain.CapKYCVerify) {
		return nil, apperrors.ErrForbidden
	}

	client, err := s.GetClientByID(ctx, actor, clientID)
	if err != nil {
		return nil, err
	}

	level := req.Level
	if req.Status == domain.KYCRejected {
		level = 0
	}

	now := time.Now().UTC()
	audit := domain.AuditLogEvent{
		EventID:  uuid.NewString(),
		Category: domain.AuditCategoryKYC,
		Severity: domain.SeverityInfo,
		Status:   domain.AuditSuccess,
		Action:   "kyc.verify",
		ActorID:  actor.UserID,
		TargetID: clientID,
		SFDID:    client.SFDID,
		Details: map[string]any{
			"previous_status": string(client.KYCStatus),
			"new_status":      string(req.Status),
			"level":           level,
		},
		CreatedAt: now,
	}

	if err := s.clientRepo.UpdateKYCStatus(ctx, clientID, req.Status, level, audit, actor.UserID, now); err != nil {
		logger.Error("Failed to update KYC status", slog.String("error", err.Error()), slog.String("client_id", clientID))
		return nil, err
	}

	client.KYCStatus = req.Status
	client.KYCLevel = level
	client.LastUpdatedAt = now
	client.LastUpdatedBy = actor.UserID

	logger.Info("KYC decision recorded",
		slog.String("client_id", clientID),
		slog.String("status", string(req.Status)),
		slog.Int("level", level),
	)
	return client, nil
}
