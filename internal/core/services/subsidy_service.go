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
	"github.com/ICON-SARL/ngnasoro-sub006/internal/platform/metrics"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/utils"
	"github.com/google/uuid"
)

// staleRequestAge is how long a request may sit pending before the nightly
// sweep raises it to the reviewers.
const staleRequestAge = 30 * 24 * time.Hour

type subsidyService struct {
	subsidyRepo      portsrepo.SubsidyRepositoryFacade
	notificationRepo portsrepo.NotificationWriter
}

// NewSubsidyService creates the service managing subsidy and fund requests.
func NewSubsidyService(subsidyRepo portsrepo.SubsidyRepositoryFacade, notificationRepo portsrepo.NotificationWriter) *subsidyService {
	return &subsidyService{
		subsidyRepo:      subsidyRepo,
		notificationRepo: notificationRepo,
	}
}

func (s *subsidyService) SubmitSubsidyRequest(ctx context.Context, actor domain.AuthContext, req dto.CreateSubsidyRequestRequest) (*domain.SubsidyRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if !actor.Can(domain.CapSubsidyRequest) {
		return nil, apperrors.ErrForbidden
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if actor.SFDID == "" {
		return nil, fmt.Errorf("%w: actor is not attached to an SFD", apperrors.ErrForbidden)
	}

	priority := req.Priority
	if priority == "" {
		priority = domain.PriorityNormal
	}

	now := time.Now().UTC()
	request := domain.SubsidyRequest{
		RequestID: uuid.NewString(),
		SFDID:     actor.SFDID,
		Amount:    req.Amount,
		Purpose:   req.Purpose,
		Priority:  priority,
		Status:    domain.RequestPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.subsidyRepo.SaveSubsidyRequest(ctx, request); err != nil {
		logger.Error("Failed to save subsidy request", slog.String("error", err.Error()), slog.String("sfd_id", actor.SFDID))
		return nil, err
	}

	logger.Info("Subsidy request submitted",
		slog.String("request_id", request.RequestID),
		slog.String("sfd_id", actor.SFDID),
		slog.String("amount", req.Amount.String()),
	)
	return &request, nil
}

func (s *subsidyService) GetSubsidyRequestByID(ctx context.Context, actor domain.AuthContext, requestID string) (*domain.SubsidyRequest, error) {
	if !actor.Can(domain.CapSubsidyRequest) && !actor.Can(domain.CapSubsidyDecide) {
		return nil, apperrors.ErrForbidden
	}
	request, err := s.subsidyRepo.FindSubsidyRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.RoleSuperAdmin && actor.SFDID != request.SFDID {
		return nil, fmt.Errorf("%w: request belongs to another SFD", apperrors.ErrForbidden)
	}
	return request, nil
}

func (s *subsidyService) ListSubsidyRequests(ctx context.Context, actor domain.AuthContext, sfdID string, status *domain.RequestStatus, limit, offset int) ([]domain.SubsidyRequest, error) {
	if !actor.Can(domain.CapSubsidyRequest) && !actor.Can(domain.CapSubsidyDecide) {
		return nil, apperrors.ErrForbidden
	}
	scoped, err := scopedSFDID(actor, sfdID)
	if err != nil {
		return nil, err
	}
	requests, err := s.subsidyRepo.ListSubsidyRequests(ctx, scoped, status, limit, offset)
	if err != nil {
		return nil, err
	}
	if requests == nil {
		requests = []domain.SubsidyRequest{}
	}
	return requests, nil
}

// ApproveSubsidyRequest approves a pending request. The status transition and
// the SFD balance credit commit in one database transaction.
func (s *subsidyService) ApproveSubsidyRequest(ctx context.Context, actor domain.AuthContext, requestID string, req dto.DecideRequestRequest) (*domain.SubsidyRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if !actor.Can(domain.CapSubsidyDecide) {
		return nil, apperrors.ErrForbidden
	}

	request, err := s.subsidyRepo.FindSubsidyRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.IsDecided() {
		return nil, fmt.Errorf("%w: request %s has already been decided", apperrors.ErrConflict, requestID)
	}

	now := time.Now().UTC()
	request.Status = domain.RequestApproved
	request.DecidedBy = actor.UserID
	request.DecisionComment = req.Comment
	request.LastUpdatedAt = now
	request.LastUpdatedBy = actor.UserID

	audit := subsidyAuditEvent(actor, "subsidy.approve", request.RequestID, request.SFDID, map[string]any{
		"amount":  request.Amount.String(),
		"comment": req.Comment,
	}, now)

	notification := &domain.Notification{
		NotificationID: uuid.NewString(),
		RecipientRole:  domain.RoleSFDAdmin,
		SFDID:          request.SFDID,
		Title:          "Subvention approuvée",
		Body:           fmt.Sprintf("Votre demande de subvention de %s a été approuvée.", utils.FormatFCFA(request.Amount)),
		Type:           domain.NotifSubsidy,
		CreatedAt:      now,
	}

	if err := s.subsidyRepo.ApproveAndCredit(ctx, *request, audit, notification); err != nil {
		metrics.SubsidyDecisions.WithLabelValues("subsidy", "approve_failed").Inc()
		logger.Error("Failed to approve subsidy request", slog.String("error", err.Error()), slog.String("request_id", requestID))
		return nil, err
	}

	metrics.SubsidyDecisions.WithLabelValues("subsidy", "approved").Inc()
	logger.Info("Subsidy request approved",
		slog.String("request_id", requestID),
		slog.String("sfd_id", request.SFDID),
		slog.String("amount", request.Amount.String()),
	)
	return request, nil
}

// RejectSubsidyRequest rejects a pending request.
func (s *subsidyService) RejectSubsidyRequest(ctx context.Context, actor domain.AuthContext, requestID string, req dto.DecideRequestRequest) (*domain.SubsidyRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if !actor.Can(domain.CapSubsidyDecide) {
		return nil, apperrors.ErrForbidden
	}

	request, err := s.subsidyRepo.FindSubsidyRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.IsDecided() {
		return nil, fmt.Errorf("%w: request %s has already been decided", apperrors.ErrConflict, requestID)
	}

	now := time.Now().UTC()
	request.Status = domain.RequestRejected
	request.DecidedBy = actor.UserID
	request.DecisionComment = req.Comment
	request.LastUpdatedAt = now
	request.LastUpdatedBy = actor.UserID

	audit := subsidyAuditEvent(actor, "subsidy.reject", request.RequestID, request.SFDID, map[string]any{
		"amount":  request.Amount.String(),
		"comment": req.Comment,
	}, now)

	notification := &domain.Notification{
		NotificationID: uuid.NewString(),
		RecipientRole:  domain.RoleSFDAdmin,
		SFDID:          request.SFDID,
		Title:          "Subvention rejetée",
		Body:           fmt.Sprintf("Votre demande de subvention de %s a été rejetée.", utils.FormatFCFA(request.Amount)),
		Type:           domain.NotifSubsidy,
		CreatedAt:      now,
	}

	if err := s.subsidyRepo.Decide(ctx, *request, audit, notification); err != nil {
		metrics.SubsidyDecisions.WithLabelValues("subsidy", "reject_failed").Inc()
		logger.Error("Failed to reject subsidy request", slog.String("error", err.Error()), slog.String("request_id", requestID))
		return nil, err
	}

	metrics.SubsidyDecisions.WithLabelValues("subsidy", "rejected").Inc()
	logger.Info("Subsidy request rejected", slog.String("request_id", requestID))
	return request, nil
}

func (s *subsidyService) SubmitFundRequest(ctx context.Context, actor domain.AuthContext, req dto.CreateFundRequestRequest) (*domain.FundRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if !actor.Can(domain.CapSubsidyRequest) {
		return nil, apperrors.ErrForbidden
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if actor.SFDID == "" {
		return nil, fmt.Errorf("%w: actor is not attached to an SFD", apperrors.ErrForbidden)
	}

	now := time.Now().UTC()
	request := domain.FundRequest{
		RequestID: uuid.NewString(),
		SFDID:     actor.SFDID,
		Amount:    req.Amount,
		Purpose:   req.Purpose,
		Status:    domain.RequestPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.subsidyRepo.SaveFundRequest(ctx, request); err != nil {
		logger.Error("Failed to save fund request", slog.String("error", err.Error()), slog.String("sfd_id", actor.SFDID))
		return nil, err
	}

	logger.Info("Fund request submitted",
		slog.String("request_id", request.RequestID),
		slog.String("sfd_id", actor.SFDID),
	)
	return &request, nil
}

func (s *subsidyService) GetFundRequestByID(ctx context.Context, actor domain.AuthContext, requestID string) (*domain.FundRequest, error) {
	if !actor.Can(domain.CapSubsidyRequest) && !actor.Can(domain.CapSubsidyDecide) {
		return nil, apperrors.ErrForbidden
	}
	request, err := s.subsidyRepo.FindFundRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.RoleSuperAdmin && actor.SFDID != request.SFDID {
		return nil, fmt.Errorf("%w: request belongs to another SFD", apperrors.ErrForbidden)
	}
	return request, nil
}

func (s *subsidyService) ListFundRequests(ctx context.Context, actor domain.AuthContext, sfdID string, status *domain.RequestStatus, limit, offset int) ([]domain.FundRequest, error) {
	if !actor.Can(domain.CapSubsidyRequest) && !actor.Can(domain.CapSubsidyDecide) {
		return nil, apperrors.ErrForbidden
	}
	scoped, err := scopedSFDID(actor, sfdID)
	if err != nil {
		return nil, err
	}
	requests, err := s.subsidyRepo.ListFundRequests(ctx, scoped, status, limit, offset)
	if err != nil {
		return nil, err
	}
	if requests == nil {
		requests = []domain.FundRequest{}
	}
	return requests, nil
}

func (s *subsidyService) ApproveFundRequest(ctx context.Context, actor domain.AuthContext, requestID string, req dto.DecideRequestRequest) (*domain.FundRequest, error) {
	return s.decideFundRequest(ctx, actor, requestID, domain.RequestApproved, req.Comment)
}

func (s *subsidyService) RejectFundRequest(ctx context.Context, actor domain.AuthContext, requestID string, req dto.DecideRequestRequest) (*domain.FundRequest, error) {
	return s.decideFundRequest(ctx, actor, requestID, domain.RequestRejected, req.Comment)
}

// CompleteFundRequest marks an approved fund request as completed once the
// transfer is executed.
func (s *subsidyService) CompleteFundRequest(ctx context.Context, actor domain.AuthContext, requestID string) (*domain.FundRequest, error) {
	return s.decideFundRequest(ctx, actor, requestID, domain.RequestCompleted, "")
}

func (s *subsidyService) decideFundRequest(ctx context.Context, actor domain.AuthContext, requestID string, target domain.RequestStatus, comment string) (*domain.FundRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if !actor.Can(domain.CapSubsidyDecide) {
		return nil, apperrors.ErrForbidden
	}

	request, err := s.subsidyRepo.FindFundRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	switch target {
	case domain.RequestCompleted:
		if request.Status != domain.RequestApproved {
			return nil, fmt.Errorf("%w: request %s is not approved", apperrors.ErrConflict, requestID)
		}
	default:
		if request.IsDecided() {
			return nil, fmt.Errorf("%w: request %s has already been decided", apperrors.ErrConflict, requestID)
		}
	}

	now := time.Now().UTC()
	request.Status = target
	request.DecidedBy = actor.UserID
	if comment != "" {
		request.DecisionComment = comment
	}
	request.LastUpdatedAt = now
	request.LastUpdatedBy = actor.UserID

	audit := subsidyAuditEvent(actor, "fund_request."+string(target), request.RequestID, request.SFDID, map[string]any{
		"amount":  request.Amount.String(),
		"comment": comment,
	}, now)

	notification := &domain.Notification{
		NotificationID: uuid.NewString(),
		RecipientRole:  domain.RoleSFDAdmin,
		SFDID:          request.SFDID,
		Title:          fundRequestNotificationTitle(target),
		Body:           fmt.Sprintf("Votre demande de fonds de %s est désormais %s.", utils.FormatFCFA(request.Amount), fundRequestStatusFR(target)),
		Type:           domain.NotifSubsidy,
		CreatedAt:      now,
	}

	if err := s.subsidyRepo.DecideFundRequest(ctx, *request, audit, notification); err != nil {
		metrics.SubsidyDecisions.WithLabelValues("fund", string(target)+"_failed").Inc()
		logger.Error("Failed to decide fund request", slog.String("error", err.Error()), slog.String("request_id", requestID))
		return nil, err
	}

	metrics.SubsidyDecisions.WithLabelValues("fund", string(target)).Inc()
	logger.Info("Fund request decided",
		slog.String("request_id", requestID),
		slog.String("status", string(target)),
	)
	return request, nil
}

// SweepStaleRequests notifies the reviewers about pending requests older
// than the cutoff. Runs on a schedule, not behind an HTTP handler.
func (s *subsidyService) SweepStaleRequests(ctx context.Context) (int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	cutoff := time.Now().UTC().Add(-staleRequestAge)

	staleSubsidies, err := s.subsidyRepo.ListStaleSubsidyRequests(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	staleFunds, err := s.subsidyRepo.ListStaleFundRequests(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	flagged := 0
	for _, r := range staleSubsidies {
		n := domain.Notification{
			NotificationID: uuid.NewString(),
			RecipientRole:  domain.RoleSuperAdmin,
			Title:          "Demande de subvention en attente",
			Body:           fmt.Sprintf("La demande de subvention de %s (SFD %s) est en attente depuis plus de 30 jours.", utils.FormatFCFA(r.Amount), r.SFDID),
			Type:           domain.NotifSystem,
			CreatedAt:      now,
		}
		if err := s.notificationRepo.SaveNotification(ctx, n); err != nil {
			logger.Error("Failed to save stale request notification", slog.String("error", err.Error()), slog.String("request_id", r.RequestID))
			continue
		}
		flagged++
	}
	for _, r := range staleFunds {
		n := domain.Notification{
			NotificationID: uuid.NewString(),
			RecipientRole:  domain.RoleSuperAdmin,
			Title:          "Demande de fonds en attente",
			Body:           fmt.Sprintf("La demande de fonds de %s (SFD %s) est en attente depuis plus de 30 jours.", utils.FormatFCFA(r.Amount), r.SFDID),
			Type:           domain.NotifSystem,
			CreatedAt:      now,
		}
		if err := s.notificationRepo.SaveNotification(ctx, n); err != nil {
			logger.Error("Failed to save stale request notification", slog.String("error", err.Error()), slog.String("request_id", r.RequestID))
			continue
		}
		flagged++
	}

	logger.Info("Stale request sweep finished", slog.Int("flagged", flagged))
	return flagged, nil
}

func subsidyAuditEvent(actor domain.AuthContext, action, targetID, sfdID string, details map[string]any, now time.Time) domain.AuditLogEvent {
	return domain.AuditLogEvent{
		EventID:   uuid.NewString(),
		Category:  domain.AuditCategorySubsidy,
		Severity:  domain.SeverityInfo,
		Status:    domain.AuditSuccess,
		Action:    action,
		ActorID:   actor.UserID,
		TargetID:  targetID,
		SFDID:     sfdID,
		Details:   details,
		CreatedAt: now,
	}
}

func fundRequestNotificationTitle(status domain.RequestStatus) string {
	switch status {
	case domain.RequestApproved:
		return "Demande de fonds approuvée"
	case domain.RequestRejected:
		return "Demande de fonds rejetée"
	case domain.RequestCompleted:
		return "Demande de fonds exécutée"
	default:
		return "Demande de fonds mise à jour"
	}
}

func fundRequestStatusFR(status domain.RequestStatus) string {
	switch status {
	case domain.RequestApproved:
		return "approuvée"
	case domain.RequestRejected:
		return "rejetée"
	case domain.RequestCompleted:
		return "exécutée"
	default:
		return string(status)
	}
}
