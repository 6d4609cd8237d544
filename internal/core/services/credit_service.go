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

type creditService struct {
	creditRepo portsrepo.CreditRepositoryFacade
	clientRepo portsrepo.ClientReader
}

// NewCreditService creates the service managing credit applications and
// their decisions.
func NewCreditService(creditRepo portsrepo.CreditRepositoryFacade, clientRepo portsrepo.ClientReader) *creditService {
	return &creditService{
		creditRepo: creditRepo,
		clientRepo: clientRepo,
	}
}

func (s *creditService) GetApplicationByID(ctx context.Context, actor domain.AuthContext, applicationID string) (*domain.CreditApplication, error) {
	if !actor.Can(domain.CapCreditApply) && !actor.Can(domain.CapCreditReview) {
		return nil, apperrors.ErrForbidden
	}
	app, err := s.creditRepo.FindCreditApplicationByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.RoleSuperAdmin && actor.SFDID != app.SFDID {
		return nil, fmt.Errorf("%w: application belongs to another SFD", apperrors.ErrForbidden)
	}
	return app, nil
}

func (s *creditService) ListApplications(ctx context.Context, actor domain.AuthContext, sfdID string, status *domain.CreditStatus, limit, offset int) ([]domain.CreditApplication, error) {
	if !actor.Can(domain.CapCreditApply) && !actor.Can(domain.CapCreditReview) {
		return nil, apperrors.ErrForbidden
	}
	scoped, err := scopedSFDID(actor, sfdID)
	if err != nil {
		return nil, err
	}
	apps, err := s.creditRepo.ListCreditApplications(ctx, scoped, status, limit, offset)
	if err != nil {
		return nil, err
	}
	if apps == nil {
		apps = []domain.CreditApplication{}
	}
	return apps, nil
}

// SubmitApplication records a new application in pending status on behalf of
// one of the actor's clients.
func (s *creditService) SubmitApplication(ctx context.Context, actor domain.AuthContext, req dto.CreateCreditApplicationRequest) (*domain.CreditApplication, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if !actor.Can(domain.CapCreditApply) {
		return nil, apperrors.ErrForbidden
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	client, err := s.clientRepo.FindClientByID(ctx, req.ClientID)
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.RoleSuperAdmin && actor.SFDID != client.SFDID {
		return nil, fmt.Errorf("%w: client belongs to another SFD", apperrors.ErrForbidden)
	}
	if client.KYCStatus != domain.KYCVerified {
		return nil, fmt.Errorf("%w: client %s is not KYC verified", apperrors.ErrConflict, client.ClientID)
	}

	now := time.Now().UTC()
	app := domain.CreditApplication{
		ApplicationID:  uuid.NewString(),
		ClientID:       client.ClientID,
		SFDID:          client.SFDID,
		Amount:         req.Amount,
		DurationMonths: req.DurationMonths,
		Purpose:        req.Purpose,
		Status:         domain.CreditPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.creditRepo.SaveCreditApplication(ctx, app); err != nil {
		logger.Error("Failed to save credit application", slog.String("error", err.Error()), slog.String("client_id", client.ClientID))
		return nil, err
	}

	logger.Info("Credit application submitted",
		slog.String("application_id", app.ApplicationID),
		slog.String("client_id", client.ClientID),
		slog.String("amount", req.Amount.String()),
	)
	return &app, nil
}

// ApproveApplication approves a pending application and disburses the loan.
// The status transition, ledger credit, audit row and notification commit in
// one database transaction; a concurrent decision loses with a conflict.
func (s *creditService) ApproveApplication(ctx context.Context, actor domain.AuthContext, applicationID string, req dto.DecideCreditRequest) (*domain.CreditApplication, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if !actor.Can(domain.CapCreditReview) {
		return nil, apperrors.ErrForbidden
	}

	app, err := s.creditRepo.FindCreditApplicationByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.IsDecided() {
		return nil, fmt.Errorf("%w: application %s has already been decided", apperrors.ErrConflict, applicationID)
	}

	now := time.Now().UTC()
	app.Status = domain.CreditApproved
	app.ReviewedBy = actor.UserID
	app.ReviewComment = req.Comment
	app.LastUpdatedAt = now
	app.LastUpdatedBy = actor.UserID

	disbursement := domain.Transaction{
		TransactionID: uuid.NewString(),
		ClientID:      app.ClientID,
		SFDID:         app.SFDID,
		Amount:        app.Amount,
		Type:          domain.LoanDisbursement,
		Status:        domain.TxnSuccess,
		ReferenceID:   app.ApplicationID,
		Description:   app.Purpose,
		PerformedBy:   actor.UserID,
		CreatedAt:     now,
	}

	audit := domain.AuditLogEvent{
		EventID:  uuid.NewString(),
		Category: domain.AuditCategoryCredit,
		Severity: domain.SeverityInfo,
		Status:   domain.AuditSuccess,
		Action:   "credit.approve",
		ActorID:  actor.UserID,
		TargetID: app.ApplicationID,
		SFDID:    app.SFDID,
		Details: map[string]any{
			"client_id": app.ClientID,
			"amount":    app.Amount.String(),
			"comment":   req.Comment,
		},
		CreatedAt: now,
	}

	notification := &domain.Notification{
		NotificationID: uuid.NewString(),
		RecipientRole:  domain.RoleSFDAdmin,
		SFDID:          app.SFDID,
		Title:          "Crédit approuvé",
		Body:           fmt.Sprintf("La demande de crédit de %s a été approuvée et décaissée.", utils.FormatFCFA(app.Amount)),
		Type:           domain.NotifCreditDecision,
		CreatedAt:      now,
	}

	txn, err := s.creditRepo.ApproveAndDisburse(ctx, *app, disbursement, audit, notification)
	if err != nil {
		metrics.CreditDecisions.WithLabelValues("approve_failed").Inc()
		logger.Error("Failed to approve credit application", slog.String("error", err.Error()), slog.String("application_id", applicationID))
		return nil, err
	}

	metrics.CreditDecisions.WithLabelValues("approved").Inc()
	logger.Info("Credit application approved",
		slog.String("application_id", applicationID),
		slog.String("transaction_id", txn.TransactionID),
		slog.String("balance_after", txn.BalanceAfter.String()),
	)
	return app, nil
}

// RejectApplication rejects a pending application.
func (s *creditService) RejectApplication(ctx context.Context, actor domain.AuthContext, applicationID string, req dto.DecideCreditRequest) (*domain.CreditApplication, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if !actor.Can(domain.CapCreditReview) {
		return nil, apperrors.ErrForbidden
	}

	app, err := s.creditRepo.FindCreditApplicationByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.IsDecided() {
		return nil, fmt.Errorf("%w: application %s has already been decided", apperrors.ErrConflict, applicationID)
	}

	now := time.Now().UTC()
	app.Status = domain.CreditRejected
	app.ReviewedBy = actor.UserID
	app.ReviewComment = req.Comment
	app.LastUpdatedAt = now
	app.LastUpdatedBy = actor.UserID

	audit := domain.AuditLogEvent{
		EventID:  uuid.NewString(),
		Category: domain.AuditCategoryCredit,
		Severity: domain.SeverityInfo,
		Status:   domain.AuditSuccess,
		Action:   "credit.reject",
		ActorID:  actor.UserID,
		TargetID: app.ApplicationID,
		SFDID:    app.SFDID,
		Details: map[string]any{
			"client_id": app.ClientID,
			"amount":    app.Amount.String(),
			"comment":   req.Comment,
		},
		CreatedAt: now,
	}

	notification := &domain.Notification{
		NotificationID: uuid.NewString(),
		RecipientRole:  domain.RoleSFDAdmin,
		SFDID:          app.SFDID,
		Title:          "Crédit rejeté",
		Body:           fmt.Sprintf("La demande de crédit de %s a été rejetée.", utils.FormatFCFA(app.Amount)),
		Type:           domain.NotifCreditDecision,
		CreatedAt:      now,
	}

	if err := s.creditRepo.Reject(ctx, *app, audit, notification); err != nil {
		metrics.CreditDecisions.WithLabelValues("reject_failed").Inc()
		logger.Error("Failed to reject credit application", slog.String("error", err.Error()), slog.String("application_id", applicationID))
		return nil, err
	}

	metrics.CreditDecisions.WithLabelValues("rejected").Inc()
	logger.Info("Credit application rejected", slog.String("application_id", applicationID))
	return app, nil
}
