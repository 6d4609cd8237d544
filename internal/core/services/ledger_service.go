package services

import (
	"context"
	"errors"
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
	"github.com/shopspring/decimal"
)

type ledgerService struct {
	ledgerRepo portsrepo.LedgerRepositoryFacade
	clientRepo portsrepo.ClientReader
	auditRepo  portsrepo.AuditWriter
}

// NewLedgerService creates the service that owns the balance mutation path.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade, clientRepo portsrepo.ClientReader, auditRepo portsrepo.AuditWriter) *ledgerService {
	return &ledgerService{
		ledgerRepo: ledgerRepo,
		clientRepo: clientRepo,
		auditRepo:  auditRepo,
	}
}

// resolveClient loads the client and enforces the actor's scope. SFD staff
// are confined to their institution, client-role callers to their own record.
func (s *ledgerService) resolveClient(ctx context.Context, actor domain.AuthContext, clientID string) (*domain.Client, error) {
	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.RoleSuperAdmin && actor.SFDID != client.SFDID {
		return nil, fmt.Errorf("%w: client belongs to another SFD", apperrors.ErrForbidden)
	}
	if actor.Role == domain.RoleClient && actor.ClientID != client.ClientID {
		return nil, fmt.Errorf("%w: clients may only access their own account", apperrors.ErrForbidden)
	}
	return client, nil
}

// GetBalance returns the current balance and currency code for a client's
// account. A client without an account has a zero balance, not an error.
func (s *ledgerService) GetBalance(ctx context.Context, actor domain.AuthContext, clientID string) (decimal.Decimal, string, error) {
	if !actor.Can(domain.CapLedgerRead) {
		return decimal.Zero, "", apperrors.ErrForbidden
	}
	if _, err := s.resolveClient(ctx, actor, clientID); err != nil {
		return decimal.Zero, "", err
	}

	account, err := s.ledgerRepo.FindAccountByClientID(ctx, clientID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return decimal.Zero, domain.DefaultCurrencyCode, nil
		}
		return decimal.Zero, "", err
	}
	return account.Balance, account.CurrencyCode, nil
}

// GetAccountByClientID retrieves the account attached to a client.
func (s *ledgerService) GetAccountByClientID(ctx context.Context, actor domain.AuthContext, clientID string) (*domain.Account, error) {
	if !actor.Can(domain.CapLedgerRead) {
		return nil, apperrors.ErrForbidden
	}
	if _, err := s.resolveClient(ctx, actor, clientID); err != nil {
		return nil, err
	}
	return s.ledgerRepo.FindAccountByClientID(ctx, clientID)
}

// CreateAccount opens an account for a client.
func (s *ledgerService) CreateAccount(ctx context.Context, actor domain.AuthContext, req dto.CreateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if !actor.Can(domain.CapLedgerWrite) {
		return nil, apperrors.ErrForbidden
	}

	client, err := s.resolveClient(ctx, actor, req.ClientID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:    uuid.NewString(),
		ClientID:     client.ClientID,
		SFDID:        client.SFDID,
		Balance:      decimal.Zero,
		CurrencyCode: domain.DefaultCurrencyCode,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.ledgerRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("client_id", client.ClientID))
		return nil, err
	}

	logger.Info("Account opened", slog.String("account_id", account.AccountID), slog.String("client_id", client.ClientID))
	return &account, nil
}

// Deposit credits the client's account and returns the recorded transaction.
func (s *ledgerService) Deposit(ctx context.Context, actor domain.AuthContext, clientID string, req dto.TransactionRequest) (*domain.Transaction, error) {
	return s.applyMutation(ctx, actor, clientID, domain.Deposit, req)
}

// Withdraw debits the client's account, rejecting the mutation when the
// balance is insufficient.
func (s *ledgerService) Withdraw(ctx context.Context, actor domain.AuthContext, clientID string, req dto.TransactionRequest) (*domain.Transaction, error) {
	return s.applyMutation(ctx, actor, clientID, domain.Withdrawal, req)
}

// RecordRepayment posts a loan repayment against the client's account.
func (s *ledgerService) RecordRepayment(ctx context.Context, actor domain.AuthContext, clientID string, req dto.TransactionRequest) (*domain.Transaction, error) {
	return s.applyMutation(ctx, actor, clientID, domain.LoanRepayment, req)
}

// applyMutation validates the request, builds the ledger entry with its
// audit event and notification, and hands the lot to the repository for a
// single atomic commit.
func (s *ledgerService) applyMutation(ctx context.Context, actor domain.AuthContext, clientID string, txnType domain.TransactionType, req dto.TransactionRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if !actor.Can(domain.CapLedgerWrite) {
		return nil, apperrors.ErrForbidden
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	client, err := s.resolveClient(ctx, actor, clientID)
	if err != nil {
		return nil, err
	}

	signedAmount, err := domain.SignedAmount(txnType, req.Amount)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		ClientID:      client.ClientID,
		SFDID:         client.SFDID,
		Amount:        signedAmount,
		Type:          txnType,
		Status:        domain.TxnSuccess,
		ReferenceID:   req.ReferenceID,
		Description:   req.Description,
		PerformedBy:   actor.UserID,
		CreatedAt:     now,
	}

	audit := domain.AuditLogEvent{
		EventID:  uuid.NewString(),
		Category: domain.AuditCategoryLedger,
		Severity: domain.SeverityInfo,
		Status:   domain.AuditSuccess,
		Action:   "ledger." + string(txnType),
		ActorID:  actor.UserID,
		SFDID:    client.SFDID,
		Details: map[string]any{
			"client_id": client.ClientID,
			"amount":    req.Amount.String(),
			"type":      string(txnType),
		},
		CreatedAt: now,
	}

	notification := &domain.Notification{
		NotificationID: uuid.NewString(),
		RecipientRole:  domain.RoleSFDAdmin,
		SFDID:          client.SFDID,
		Title:          mutationNotificationTitle(txnType),
		Body:           fmt.Sprintf("%s de %s sur le compte de %s.", mutationNotificationTitle(txnType), utils.FormatFCFA(req.Amount), client.FullName),
		Type:           domain.NotifTransaction,
		CreatedAt:      now,
	}

	saved, err := s.ledgerRepo.ApplyTransaction(ctx, txn, audit, notification)
	if err != nil {
		metrics.LedgerTransactions.WithLabelValues(string(txnType), "rejected").Inc()
		if errors.Is(err, apperrors.ErrInsufficientBalance) {
			s.recordRejection(ctx, actor, client, txnType, req.Amount, now)
			logger.Warn("Mutation rejected for insufficient balance",
				slog.String("client_id", client.ClientID),
				slog.String("amount", req.Amount.String()),
			)
		} else {
			logger.Error("Failed to apply transaction", slog.String("error", err.Error()), slog.String("client_id", client.ClientID))
		}
		return nil, err
	}

	metrics.LedgerTransactions.WithLabelValues(string(txnType), "posted").Inc()
	logger.Info("Transaction posted",
		slog.String("transaction_id", saved.TransactionID),
		slog.String("type", string(txnType)),
		slog.String("balance_after", saved.BalanceAfter.String()),
	)
	return saved, nil
}

// recordRejection writes the audit trail for a refused mutation. The refusal
// itself never touches the ledger, so this runs outside the mutation path.
func (s *ledgerService) recordRejection(ctx context.Context, actor domain.AuthContext, client *domain.Client, txnType domain.TransactionType, amount decimal.Decimal, now time.Time) {
	event := domain.AuditLogEvent{
		EventID:  uuid.NewString(),
		Category: domain.AuditCategoryLedger,
		Severity: domain.SeverityWarning,
		Status:   domain.AuditFailure,
		Action:   "ledger." + string(txnType) + ".rejected",
		ActorID:  actor.UserID,
		TargetID: client.ClientID,
		SFDID:    client.SFDID,
		Details: map[string]any{
			"client_id": client.ClientID,
			"amount":    amount.String(),
			"reason":    "insufficient balance",
		},
		CreatedAt: now,
	}
	if err := s.auditRepo.SaveAuditEvent(ctx, event); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to record rejection audit event", slog.String("error", err.Error()))
	}
}

// GetTransactionByID retrieves a specific transaction.
func (s *ledgerService) GetTransactionByID(ctx context.Context, actor domain.AuthContext, transactionID string) (*domain.Transaction, error) {
	if !actor.Can(domain.CapLedgerRead) {
		return nil, apperrors.ErrForbidden
	}
	txn, err := s.ledgerRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.RoleSuperAdmin && actor.SFDID != txn.SFDID {
		return nil, fmt.Errorf("%w: transaction belongs to another SFD", apperrors.ErrForbidden)
	}
	if actor.Role == domain.RoleClient && actor.ClientID != txn.ClientID {
		return nil, fmt.Errorf("%w: clients may only access their own transactions", apperrors.ErrForbidden)
	}
	return txn, nil
}

// ListTransactions retrieves a paginated list of a client's transactions.
func (s *ledgerService) ListTransactions(ctx context.Context, actor domain.AuthContext, clientID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if !actor.Can(domain.CapLedgerRead) {
		return nil, nil, apperrors.ErrForbidden
	}
	if _, err := s.resolveClient(ctx, actor, clientID); err != nil {
		return nil, nil, err
	}
	txns, token, err := s.ledgerRepo.ListTransactionsByClientID(ctx, clientID, limit, nextToken)
	if err != nil {
		return nil, nil, err
	}
	if txns == nil {
		txns = []domain.Transaction{}
	}
	return txns, token, nil
}

// ListSFDTransactions retrieves a paginated list of transactions across an SFD.
func (s *ledgerService) ListSFDTransactions(ctx context.Context, actor domain.AuthContext, sfdID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if !actor.Can(domain.CapLedgerRead) {
		return nil, nil, apperrors.ErrForbidden
	}
	if actor.Role != domain.RoleSuperAdmin && actor.SFDID != sfdID {
		return nil, nil, fmt.Errorf("%w: cannot read another SFD's ledger", apperrors.ErrForbidden)
	}
	txns, token, err := s.ledgerRepo.ListTransactionsBySFD(ctx, sfdID, limit, nextToken)
	if err != nil {
		return nil, nil, err
	}
	if txns == nil {
		txns = []domain.Transaction{}
	}
	return txns, token, nil
}

// FlagTransaction marks a transaction as flagged for review.
func (s *ledgerService) FlagTransaction(ctx context.Context, actor domain.AuthContext, transactionID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	if !actor.Can(domain.CapLedgerFlag) {
		return apperrors.ErrForbidden
	}

	txn, err := s.ledgerRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return err
	}
	if txn.Status == domain.TxnFlagged {
		return fmt.Errorf("%w: transaction %s is already flagged", apperrors.ErrConflict, transactionID)
	}

	if err := s.ledgerRepo.UpdateTransactionStatus(ctx, transactionID, domain.TxnFlagged, actor.UserID); err != nil {
		return err
	}

	now := time.Now().UTC()
	event := domain.AuditLogEvent{
		EventID:  uuid.NewString(),
		Category: domain.AuditCategoryLedger,
		Severity: domain.SeverityWarning,
		Status:   domain.AuditSuccess,
		Action:   "ledger.flag",
		ActorID:  actor.UserID,
		TargetID: transactionID,
		SFDID:    txn.SFDID,
		Details: map[string]any{
			"previous_status": string(txn.Status),
		},
		CreatedAt: now,
	}
	if err := s.auditRepo.SaveAuditEvent(ctx, event); err != nil {
		logger.Error("Failed to record flag audit event", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
	}

	logger.Info("Transaction flagged", slog.String("transaction_id", transactionID))
	return nil
}

// mutationNotificationTitle returns the French notification title for a
// mutation type.
func mutationNotificationTitle(t domain.TransactionType) string {
	switch t {
	case domain.Deposit:
		return "Dépôt effectué"
	case domain.Withdrawal:
		return "Retrait effectué"
	case domain.LoanRepayment:
		return "Remboursement reçu"
	case domain.LoanDisbursement:
		return "Crédit décaissé"
	default:
		return "Opération effectuée"
	}
}
