package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/ICON-SARL/ngnasoro-sub006/internal/apperrors"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/core/domain"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/core/services"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/dto"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mock LedgerRepository (based on LedgerService usage) ---
type MockLedgerRepository struct {
	mock.Mock
	FindAccountByClientIDFn      func(ctx context.Context, clientID string) (*domain.Account, error)
	SaveAccountFn                func(ctx context.Context, account domain.Account) error
	ApplyTransactionFn           func(ctx context.Context, txn domain.Transaction, audit domain.AuditLogEvent, notification *domain.Notification) (*domain.Transaction, error)
	FindTransactionByIDFn        func(ctx context.Context, transactionID string) (*domain.Transaction, error)
	ListTransactionsByClientIDFn func(ctx context.Context, clientID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)
	UpdateTransactionStatusFn    func(ctx context.Context, transactionID string, status domain.TransactionStatus, updatedBy string) error
}

func (m *MockLedgerRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	var acc *domain.Account
	if args.Get(0) != nil {
		acc = args.Get(0).(*domain.Account)
	}
	return acc, args.Error(1)
}

func (m *MockLedgerRepository) FindAccountByClientID(ctx context.Context, clientID string) (*domain.Account, error) {
	if m.FindAccountByClientIDFn != nil {
		return m.FindAccountByClientIDFn(ctx, clientID)
	}
	args := m.Called(ctx, clientID)
	var acc *domain.Account
	if args.Get(0) != nil {
		acc = args.Get(0).(*domain.Account)
	}
	return acc, args.Error(1)
}

func (m *MockLedgerRepository) ListAccountsBySFD(ctx context.Context, sfdID string, limit, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, sfdID, limit, offset)
	var accs []domain.Account
	if args.Get(0) != nil {
		accs = args.Get(0).([]domain.Account)
	}
	return accs, args.Error(1)
}

func (m *MockLedgerRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	if m.SaveAccountFn != nil {
		return m.SaveAccountFn(ctx, account)
	}
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockLedgerRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockLedgerRepository) ApplyTransaction(ctx context.Context, txn domain.Transaction, audit domain.AuditLogEvent, notification *domain.Notification) (*domain.Transaction, error) {
	if m.ApplyTransactionFn != nil {
		return m.ApplyTransactionFn(ctx, txn, audit, notification)
	}
	args := m.Called(ctx, txn, audit, notification)
	var saved *domain.Transaction
	if args.Get(0) != nil {
		saved = args.Get(0).(*domain.Transaction)
	}
	return saved, args.Error(1)
}

func (m *MockLedgerRepository) ApplyTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) (*domain.Transaction, error) {
	args := m.Called(ctx, tx, txn)
	var saved *domain.Transaction
	if args.Get(0) != nil {
		saved = args.Get(0).(*domain.Transaction)
	}
	return saved, args.Error(1)
}

func (m *MockLedgerRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	if m.FindTransactionByIDFn != nil {
		return m.FindTransactionByIDFn(ctx, transactionID)
	}
	args := m.Called(ctx, transactionID)
	var txn *domain.Transaction
	if args.Get(0) != nil {
		txn = args.Get(0).(*domain.Transaction)
	}
	return txn, args.Error(1)
}

func (m *MockLedgerRepository) ListTransactionsByClientID(ctx context.Context, clientID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if m.ListTransactionsByClientIDFn != nil {
		return m.ListTransactionsByClientIDFn(ctx, clientID, limit, nextToken)
	}
	args := m.Called(ctx, clientID, limit, nextToken)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return txns, token, args.Error(2)
}

func (m *MockLedgerRepository) ListTransactionsBySFD(ctx context.Context, sfdID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, sfdID, limit, nextToken)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return txns, token, args.Error(2)
}

func (m *MockLedgerRepository) UpdateTransactionStatus(ctx context.Context, transactionID string, status domain.TransactionStatus, updatedBy string) error {
	if m.UpdateTransactionStatusFn != nil {
		return m.UpdateTransactionStatusFn(ctx, transactionID, status, updatedBy)
	}
	args := m.Called(ctx, transactionID, status, updatedBy)
	return args.Error(0)
}

// --- Mock ClientReader ---
type MockClientReader struct {
	mock.Mock
	FindClientByIDFn func(ctx context.Context, clientID string) (*domain.Client, error)
}

func (m *MockClientReader) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	if m.FindClientByIDFn != nil {
		return m.FindClientByIDFn(ctx, clientID)
	}
	args := m.Called(ctx, clientID)
	var client *domain.Client
	if args.Get(0) != nil {
		client = args.Get(0).(*domain.Client)
	}
	return client, args.Error(1)
}

func (m *MockClientReader) ListClientsBySFD(ctx context.Context, sfdID string, limit, offset int) ([]domain.Client, error) {
	args := m.Called(ctx, sfdID, limit, offset)
	var clients []domain.Client
	if args.Get(0) != nil {
		clients = args.Get(0).([]domain.Client)
	}
	return clients, args.Error(1)
}

// --- Mock AuditWriter ---
type MockAuditWriter struct {
	mock.Mock
	SaveAuditEventFn func(ctx context.Context, event domain.AuditLogEvent) error
}

func (m *MockAuditWriter) SaveAuditEvent(ctx context.Context, event domain.AuditLogEvent) error {
	if m.SaveAuditEventFn != nil {
		return m.SaveAuditEventFn(ctx, event)
	}
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockAuditWriter) SaveAuditEventInTx(ctx context.Context, tx pgx.Tx, event domain.AuditLogEvent) error {
	args := m.Called(ctx, tx, event)
	return args.Error(0)
}

func cashierActor(sfdID string) domain.AuthContext {
	return domain.AuthContext{UserID: uuid.NewString(), Role: domain.RoleCashier, SFDID: sfdID}
}

func clientActor(sfdID, clientID string) domain.AuthContext {
	return domain.AuthContext{UserID: uuid.NewString(), Role: domain.RoleClient, SFDID: sfdID, ClientID: clientID}
}

func testClient(sfdID string) *domain.Client {
	return &domain.Client{
		ClientID:  uuid.NewString(),
		SFDID:     sfdID,
		FullName:  "Aminata Koné",
		KYCStatus: domain.KYCVerified,
		KYCLevel:  2,
		IsActive:  true,
	}
}

func TestGetBalance_NoAccountReturnsZero(t *testing.T) {
	ledgerRepo := new(MockLedgerRepository)
	clientRepo := new(MockClientReader)
	auditRepo := new(MockAuditWriter)
	svc := services.NewLedgerService(ledgerRepo, clientRepo, auditRepo)

	actor := cashierActor("sfd-1")
	client := testClient("sfd-1")
	clientRepo.FindClientByIDFn = func(ctx context.Context, clientID string) (*domain.Client, error) {
		return client, nil
	}
	ledgerRepo.FindAccountByClientIDFn = func(ctx context.Context, clientID string) (*domain.Account, error) {
		return nil, apperrors.ErrNotFound
	}

	balance, currency, err := svc.GetBalance(context.Background(), actor, client.ClientID)

	require.NoError(t, err)
	assert.True(t, balance.IsZero())
	assert.Equal(t, "FCFA", currency)
}

func TestGetBalance_ForbiddenAcrossSFDs(t *testing.T) {
	ledgerRepo := new(MockLedgerRepository)
	clientRepo := new(MockClientReader)
	auditRepo := new(MockAuditWriter)
	svc := services.NewLedgerService(ledgerRepo, clientRepo, auditRepo)

	actor := cashierActor("sfd-1")
	client := testClient("sfd-2")
	clientRepo.FindClientByIDFn = func(ctx context.Context, clientID string) (*domain.Client, error) {
		return client, nil
	}

	_, _, err := svc.GetBalance(context.Background(), actor, client.ClientID)

	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestGetBalance_ClientReadsOwnAccount(t *testing.T) {
	ledgerRepo := new(MockLedgerRepository)
	clientRepo := new(MockClientReader)
	auditRepo := new(MockAuditWriter)
	svc := services.NewLedgerService(ledgerRepo, clientRepo, auditRepo)

	client := testClient("sfd-1")
	actor := clientActor("sfd-1", client.ClientID)
	clientRepo.FindClientByIDFn = func(ctx context.Context, clientID string) (*domain.Client, error) {
		return client, nil
	}
	ledgerRepo.FindAccountByClientIDFn = func(ctx context.Context, clientID string) (*domain.Account, error) {
		return &domain.Account{ClientID: clientID, Balance: decimal.NewFromInt(750000), CurrencyCode: "FCFA"}, nil
	}

	balance, _, err := svc.GetBalance(context.Background(), actor, client.ClientID)

	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(750000)))
}

func TestGetBalance_ClientCannotReadOtherClients(t *testing.T) {
	ledgerRepo := new(MockLedgerRepository)
	clientRepo := new(MockClientReader)
	auditRepo := new(MockAuditWriter)
	svc := services.NewLedgerService(ledgerRepo, clientRepo, auditRepo)

	// Same SFD, different client record. The SFD scope alone would let
	// this through, the caller's own client ID must not.
	victim := testClient("sfd-1")
	actor := clientActor("sfd-1", uuid.NewString())
	clientRepo.FindClientByIDFn = func(ctx context.Context, clientID string) (*domain.Client, error) {
		return victim, nil
	}

	_, _, err := svc.GetBalance(context.Background(), actor, victim.ClientID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, _, err = svc.ListTransactions(context.Background(), actor, victim.ClientID, 10, nil)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestGetTransactionByID_ClientScopedToOwnRecord(t *testing.T) {
	ledgerRepo := new(MockLedgerRepository)
	clientRepo := new(MockClientReader)
	auditRepo := new(MockAuditWriter)
	svc := services.NewLedgerService(ledgerRepo, clientRepo, auditRepo)

	actor := clientActor("sfd-1", uuid.NewString())
	ledgerRepo.FindTransactionByIDFn = func(ctx context.Context, transactionID string) (*domain.Transaction, error) {
		return &domain.Transaction{
			TransactionID: transactionID,
			ClientID:      uuid.NewString(),
			SFDID:         "sfd-1",
			Status:        domain.TxnSuccess,
		}, nil
	}

	_, err := svc.GetTransactionByID(context.Background(), actor, uuid.NewString())
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestDeposit_Success(t *testing.T) {
	ledgerRepo := new(MockLedgerRepository)
	clientRepo := new(MockClientReader)
	auditRepo := new(MockAuditWriter)
	svc := services.NewLedgerService(ledgerRepo, clientRepo, auditRepo)

	actor := cashierActor("sfd-1")
	client := testClient("sfd-1")
	clientRepo.FindClientByIDFn = func(ctx context.Context, clientID string) (*domain.Client, error) {
		return client, nil
	}

	var appliedTxn domain.Transaction
	var appliedAudit domain.AuditLogEvent
	var appliedNotif *domain.Notification
	ledgerRepo.ApplyTransactionFn = func(ctx context.Context, txn domain.Transaction, audit domain.AuditLogEvent, notification *domain.Notification) (*domain.Transaction, error) {
		appliedTxn = txn
		appliedAudit = audit
		appliedNotif = notification
		saved := txn
		saved.BalanceAfter = txn.Amount
		return &saved, nil
	}

	amount := decimal.NewFromInt(5000)
	saved, err := svc.Deposit(context.Background(), actor, client.ClientID, dto.TransactionRequest{Amount: amount, Description: "versement"})

	require.NoError(t, err)
	assert.Equal(t, domain.Deposit, saved.Type)
	assert.True(t, saved.BalanceAfter.Equal(amount))

	assert.True(t, appliedTxn.Amount.Equal(amount), "deposit amount should be positive")
	assert.Equal(t, client.SFDID, appliedTxn.SFDID)
	assert.Equal(t, actor.UserID, appliedTxn.PerformedBy)
	assert.Equal(t, domain.AuditCategoryLedger, appliedAudit.Category)
	require.NotNil(t, appliedNotif)
	assert.Equal(t, domain.RoleSFDAdmin, appliedNotif.RecipientRole)
	assert.Contains(t, appliedNotif.Body, "Aminata Koné")
}

func TestWithdraw_SignsAmountNegative(t *testing.T) {
	ledgerRepo := new(MockLedgerRepository)
	clientRepo := new(MockClientReader)
	auditRepo := new(MockAuditWriter)
	svc := services.NewLedgerService(ledgerRepo, clientRepo, auditRepo)

	actor := cashierActor("sfd-1")
	client := testClient("sfd-1")
	clientRepo.FindClientByIDFn = func(ctx context.Context, clientID string) (*domain.Client, error) {
		return client, nil
	}

	var appliedTxn domain.Transaction
	ledgerRepo.ApplyTransactionFn = func(ctx context.Context, txn domain.Transaction, audit domain.AuditLogEvent, notification *domain.Notification) (*domain.Transaction, error) {
		appliedTxn = txn
		saved := txn
		return &saved, nil
	}

	_, err := svc.Withdraw(context.Background(), actor, client.ClientID, dto.TransactionRequest{Amount: decimal.NewFromInt(2000)})

	require.NoError(t, err)
	assert.True(t, appliedTxn.Amount.IsNegative(), "withdrawal amount should be negative in the ledger")
	assert.Equal(t, domain.Withdrawal, appliedTxn.Type)
}

func TestWithdraw_InsufficientBalanceRecordsAudit(t *testing.T) {
	ledgerRepo := new(MockLedgerRepository)
	clientRepo := new(MockClientReader)
	auditRepo := new(MockAuditWriter)
	svc := services.NewLedgerService(ledgerRepo, clientRepo, auditRepo)

	actor := cashierActor("sfd-1")
	client := testClient("sfd-1")
	clientRepo.FindClientByIDFn = func(ctx context.Context, clientID string) (*domain.Client, error) {
		return client, nil
	}
	ledgerRepo.ApplyTransactionFn = func(ctx context.Context, txn domain.Transaction, audit domain.AuditLogEvent, notification *domain.Notification) (*domain.Transaction, error) {
		return nil, apperrors.ErrInsufficientBalance
	}

	var rejection domain.AuditLogEvent
	auditRepo.SaveAuditEventFn = func(ctx context.Context, event domain.AuditLogEvent) error {
		rejection = event
		return nil
	}

	_, err := svc.Withdraw(context.Background(), actor, client.ClientID, dto.TransactionRequest{Amount: decimal.NewFromInt(100000)})

	assert.ErrorIs(t, err, apperrors.ErrInsufficientBalance)
	assert.Equal(t, domain.AuditFailure, rejection.Status)
	assert.Equal(t, domain.SeverityWarning, rejection.Severity)
}

func TestDeposit_RejectsNonPositiveAmount(t *testing.T) {
	ledgerRepo := new(MockLedgerRepository)
	clientRepo := new(MockClientReader)
	auditRepo := new(MockAuditWriter)
	svc := services.NewLedgerService(ledgerRepo, clientRepo, auditRepo)

	actor := cashierActor("sfd-1")

	_, err := svc.Deposit(context.Background(), actor, uuid.NewString(), dto.TransactionRequest{Amount: decimal.Zero})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.Deposit(context.Background(), actor, uuid.NewString(), dto.TransactionRequest{Amount: decimal.NewFromInt(-50)})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestDeposit_ForbiddenWithoutWriteCapability(t *testing.T) {
	ledgerRepo := new(MockLedgerRepository)
	clientRepo := new(MockClientReader)
	auditRepo := new(MockAuditWriter)
	svc := services.NewLedgerService(ledgerRepo, clientRepo, auditRepo)

	actor := domain.AuthContext{UserID: uuid.NewString(), Role: domain.RoleClient, SFDID: "sfd-1"}

	_, err := svc.Deposit(context.Background(), actor, uuid.NewString(), dto.TransactionRequest{Amount: decimal.NewFromInt(100)})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestFlagTransaction(t *testing.T) {
	ledgerRepo := new(MockLedgerRepository)
	clientRepo := new(MockClientReader)
	auditRepo := new(MockAuditWriter)
	svc := services.NewLedgerService(ledgerRepo, clientRepo, auditRepo)

	actor := domain.AuthContext{UserID: uuid.NewString(), Role: domain.RoleSuperAdmin}
	txnID := uuid.NewString()

	ledgerRepo.FindTransactionByIDFn = func(ctx context.Context, transactionID string) (*domain.Transaction, error) {
		return &domain.Transaction{
			TransactionID: transactionID,
			SFDID:         "sfd-1",
			Status:        domain.TxnSuccess,
			CreatedAt:     time.Now().UTC(),
		}, nil
	}
	var flaggedStatus domain.TransactionStatus
	ledgerRepo.UpdateTransactionStatusFn = func(ctx context.Context, transactionID string, status domain.TransactionStatus, updatedBy string) error {
		flaggedStatus = status
		return nil
	}
	auditRepo.SaveAuditEventFn = func(ctx context.Context, event domain.AuditLogEvent) error { return nil }

	err := svc.FlagTransaction(context.Background(), actor, txnID)

	require.NoError(t, err)
	assert.Equal(t, domain.TxnFlagged, flaggedStatus)
}

func TestFlagTransaction_AlreadyFlagged(t *testing.T) {
	ledgerRepo := new(MockLedgerRepository)
	clientRepo := new(MockClientReader)
	auditRepo := new(MockAuditWriter)
	svc := services.NewLedgerService(ledgerRepo, clientRepo, auditRepo)

	actor := domain.AuthContext{UserID: uuid.NewString(), Role: domain.RoleSuperAdmin}

	ledgerRepo.FindTransactionByIDFn = func(ctx context.Context, transactionID string) (*domain.Transaction, error) {
		return &domain.Transaction{TransactionID: transactionID, Status: domain.TxnFlagged}, nil
	}

	err := svc.FlagTransaction(context.Background(), actor, uuid.NewString())
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestFlagTransaction_CashierForbidden(t *testing.T) {
	ledgerRepo := new(MockLedgerRepository)
	clientRepo := new(MockClientReader)
	auditRepo := new(MockAuditWriter)
	svc := services.NewLedgerService(ledgerRepo, clientRepo, auditRepo)

	err := svc.FlagTransaction(context.Background(), cashierActor("sfd-1"), uuid.NewString())
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}
