package services_test

import (
	"context"
	"testing"

	"github.com/ICON-SARL/ngnasoro-sub006/internal/apperrors"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/core/domain"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/core/services"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mock CreditRepository (based on CreditService usage) ---
type MockCreditRepository struct {
	mock.Mock
	FindCreditApplicationByIDFn func(ctx context.Context, applicationID string) (*domain.CreditApplication, error)
	ListCreditApplicationsFn    func(ctx context.Context, sfdID string, status *domain.CreditStatus, limit, offset int) ([]domain.CreditApplication, error)
	SaveCreditApplicationFn     func(ctx context.Context, application domain.CreditApplication) error
	ApproveAndDisburseFn        func(ctx context.Context, application domain.CreditApplication, disbursement domain.Transaction, audit domain.AuditLogEvent, notification *domain.Notification) (*domain.Transaction, error)
	RejectFn                    func(ctx context.Context, application domain.CreditApplication, audit domain.AuditLogEvent, notification *domain.Notification) error
}

func (m *MockCreditRepository) FindCreditApplicationByID(ctx context.Context, applicationID string) (*domain.CreditApplication, error) {
	if m.FindCreditApplicationByIDFn != nil {
		return m.FindCreditApplicationByIDFn(ctx, applicationID)
	}
	args := m.Called(ctx, applicationID)
	var app *domain.CreditApplication
	if args.Get(0) != nil {
		app = args.Get(0).(*domain.CreditApplication)
	}
	return app, args.Error(1)
}

func (m *MockCreditRepository) ListCreditApplications(ctx context.Context, sfdID string, status *domain.CreditStatus, limit, offset int) ([]domain.CreditApplication, error) {
	if m.ListCreditApplicationsFn != nil {
		return m.ListCreditApplicationsFn(ctx, sfdID, status, limit, offset)
	}
	args := m.Called(ctx, sfdID, status, limit, offset)
	var apps []domain.CreditApplication
	if args.Get(0) != nil {
		apps = args.Get(0).([]domain.CreditApplication)
	}
	return apps, args.Error(1)
}

func (m *MockCreditRepository) SaveCreditApplication(ctx context.Context, application domain.CreditApplication) error {
	if m.SaveCreditApplicationFn != nil {
		return m.SaveCreditApplicationFn(ctx, application)
	}
	args := m.Called(ctx, application)
	return args.Error(0)
}

func (m *MockCreditRepository) UpdateCreditApplication(ctx context.Context, application domain.CreditApplication) error {
	args := m.Called(ctx, application)
	return args.Error(0)
}

func (m *MockCreditRepository) ApproveAndDisburse(ctx context.Context, application domain.CreditApplication, disbursement domain.Transaction, audit domain.AuditLogEvent, notification *domain.Notification) (*domain.Transaction, error) {
	if m.ApproveAndDisburseFn != nil {
		return m.ApproveAndDisburseFn(ctx, application, disbursement, audit, notification)
	}
	args := m.Called(ctx, application, disbursement, audit, notification)
	var txn *domain.Transaction
	if args.Get(0) != nil {
		txn = args.Get(0).(*domain.Transaction)
	}
	return txn, args.Error(1)
}

func (m *MockCreditRepository) Reject(ctx context.Context, application domain.CreditApplication, audit domain.AuditLogEvent, notification *domain.Notification) error {
	if m.RejectFn != nil {
		return m.RejectFn(ctx, application, audit, notification)
	}
	args := m.Called(ctx, application, audit, notification)
	return args.Error(0)
}

func sfdAdminActor(sfdID string) domain.AuthContext {
	return domain.AuthContext{UserID: uuid.NewString(), Role: domain.RoleSFDAdmin, SFDID: sfdID}
}

func superAdminActor() domain.AuthContext {
	return domain.AuthContext{UserID: uuid.NewString(), Role: domain.RoleSuperAdmin}
}

func pendingApplication(sfdID string) *domain.CreditApplication {
	return &domain.CreditApplication{
		ApplicationID:  uuid.NewString(),
		ClientID:       uuid.NewString(),
		SFDID:          sfdID,
		Amount:         decimal.NewFromInt(250000),
		DurationMonths: 12,
		Purpose:        "Fonds de roulement",
		Status:         domain.CreditPending,
	}
}

func TestSubmitApplication_Success(t *testing.T) {
	creditRepo := new(MockCreditRepository)
	clientRepo := new(MockClientReader)
	svc := services.NewCreditService(creditRepo, clientRepo)

	actor := sfdAdminActor("sfd-1")
	client := testClient("sfd-1")
	clientRepo.FindClientByIDFn = func(ctx context.Context, clientID string) (*domain.Client, error) {
		return client, nil
	}

	var saved domain.CreditApplication
	creditRepo.SaveCreditApplicationFn = func(ctx context.Context, application domain.CreditApplication) error {
		saved = application
		return nil
	}

	app, err := svc.SubmitApplication(context.Background(), actor, dto.CreateCreditApplicationRequest{
		ClientID:       client.ClientID,
		Amount:         decimal.NewFromInt(250000),
		DurationMonths: 12,
		Purpose:        "Fonds de roulement",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.CreditPending, app.Status)
	assert.Equal(t, client.SFDID, saved.SFDID)
	assert.Equal(t, actor.UserID, saved.CreatedBy)
	assert.NotEmpty(t, saved.ApplicationID)
}

func TestSubmitApplication_RequiresVerifiedKYC(t *testing.T) {
	creditRepo := new(MockCreditRepository)
	clientRepo := new(MockClientReader)
	svc := services.NewCreditService(creditRepo, clientRepo)

	actor := sfdAdminActor("sfd-1")
	client := testClient("sfd-1")
	client.KYCStatus = domain.KYCPending
	clientRepo.FindClientByIDFn = func(ctx context.Context, clientID string) (*domain.Client, error) {
		return client, nil
	}

	_, err := svc.SubmitApplication(context.Background(), actor, dto.CreateCreditApplicationRequest{
		ClientID:       client.ClientID,
		Amount:         decimal.NewFromInt(1000),
		DurationMonths: 6,
		Purpose:        "Test",
	})

	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestApproveApplication_DisbursesLoan(t *testing.T) {
	creditRepo := new(MockCreditRepository)
	clientRepo := new(MockClientReader)
	svc := services.NewCreditService(creditRepo, clientRepo)

	actor := superAdminActor()
	app := pendingApplication("sfd-1")
	creditRepo.FindCreditApplicationByIDFn = func(ctx context.Context, applicationID string) (*domain.CreditApplication, error) {
		return app, nil
	}

	var disbursed domain.Transaction
	var decided domain.CreditApplication
	creditRepo.ApproveAndDisburseFn = func(ctx context.Context, application domain.CreditApplication, disbursement domain.Transaction, audit domain.AuditLogEvent, notification *domain.Notification) (*domain.Transaction, error) {
		decided = application
		disbursed = disbursement
		saved := disbursement
		saved.BalanceAfter = disbursement.Amount
		return &saved, nil
	}

	result, err := svc.ApproveApplication(context.Background(), actor, app.ApplicationID, dto.DecideCreditRequest{Comment: "Dossier complet"})

	require.NoError(t, err)
	assert.Equal(t, domain.CreditApproved, result.Status)
	assert.Equal(t, actor.UserID, result.ReviewedBy)

	assert.Equal(t, domain.CreditApproved, decided.Status)
	assert.Equal(t, domain.LoanDisbursement, disbursed.Type)
	assert.Equal(t, app.ApplicationID, disbursed.ReferenceID)
	assert.True(t, disbursed.Amount.Equal(app.Amount), "disbursement credits the full principal")
}

func TestApproveApplication_AlreadyDecided(t *testing.T) {
	creditRepo := new(MockCreditRepository)
	clientRepo := new(MockClientReader)
	svc := services.NewCreditService(creditRepo, clientRepo)

	app := pendingApplication("sfd-1")
	app.Status = domain.CreditRejected
	creditRepo.FindCreditApplicationByIDFn = func(ctx context.Context, applicationID string) (*domain.CreditApplication, error) {
		return app, nil
	}

	_, err := svc.ApproveApplication(context.Background(), superAdminActor(), app.ApplicationID, dto.DecideCreditRequest{})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestApproveApplication_SFDAdminForbidden(t *testing.T) {
	creditRepo := new(MockCreditRepository)
	clientRepo := new(MockClientReader)
	svc := services.NewCreditService(creditRepo, clientRepo)

	_, err := svc.ApproveApplication(context.Background(), sfdAdminActor("sfd-1"), uuid.NewString(), dto.DecideCreditRequest{})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestRejectApplication(t *testing.T) {
	creditRepo := new(MockCreditRepository)
	clientRepo := new(MockClientReader)
	svc := services.NewCreditService(creditRepo, clientRepo)

	actor := superAdminActor()
	app := pendingApplication("sfd-1")
	creditRepo.FindCreditApplicationByIDFn = func(ctx context.Context, applicationID string) (*domain.CreditApplication, error) {
		return app, nil
	}

	var notified *domain.Notification
	creditRepo.RejectFn = func(ctx context.Context, application domain.CreditApplication, audit domain.AuditLogEvent, notification *domain.Notification) error {
		notified = notification
		return nil
	}

	result, err := svc.RejectApplication(context.Background(), actor, app.ApplicationID, dto.DecideCreditRequest{Comment: "Garanties insuffisantes"})

	require.NoError(t, err)
	assert.Equal(t, domain.CreditRejected, result.Status)
	assert.Equal(t, "Garanties insuffisantes", result.ReviewComment)
	require.NotNil(t, notified)
	assert.Equal(t, domain.NotifCreditDecision, notified.Type)
	assert.Equal(t, "Crédit rejeté", notified.Title)
}
