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

// --- Mock SubsidyRepository (based on SubsidyService usage) ---
type MockSubsidyRepository struct {
	mock.Mock
	FindSubsidyRequestByIDFn   func(ctx context.Context, requestID string) (*domain.SubsidyRequest, error)
	SaveSubsidyRequestFn       func(ctx context.Context, request domain.SubsidyRequest) error
	ApproveAndCreditFn         func(ctx context.Context, request domain.SubsidyRequest, audit domain.AuditLogEvent, notification *domain.Notification) error
	DecideFn                   func(ctx context.Context, request domain.SubsidyRequest, audit domain.AuditLogEvent, notification *domain.Notification) error
	FindFundRequestByIDFn      func(ctx context.Context, requestID string) (*domain.FundRequest, error)
	DecideFundRequestFn        func(ctx context.Context, request domain.FundRequest, audit domain.AuditLogEvent, notification *domain.Notification) error
	ListStaleSubsidyRequestsFn func(ctx context.Context, cutoff time.Time) ([]domain.SubsidyRequest, error)
	ListStaleFundRequestsFn    func(ctx context.Context, cutoff time.Time) ([]domain.FundRequest, error)
}

func (m *MockSubsidyRepository) FindSubsidyRequestByID(ctx context.Context, requestID string) (*domain.SubsidyRequest, error) {
	if m.FindSubsidyRequestByIDFn != nil {
		return m.FindSubsidyRequestByIDFn(ctx, requestID)
	}
	args := m.Called(ctx, requestID)
	var request *domain.SubsidyRequest
	if args.Get(0) != nil {
		request = args.Get(0).(*domain.SubsidyRequest)
	}
	return request, args.Error(1)
}

func (m *MockSubsidyRepository) ListSubsidyRequests(ctx context.Context, sfdID string, status *domain.RequestStatus, limit, offset int) ([]domain.SubsidyRequest, error) {
	args := m.Called(ctx, sfdID, status, limit, offset)
	var requests []domain.SubsidyRequest
	if args.Get(0) != nil {
		requests = args.Get(0).([]domain.SubsidyRequest)
	}
	return requests, args.Error(1)
}

func (m *MockSubsidyRepository) ListStaleSubsidyRequests(ctx context.Context, cutoff time.Time) ([]domain.SubsidyRequest, error) {
	if m.ListStaleSubsidyRequestsFn != nil {
		return m.ListStaleSubsidyRequestsFn(ctx, cutoff)
	}
	args := m.Called(ctx, cutoff)
	var requests []domain.SubsidyRequest
	if args.Get(0) != nil {
		requests = args.Get(0).([]domain.SubsidyRequest)
	}
	return requests, args.Error(1)
}

func (m *MockSubsidyRepository) SaveSubsidyRequest(ctx context.Context, request domain.SubsidyRequest) error {
	if m.SaveSubsidyRequestFn != nil {
		return m.SaveSubsidyRequestFn(ctx, request)
	}
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockSubsidyRepository) ApproveAndCredit(ctx context.Context, request domain.SubsidyRequest, audit domain.AuditLogEvent, notification *domain.Notification) error {
	if m.ApproveAndCreditFn != nil {
		return m.ApproveAndCreditFn(ctx, request, audit, notification)
	}
	args := m.Called(ctx, request, audit, notification)
	return args.Error(0)
}

func (m *MockSubsidyRepository) Decide(ctx context.Context, request domain.SubsidyRequest, audit domain.AuditLogEvent, notification *domain.Notification) error {
	if m.DecideFn != nil {
		return m.DecideFn(ctx, request, audit, notification)
	}
	args := m.Called(ctx, request, audit, notification)
	return args.Error(0)
}

func (m *MockSubsidyRepository) FindFundRequestByID(ctx context.Context, requestID string) (*domain.FundRequest, error) {
	if m.FindFundRequestByIDFn != nil {
		return m.FindFundRequestByIDFn(ctx, requestID)
	}
	args := m.Called(ctx, requestID)
	var request *domain.FundRequest
	if args.Get(0) != nil {
		request = args.Get(0).(*domain.FundRequest)
	}
	return request, args.Error(1)
}

func (m *MockSubsidyRepository) ListFundRequests(ctx context.Context, sfdID string, status *domain.RequestStatus, limit, offset int) ([]domain.FundRequest, error) {
	args := m.Called(ctx, sfdID, status, limit, offset)
	var requests []domain.FundRequest
	if args.Get(0) != nil {
		requests = args.Get(0).([]domain.FundRequest)
	}
	return requests, args.Error(1)
}

func (m *MockSubsidyRepository) ListStaleFundRequests(ctx context.Context, cutoff time.Time) ([]domain.FundRequest, error) {
	if m.ListStaleFundRequestsFn != nil {
		return m.ListStaleFundRequestsFn(ctx, cutoff)
	}
	args := m.Called(ctx, cutoff)
	var requests []domain.FundRequest
	if args.Get(0) != nil {
		requests = args.Get(0).([]domain.FundRequest)
	}
	return requests, args.Error(1)
}

func (m *MockSubsidyRepository) SaveFundRequest(ctx context.Context, request domain.FundRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockSubsidyRepository) DecideFundRequest(ctx context.Context, request domain.FundRequest, audit domain.AuditLogEvent, notification *domain.Notification) error {
	if m.DecideFundRequestFn != nil {
		return m.DecideFundRequestFn(ctx, request, audit, notification)
	}
	args := m.Called(ctx, request, audit, notification)
	return args.Error(0)
}

// --- Mock NotificationWriter ---
type MockNotificationWriter struct {
	mock.Mock
	SaveNotificationFn func(ctx context.Context, notification domain.Notification) error
}

func (m *MockNotificationWriter) SaveNotification(ctx context.Context, notification domain.Notification) error {
	if m.SaveNotificationFn != nil {
		return m.SaveNotificationFn(ctx, notification)
	}
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationWriter) SaveNotificationInTx(ctx context.Context, tx pgx.Tx, notification domain.Notification) error {
	args := m.Called(ctx, tx, notification)
	return args.Error(0)
}

func (m *MockNotificationWriter) MarkNotificationRead(ctx context.Context, notificationID string, role domain.Role, sfdID string) error {
	args := m.Called(ctx, notificationID, role, sfdID)
	return args.Error(0)
}

func pendingSubsidyRequest(sfdID string) *domain.SubsidyRequest {
	return &domain.SubsidyRequest{
		RequestID: uuid.NewString(),
		SFDID:     sfdID,
		Amount:    decimal.NewFromInt(5000000),
		Purpose:   "Extension du portefeuille agricole",
		Priority:  domain.PriorityNormal,
		Status:    domain.RequestPending,
	}
}

func TestSubmitSubsidyRequest_DefaultsPriority(t *testing.T) {
	subsidyRepo := new(MockSubsidyRepository)
	notifRepo := new(MockNotificationWriter)
	svc := services.NewSubsidyService(subsidyRepo, notifRepo)

	actor := sfdAdminActor("sfd-1")
	var saved domain.SubsidyRequest
	subsidyRepo.SaveSubsidyRequestFn = func(ctx context.Context, request domain.SubsidyRequest) error {
		saved = request
		return nil
	}

	request, err := svc.SubmitSubsidyRequest(context.Background(), actor, dto.CreateSubsidyRequestRequest{
		Amount:  decimal.NewFromInt(5000000),
		Purpose: "Extension du portefeuille agricole",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.PriorityNormal, request.Priority)
	assert.Equal(t, domain.RequestPending, saved.Status)
	assert.Equal(t, actor.SFDID, saved.SFDID)
}

func TestApproveSubsidyRequest_CreditsBalance(t *testing.T) {
	subsidyRepo := new(MockSubsidyRepository)
	notifRepo := new(MockNotificationWriter)
	svc := services.NewSubsidyService(subsidyRepo, notifRepo)

	actor := superAdminActor()
	request := pendingSubsidyRequest("sfd-1")
	subsidyRepo.FindSubsidyRequestByIDFn = func(ctx context.Context, requestID string) (*domain.SubsidyRequest, error) {
		return request, nil
	}

	var approved domain.SubsidyRequest
	var notified *domain.Notification
	subsidyRepo.ApproveAndCreditFn = func(ctx context.Context, r domain.SubsidyRequest, audit domain.AuditLogEvent, notification *domain.Notification) error {
		approved = r
		notified = notification
		return nil
	}

	result, err := svc.ApproveSubsidyRequest(context.Background(), actor, request.RequestID, dto.DecideRequestRequest{Comment: "Budget disponible"})

	require.NoError(t, err)
	assert.Equal(t, domain.RequestApproved, result.Status)
	assert.Equal(t, actor.UserID, result.DecidedBy)
	assert.Equal(t, domain.RequestApproved, approved.Status)
	require.NotNil(t, notified)
	assert.Equal(t, domain.RoleSFDAdmin, notified.RecipientRole)
	assert.Equal(t, "sfd-1", notified.SFDID)
}

func TestApproveSubsidyRequest_AlreadyDecided(t *testing.T) {
	subsidyRepo := new(MockSubsidyRepository)
	notifRepo := new(MockNotificationWriter)
	svc := services.NewSubsidyService(subsidyRepo, notifRepo)

	request := pendingSubsidyRequest("sfd-1")
	request.Status = domain.RequestApproved
	subsidyRepo.FindSubsidyRequestByIDFn = func(ctx context.Context, requestID string) (*domain.SubsidyRequest, error) {
		return request, nil
	}

	_, err := svc.ApproveSubsidyRequest(context.Background(), superAdminActor(), request.RequestID, dto.DecideRequestRequest{})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestSubmitSubsidyRequest_SuperAdminForbidden(t *testing.T) {
	subsidyRepo := new(MockSubsidyRepository)
	notifRepo := new(MockNotificationWriter)
	svc := services.NewSubsidyService(subsidyRepo, notifRepo)

	_, err := svc.SubmitSubsidyRequest(context.Background(), superAdminActor(), dto.CreateSubsidyRequestRequest{
		Amount:  decimal.NewFromInt(1000),
		Purpose: "Test",
	})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestCompleteFundRequest_RequiresApprovedState(t *testing.T) {
	subsidyRepo := new(MockSubsidyRepository)
	notifRepo := new(MockNotificationWriter)
	svc := services.NewSubsidyService(subsidyRepo, notifRepo)

	request := &domain.FundRequest{
		RequestID: uuid.NewString(),
		SFDID:     "sfd-1",
		Amount:    decimal.NewFromInt(100000),
		Status:    domain.RequestPending,
	}
	subsidyRepo.FindFundRequestByIDFn = func(ctx context.Context, requestID string) (*domain.FundRequest, error) {
		return request, nil
	}

	_, err := svc.CompleteFundRequest(context.Background(), superAdminActor(), request.RequestID)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestCompleteFundRequest_Success(t *testing.T) {
	subsidyRepo := new(MockSubsidyRepository)
	notifRepo := new(MockNotificationWriter)
	svc := services.NewSubsidyService(subsidyRepo, notifRepo)

	request := &domain.FundRequest{
		RequestID: uuid.NewString(),
		SFDID:     "sfd-1",
		Amount:    decimal.NewFromInt(100000),
		Status:    domain.RequestApproved,
	}
	subsidyRepo.FindFundRequestByIDFn = func(ctx context.Context, requestID string) (*domain.FundRequest, error) {
		return request, nil
	}
	var decided domain.FundRequest
	subsidyRepo.DecideFundRequestFn = func(ctx context.Context, r domain.FundRequest, audit domain.AuditLogEvent, notification *domain.Notification) error {
		decided = r
		return nil
	}

	result, err := svc.CompleteFundRequest(context.Background(), superAdminActor(), request.RequestID)

	require.NoError(t, err)
	assert.Equal(t, domain.RequestCompleted, result.Status)
	assert.Equal(t, domain.RequestCompleted, decided.Status)
}

func TestSweepStaleRequests_NotifiesReviewers(t *testing.T) {
	subsidyRepo := new(MockSubsidyRepository)
	notifRepo := new(MockNotificationWriter)
	svc := services.NewSubsidyService(subsidyRepo, notifRepo)

	old := time.Now().UTC().Add(-45 * 24 * time.Hour)
	subsidyRepo.ListStaleSubsidyRequestsFn = func(ctx context.Context, cutoff time.Time) ([]domain.SubsidyRequest, error) {
		r := pendingSubsidyRequest("sfd-1")
		r.CreatedAt = old
		return []domain.SubsidyRequest{*r}, nil
	}
	subsidyRepo.ListStaleFundRequestsFn = func(ctx context.Context, cutoff time.Time) ([]domain.FundRequest, error) {
		return []domain.FundRequest{{
			RequestID:   uuid.NewString(),
			SFDID:       "sfd-2",
			Amount:      decimal.NewFromInt(300000),
			Status:      domain.RequestPending,
			AuditFields: domain.AuditFields{CreatedAt: old},
		}}, nil
	}

	var notifications []domain.Notification
	notifRepo.SaveNotificationFn = func(ctx context.Context, notification domain.Notification) error {
		notifications = append(notifications, notification)
		return nil
	}

	flagged, err := svc.SweepStaleRequests(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, flagged)
	require.Len(t, notifications, 2)
	for _, n := range notifications {
		assert.Equal(t, domain.RoleSuperAdmin, n.RecipientRole)
		assert.Equal(t, domain.NotifSystem, n.Type)
	}
}
