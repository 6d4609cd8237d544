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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mock ClientRepository (full facade) ---
type MockClientRepository struct {
	mock.Mock
	FindClientByIDFn    func(ctx context.Context, clientID string) (*domain.Client, error)
	ListClientsBySFDFn  func(ctx context.Context, sfdID string, limit, offset int) ([]domain.Client, error)
	SaveClientFn        func(ctx context.Context, client domain.Client) error
	UpdateClientFn      func(ctx context.Context, client domain.Client) error
	DeactivateClientFn  func(ctx context.Context, clientID string, userID string, now time.Time) error
	UpdateKYCStatusFn   func(ctx context.Context, clientID string, status domain.KYCStatus, level int, audit domain.AuditLogEvent, updatedBy string, now time.Time) error
}

func (m *MockClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
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

func (m *MockClientRepository) ListClientsBySFD(ctx context.Context, sfdID string, limit, offset int) ([]domain.Client, error) {
	if m.ListClientsBySFDFn != nil {
		return m.ListClientsBySFDFn(ctx, sfdID, limit, offset)
	}
	args := m.Called(ctx, sfdID, limit, offset)
	var clients []domain.Client
	if args.Get(0) != nil {
		clients = args.Get(0).([]domain.Client)
	}
	return clients, args.Error(1)
}

func (m *MockClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	if m.SaveClientFn != nil {
		return m.SaveClientFn(ctx, client)
	}
	return m.Called(ctx, client).Error(0)
}

func (m *MockClientRepository) UpdateClient(ctx context.Context, client domain.Client) error {
	if m.UpdateClientFn != nil {
		return m.UpdateClientFn(ctx, client)
	}
	return m.Called(ctx, client).Error(0)
}

func (m *MockClientRepository) DeactivateClient(ctx context.Context, clientID string, userID string, now time.Time) error {
	if m.DeactivateClientFn != nil {
		return m.DeactivateClientFn(ctx, clientID, userID, now)
	}
	return m.Called(ctx, clientID, userID, now).Error(0)
}

func (m *MockClientRepository) UpdateKYCStatus(ctx context.Context, clientID string, status domain.KYCStatus, level int, audit domain.AuditLogEvent, updatedBy string, now time.Time) error {
	if m.UpdateKYCStatusFn != nil {
		return m.UpdateKYCStatusFn(ctx, clientID, status, level, audit, updatedBy, now)
	}
	return m.Called(ctx, clientID, status, level, audit, updatedBy, now).Error(0)
}

func TestCreateClient_RejectsSuspendedSFD(t *testing.T) {
	sfdID := uuid.NewString()
	actor := sfdAdminActor(sfdID)

	clientRepo := &MockClientRepository{}
	sfd := activeSFD(sfdID)
	sfd.Status = domain.SFDSuspended
	sfdRepo := &MockSFDReader{
		FindSFDByIDFn: func(ctx context.Context, id string) (*domain.SFD, error) {
			return sfd, nil
		},
	}

	svc := services.NewClientService(clientRepo, sfdRepo)
	_, err := svc.CreateClient(context.Background(), actor, dto.CreateClientRequest{
		SFDID:    sfdID,
		FullName: "Moussa Traoré",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	clientRepo.AssertNotCalled(t, "SaveClient")
}

func TestCreateClient_StartsUnverified(t *testing.T) {
	sfdID := uuid.NewString()
	actor := sfdAdminActor(sfdID)

	var saved domain.Client
	clientRepo := &MockClientRepository{
		SaveClientFn: func(ctx context.Context, client domain.Client) error {
			saved = client
			return nil
		},
	}
	sfdRepo := &MockSFDReader{
		FindSFDByIDFn: func(ctx context.Context, id string) (*domain.SFD, error) {
			return activeSFD(sfdID), nil
		},
	}

	svc := services.NewClientService(clientRepo, sfdRepo)
	created, err := svc.CreateClient(context.Background(), actor, dto.CreateClientRequest{
		SFDID:    sfdID,
		FullName: "Moussa Traoré",
		Phone:    "+223 76 12 34 56",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.KYCNone, saved.KYCStatus)
	assert.Equal(t, 0, saved.KYCLevel)
	assert.True(t, saved.IsActive)
	assert.Equal(t, actor.UserID, saved.CreatedBy)
	assert.Equal(t, created.ClientID, saved.ClientID)
}

func TestGetClientByID_ScopedToOwnSFD(t *testing.T) {
	actor := cashierActor(uuid.NewString())
	other := testClient(uuid.NewString())

	clientRepo := &MockClientRepository{
		FindClientByIDFn: func(ctx context.Context, clientID string) (*domain.Client, error) {
			return other, nil
		},
	}

	svc := services.NewClientService(clientRepo, &MockSFDReader{})
	_, err := svc.GetClientByID(context.Background(), actor, other.ClientID)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestVerifyKYC_CommitsStatusWithAudit(t *testing.T) {
	sfdID := uuid.NewString()
	actor := sfdAdminActor(sfdID)
	client := testClient(sfdID)
	client.KYCStatus = domain.KYCPending

	var gotStatus domain.KYCStatus
	var gotLevel int
	var gotAudit domain.AuditLogEvent
	clientRepo := &MockClientRepository{
		FindClientByIDFn: func(ctx context.Context, clientID string) (*domain.Client, error) {
			return client, nil
		},
		UpdateKYCStatusFn: func(ctx context.Context, clientID string, status domain.KYCStatus, level int, audit domain.AuditLogEvent, updatedBy string, now time.Time) error {
			gotStatus = status
			gotLevel = level
			gotAudit = audit
			return nil
		},
	}

	svc := services.NewClientService(clientRepo, &MockSFDReader{})
	updated, err := svc.VerifyKYC(context.Background(), actor, client.ClientID, dto.VerifyKYCRequest{
		Status: domain.KYCVerified,
		Level:  2,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.KYCVerified, gotStatus)
	assert.Equal(t, 2, gotLevel)
	assert.Equal(t, domain.AuditCategoryKYC, gotAudit.Category)
	assert.Equal(t, "kyc.verify", gotAudit.Action)
	assert.Equal(t, "pending", gotAudit.Details["previous_status"])
	assert.Equal(t, "verified", gotAudit.Details["new_status"])
	assert.Equal(t, domain.KYCVerified, updated.KYCStatus)
	assert.Equal(t, 2, updated.KYCLevel)
}

func TestVerifyKYC_RejectionResetsLevel(t *testing.T) {
	sfdID := uuid.NewString()
	actor := sfdAdminActor(sfdID)
	client := testClient(sfdID)
	client.KYCStatus = domain.KYCPending

	var gotLevel int
	clientRepo := &MockClientRepository{
		FindClientByIDFn: func(ctx context.Context, clientID string) (*domain.Client, error) {
			return client, nil
		},
		UpdateKYCStatusFn: func(ctx context.Context, clientID string, status domain.KYCStatus, level int, audit domain.AuditLogEvent, updatedBy string, now time.Time) error {
			gotLevel = level
			return nil
		},
	}

	svc := services.NewClientService(clientRepo, &MockSFDReader{})
	updated, err := svc.VerifyKYC(context.Background(), actor, client.ClientID, dto.VerifyKYCRequest{
		Status: domain.KYCRejected,
		Level:  2,
	})

	require.NoError(t, err)
	assert.Equal(t, 0, gotLevel)
	assert.Equal(t, 0, updated.KYCLevel)
}

func TestVerifyKYC_CashierForbidden(t *testing.T) {
	actor := cashierActor(uuid.NewString())

	clientRepo := &MockClientRepository{}
	svc := services.NewClientService(clientRepo, &MockSFDReader{})
	_, err := svc.VerifyKYC(context.Background(), actor, uuid.NewString(), dto.VerifyKYCRequest{
		Status: domain.KYCVerified,
		Level:  1,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	clientRepo.AssertNotCalled(t, "UpdateKYCStatus")
}
