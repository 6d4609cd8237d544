package services_test

import (
	"context"
	"testing"

	"github.com/ICON-SARL/ngnasoro-sub006/internal/apperrors"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/core/domain"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/core/services"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mock NotificationRepository ---
type MockNotificationRepository struct {
	mock.Mock
	MarkNotificationReadFn func(ctx context.Context, notificationID string, role domain.Role, sfdID string) error
}

func (m *MockNotificationRepository) SaveNotification(ctx context.Context, notification domain.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) SaveNotificationInTx(ctx context.Context, tx pgx.Tx, notification domain.Notification) error {
	args := m.Called(ctx, tx, notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkNotificationRead(ctx context.Context, notificationID string, role domain.Role, sfdID string) error {
	if m.MarkNotificationReadFn != nil {
		return m.MarkNotificationReadFn(ctx, notificationID, role, sfdID)
	}
	args := m.Called(ctx, notificationID, role, sfdID)
	return args.Error(0)
}

func (m *MockNotificationRepository) ListNotifications(ctx context.Context, role domain.Role, sfdID string, unreadOnly bool, limit int, offset int) ([]domain.Notification, error) {
	args := m.Called(ctx, role, sfdID, unreadOnly, limit, offset)
	var notifications []domain.Notification
	if args.Get(0) != nil {
		notifications = args.Get(0).([]domain.Notification)
	}
	return notifications, args.Error(1)
}

func TestMarkRead_ScopedToActor(t *testing.T) {
	notifRepo := new(MockNotificationRepository)
	svc := services.NewNotificationService(notifRepo)

	actor := cashierActor("sfd-1")
	notificationID := uuid.NewString()

	var gotRole domain.Role
	var gotSFD string
	notifRepo.MarkNotificationReadFn = func(ctx context.Context, id string, role domain.Role, sfdID string) error {
		gotRole = role
		gotSFD = sfdID
		return nil
	}

	require.NoError(t, svc.MarkRead(context.Background(), actor, notificationID))
	assert.Equal(t, domain.RoleCashier, gotRole)
	assert.Equal(t, "sfd-1", gotSFD)
}

func TestMarkRead_OutsideScopeReadsAsNotFound(t *testing.T) {
	notifRepo := new(MockNotificationRepository)
	svc := services.NewNotificationService(notifRepo)

	// The repository matches zero rows for a notification addressed to
	// another role or institution.
	notifRepo.MarkNotificationReadFn = func(ctx context.Context, id string, role domain.Role, sfdID string) error {
		return apperrors.NewNotFoundError("notification " + id + " not found")
	}

	err := svc.MarkRead(context.Background(), cashierActor("sfd-1"), uuid.NewString())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestMarkRead_RejectsEmptyID(t *testing.T) {
	notifRepo := new(MockNotificationRepository)
	svc := services.NewNotificationService(notifRepo)

	err := svc.MarkRead(context.Background(), cashierActor("sfd-1"), "")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
