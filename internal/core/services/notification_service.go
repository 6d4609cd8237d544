package services

import (
	"context"

	"github.com/ICON-SARL/ngnasoro-sub006/internal/apperrors"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/core/domain"
	portsrepo "github.com/ICON-SARL/ngnasoro-sub006/internal/core/ports/repositories"
	"github.com/google/uuid"
)

type notificationService struct {
	notificationRepo portsrepo.NotificationRepositoryFacade
}

// NewNotificationService creates the service managing in-app notifications.
func NewNotificationService(notificationRepo portsrepo.NotificationRepositoryFacade) *notificationService {
	return &notificationService{notificationRepo: notificationRepo}
}

func (s *notificationService) Notify(ctx context.Context, notification domain.Notification) error {
	if notification.NotificationID == "" {
		notification.NotificationID = uuid.NewString()
	}
	return s.notificationRepo.SaveNotification(ctx, notification)
}

func (s *notificationService) ListNotifications(ctx context.Context, actor domain.AuthContext, unreadOnly bool, limit, offset int) ([]domain.Notification, error) {
	notifications, err := s.notificationRepo.ListNotifications(ctx, actor.Role, actor.SFDID, unreadOnly, limit, offset)
	if err != nil {
		return nil, err
	}
	if notifications == nil {
		notifications = []domain.Notification{}
	}
	return notifications, nil
}

func (s *notificationService) MarkRead(ctx context.Context, actor domain.AuthContext, notificationID string) error {
	if notificationID == "" {
		return apperrors.ErrValidation
	}
	return s.notificationRepo.MarkNotificationRead(ctx, notificationID, actor.Role, actor.SFDID)
}
