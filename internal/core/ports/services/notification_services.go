package services

import (
	"context"

	"github.com/ICON-SARL/ngnasoro-sub006/internal/core/domain"
)

// NotificationSvcFacade defines operations over in-app notifications
type NotificationSvcFacade interface {
	// Notify persists a notification for a role within an SFD.
	Notify(ctx context.Context, notification domain.Notification) error

	// ListNotifications retrieves notifications addressed to the actor's role.
	ListNotifications(ctx context.Context, actor domain.AuthContext, unreadOnly bool, limit, offset int) ([]domain.Notification, error)

	// MarkRead marks a notification as read.
	MarkRead(ctx context.Context, actor domain.AuthContext, notificationID string) error
}
