package repositories

import (
	"context"

	"github.com/ICON-SARL/ngnasoro-sub006/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// NotificationWriter defines write operations for notifications
type NotificationWriter interface {
	// SaveNotification persists a notification.
	SaveNotification(ctx context.Context, notification domain.Notification) error

	// SaveNotificationInTx persists a notification within an existing
	// database transaction.
	SaveNotificationInTx(ctx context.Context, tx pgx.Tx, notification domain.Notification) error

	// MarkNotificationRead marks a notification as read. The role and SFD
	// confine the update to notifications the caller can see.
	MarkNotificationRead(ctx context.Context, notificationID string, role domain.Role, sfdID string) error
}

// NotificationReader defines read operations for notifications
type NotificationReader interface {
	// ListNotifications retrieves a paginated list of notifications for a
	// role within an SFD, newest first.
	ListNotifications(ctx context.Context, role domain.Role, sfdID string, unreadOnly bool, limit int, offset int) ([]domain.Notification, error)
}

// NotificationRepositoryFacade combines all notification-related repository interfaces
type NotificationRepositoryFacade interface {
	NotificationWriter
	NotificationReader
}
