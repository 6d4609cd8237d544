package pgsql

import (
	"context"

	"github.com/ICON-SARL/ngnasoro-sub006/internal/apperrors"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/core/domain"
	portsrepo "github.com/ICON-SARL/ngnasoro-sub006/internal/core/ports/repositories"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/models"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const notificationColumns = `notification_id, recipient_role, sfd_id, title, body, type, read, created_at`

type PgxNotificationRepository struct {
	BaseRepository
}

// newPgxNotificationRepository creates a new repository for notifications.
func newPgxNotificationRepository(pool *pgxpool.Pool) portsrepo.NotificationRepositoryFacade {
	return &PgxNotificationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxNotificationRepository implements portsrepo.NotificationRepositoryFacade
var _ portsrepo.NotificationRepositoryFacade = (*PgxNotificationRepository)(nil)

const insertNotificationQuery = `
	INSERT INTO notifications (` + notificationColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
`

func notificationInsertArgs(m models.Notification) []interface{} {
	return []interface{}{
		m.NotificationID,
		m.RecipientRole,
		m.SFDID,
		m.Title,
		m.Body,
		m.Type,
		m.Read,
		m.CreatedAt,
	}
}

// SaveNotification persists a notification.
func (r *PgxNotificationRepository) SaveNotification(ctx context.Context, notification domain.Notification) error {
	m := mapping.ToModelNotification(notification)
	if _, err := r.Pool.Exec(ctx, insertNotificationQuery, notificationInsertArgs(m)...); err != nil {
		return apperrors.NewAppError(500, "failed to insert notification "+m.NotificationID, err)
	}
	return nil
}

// SaveNotificationInTx persists a notification within an existing transaction.
func (r *PgxNotificationRepository) SaveNotificationInTx(ctx context.Context, tx pgx.Tx, notification domain.Notification) error {
	m := mapping.ToModelNotification(notification)
	if _, err := tx.Exec(ctx, insertNotificationQuery, notificationInsertArgs(m)...); err != nil {
		return apperrors.NewAppError(500, "failed to insert notification "+m.NotificationID, err)
	}
	return nil
}

// MarkNotificationRead marks a notification as read. The update is confined
// to the caller's role and SFD, matching the visibility rule in
// ListNotifications, so a notification outside that scope reads as not found.
func (r *PgxNotificationRepository) MarkNotificationRead(ctx context.Context, notificationID string, role domain.Role, sfdID string) error {
	query := `
		UPDATE notifications SET read = TRUE
		WHERE notification_id = $1 AND recipient_role = $2 AND (sfd_id = $3 OR sfd_id = '');
	`
	tag, err := r.Pool.Exec(ctx, query, notificationID, string(role), sfdID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark notification "+notificationID+" read", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("notification " + notificationID + " not found")
	}
	return nil
}

// ListNotifications retrieves notifications for a role within an SFD, newest first.
func (r *PgxNotificationRepository) ListNotifications(ctx context.Context, role domain.Role, sfdID string, unreadOnly bool, limit int, offset int) ([]domain.Notification, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT ` + notificationColumns + `
		FROM notifications
		WHERE recipient_role = $1 AND (sfd_id = $2 OR sfd_id = '')
	`
	if unreadOnly {
		query += ` AND read = FALSE`
	}
	query += ` ORDER BY created_at DESC LIMIT $3 OFFSET $4;`

	rows, err := r.Pool.Query(ctx, query, string(role), sfdID, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query notifications", err)
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var m models.Notification
		err := rows.Scan(
			&m.NotificationID,
			&m.RecipientRole,
			&m.SFDID,
			&m.Title,
			&m.Body,
			&m.Type,
			&m.Read,
			&m.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan notification row", err)
		}
		notifications = append(notifications, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating notification rows", err)
	}

	return mapping.ToDomainNotificationSlice(notifications), nil
}
