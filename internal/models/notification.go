package models

import "time"

// Notification is the database representation of an in-app notification.
type Notification struct {
	NotificationID string    `db:"notification_id"`
	RecipientRole  string    `db:"recipient_role"`
	SFDID          string    `db:"sfd_id"`
	Title          string    `db:"title"`
	Body           string    `db:"body"`
	Type           string    `db:"type"`
	Read           bool      `db:"read"`
	CreatedAt      time.Time `db:"created_at"`
}
