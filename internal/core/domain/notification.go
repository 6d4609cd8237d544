package domain

import "time"

// NotificationType tags the event that produced a notification.
type NotificationType string

const (
	NotifTransaction    NotificationType = "transaction"
	NotifCreditDecision NotificationType = "credit_decision"
	NotifSubsidy        NotificationType = "subsidy"
	NotifSystem         NotificationType = "system"
)

// Notification is an in-app message for back-office users. Titles and bodies
// are written in French, the platform's user-facing language.
type Notification struct {
	NotificationID string           `json:"notificationID"` // Primary Key (UUID)
	RecipientRole  Role             `json:"recipientRole"`  // Delivered to every user holding the role
	SFDID          string           `json:"sfdID"`          // "" for platform-wide notifications
	Title          string           `json:"title"`
	Body           string           `json:"body"`
	Type           NotificationType `json:"type"`
	Read           bool             `json:"read"`
	CreatedAt      time.Time        `json:"createdAt"`
}
