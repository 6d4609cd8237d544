package dto

import (
	"time"

	"github.com/ICON-SARL/ngnasoro-sub006/internal/core/domain"
)

// NotificationResponse defines the data returned for a notification.
// Mirrors domain.Notification.
type NotificationResponse struct {
	NotificationID string                  `json:"notificationID"`
	RecipientRole  domain.Role             `json:"recipientRole"`
	SFDID          string                  `json:"sfdID,omitempty"`
	Title          string                  `json:"title"`
	Body           string                  `json:"body"`
	Type           domain.NotificationType `json:"type"`
	Read           bool                    `json:"read"`
	CreatedAt      time.Time               `json:"createdAt"`
}

// ToNotificationResponse converts a domain.Notification to its response DTO
func ToNotificationResponse(n *domain.Notification) NotificationResponse {
	return NotificationResponse{
		NotificationID: n.NotificationID,
		RecipientRole:  n.RecipientRole,
		SFDID:          n.SFDID,
		Title:          n.Title,
		Body:           n.Body,
		Type:           n.Type,
		Read:           n.Read,
		CreatedAt:      n.CreatedAt,
	}
}

// ListNotificationsParams defines query parameters for listing notifications.
type ListNotificationsParams struct {
	UnreadOnly bool `form:"unreadOnly"`
	Limit      int  `form:"limit,default=20"`
	Offset     int  `form:"offset,default=0"`
}

// ListNotificationsResponse wraps the list of notifications.
type ListNotificationsResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
}

// ToListNotificationsResponse converts domain notifications to the response DTO
func ToListNotificationsResponse(notifications []domain.Notification) ListNotificationsResponse {
	res := make([]NotificationResponse, len(notifications))
	for i, n := range notifications {
		res[i] = ToNotificationResponse(&n)
	}
	return ListNotificationsResponse{Notifications: res}
}
