package mapping

import (
	"github.com/ICON-SARL/ngnasoro-sub006/internal/core/domain"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/models"
)

// ToModelNotification converts a domain Notification to its model
func ToModelNotification(d domain.Notification) models.Notification {
	return models.Notification{
		NotificationID: d.NotificationID,
		RecipientRole:  string(d.RecipientRole),
		SFDID:          d.SFDID,
		Title:          d.Title,
		Body:           d.Body,
		Type:           string(d.Type),
		Read:           d.Read,
		CreatedAt:      d.CreatedAt,
	}
}

// ToDomainNotification converts a model Notification to its domain form
func ToDomainNotification(m models.Notification) domain.Notification {
	return domain.Notification{
		NotificationID: m.NotificationID,
		RecipientRole:  domain.Role(m.RecipientRole),
		SFDID:          m.SFDID,
		Title:          m.Title,
		Body:           m.Body,
		Type:           domain.NotificationType(m.Type),
		Read:           m.Read,
		CreatedAt:      m.CreatedAt,
	}
}

// ToDomainNotificationSlice converts model notifications to domain form
func ToDomainNotificationSlice(ms []models.Notification) []domain.Notification {
	ds := make([]domain.Notification, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainNotification(m)
	}
	return ds
}
