package mapping

import (
	"encoding/json"

	"github.com/ICON-SARL/ngnasoro-sub006/internal/core/domain"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/models"
)

// ToModelAuditLogEvent converts a domain audit event to its model,
// marshalling Details to jsonb bytes.
func ToModelAuditLogEvent(d domain.AuditLogEvent) (models.AuditLogEvent, error) {
	var details []byte
	if d.Details != nil {
		b, err := json.Marshal(d.Details)
		if err != nil {
			return models.AuditLogEvent{}, err
		}
		details = b
	}
	return models.AuditLogEvent{
		EventID:   d.EventID,
		Category:  string(d.Category),
		Severity:  string(d.Severity),
		Status:    string(d.Status),
		Action:    d.Action,
		ActorID:   d.ActorID,
		TargetID:  d.TargetID,
		SFDID:     d.SFDID,
		Details:   details,
		CreatedAt: d.CreatedAt,
	}, nil
}

// ToDomainAuditLogEvent converts a model audit event to its domain form,
// unmarshalling the jsonb Details payload.
func ToDomainAuditLogEvent(m models.AuditLogEvent) (domain.AuditLogEvent, error) {
	var details map[string]any
	if len(m.Details) > 0 {
		if err := json.Unmarshal(m.Details, &details); err != nil {
			return domain.AuditLogEvent{}, err
		}
	}
	return domain.AuditLogEvent{
		EventID:   m.EventID,
		Category:  domain.AuditCategory(m.Category),
		Severity:  domain.AuditSeverity(m.Severity),
		Status:    domain.AuditStatus(m.Status),
		Action:    m.Action,
		ActorID:   m.ActorID,
		TargetID:  m.TargetID,
		SFDID:     m.SFDID,
		Details:   details,
		CreatedAt: m.CreatedAt,
	}, nil
}

// ToDomainAuditLogEventSlice converts model audit events to domain form
func ToDomainAuditLogEventSlice(ms []models.AuditLogEvent) ([]domain.AuditLogEvent, error) {
	ds := make([]domain.AuditLogEvent, len(ms))
	for i, m := range ms {
		d, err := ToDomainAuditLogEvent(m)
		if err != nil {
			return nil, err
		}
		ds[i] = d
	}
	return ds, nil
}
