package dto

import (
	"time"

	"github.com/ICON-SARL/ngnasoro-sub006/internal/core/domain"
)

// AuditEventResponse defines the data returned for an audit event.
// Mirrors domain.AuditLogEvent.
type AuditEventResponse struct {
	EventID   string               `json:"eventID"`
	Category  domain.AuditCategory `json:"category"`
	Severity  domain.AuditSeverity `json:"severity"`
	Status    domain.AuditStatus   `json:"status"`
	Action    string               `json:"action"`
	ActorID   string               `json:"actorID"`
	TargetID  string               `json:"targetID,omitempty"`
	SFDID     string               `json:"sfdID,omitempty"`
	Details   map[string]any       `json:"details,omitempty"`
	CreatedAt time.Time            `json:"createdAt"`
}

// ToAuditEventResponse converts a domain.AuditLogEvent to its response DTO
func ToAuditEventResponse(e *domain.AuditLogEvent) AuditEventResponse {
	return AuditEventResponse{
		EventID:   e.EventID,
		Category:  e.Category,
		Severity:  e.Severity,
		Status:    e.Status,
		Action:    e.Action,
		ActorID:   e.ActorID,
		TargetID:  e.TargetID,
		SFDID:     e.SFDID,
		Details:   e.Details,
		CreatedAt: e.CreatedAt,
	}
}

// ListAuditEventsParams defines query parameters for listing audit events.
type ListAuditEventsParams struct {
	Category  string  `form:"category" binding:"omitempty,oneof=ledger credit subsidy kyc user sfd system"`
	Severity  string  `form:"severity" binding:"omitempty,oneof=info warning error critical"`
	Status    string  `form:"status" binding:"omitempty,oneof=success failure"`
	SFDID     string  `form:"sfdID"`
	From      string  `form:"from"` // RFC3339
	To        string  `form:"to"`   // RFC3339
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListAuditEventsResponse wraps the list of audit events with the
// pagination token for the next page.
type ListAuditEventsResponse struct {
	Events    []AuditEventResponse `json:"events"`
	NextToken *string              `json:"nextToken,omitempty"`
}

// ToListAuditEventsResponse converts domain audit events and a pagination
// token to the response DTO.
func ToListAuditEventsResponse(events []domain.AuditLogEvent, nextToken *string) ListAuditEventsResponse {
	res := make([]AuditEventResponse, len(events))
	for i, e := range events {
		res[i] = ToAuditEventResponse(&e)
	}
	return ListAuditEventsResponse{
		Events:    res,
		NextToken: nextToken,
	}
}
