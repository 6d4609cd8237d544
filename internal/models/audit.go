package models

import "time"

// AuditLogEvent is the database representation of an audit row.
// Details is stored as jsonb and marshalled by the repository.
type AuditLogEvent struct {
	EventID   string    `db:"event_id"`
	Category  string    `db:"category"`
	Severity  string    `db:"severity"`
	Status    string    `db:"status"`
	Action    string    `db:"action"`
	ActorID   string    `db:"actor_id"`
	TargetID  string    `db:"target_id"`
	SFDID     string    `db:"sfd_id"`
	Details   []byte    `db:"details"`
	CreatedAt time.Time `db:"created_at"`
}
