package domain

import "time"

// AuditCategory groups audit events by subsystem.
type AuditCategory string

const (
	AuditCategoryLedger  AuditCategory = "ledger"
	AuditCategoryCredit  AuditCategory = "credit"
	AuditCategorySubsidy AuditCategory = "subsidy"
	AuditCategoryKYC     AuditCategory = "kyc"
	AuditCategoryUser    AuditCategory = "user"
	AuditCategorySFD     AuditCategory = "sfd"
	AuditCategorySystem  AuditCategory = "system"
)

// AuditSeverity ranks the operational weight of an event.
type AuditSeverity string

const (
	SeverityInfo     AuditSeverity = "info"
	SeverityWarning  AuditSeverity = "warning"
	SeverityError    AuditSeverity = "error"
	SeverityCritical AuditSeverity = "critical"
)

// AuditStatus records whether the audited action succeeded.
type AuditStatus string

const (
	AuditSuccess AuditStatus = "success"
	AuditFailure AuditStatus = "failure"
)

// AuditLogEvent is an immutable record of a platform action. Events that
// accompany a state mutation are inserted in the same database transaction
// as the mutation itself.
type AuditLogEvent struct {
	EventID   string         `json:"eventID"` // Primary Key (UUID)
	Category  AuditCategory  `json:"category"`
	Severity  AuditSeverity  `json:"severity"`
	Status    AuditStatus    `json:"status"`
	Action    string         `json:"action"`   // e.g. "deposit", "assign_role"
	ActorID   string         `json:"actorID"`  // UserID performing the action
	TargetID  string         `json:"targetID"` // Entity acted upon
	SFDID     string         `json:"sfdID"`    // "" for platform-level events
	Details   map[string]any `json:"details,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

// AuditLogFilter narrows the audit read path. Zero values mean "no filter".
type AuditLogFilter struct {
	Category AuditCategory
	Severity AuditSeverity
	Status   AuditStatus
	SFDID    string
	From     time.Time
	To       time.Time
}
