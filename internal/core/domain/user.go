package domain

import "time"

// Role is a platform role carried in the JWT and stored on the user row.
type Role string

const (
	RoleSuperAdmin Role = "super_admin" // MEREF supervision
	RoleSFDAdmin   Role = "sfd_admin"   // Institution administrator
	RoleCashier    Role = "cashier"     // Teller operating client accounts
	RoleClient     Role = "client"      // Mobile/web end customer
)

// Capability is a fine-grained permission derived from a role. Handlers and
// services check capabilities, never roles, so the mapping below is the single
// place authorization policy lives.
type Capability string

const (
	CapLedgerRead     Capability = "ledger:read"
	CapLedgerWrite    Capability = "ledger:write"
	CapLedgerFlag     Capability = "ledger:flag"
	CapCreditApply    Capability = "credit:apply"
	CapCreditReview   Capability = "credit:review"
	CapSubsidyRequest Capability = "subsidy:request"
	CapSubsidyDecide  Capability = "subsidy:decide"
	CapClientManage   Capability = "client:manage"
	CapKYCVerify      Capability = "kyc:verify"
	CapSFDManage      Capability = "sfd:manage"
	CapUserManage     Capability = "user:manage"
	CapAuditRead      Capability = "audit:read"
	CapReportRead     Capability = "report:read"
)

var roleCapabilities = map[Role][]Capability{
	RoleSuperAdmin: {
		CapLedgerRead, CapLedgerFlag,
		CapCreditReview,
		CapSubsidyDecide,
		CapKYCVerify,
		CapSFDManage, CapUserManage,
		CapAuditRead, CapReportRead,
	},
	RoleSFDAdmin: {
		CapLedgerRead, CapLedgerWrite,
		CapCreditApply,
		CapSubsidyRequest,
		CapClientManage, CapKYCVerify,
		CapAuditRead, CapReportRead,
	},
	RoleCashier: {
		CapLedgerRead, CapLedgerWrite,
	},
	RoleClient: {
		CapLedgerRead,
	},
}

// Capabilities returns the capability set for the role. Unknown roles get none.
func (r Role) Capabilities() []Capability {
	return roleCapabilities[r]
}

// Can reports whether the role grants the capability.
func (r Role) Can(c Capability) bool {
	for _, have := range roleCapabilities[r] {
		if have == c {
			return true
		}
	}
	return false
}

// IsValid reports whether the role is one of the defined platform roles.
func (r Role) IsValid() bool {
	_, ok := roleCapabilities[r]
	return ok
}

// AuthContext is the per-request authorization context resolved once from the
// JWT by the auth middleware and passed down explicitly.
type AuthContext struct {
	UserID   string
	Role     Role
	SFDID    string // "" for super-admins, who are not scoped to an institution
	ClientID string // set only for client-role logins, scopes ledger reads to the caller's own record
}

// Can reports whether the authenticated caller holds the capability.
func (a AuthContext) Can(c Capability) bool {
	return a.Role.Can(c)
}

// User represents a staff member or client login of the platform.
type User struct {
	UserID       string `json:"userID"` // Primary Key (UUID)
	Email        string `json:"email"`
	FullName     string `json:"fullName"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`
	SFDID        string `json:"sfdID"`              // "" for super-admins
	ClientID     string `json:"clientID,omitempty"` // links a client-role login to its client record
	IsActive     bool   `json:"isActive"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Soft delete
}
