package domain

// KYCStatus is the verification state of a client's identity documents.
type KYCStatus string

const (
	KYCNone     KYCStatus = "none"
	KYCPending  KYCStatus = "pending"
	KYCVerified KYCStatus = "verified"
	KYCRejected KYCStatus = "rejected"
)

// Client is a microfinance customer enrolled with an SFD.
type Client struct {
	ClientID  string    `json:"clientID"` // Primary Key (UUID)
	SFDID     string    `json:"sfdID"`    // Owning institution
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"` // Nullable in DB, "" when absent
	Phone     string    `json:"phone"`
	KYCStatus KYCStatus `json:"kycStatus"`
	KYCLevel  int       `json:"kycLevel"` // 0 = unverified, 1 = identity, 2 = full
	IsActive  bool      `json:"isActive"`
	AuditFields
}
