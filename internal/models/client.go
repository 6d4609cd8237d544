package models

// Client is the database representation of an SFD customer.
type Client struct {
	ClientID  string `db:"client_id"`
	SFDID     string `db:"sfd_id"`
	FullName  string `db:"full_name"`
	Email     string `db:"email"`
	Phone     string `db:"phone"`
	KYCStatus string `db:"kyc_status"`
	KYCLevel  int    `db:"kyc_level"`
	IsActive  bool   `db:"is_active"`
	AuditFields
}
