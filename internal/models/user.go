package models

import "time"

// User is the database representation of a platform login.
type User struct {
	UserID       string `db:"user_id"`
	Email        string `db:"email"`
	FullName     string `db:"full_name"`
	PasswordHash string `db:"password_hash"`
	Role         string `db:"role"`
	SFDID        string `db:"sfd_id"`
	ClientID     string `db:"client_id"`
	IsActive     bool   `db:"is_active"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
