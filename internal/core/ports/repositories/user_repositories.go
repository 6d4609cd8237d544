package repositories

import (
	"context"
	"time"

	"github.com/ICON-SARL/ngnasoro-sub006/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by their email address.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUsers retrieves a paginated list of users, optionally filtered by SFD.
	FindUsers(ctx context.Context, sfdID string, limit int, offset int) ([]domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUser updates an existing user's details.
	UpdateUser(ctx context.Context, user domain.User) error
}

// RoleAssigner defines the role mutation path. The role change and its
// audit row commit in a single database transaction.
type RoleAssigner interface {
	// AssignRole updates the user's role and records the audit event atomically.
	AssignRole(ctx context.Context, userID string, role domain.Role, audit domain.AuditLogEvent, updatedBy string, now time.Time) error
}

// UserLifecycleManager defines operations for managing user lifecycle
type UserLifecycleManager interface {
	// MarkUserDeleted marks a user as deleted (soft delete).
	MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deletedBy string) error
}

// UserRepositoryFacade combines all user-related repository interfaces
// This is a facade for clients that need access to all operations
type UserRepositoryFacade interface {
	UserReader
	UserWriter
	RoleAssigner
	UserLifecycleManager
}
