package dto

import (
	"time"

	"github.com/ICON-SARL/ngnasoro-sub006/internal/core/domain"
)

// CreateUserRequest defines the data needed to create a portal user.
type CreateUserRequest struct {
	Email    string      `json:"email" binding:"required,email"`
	FullName string      `json:"fullName" binding:"required"`
	Password string      `json:"password" binding:"required,min=8"`
	Role     domain.Role `json:"role" binding:"required,oneof=super_admin sfd_admin cashier client"`
	SFDID    string      `json:"sfdID"`    // Required for SFD-scoped roles
	ClientID string      `json:"clientID"` // Required for client-role logins
}

// UpdateUserRequest defines the data allowed for updating a user.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateUserRequest struct {
	FullName *string `json:"fullName"`
	IsActive *bool   `json:"isActive"`
}

// AssignRoleRequest defines the data for a role change.
type AssignRoleRequest struct {
	Role domain.Role `json:"role" binding:"required,oneof=super_admin sfd_admin cashier client"`
}

// UserResponse defines the data returned for a user. The password hash
// never leaves the service layer.
type UserResponse struct {
	UserID        string      `json:"userID"`
	Email         string      `json:"email"`
	FullName      string      `json:"fullName"`
	Role          domain.Role `json:"role"`
	SFDID         string      `json:"sfdID,omitempty"`
	ClientID      string      `json:"clientID,omitempty"`
	IsActive      bool        `json:"isActive"`
	CreatedAt     time.Time   `json:"createdAt"`
	CreatedBy     string      `json:"createdBy"`
	LastUpdatedAt time.Time   `json:"lastUpdatedAt"`
	LastUpdatedBy string      `json:"lastUpdatedBy"`
}

// ToUserResponse converts a domain.User to UserResponse DTO
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:        u.UserID,
		Email:         u.Email,
		FullName:      u.FullName,
		Role:          u.Role,
		SFDID:         u.SFDID,
		ClientID:      u.ClientID,
		IsActive:      u.IsActive,
		CreatedAt:     u.CreatedAt,
		CreatedBy:     u.CreatedBy,
		LastUpdatedAt: u.LastUpdatedAt,
		LastUpdatedBy: u.LastUpdatedBy,
	}
}

// ListUsersParams defines query parameters for listing users.
type ListUsersParams struct {
	SFDID  string `form:"sfdID"`
	Limit  int    `form:"limit,default=20"`
	Offset int    `form:"offset,default=0"`
}

// ListUsersResponse wraps the list of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ToListUsersResponse converts a slice of domain.User to ListUsersResponse DTO
func ToListUsersResponse(users []domain.User) ListUsersResponse {
	res := make([]UserResponse, len(users))
	for i, u := range users {
		res[i] = ToUserResponse(&u)
	}
	return ListUsersResponse{Users: res}
}
