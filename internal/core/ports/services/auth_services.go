package services

import (
	"context"
	"time"

	"github.com/ICON-SARL/ngnasoro-sub006/internal/core/domain"
)

// TokenSvcFacade defines the interface for token management services.
type TokenSvcFacade interface {
	// GenerateAccessToken issues a signed access token for the user,
	// returning the token and its expiry time.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// ValidateAccessToken validates a token string and returns the auth
	// context it carries.
	ValidateAccessToken(ctx context.Context, tokenString string) (*domain.AuthContext, error)
}
