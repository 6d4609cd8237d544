package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ICON-SARL/ngnasoro-sub006/internal/apperrors"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/core/domain"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/platform/config"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/utils"
)

type tokenService struct {
	secret         string
	expiryDuration time.Duration
	issuer         string
}

// NewTokenService creates the service issuing and validating access tokens.
func NewTokenService(cfg *config.Config) *tokenService {
	return &tokenService{
		secret:         cfg.JWTSecret,
		expiryDuration: cfg.JWTExpiryDuration,
		issuer:         cfg.JWTIssuer,
	}
}

func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiresAt := time.Now().Add(s.expiryDuration)
	token, err := utils.GenerateJWT(user.UserID, string(user.Role), user.SFDID, user.ClientID, s.secret, s.expiryDuration, s.issuer)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return token, expiresAt, nil
}

func (s *tokenService) ValidateAccessToken(ctx context.Context, tokenString string) (*domain.AuthContext, error) {
	claims, err := utils.ParseAndValidateJWT(tokenString, s.secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnauthorized, err)
	}
	role := domain.Role(claims.Role)
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: unknown role in token", apperrors.ErrUnauthorized)
	}
	return &domain.AuthContext{
		UserID:   claims.Subject,
		Role:     role,
		SFDID:    claims.SFDID,
		ClientID: claims.ClientID,
	}, nil
}
