package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ICON-SARL/ngnasoro-sub006/internal/apperrors"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/core/domain"
	portsrepo "github.com/ICON-SARL/ngnasoro-sub006/internal/core/ports/repositories"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/dto"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/middleware"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/utils"
	"github.com/google/uuid"
)

type userService struct {
	userRepo   portsrepo.UserRepositoryFacade
	sfdRepo    portsrepo.SFDReader
	clientRepo portsrepo.ClientReader
}

// NewUserService creates the service managing portal users.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, sfdRepo portsrepo.SFDReader, clientRepo portsrepo.ClientReader) *userService {
	return &userService{
		userRepo:   userRepo,
		sfdRepo:    sfdRepo,
		clientRepo: clientRepo,
	}
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

func (s *userService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.userRepo.FindUserByEmail(ctx, email)
}

func (s *userService) ListUsers(ctx context.Context, actor domain.AuthContext, sfdID string, limit, offset int) ([]domain.User, error) {
	if !actor.Can(domain.CapUserManage) {
		return nil, apperrors.ErrForbidden
	}
	users, err := s.userRepo.FindUsers(ctx, sfdID, limit, offset)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

func (s *userService) CreateUser(ctx context.Context, actor domain.AuthContext, req dto.CreateUserRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if !actor.Can(domain.CapUserManage) {
		return nil, apperrors.ErrForbidden
	}

	// SFD-scoped roles must name an existing institution; super-admins are
	// institution-less by definition.
	switch req.Role {
	case domain.RoleSuperAdmin:
		if req.SFDID != "" {
			return nil, fmt.Errorf("%w: super admins are not attached to an SFD", apperrors.ErrValidation)
		}
	default:
		if req.SFDID == "" {
			return nil, fmt.Errorf("%w: role %s requires an SFD", apperrors.ErrValidation, req.Role)
		}
		if _, err := s.sfdRepo.FindSFDByID(ctx, req.SFDID); err != nil {
			return nil, err
		}
	}

	// Client-role logins carry the client record they act for, so ledger
	// reads can be scoped to the caller. Staff logins never carry one.
	if req.Role == domain.RoleClient {
		if req.ClientID == "" {
			return nil, fmt.Errorf("%w: client role requires a client record", apperrors.ErrValidation)
		}
		client, err := s.clientRepo.FindClientByID(ctx, req.ClientID)
		if err != nil {
			return nil, err
		}
		if client.SFDID != req.SFDID {
			return nil, fmt.Errorf("%w: client %s is not enrolled with SFD %s", apperrors.ErrValidation, req.ClientID, req.SFDID)
		}
	} else if req.ClientID != "" {
		return nil, fmt.Errorf("%w: only client logins are attached to a client record", apperrors.ErrValidation)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := domain.User{
		UserID:       uuid.NewString(),
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: hash,
		Role:         req.Role,
		SFDID:        req.SFDID,
		ClientID:     req.ClientID,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		logger.Error("Failed to save user", slog.String("error", err.Error()), slog.String("email", req.Email))
		return nil, err
	}

	logger.Info("User created",
		slog.String("user_id", user.UserID),
		slog.String("role", string(user.Role)),
	)
	return &user, nil
}

func (s *userService) UpdateUser(ctx context.Context, actor domain.AuthContext, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	if !actor.Can(domain.CapUserManage) {
		return nil, apperrors.ErrForbidden
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	user.LastUpdatedAt = time.Now().UTC()
	user.LastUpdatedBy = actor.UserID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return nil, err
	}
	return user, nil
}

// AssignRole changes a user's role. The role update and its audit event
// commit in the same database transaction.
func (s *userService) AssignRole(ctx context.Context, actor domain.AuthContext, userID string, req dto.AssignRoleRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if !actor.Can(domain.CapUserManage) {
		return nil, apperrors.ErrForbidden
	}
	if !req.Role.IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, req.Role)
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role == req.Role {
		return user, nil
	}

	now := time.Now().UTC()
	audit := domain.AuditLogEvent{
		EventID:  uuid.NewString(),
		Category: domain.AuditCategoryUser,
		Severity: domain.SeverityWarning,
		Status:   domain.AuditSuccess,
		Action:   "user.assign_role",
		ActorID:  actor.UserID,
		TargetID: userID,
		SFDID:    user.SFDID,
		Details: map[string]any{
			"previous_role": string(user.Role),
			"new_role":      string(req.Role),
		},
		CreatedAt: now,
	}

	if err := s.userRepo.AssignRole(ctx, userID, req.Role, audit, actor.UserID, now); err != nil {
		logger.Error("Failed to assign role", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, err
	}

	user.Role = req.Role
	user.LastUpdatedAt = now
	user.LastUpdatedBy = actor.UserID

	logger.Info("Role assigned",
		slog.String("user_id", userID),
		slog.String("role", string(req.Role)),
	)
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, actor domain.AuthContext, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	if !actor.Can(domain.CapUserManage) {
		return apperrors.ErrForbidden
	}
	if actor.UserID == userID {
		return fmt.Errorf("%w: cannot delete own account", apperrors.ErrConflict)
	}
	if err := s.userRepo.MarkUserDeleted(ctx, userID, time.Now().UTC(), actor.UserID); err != nil {
		return err
	}
	logger.Info("User deleted", slog.String("user_id", userID))
	return nil
}

// AuthenticateUser verifies credentials. Unknown emails and wrong passwords
// fail the same way so callers cannot enumerate accounts.
func (s *userService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: account disabled", apperrors.ErrUnauthorized)
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		logger.Warn("Failed login attempt", slog.String("email", email))
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}
	return user, nil
}
