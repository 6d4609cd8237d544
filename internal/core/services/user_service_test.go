package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/ICON-SARL/ngnasoro-sub006/internal/apperrors"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/core/domain"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/core/services"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/dto"
	"github.com/ICON-SARL/ngnasoro-sub006/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mock UserRepository (based on UserService usage) ---
type MockUserRepository struct {
	mock.Mock
	FindUserByIDFn    func(ctx context.Context, userID string) (*domain.User, error)
	FindUserByEmailFn func(ctx context.Context, email string) (*domain.User, error)
	SaveUserFn        func(ctx context.Context, user domain.User) error
	AssignRoleFn      func(ctx context.Context, userID string, role domain.Role, audit domain.AuditLogEvent, updatedBy string, now time.Time) error
	MarkUserDeletedFn func(ctx context.Context, userID string, deletedAt time.Time, deletedBy string) error
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	if m.FindUserByIDFn != nil {
		return m.FindUserByIDFn(ctx, userID)
	}
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindUserByEmailFn != nil {
		return m.FindUserByEmailFn(ctx, email)
	}
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, sfdID string, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, sfdID, limit, offset)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	if m.SaveUserFn != nil {
		return m.SaveUserFn(ctx, user)
	}
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) AssignRole(ctx context.Context, userID string, role domain.Role, audit domain.AuditLogEvent, updatedBy string, now time.Time) error {
	if m.AssignRoleFn != nil {
		return m.AssignRoleFn(ctx, userID, role, audit, updatedBy, now)
	}
	args := m.Called(ctx, userID, role, audit, updatedBy, now)
	return args.Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deletedBy string) error {
	if m.MarkUserDeletedFn != nil {
		return m.MarkUserDeletedFn(ctx, userID, deletedAt, deletedBy)
	}
	args := m.Called(ctx, userID, deletedAt, deletedBy)
	return args.Error(0)
}

// --- Mock SFDReader ---
type MockSFDReader struct {
	mock.Mock
	FindSFDByIDFn func(ctx context.Context, sfdID string) (*domain.SFD, error)
}

func (m *MockSFDReader) FindSFDByID(ctx context.Context, sfdID string) (*domain.SFD, error) {
	if m.FindSFDByIDFn != nil {
		return m.FindSFDByIDFn(ctx, sfdID)
	}
	args := m.Called(ctx, sfdID)
	var sfd *domain.SFD
	if args.Get(0) != nil {
		sfd = args.Get(0).(*domain.SFD)
	}
	return sfd, args.Error(1)
}

func (m *MockSFDReader) FindSFDByCode(ctx context.Context, code string) (*domain.SFD, error) {
	args := m.Called(ctx, code)
	var sfd *domain.SFD
	if args.Get(0) != nil {
		sfd = args.Get(0).(*domain.SFD)
	}
	return sfd, args.Error(1)
}

func (m *MockSFDReader) ListSFDs(ctx context.Context, limit, offset int) ([]domain.SFD, error) {
	args := m.Called(ctx, limit, offset)
	var sfds []domain.SFD
	if args.Get(0) != nil {
		sfds = args.Get(0).([]domain.SFD)
	}
	return sfds, args.Error(1)
}

func activeSFD(sfdID string) *domain.SFD {
	return &domain.SFD{
		SFDID:          sfdID,
		Name:           "Kafo Jiginew",
		Code:           "KAFO",
		Status:         domain.SFDActive,
		SubsidyBalance: decimal.Zero,
	}
}

func TestCreateUser_HashesPassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	sfdRepo := new(MockSFDReader)
	svc := services.NewUserService(userRepo, sfdRepo, new(MockClientRepository))

	sfdRepo.FindSFDByIDFn = func(ctx context.Context, sfdID string) (*domain.SFD, error) {
		return activeSFD(sfdID), nil
	}

	var saved domain.User
	userRepo.SaveUserFn = func(ctx context.Context, user domain.User) error {
		saved = user
		return nil
	}

	user, err := svc.CreateUser(context.Background(), superAdminActor(), dto.CreateUserRequest{
		Email:    "caissier@kafo.ml",
		FullName: "Moussa Diarra",
		Password: "motdepasse123",
		Role:     domain.RoleCashier,
		SFDID:    "sfd-1",
	})

	require.NoError(t, err)
	assert.NotEqual(t, "motdepasse123", saved.PasswordHash)
	assert.True(t, utils.CheckPasswordHash("motdepasse123", saved.PasswordHash))
	assert.Equal(t, domain.RoleCashier, user.Role)
	assert.True(t, user.IsActive)
}

func TestCreateUser_ScopedRoleRequiresSFD(t *testing.T) {
	userRepo := new(MockUserRepository)
	sfdRepo := new(MockSFDReader)
	svc := services.NewUserService(userRepo, sfdRepo, new(MockClientRepository))

	_, err := svc.CreateUser(context.Background(), superAdminActor(), dto.CreateUserRequest{
		Email:    "admin@kafo.ml",
		FullName: "Fatoumata Traoré",
		Password: "motdepasse123",
		Role:     domain.RoleSFDAdmin,
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestCreateUser_SuperAdminCannotHaveSFD(t *testing.T) {
	userRepo := new(MockUserRepository)
	sfdRepo := new(MockSFDReader)
	svc := services.NewUserService(userRepo, sfdRepo, new(MockClientRepository))

	_, err := svc.CreateUser(context.Background(), superAdminActor(), dto.CreateUserRequest{
		Email:    "meref@finances.gouv.ml",
		FullName: "Ibrahim Keïta",
		Password: "motdepasse123",
		Role:     domain.RoleSuperAdmin,
		SFDID:    "sfd-1",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestCreateUser_ClientRoleLinksClientRecord(t *testing.T) {
	userRepo := new(MockUserRepository)
	sfdRepo := new(MockSFDReader)
	clientRepo := new(MockClientRepository)
	svc := services.NewUserService(userRepo, sfdRepo, clientRepo)

	sfdRepo.FindSFDByIDFn = func(ctx context.Context, sfdID string) (*domain.SFD, error) {
		return activeSFD(sfdID), nil
	}

	base := dto.CreateUserRequest{
		Email:    "aminata@kafo.ml",
		FullName: "Aminata Koné",
		Password: "motdepasse123",
		Role:     domain.RoleClient,
		SFDID:    "sfd-1",
	}

	// No client record named.
	_, err := svc.CreateUser(context.Background(), superAdminActor(), base)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	// Client enrolled with a different SFD.
	clientRepo.FindClientByIDFn = func(ctx context.Context, clientID string) (*domain.Client, error) {
		return &domain.Client{ClientID: clientID, SFDID: "sfd-2"}, nil
	}
	req := base
	req.ClientID = uuid.NewString()
	_, err = svc.CreateUser(context.Background(), superAdminActor(), req)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	// Matching SFD, the linkage is stored on the login.
	clientRepo.FindClientByIDFn = func(ctx context.Context, clientID string) (*domain.Client, error) {
		return &domain.Client{ClientID: clientID, SFDID: "sfd-1"}, nil
	}
	var saved domain.User
	userRepo.SaveUserFn = func(ctx context.Context, user domain.User) error {
		saved = user
		return nil
	}
	_, err = svc.CreateUser(context.Background(), superAdminActor(), req)
	require.NoError(t, err)
	assert.Equal(t, req.ClientID, saved.ClientID)
}

func TestCreateUser_StaffNeverCarriesClientRecord(t *testing.T) {
	userRepo := new(MockUserRepository)
	sfdRepo := new(MockSFDReader)
	svc := services.NewUserService(userRepo, sfdRepo, new(MockClientRepository))

	sfdRepo.FindSFDByIDFn = func(ctx context.Context, sfdID string) (*domain.SFD, error) {
		return activeSFD(sfdID), nil
	}

	_, err := svc.CreateUser(context.Background(), superAdminActor(), dto.CreateUserRequest{
		Email:    "caissier@kafo.ml",
		FullName: "Moussa Diarra",
		Password: "motdepasse123",
		Role:     domain.RoleCashier,
		SFDID:    "sfd-1",
		ClientID: uuid.NewString(),
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestAuthenticateUser(t *testing.T) {
	userRepo := new(MockUserRepository)
	sfdRepo := new(MockSFDReader)
	svc := services.NewUserService(userRepo, sfdRepo, new(MockClientRepository))

	hash, err := utils.HashPassword("motdepasse123")
	require.NoError(t, err)
	stored := &domain.User{
		UserID:       uuid.NewString(),
		Email:        "caissier@kafo.ml",
		PasswordHash: hash,
		Role:         domain.RoleCashier,
		SFDID:        "sfd-1",
		IsActive:     true,
	}
	userRepo.FindUserByEmailFn = func(ctx context.Context, email string) (*domain.User, error) {
		if email == stored.Email {
			return stored, nil
		}
		return nil, apperrors.ErrNotFound
	}

	user, err := svc.AuthenticateUser(context.Background(), stored.Email, "motdepasse123")
	require.NoError(t, err)
	assert.Equal(t, stored.UserID, user.UserID)

	_, err = svc.AuthenticateUser(context.Background(), stored.Email, "mauvais-mdp")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	_, err = svc.AuthenticateUser(context.Background(), "inconnu@kafo.ml", "motdepasse123")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestAuthenticateUser_DisabledAccount(t *testing.T) {
	userRepo := new(MockUserRepository)
	sfdRepo := new(MockSFDReader)
	svc := services.NewUserService(userRepo, sfdRepo, new(MockClientRepository))

	hash, err := utils.HashPassword("motdepasse123")
	require.NoError(t, err)
	userRepo.FindUserByEmailFn = func(ctx context.Context, email string) (*domain.User, error) {
		return &domain.User{Email: email, PasswordHash: hash, IsActive: false}, nil
	}

	_, err = svc.AuthenticateUser(context.Background(), "caissier@kafo.ml", "motdepasse123")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestAssignRole_RecordsAudit(t *testing.T) {
	userRepo := new(MockUserRepository)
	sfdRepo := new(MockSFDReader)
	svc := services.NewUserService(userRepo, sfdRepo, new(MockClientRepository))

	actor := superAdminActor()
	target := &domain.User{
		UserID:   uuid.NewString(),
		Email:    "caissier@kafo.ml",
		Role:     domain.RoleCashier,
		SFDID:    "sfd-1",
		IsActive: true,
	}
	userRepo.FindUserByIDFn = func(ctx context.Context, userID string) (*domain.User, error) {
		return target, nil
	}

	var recordedAudit domain.AuditLogEvent
	userRepo.AssignRoleFn = func(ctx context.Context, userID string, role domain.Role, audit domain.AuditLogEvent, updatedBy string, now time.Time) error {
		recordedAudit = audit
		return nil
	}

	user, err := svc.AssignRole(context.Background(), actor, target.UserID, dto.AssignRoleRequest{Role: domain.RoleSFDAdmin})

	require.NoError(t, err)
	assert.Equal(t, domain.RoleSFDAdmin, user.Role)
	assert.Equal(t, domain.AuditCategoryUser, recordedAudit.Category)
	assert.Equal(t, "cashier", recordedAudit.Details["previous_role"])
	assert.Equal(t, "sfd_admin", recordedAudit.Details["new_role"])
}

func TestAssignRole_NoOpWhenUnchanged(t *testing.T) {
	userRepo := new(MockUserRepository)
	sfdRepo := new(MockSFDReader)
	svc := services.NewUserService(userRepo, sfdRepo, new(MockClientRepository))

	target := &domain.User{UserID: uuid.NewString(), Role: domain.RoleCashier, SFDID: "sfd-1"}
	userRepo.FindUserByIDFn = func(ctx context.Context, userID string) (*domain.User, error) {
		return target, nil
	}

	user, err := svc.AssignRole(context.Background(), superAdminActor(), target.UserID, dto.AssignRoleRequest{Role: domain.RoleCashier})

	require.NoError(t, err)
	assert.Equal(t, domain.RoleCashier, user.Role)
	userRepo.AssertNotCalled(t, "AssignRole")
}

func TestDeleteUser_CannotDeleteSelf(t *testing.T) {
	userRepo := new(MockUserRepository)
	sfdRepo := new(MockSFDReader)
	svc := services.NewUserService(userRepo, sfdRepo, new(MockClientRepository))

	actor := superAdminActor()
	err := svc.DeleteUser(context.Background(), actor, actor.UserID)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}
