package domain_test

import (
	"testing"

	"github.com/ICON-SARL/ngnasoro-sub006/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestRoleCapabilities(t *testing.T) {
	// Every defined role must resolve to a non-empty capability set.
	for _, role := range []domain.Role{
		domain.RoleSuperAdmin,
		domain.RoleSFDAdmin,
		domain.RoleCashier,
		domain.RoleClient,
	} {
		assert.True(t, role.IsValid(), "role %s should be valid", role)
		assert.NotEmpty(t, role.Capabilities(), "role %s should have capabilities", role)
	}

	assert.False(t, domain.Role("admin").IsValid())
	assert.Empty(t, domain.Role("admin").Capabilities())
}

func TestRoleCan(t *testing.T) {
	// Only super-admins review credit applications.
	assert.True(t, domain.RoleSuperAdmin.Can(domain.CapCreditReview))
	assert.False(t, domain.RoleSFDAdmin.Can(domain.CapCreditReview))
	assert.False(t, domain.RoleCashier.Can(domain.CapCreditReview))
	assert.False(t, domain.RoleClient.Can(domain.CapCreditReview))

	// Cashiers move money but do not manage clients.
	assert.True(t, domain.RoleCashier.Can(domain.CapLedgerWrite))
	assert.False(t, domain.RoleCashier.Can(domain.CapClientManage))

	// Clients read their own ledger, nothing else.
	assert.True(t, domain.RoleClient.Can(domain.CapLedgerRead))
	assert.False(t, domain.RoleClient.Can(domain.CapLedgerWrite))
}

func TestAuthContextCan(t *testing.T) {
	authCtx := domain.AuthContext{UserID: "u-1", Role: domain.RoleSFDAdmin, SFDID: "sfd-1"}
	assert.True(t, authCtx.Can(domain.CapCreditApply))
	assert.False(t, authCtx.Can(domain.CapSubsidyDecide))
}
