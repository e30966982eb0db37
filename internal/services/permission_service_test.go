package services

import (
	"context"
	"errors"
	"testing"

	"github.com/hardik-python-lr/our-gate-backend/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type failingRoles struct{ domain.RoleRepository }

func (failingRoles) RoleIDs(context.Context, uint) ([]domain.RoleID, error) {
	return nil, errors.New("database is down")
}

func TestPermissionEvaluator_Evaluate(t *testing.T) {
	w := newWorld(t)
	guard := w.seed.User("Guard", domain.RoleSecurityGuard, domain.RoleResident)
	nobody := w.seed.User("Nobody")

	tests := []struct {
		name       string
		userID     uint
		acceptable []domain.RoleID
		allowed    bool
		held       map[domain.RoleID]bool
	}{
		{
			name:       "one of several held",
			userID:     guard.ID,
			acceptable: []domain.RoleID{domain.RoleSecurityGuard, domain.RoleEmployee},
			allowed:    true,
			held:       map[domain.RoleID]bool{domain.RoleSecurityGuard: true, domain.RoleEmployee: false},
		},
		{
			name:       "both held",
			userID:     guard.ID,
			acceptable: []domain.RoleID{domain.RoleSecurityGuard, domain.RoleResident},
			allowed:    true,
			held:       map[domain.RoleID]bool{domain.RoleSecurityGuard: true, domain.RoleResident: true},
		},
		{
			name:       "none held",
			userID:     guard.ID,
			acceptable: []domain.RoleID{domain.RoleSuperAdmin},
			allowed:    false,
			held:       map[domain.RoleID]bool{domain.RoleSuperAdmin: false},
		},
		{
			name:       "user without roles",
			userID:     nobody.ID,
			acceptable: []domain.RoleID{domain.RoleResident},
			allowed:    false,
			held:       map[domain.RoleID]bool{domain.RoleResident: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			perm, err := w.perms.Evaluate(context.Background(), tt.acceptable, tt.userID)
			require.NoError(t, err)
			assert.Equal(t, tt.allowed, perm.Allowed)
			assert.Equal(t, tt.held, perm.Held)
		})
	}
}

func TestPermissionEvaluator_FailsClosed(t *testing.T) {
	perms := NewPermissionEvaluator(failingRoles{}, zap.NewNop())

	perm, err := perms.Evaluate(context.Background(), []domain.RoleID{domain.RoleResident}, 1)
	assert.Error(t, err)
	assert.False(t, perm.Allowed)
	assert.False(t, perm.Has(domain.RoleResident))

	_, err = requireRole(context.Background(), perms, 1, domain.RoleResident)
	assert.Equal(t, domain.KindForbidden, domain.KindOf(err))
}

func TestPermission_First(t *testing.T) {
	w := newWorld(t)
	admin := w.seed.User("Admin", domain.RoleManagementCommittee, domain.RoleEstablishmentAdmin)

	perm, err := requireRole(context.Background(), w.perms, admin.ID, domain.AdminPrecedence...)
	require.NoError(t, err)

	first, ok := perm.First(domain.AdminPrecedence...)
	assert.True(t, ok)
	assert.Equal(t, domain.RoleEstablishmentAdmin, first)
}
