package services

import (
	"context"

	"github.com/hardik-python-lr/our-gate-backend/domain"
	"go.uber.org/zap"
)

// PermissionEvaluatorImpl implements domain.PermissionEvaluator on the role store.
type PermissionEvaluatorImpl struct {
	roles domain.RoleRepository
	log   *zap.Logger
}

func NewPermissionEvaluator(roles domain.RoleRepository, log *zap.Logger) *PermissionEvaluatorImpl {
	return &PermissionEvaluatorImpl{roles: roles, log: log.Named("permissions")}
}

// Evaluate reports which acceptable roles the user holds. A lookup failure
// denies.
func (p *PermissionEvaluatorImpl) Evaluate(ctx context.Context, acceptable []domain.RoleID, userID uint) (domain.Permission, error) {
	held, err := p.roles.RoleIDs(ctx, userID)
	if err != nil {
		p.log.Warn("role lookup failed", zap.Uint("user_id", userID), zap.Error(err))
		return domain.Deny(acceptable), err
	}

	perm := domain.Deny(acceptable)
	for _, r := range held {
		if _, ok := perm.Held[r]; ok {
			perm.Held[r] = true
			perm.Allowed = true
		}
	}
	return perm, nil
}

func (p *PermissionEvaluatorImpl) RolesOf(ctx context.Context, userID uint) ([]domain.RoleID, error) {
	return p.roles.RoleIDs(ctx, userID)
}

// requireRole evaluates and turns a denial into domain.Forbidden.
func requireRole(ctx context.Context, perms domain.PermissionEvaluator, userID uint, acceptable ...domain.RoleID) (domain.Permission, error) {
	perm, err := perms.Evaluate(ctx, acceptable, userID)
	if err != nil || !perm.Allowed {
		return perm, domain.Forbidden()
	}
	return perm, nil
}
