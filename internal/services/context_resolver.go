package services

import (
	"context"
	"errors"

	"github.com/hardik-python-lr/our-gate-backend/domain"
)

// ContextResolverImpl implements domain.ContextResolver. Missing records come
// back as soft gate errors.
type ContextResolverImpl struct {
	memberships domain.MembershipRepository
}

func NewContextResolver(memberships domain.MembershipRepository) *ContextResolverImpl {
	return &ContextResolverImpl{memberships: memberships}
}

func (r *ContextResolverImpl) CurrentFlat(ctx context.Context, userID uint) (*domain.Flat, error) {
	flat, err := r.memberships.CurrentFlat(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrNoCurrentFlat
	}
	return flat, err
}

func (r *ContextResolverImpl) ValidEstablishmentGuard(ctx context.Context, userID uint) (*domain.EstablishmentGuard, error) {
	link, err := r.memberships.ActiveGuardLink(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrNoValidGuardRecord
	}
	return link, err
}

func (r *ContextResolverImpl) ValidCommitteeSeat(ctx context.Context, userID, establishmentID uint) (*domain.ManagementCommittee, error) {
	seat, err := r.memberships.CommitteeSeat(ctx, userID, establishmentID)
	if errors.Is(err, domain.ErrNotFound) || (err == nil && !seat.IsActive) {
		return nil, domain.ErrNoValidCommitteeRecord
	}
	return seat, err
}
