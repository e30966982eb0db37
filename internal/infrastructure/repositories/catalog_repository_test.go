package repositories

import (
	"context"
	"testing"

	"github.com/hardik-python-lr/our-gate-backend/domain"
	"github.com/hardik-python-lr/our-gate-backend/internal/tests/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogRepositoryImpl(t *testing.T) {
	ctx := context.Background()
	db := fixtures.NewDB(t)
	seed := fixtures.NewSeeder(t, db)
	repo := NewCatalogRepository(db)

	org := seed.Organization(seed.User("Owner", domain.RoleOrgAdministrator))
	svc := seed.Service(org, "Plumbing", 250)
	late := seed.Slot(svc, 6, 15)
	early := seed.Slot(svc, 6, 9)
	seed.Slot(svc, 7, 9)
	off := seed.Slot(svc, 6, 11)
	seed.Update(off, "is_active", false)

	retired := seed.Service(org, "Retired", 100)
	seed.Update(retired, "is_active", false)

	date, err := domain.ParseDate("2026-10-17")
	require.NoError(t, err)
	seed.Exclusion(svc, date)

	t.Run("active service with organization", func(t *testing.T) {
		found, err := repo.ActiveService(ctx, svc.ID)
		require.NoError(t, err)
		require.NotNil(t, found.Organization)
		assert.Equal(t, org.ID, found.Organization.ID)

		_, err = repo.ActiveService(ctx, retired.ID)
		assert.Equal(t, domain.ErrNotFound, err)
	})

	t.Run("slots of one weekday ordered by start", func(t *testing.T) {
		slots, err := repo.SlotsForDay(ctx, svc.ID, 6)
		require.NoError(t, err)
		require.Len(t, slots, 2)
		assert.Equal(t, early.ID, slots[0].ID)
		assert.Equal(t, late.ID, slots[1].ID)
	})

	t.Run("exclusions", func(t *testing.T) {
		excluded, err := repo.IsExcluded(ctx, svc.ID, date)
		require.NoError(t, err)
		assert.True(t, excluded)

		next, _ := domain.ParseDate("2026-10-18")
		excluded, err = repo.IsExcluded(ctx, svc.ID, next)
		require.NoError(t, err)
		assert.False(t, excluded)
	})
}

func TestPushTokenRepositoryImpl_Save(t *testing.T) {
	ctx := context.Background()
	db := fixtures.NewDB(t)
	seed := fixtures.NewSeeder(t, db)
	repo := NewPushTokenRepository(db)

	u := seed.User("Asha", domain.RoleResident)

	_, err := repo.FindByUser(ctx, u.ID)
	assert.Equal(t, domain.ErrNotFound, err)

	first, err := repo.Save(ctx, u.ID, "dev-1", "token-1")
	require.NoError(t, err)
	assert.Equal(t, "token-1", first.CurrentToken)

	second, err := repo.Save(ctx, u.ID, "dev-2", "token-2")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "one row per user")
	assert.Equal(t, "token-2", second.CurrentToken)
	assert.Equal(t, "dev-2", second.DeviceID)
}
