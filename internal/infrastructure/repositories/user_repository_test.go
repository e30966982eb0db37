package repositories

import (
	"context"
	"testing"

	"github.com/hardik-python-lr/our-gate-backend/domain"
	"github.com/hardik-python-lr/our-gate-backend/internal/tests/fixtures"
)

func TestUserRepositoryImpl_CreateWithRoles(t *testing.T) {
	ctx := context.Background()
	db := fixtures.NewDB(t)
	users := NewUserRepository(db)
	roles := NewRoleRepository(db)

	email := "asha@example.com"
	user := &domain.User{Phone: "9876543210", FirstName: "Asha", Email: &email, IsActive: true}
	if err := users.Create(ctx, user, []domain.RoleID{domain.RoleResident, domain.RoleSecurityGuard}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("expected id to be assigned")
	}

	held, err := roles.RoleIDs(ctx, user.ID)
	if err != nil {
		t.Fatalf("roles: %v", err)
	}
	if len(held) != 2 || held[0] != domain.RoleSecurityGuard || held[1] != domain.RoleResident {
		t.Errorf("unexpected roles %v", held)
	}

	dup := &domain.User{Phone: "9876543210", FirstName: "Dup", IsActive: true}
	if err := users.Create(ctx, dup, []domain.RoleID{domain.RoleResident}); err == nil {
		t.Error("duplicate phone should fail")
	}
}

func TestUserRepositoryImpl_FindActive(t *testing.T) {
	ctx := context.Background()
	db := fixtures.NewDB(t)
	seed := fixtures.NewSeeder(t, db)
	repo := NewUserRepository(db)

	active := seed.User("Active", domain.RoleEmployee)
	inactive := seed.User("Inactive", domain.RoleEmployee)
	seed.Update(inactive, "is_active", false)

	tests := []struct {
		name          string
		find          func() (*domain.User, error)
		expectedID    uint
		expectedError error
	}{
		{"by id", func() (*domain.User, error) { return repo.FindActiveByID(ctx, active.ID) }, active.ID, nil},
		{"inactive by id", func() (*domain.User, error) { return repo.FindActiveByID(ctx, inactive.ID) }, 0, domain.ErrUserNotFound},
		{"any state by id", func() (*domain.User, error) { return repo.FindByID(ctx, inactive.ID) }, inactive.ID, nil},
		{"by phone", func() (*domain.User, error) { return repo.FindActiveByPhone(ctx, active.Phone) }, active.ID, nil},
		{"inactive by phone", func() (*domain.User, error) { return repo.FindActiveByPhone(ctx, inactive.Phone) }, 0, domain.ErrUserNotFound},
		{"with held role", func() (*domain.User, error) { return repo.FindActiveWithRole(ctx, active.ID, domain.RoleEmployee) }, active.ID, nil},
		{"without role", func() (*domain.User, error) { return repo.FindActiveWithRole(ctx, active.ID, domain.RoleResident) }, 0, domain.ErrUserNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := tt.find()
			if err != tt.expectedError {
				t.Fatalf("expected error %v, got %v", tt.expectedError, err)
			}
			if tt.expectedError == nil && user.ID != tt.expectedID {
				t.Errorf("expected user %d, got %d", tt.expectedID, user.ID)
			}
		})
	}
}

func TestUserRepositoryImpl_ListActiveWithRole(t *testing.T) {
	ctx := context.Background()
	db := fixtures.NewDB(t)
	seed := fixtures.NewSeeder(t, db)
	repo := NewUserRepository(db)

	owner := seed.User("Owner", domain.RoleOrgAdministrator)
	org := seed.Organization(owner)
	other := seed.Organization(seed.User("Other", domain.RoleOrgAdministrator))

	mine := seed.User("Mine", domain.RoleEmployee)
	seed.Update(mine, "organization_id", org.ID)
	theirs := seed.User("Theirs", domain.RoleEmployee)
	seed.Update(theirs, "organization_id", other.ID)
	gone := seed.User("Gone", domain.RoleEmployee)
	seed.Update(gone, "organization_id", org.ID)
	seed.Update(gone, "is_active", false)

	list, err := repo.ListActiveWithRole(ctx, domain.RoleEmployee, []uint{org.ID})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].ID != mine.ID {
		t.Errorf("expected only %d, got %+v", mine.ID, list)
	}

	all, err := repo.ListActiveWithRole(ctx, domain.RoleEmployee, nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 active employees, got %d", len(all))
	}
}

func TestUserRepositoryImpl_PhoneOrEmailTaken(t *testing.T) {
	ctx := context.Background()
	db := fixtures.NewDB(t)
	seed := fixtures.NewSeeder(t, db)
	repo := NewUserRepository(db)

	u := seed.User("Asha")
	email := "asha@example.com"
	seed.Update(u, "email", email)

	other := "other@example.com"
	tests := []struct {
		name     string
		phone    string
		email    *string
		expected bool
	}{
		{"phone taken", u.Phone, nil, true},
		{"email taken", "1111111111", &email, true},
		{"both free", "1111111111", &other, false},
		{"empty email ignored", "1111111111", strPtr(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			taken, err := repo.PhoneOrEmailTaken(ctx, tt.phone, tt.email)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if taken != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, taken)
			}
		})
	}
}

func TestUserRepositoryImpl_IncrementOTPCounter(t *testing.T) {
	ctx := context.Background()
	db := fixtures.NewDB(t)
	seed := fixtures.NewSeeder(t, db)
	repo := NewUserRepository(db)

	u := seed.User("Asha")
	for want := 1; want <= 3; want++ {
		got, err := repo.IncrementOTPCounter(ctx, u.ID)
		if err != nil {
			t.Fatalf("increment: %v", err)
		}
		if got != want {
			t.Errorf("expected counter %d, got %d", want, got)
		}
	}

	if _, err := repo.IncrementOTPCounter(ctx, 9999); err != domain.ErrUserNotFound {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestRoleRepositoryImpl_GrantRevoke(t *testing.T) {
	ctx := context.Background()
	db := fixtures.NewDB(t)
	seed := fixtures.NewSeeder(t, db)
	repo := NewRoleRepository(db)

	u := seed.User("Asha", domain.RoleResident)

	if err := repo.Grant(ctx, u.ID, domain.RoleManagementCommittee); err != nil {
		t.Fatalf("grant: %v", err)
	}
	if err := repo.Grant(ctx, u.ID, domain.RoleManagementCommittee); err != nil {
		t.Fatalf("granting twice should be a no-op: %v", err)
	}
	held, _ := repo.RoleIDs(ctx, u.ID)
	if len(held) != 2 {
		t.Fatalf("expected 2 roles, got %v", held)
	}

	if err := repo.Revoke(ctx, u.ID, domain.RoleManagementCommittee); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	held, _ = repo.RoleIDs(ctx, u.ID)
	if len(held) != 1 || held[0] != domain.RoleResident {
		t.Errorf("unexpected roles after revoke %v", held)
	}

	if err := repo.EnsureRoles(ctx); err != nil {
		t.Errorf("ensure roles on a seeded table: %v", err)
	}
}

func strPtr(s string) *string { return &s }
