package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/hardik-python-lr/our-gate-backend/domain"
	"github.com/hardik-python-lr/our-gate-backend/internal/clock"
	"github.com/redis/go-redis/v9"
)

// setupTestRedis creates an in-memory Redis instance for testing
func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return mr, client
}

func TestSessionRepositoryImpl_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	mr, client := setupTestRedis(t)
	repo := NewSessionRepository(client, time.Hour, clock.NewFakeClock(now))

	session := &domain.Session{ID: "session_123", UserID: 7, CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	if err := repo.Create(ctx, session); err != nil {
		t.Fatalf("create: %v", err)
	}

	if ttl := mr.TTL("session:session_123"); ttl != time.Hour {
		t.Errorf("expected ttl of one hour, got %v", ttl)
	}

	found, err := repo.FindByID(ctx, "session_123")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found.UserID != 7 {
		t.Errorf("expected user 7, got %d", found.UserID)
	}
}

func TestSessionRepositoryImpl_FindByID(t *testing.T) {
	now := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		stored        *domain.Session
		lookup        string
		expectedError error
	}{
		{
			name:          "missing session",
			lookup:        "nope",
			expectedError: domain.ErrSessionNotFound,
		},
		{
			name:          "expired session is removed",
			stored:        &domain.Session{ID: "old", UserID: 1, ExpiresAt: now.Add(-time.Minute)},
			lookup:        "old",
			expectedError: domain.ErrSessionExpired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			mr, client := setupTestRedis(t)
			repo := NewSessionRepository(client, time.Hour, clock.NewFakeClock(now))

			if tt.stored != nil {
				if err := repo.Create(ctx, tt.stored); err != nil {
					t.Fatalf("create: %v", err)
				}
			}

			_, err := repo.FindByID(ctx, tt.lookup)
			if err != tt.expectedError {
				t.Fatalf("expected %v, got %v", tt.expectedError, err)
			}
			if tt.stored != nil && mr.Exists("session:"+tt.stored.ID) {
				t.Error("expired session should be deleted")
			}
		})
	}
}

func TestSessionRepositoryImpl_Delete(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	mr, client := setupTestRedis(t)
	repo := NewSessionRepository(client, time.Hour, clock.Real())

	_ = repo.Create(ctx, &domain.Session{ID: "s1", UserID: 1, ExpiresAt: now.Add(time.Hour)})
	if err := repo.Delete(ctx, "s1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if mr.Exists("session:s1") {
		t.Error("session should be gone")
	}
	if err := repo.Delete(ctx, "s1"); err != nil {
		t.Errorf("deleting a missing session should not fail: %v", err)
	}
}
