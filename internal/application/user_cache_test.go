package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/user-account-service/internal/domain/entity"
	"github.com/oksasatya/user-account-service/internal/infrastructure/memory"
	"github.com/oksasatya/user-account-service/pkg/helpers"
)

// interleavingRepo runs onGet once, after the row was read and before it is
// returned, to place a concurrent write inside a read.
type interleavingRepo struct {
	*memory.UserRepository
	onGet func()
}

func (r *interleavingRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	u, err := r.UserRepository.GetByID(ctx, id)
	if hook := r.onGet; hook != nil {
		r.onGet = nil
		hook()
	}
	return u, err
}

func newCachedService(t *testing.T) (*UserService, *interleavingRepo, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	repo := &interleavingRepo{UserRepository: memory.NewUserRepository()}
	svc := NewUserService(repo, helpers.NewNopLogger()).WithCache(rdb, time.Minute)
	return svc, repo, mr
}

func TestGetFillsAndServesCache(t *testing.T) {
	ctx := context.Background()
	svc, repo, mr := newCachedService(t)
	u := seedUser(t, repo.UserRepository, "a@x.com", "1", "pw")

	if _, err := svc.Get(ctx, u.ID); err != nil {
		t.Fatalf("get: %v", err)
	}
	if !mr.Exists(userCacheKey(u.ID)) {
		t.Fatal("expected cache entry after first get")
	}

	// Changed behind the service's back: a hit keeps serving the cached copy.
	changed := *u
	changed.Name = "Changed"
	if err := repo.UserRepository.Update(ctx, &changed); err != nil {
		t.Fatalf("update store: %v", err)
	}
	got, err := svc.Get(ctx, u.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Seed" || !got.SessionActive {
		t.Fatalf("expected cached user, got %+v", got)
	}
}

func TestWritesInvalidateCache(t *testing.T) {
	ctx := context.Background()
	svc, repo, mr := newCachedService(t)
	u := seedUser(t, repo.UserRepository, "a@x.com", "1", "pw")

	if _, err := svc.Get(ctx, u.ID); err != nil {
		t.Fatalf("get: %v", err)
	}
	in := UserInput{Name: "New", Phone: "2", Email: "a@x.com", Password: "hash", Address: "Road"}
	if _, err := svc.Update(ctx, u.ID, in); err != nil {
		t.Fatalf("update: %v", err)
	}
	if mr.Exists(userCacheKey(u.ID)) {
		t.Fatal("expected update to drop the cache entry")
	}
	got, err := svc.Get(ctx, u.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "New" {
		t.Fatalf("expected updated user, got %+v", got)
	}

	if err := svc.Delete(ctx, u.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, u.ID); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound after delete, got %v", err)
	}
}

func TestDeleteDuringGetDoesNotRepopulateCache(t *testing.T) {
	ctx := context.Background()
	svc, repo, mr := newCachedService(t)
	u := seedUser(t, repo.UserRepository, "a@x.com", "1", "pw")

	repo.onGet = func() {
		if err := svc.Delete(ctx, u.ID); err != nil {
			t.Errorf("delete: %v", err)
		}
	}
	// This read started before the delete and may still see the row.
	if _, err := svc.Get(ctx, u.ID); err != nil {
		t.Fatalf("get: %v", err)
	}
	if mr.Exists(userCacheKey(u.ID)) {
		t.Fatal("stale row was written to the cache")
	}
	if _, err := svc.Get(ctx, u.ID); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound once delete finished, got %v", err)
	}
}

func TestUpdateDuringGetDoesNotCacheOldRow(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newCachedService(t)
	u := seedUser(t, repo.UserRepository, "a@x.com", "1", "pw")

	repo.onGet = func() {
		in := UserInput{Name: "New", Phone: "1", Email: "a@x.com", Password: "hash", Address: "Road"}
		if _, err := svc.Update(ctx, u.ID, in); err != nil {
			t.Errorf("update: %v", err)
		}
	}
	if _, err := svc.Get(ctx, u.ID); err != nil {
		t.Fatalf("get: %v", err)
	}
	got, err := svc.Get(ctx, u.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "New" {
		t.Fatalf("expected updated user after update finished, got %+v", got)
	}
}

func TestGetFallsBackToStoreWhenRedisIsDown(t *testing.T) {
	ctx := context.Background()
	svc, repo, mr := newCachedService(t)
	u := seedUser(t, repo.UserRepository, "a@x.com", "1", "pw")
	mr.Close()

	got, err := svc.Get(ctx, u.ID)
	if err != nil {
		t.Fatalf("expected store fallback, got %v", err)
	}
	if got.ID != u.ID {
		t.Fatalf("unexpected user %+v", got)
	}
	if err := svc.Delete(ctx, u.ID); err != nil {
		t.Fatalf("delete must not fail on cache errors: %v", err)
	}
}
