package system

import (
	"context"
	"errors"
	"sync"
	"testing"

	"accrete-server/internal/accrete"
	"accrete-server/internal/shared/config"
	"accrete-server/internal/shared/database"
	apperrors "accrete-server/internal/shared/errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type fakeStore struct {
	mu       sync.Mutex
	systems  map[uuid.UUID]*System
	names    map[string]bool
	listArgs [2]int
	failGet  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{systems: map[uuid.UUID]*System{}, names: map[string]bool{}}
}

func (f *fakeStore) CreateSystem(_ context.Context, sys *System, _ *database.Tx) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := sys.CreatedBy + "/" + sys.Name
	if f.names[key] {
		return &pq.Error{Code: "23505"}
	}
	f.names[key] = true
	cp := *sys
	cp.Bodies = nil
	f.systems[sys.ID] = &cp
	return nil
}

func (f *fakeStore) GetSystemByID(_ context.Context, id uuid.UUID) (*System, error) {
	if f.failGet != nil {
		return nil, f.failGet
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	sys, ok := f.systems[id]
	if !ok {
		return nil, nil
	}
	cp := *sys
	return &cp, nil
}

func (f *fakeStore) ListSystems(_ context.Context, limit, offset int) ([]System, error) {
	f.listArgs = [2]int{limit, offset}
	return nil, nil
}

func (f *fakeStore) DeleteSystem(_ context.Context, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.systems[id]; !ok {
		return false, nil
	}
	delete(f.systems, id)
	return true, nil
}

type fakeBodies struct {
	saved map[uuid.UUID][]accrete.Body
	fail  error
}

func (f *fakeBodies) SaveBodies(_ context.Context, id uuid.UUID, _ string, bodies []accrete.Body, _ *database.Tx) (int, error) {
	if f.fail != nil {
		return 0, f.fail
	}
	f.saved[id] = bodies
	return len(bodies), nil
}

func (f *fakeBodies) GetTree(_ context.Context, id uuid.UUID) ([]accrete.Body, error) {
	return f.saved[id], nil
}

type fakeTx struct{ calls int }

func (f *fakeTx) WithTx(_ context.Context, fn func(tx *database.Tx) error) error {
	f.calls++
	return fn(nil)
}

type countingCache struct {
	Cache
	gets, hits, sets int
}

func (c *countingCache) Get(ctx context.Context, key string) (*accrete.System, bool) {
	c.gets++
	sys, ok := c.Cache.Get(ctx, key)
	if ok {
		c.hits++
	}
	return sys, ok
}

func (c *countingCache) Set(ctx context.Context, key string, sys *accrete.System) {
	c.sets++
	c.Cache.Set(ctx, key, sys)
}

var testLimits = config.GenerationConfig{MaxBodiesLimit: 50, CacheTTLMinutes: 60}

func newTestService(t *testing.T) (*Service, *fakeStore, *fakeBodies, *countingCache) {
	t.Helper()
	store := newFakeStore()
	bodies := &fakeBodies{saved: map[uuid.UUID][]accrete.Body{}}
	cache := &countingCache{Cache: newMemoryCache(0, 16)}
	svc := NewService(store, bodies, &fakeTx{}, cache, testLimits, discardLogger())
	return svc, store, bodies, cache
}

func ptr[T any](v T) *T { return &v }

func TestService_GenerateCaches(t *testing.T) {
	svc, _, _, cache := newTestService(t)
	ctx := context.Background()
	p := GenerateParams{Seed: 42, MaxBodies: 10}

	first, err := svc.Generate(ctx, p)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	second, err := svc.Generate(ctx, p)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if first != second {
		t.Error("second call was not served from cache")
	}
	if cache.hits != 1 || cache.sets != 1 {
		t.Errorf("hits = %d sets = %d, want 1 and 1", cache.hits, cache.sets)
	}
	if len(first.Bodies) == 0 || len(first.Bodies) > 10 {
		t.Errorf("bodies = %d, want 1..10", len(first.Bodies))
	}
}

func TestService_GenerateValidation(t *testing.T) {
	svc, _, _, cache := newTestService(t)

	tests := []struct {
		name      string
		maxBodies int
	}{
		{"negative", -1},
		{"over limit", testLimits.MaxBodiesLimit + 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Generate(context.Background(), GenerateParams{Seed: 1, MaxBodies: tt.maxBodies})
			if !apperrors.Is(err, apperrors.ErrorTypeValidation) {
				t.Fatalf("error = %v, want validation", err)
			}
		})
	}
	if cache.gets != 0 {
		t.Error("invalid params reached the cache")
	}
}

func TestService_Params(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	svc.limits.DefaultIncludeMoons = true

	p := svc.Params(CreateRequest{Seed: ptr(int64(7)), MaxBodies: ptr(3)})
	if p.Seed != 7 || p.MaxBodies != 3 || !p.IncludeMoons {
		t.Errorf("Params() = %+v", p)
	}

	p = svc.Params(CreateRequest{IncludeMoons: ptr(false)})
	if p.IncludeMoons || p.MaxBodies != 0 {
		t.Errorf("Params() = %+v", p)
	}
}

func TestService_CreateAndGet(t *testing.T) {
	svc, _, bodies, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateRequest{Name: "  Home  ", Seed: ptr(int64(1)), MaxBodies: ptr(5)}, "octocat")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.Name != "Home" || created.CreatedBy != "octocat" {
		t.Errorf("Create() = %+v", created)
	}
	if created.BodyCount != len(bodies.saved[created.ID]) {
		t.Errorf("BodyCount = %d, saved %d", created.BodyCount, len(bodies.saved[created.ID]))
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Seed != 1 || len(got.Bodies) != created.BodyCount {
		t.Errorf("Get() = seed %d bodies %d", got.Seed, len(got.Bodies))
	}
}

func TestService_CreateErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("duplicate name", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)
		req := CreateRequest{Name: "Twin", Seed: ptr(int64(2)), MaxBodies: ptr(3)}
		if _, err := svc.Create(ctx, req, "octocat"); err != nil {
			t.Fatal(err)
		}
		_, err := svc.Create(ctx, req, "octocat")
		if !apperrors.Is(err, apperrors.ErrorTypeConflict) {
			t.Fatalf("error = %v, want conflict", err)
		}
		if _, err := svc.Create(ctx, req, "someone-else"); err != nil {
			t.Fatalf("other owner: %v", err)
		}
	})

	t.Run("long name", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)
		long := make([]byte, maxNameLength+1)
		for i := range long {
			long[i] = 'a'
		}
		_, err := svc.Create(ctx, CreateRequest{Name: string(long), Seed: ptr(int64(1))}, "octocat")
		if !apperrors.Is(err, apperrors.ErrorTypeValidation) {
			t.Fatalf("error = %v, want validation", err)
		}
	})

	t.Run("body save fails", func(t *testing.T) {
		svc, _, bodies, _ := newTestService(t)
		bodies.fail = errors.New("disk full")
		_, err := svc.Create(ctx, CreateRequest{Seed: ptr(int64(1)), MaxBodies: ptr(2)}, "octocat")
		if !apperrors.Is(err, apperrors.ErrorTypeInternal) {
			t.Fatalf("error = %v, want internal", err)
		}
	})

	t.Run("default name", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)
		sys, err := svc.Create(ctx, CreateRequest{Seed: ptr(int64(30)), MaxBodies: ptr(2)}, "octocat")
		if err != nil {
			t.Fatal(err)
		}
		if sys.Name != DefaultName(30) {
			t.Errorf("Name = %q, want %q", sys.Name, DefaultName(30))
		}
	})
}

func TestService_GetDelete(t *testing.T) {
	svc, store, _, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Get(ctx, uuid.New()); !apperrors.Is(err, apperrors.ErrorTypeNotFound) {
		t.Fatalf("Get() error = %v, want not found", err)
	}
	if err := svc.Delete(ctx, uuid.New()); !apperrors.Is(err, apperrors.ErrorTypeNotFound) {
		t.Fatalf("Delete() error = %v, want not found", err)
	}

	sys, err := svc.Create(ctx, CreateRequest{Seed: ptr(int64(3)), MaxBodies: ptr(2)}, "octocat")
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete(ctx, sys.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	store.failGet = errors.New("connection reset")
	if _, err := svc.Get(ctx, sys.ID); !apperrors.Is(err, apperrors.ErrorTypeInternal) {
		t.Fatalf("Get() error = %v, want internal", err)
	}
}

func TestService_List(t *testing.T) {
	svc, store, _, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name          string
		limit, offset int
		want          [2]int
		wantErr       bool
	}{
		{"default", 0, 0, [2]int{defaultListLimit, 0}, false},
		{"capped", 1000, 5, [2]int{maxListLimit, 5}, false},
		{"explicit", 10, 20, [2]int{10, 20}, false},
		{"negative", -1, 0, [2]int{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.List(ctx, tt.limit, tt.offset)
			if tt.wantErr {
				if !apperrors.Is(err, apperrors.ErrorTypeValidation) {
					t.Fatalf("error = %v, want validation", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got == nil {
				t.Error("List() returned nil slice")
			}
			if store.listArgs != tt.want {
				t.Errorf("store args = %v, want %v", store.listArgs, tt.want)
			}
		})
	}
}

func TestDefaultName(t *testing.T) {
	if got := DefaultName(0); got != "Altair-0" {
		t.Errorf("DefaultName(0) = %q", got)
	}
	if DefaultName(12345) != DefaultName(12345) {
		t.Error("DefaultName is not deterministic")
	}
}

func TestCacheKey(t *testing.T) {
	a := GenerateParams{Seed: 1, MaxBodies: 0, IncludeMoons: true}.CacheKey()
	b := GenerateParams{Seed: 1, MaxBodies: 0, IncludeMoons: false}.CacheKey()
	if a == b {
		t.Error("moons flag not part of the cache key")
	}
	if a != "accrete:system:v1:1:0:true" {
		t.Errorf("CacheKey() = %q", a)
	}
}
