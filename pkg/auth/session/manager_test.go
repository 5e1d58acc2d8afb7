package session

import (
	"context"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"
)

type memoryStore struct {
	values map[string]string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: map[string]string{}}
}

func (m *memoryStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	m.values[key] = "1"
	_ = value
	return nil
}

func (m *memoryStore) Get(_ context.Context, key string) (string, error) {
	v, ok := m.values[key]
	if !ok {
		return "", redislib.Nil
	}
	return v, nil
}

func (m *memoryStore) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

type plainKeyer struct{}

func (plainKeyer) SessionKey(tokenID string) string { return "session:" + tokenID }

func testManager() (*Manager, *memoryStore) {
	store := newMemoryStore()
	return &Manager{store: store, keyer: plainKeyer{}, ttl: time.Hour}, store
}

func TestTrackRevokeLifecycle(t *testing.T) {
	ctx := context.Background()
	mgr, _ := testManager()

	if err := mgr.Track(ctx, "jti-1"); err != nil {
		t.Fatalf("Track returned error: %v", err)
	}

	ok, err := mgr.HasSession(ctx, "jti-1")
	if err != nil {
		t.Fatalf("HasSession returned error: %v", err)
	}
	if !ok {
		t.Fatal("session must exist after Track")
	}

	if err := mgr.Revoke(ctx, "jti-1"); err != nil {
		t.Fatalf("Revoke returned error: %v", err)
	}

	ok, err = mgr.HasSession(ctx, "jti-1")
	if err != nil {
		t.Fatalf("HasSession returned error: %v", err)
	}
	if ok {
		t.Fatal("session must be gone after Revoke")
	}
}

func TestEmptyTokenIDRejected(t *testing.T) {
	ctx := context.Background()
	mgr, _ := testManager()

	if err := mgr.Track(ctx, " "); err == nil {
		t.Error("Track accepted blank token id")
	}
	if err := mgr.Revoke(ctx, ""); err == nil {
		t.Error("Revoke accepted blank token id")
	}
	if _, err := mgr.HasSession(ctx, ""); err == nil {
		t.Error("HasSession accepted blank token id")
	}
}
