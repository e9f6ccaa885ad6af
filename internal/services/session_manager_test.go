package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/estate-service/internal/models"
)

func newTestManager(store *fakeUserStore, ttl time.Duration) (*SessionManager, *time.Time) {
	m := NewSessionManager(context.Background(), store, nil, ttl)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }
	return m, &now
}

func TestSessionManager_OpenAndGet(t *testing.T) {
	store := newFakeUserStore(completeUser("u1", models.RoleUser))
	m, _ := newTestManager(store, time.Hour)

	s := m.Open(identityFor("u1"))
	got, ok := m.Get(s.ID())
	require.True(t, ok)
	assert.Same(t, s, got)
	assert.Equal(t, 1, store.watcherCount("u1"))
	assert.Equal(t, 1, m.Len())
}

func TestSessionManager_ExpiredSessionIsClosed(t *testing.T) {
	store := newFakeUserStore(completeUser("u1", models.RoleUser))
	m, now := newTestManager(store, time.Hour)

	s := m.Open(identityFor("u1"))
	*now = now.Add(2 * time.Hour)

	_, ok := m.Get(s.ID())
	assert.False(t, ok)
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, 0, store.watcherCount("u1"))
}

func TestSessionManager_Extend(t *testing.T) {
	store := newFakeUserStore(completeUser("u1", models.RoleUser))
	m, now := newTestManager(store, time.Hour)

	s := m.Open(identityFor("u1"))
	*now = now.Add(50 * time.Minute)
	_, ok := m.Extend(s.ID())
	require.True(t, ok)

	*now = now.Add(50 * time.Minute)
	_, ok = m.Get(s.ID())
	assert.True(t, ok)
}

func TestSessionManager_SweepAndCloseUser(t *testing.T) {
	store := newFakeUserStore(completeUser("u1", models.RoleUser), completeUser("u2", models.RoleUser))
	m, now := newTestManager(store, time.Hour)

	m.Open(identityFor("u1"))
	m.Open(identityFor("u1"))
	*now = now.Add(30 * time.Minute)
	m.Open(identityFor("u2"))

	assert.Equal(t, 2, m.CloseUser("u1"))
	assert.Equal(t, 0, store.watcherCount("u1"))

	*now = now.Add(45 * time.Minute)
	assert.Equal(t, 0, m.sweep())
	*now = now.Add(time.Hour)
	assert.Equal(t, 1, m.sweep())
	assert.Equal(t, 0, m.Len())
}

func TestSessionManager_RunClosesAllOnCancel(t *testing.T) {
	store := newFakeUserStore(completeUser("u1", models.RoleUser))
	m, _ := newTestManager(store, time.Hour)
	m.Open(identityFor("u1"))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx, time.Hour)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, 0, store.watcherCount("u1"))
}
