package session

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/portfolio-site-backend/localcache"
)

func newTestCache(t *testing.T) *localcache.Store {
	t.Helper()

	store, err := localcache.Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestWatchdogClearsTokenAfterInactivity(t *testing.T) {
	cache := newTestCache(t)
	expired := make(chan struct{})

	m := NewManager(nil, cache,
		WithInactivityTimeout(30*time.Millisecond),
		WithExpireHook(func() { close(expired) }),
	)
	defer m.Close()

	require.NoError(t, cache.SetToken("tok"))
	m.Touch()

	select {
	case <-expired:
	case <-time.After(2 * time.Second):
		t.Fatal("watchdog never fired")
	}
	assert.Empty(t, m.Token())
}

func TestTouchExtendsTheSession(t *testing.T) {
	cache := newTestCache(t)

	m := NewManager(nil, cache, WithInactivityTimeout(80*time.Millisecond))
	defer m.Close()

	require.NoError(t, cache.SetToken("tok"))
	m.Touch()

	for i := 0; i < 4; i++ {
		time.Sleep(40 * time.Millisecond)
		m.Touch()
	}
	assert.Equal(t, "tok", m.Token(), "touched session must stay alive past the base timeout")
}

func TestTouchWithoutTokenDoesNotArmWatchdog(t *testing.T) {
	cache := newTestCache(t)

	m := NewManager(nil, cache, WithInactivityTimeout(10*time.Millisecond))
	defer m.Close()

	m.Touch()
	time.Sleep(30 * time.Millisecond)

	m.mu.Lock()
	defer m.mu.Unlock()
	assert.Nil(t, m.timer)
}

func TestLogoutClearsTokenAndDisarmsWatchdog(t *testing.T) {
	cache := newTestCache(t)
	fired := false

	m := NewManager(nil, cache,
		WithInactivityTimeout(20*time.Millisecond),
		WithExpireHook(func() { fired = true }),
	)
	defer m.Close()

	require.NoError(t, cache.SetToken("tok"))
	m.Touch()
	require.NoError(t, m.Logout())

	assert.Empty(t, m.Token())
	time.Sleep(60 * time.Millisecond)
	assert.False(t, fired, "a stopped watchdog must not fire")
}
