package session

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-site-backend/client"
	"github.com/rpupo63/portfolio-site-backend/localcache"
)

const defaultInactivityTimeout = 15 * time.Minute

// Manager owns the admin session: the bearer token lives in a cache slot and
// is discarded after a period of inactivity. Tokens themselves expire
// server-side; the inactivity watchdog just shortens the window on shared
// machines.
type Manager struct {
	api      *client.Client
	cache    *localcache.Store
	timeout  time.Duration
	onExpire func()
	logger   zerolog.Logger

	mu    sync.Mutex
	timer *time.Timer
}

type Option func(*Manager)

// WithInactivityTimeout overrides the default 15 minute watchdog.
func WithInactivityTimeout(timeout time.Duration) Option {
	return func(m *Manager) {
		m.timeout = timeout
	}
}

// WithExpireHook registers a callback invoked after the watchdog clears the
// token.
func WithExpireHook(hook func()) Option {
	return func(m *Manager) {
		m.onExpire = hook
	}
}

func NewManager(api *client.Client, cache *localcache.Store, opts ...Option) *Manager {
	m := &Manager{
		api:     api,
		cache:   cache,
		timeout: defaultInactivityTimeout,
		logger:  log.With().Str("component", "session").Logger(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Token returns the stored bearer token, or "" when logged out.
func (m *Manager) Token() string {
	token, err := m.cache.Token()
	if err != nil {
		m.logger.Error().Err(err).Msg("failed to read token slot")
		return ""
	}
	return token
}

// Login exchanges credentials for a token, stores it and arms the watchdog.
func (m *Manager) Login(ctx context.Context, username, password string) (*client.AuthResult, error) {
	res, err := m.api.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if err := m.cache.SetToken(res.Token); err != nil {
		return nil, err
	}
	m.Touch()
	return res, nil
}

// Register creates a new admin credential and signs in as it.
func (m *Manager) Register(ctx context.Context, username, email, password string) (*client.AuthResult, error) {
	res, err := m.api.Register(ctx, username, email, password)
	if err != nil {
		return nil, err
	}
	if err := m.cache.SetToken(res.Token); err != nil {
		return nil, err
	}
	m.Touch()
	return res, nil
}

// Verify checks the stored token against the server and counts as activity
// when it is still good.
func (m *Manager) Verify(ctx context.Context) error {
	if err := m.api.Verify(ctx); err != nil {
		return err
	}
	m.Touch()
	return nil
}

// Touch resets the inactivity watchdog. A touch with no stored token does
// nothing.
func (m *Manager) Touch() {
	if m.Token() == "" {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.timer != nil {
		m.timer.Stop()
	}
	m.timer = time.AfterFunc(m.timeout, m.expire)
}

func (m *Manager) expire() {
	m.logger.Info().Msg("session expired after inactivity")
	if err := m.cache.ClearToken(); err != nil {
		m.logger.Error().Err(err).Msg("failed to clear token slot")
	}
	if m.onExpire != nil {
		m.onExpire()
	}
}

// Logout clears the stored token and disarms the watchdog.
func (m *Manager) Logout() error {
	m.mu.Lock()
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.mu.Unlock()

	return m.cache.ClearToken()
}

// Close disarms the watchdog without touching the stored token.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}
