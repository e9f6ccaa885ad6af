package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/estate-service/internal/models"
)

// SessionManager keeps the open sessions of every signed-in caller
type SessionManager struct {
	users       ProfileSource
	superAdmins SuperAdminList
	ttl         time.Duration
	base        context.Context
	now         func() time.Time

	sessions map[string]*Session // session ID -> Session
	mu       sync.RWMutex
}

// NewSessionManager creates a manager whose session subscriptions live as
// long as base.
func NewSessionManager(base context.Context, users ProfileSource, superAdmins SuperAdminList, ttl time.Duration) *SessionManager {
	return &SessionManager{
		users:       users,
		superAdmins: superAdmins,
		ttl:         ttl,
		base:        base,
		now:         time.Now,
		sessions:    make(map[string]*Session),
	}
}

// Open creates and starts a session for identity
func (m *SessionManager) Open(identity models.Identity) *Session {
	s := NewSession(uuid.NewString(), identity, m.users, m.superAdmins, m.now().Add(m.ttl))
	s.Start(m.base)

	m.mu.Lock()
	m.sessions[s.ID()] = s
	m.mu.Unlock()
	return s
}

// Get returns a live, unexpired session
func (m *SessionManager) Get(sessionID string) (*Session, bool) {
	m.mu.RLock()
	s, exists := m.sessions[sessionID]
	m.mu.RUnlock()
	if !exists {
		return nil, false
	}
	if m.now().After(s.ExpiresAt()) {
		m.Close(sessionID)
		return nil, false
	}
	return s, true
}

// Extend pushes the expiry of an existing session one TTL into the future
func (m *SessionManager) Extend(sessionID string) (*Session, bool) {
	s, ok := m.Get(sessionID)
	if !ok {
		return nil, false
	}
	s.extend(m.now().Add(m.ttl))
	return s, true
}

// Close removes the session and tears down its subscription
func (m *SessionManager) Close(sessionID string) {
	m.mu.Lock()
	s, exists := m.sessions[sessionID]
	delete(m.sessions, sessionID)
	m.mu.Unlock()

	if exists {
		s.Close()
	}
}

// CloseUser closes every session belonging to userID
func (m *SessionManager) CloseUser(userID string) int {
	m.mu.Lock()
	var closing []*Session
	for id, s := range m.sessions {
		if s.Identity().UID == userID {
			closing = append(closing, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range closing {
		s.Close()
	}
	return len(closing)
}

// Len returns the number of tracked sessions
func (m *SessionManager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Run removes expired sessions periodically until ctx is done, then
// closes whatever is left.
func (m *SessionManager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.closeAll()
			return
		case <-ticker.C:
			m.sweep()
		}
	}
}

func (m *SessionManager) sweep() int {
	now := m.now()
	m.mu.Lock()
	var expired []*Session
	for id, s := range m.sessions {
		if now.After(s.ExpiresAt()) {
			expired = append(expired, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range expired {
		s.Close()
	}
	return len(expired)
}

func (m *SessionManager) closeAll() {
	m.mu.Lock()
	all := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range all {
		s.Close()
	}
}
