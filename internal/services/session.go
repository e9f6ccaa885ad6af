package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/yourusername/estate-service/internal/models"
	"github.com/yourusername/estate-service/internal/repository"
)

// DeriveState computes what the caller can do from their identity and
// profile document. A nil profile (new signer, or a failed subscription)
// yields an authenticated but incomplete, unprivileged state.
func DeriveState(identity *models.Identity, profile *models.User) models.SessionState {
	state := models.SessionState{
		Identity:        identity,
		IsAuthenticated: identity != nil,
	}
	if identity == nil || profile == nil {
		return state
	}

	role := profile.Role
	if !role.Valid() {
		role = models.RoleUser
	}
	state.Profile = profile
	state.Role = role
	state.IsBlocked = profile.Blocked
	state.HasCompleteProfile = profile.HasCompleteProfile()
	state.IsAdmin = role.AtLeast(models.RoleAdmin)
	state.IsSuperAdmin = role == models.RoleSuperAdmin
	state.IsBroker = role.AtLeast(models.RoleBroker)
	return state
}

// SuperAdminList is the allow-list of emails that always hold the top tier
type SuperAdminList map[string]bool

func NewSuperAdminList(emails []string) SuperAdminList {
	list := make(SuperAdminList, len(emails))
	for _, e := range emails {
		list[strings.ToLower(strings.TrimSpace(e))] = true
	}
	return list
}

func (l SuperAdminList) Contains(email string) bool {
	return l[strings.ToLower(strings.TrimSpace(email))]
}

// Session is one signed-in caller. It owns a live subscription to the
// caller's user document from Start until Close.
type Session struct {
	id          string
	identity    models.Identity
	users       ProfileSource
	superAdmins SuperAdminList

	mu        sync.RWMutex
	ctx       context.Context
	profile   *models.User
	expiresAt time.Time
	stop      func()
	closed    bool
}

func NewSession(id string, identity models.Identity, users ProfileSource, superAdmins SuperAdminList, expiresAt time.Time) *Session {
	return &Session{
		id:          id,
		identity:    identity,
		users:       users,
		superAdmins: superAdmins,
		ctx:         context.Background(),
		expiresAt:   expiresAt,
	}
}

func (s *Session) ID() string                 { return s.id }
func (s *Session) Identity() models.Identity { return s.identity }

func (s *Session) ExpiresAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expiresAt
}

func (s *Session) extend(expiresAt time.Time) {
	s.mu.Lock()
	s.expiresAt = expiresAt
	s.mu.Unlock()
}

// Start opens the profile subscription. ctx bounds the subscription's
// lifetime; it should outlive any single request.
func (s *Session) Start(ctx context.Context) {
	s.mu.Lock()
	if s.closed || s.stop != nil {
		s.mu.Unlock()
		return
	}
	s.ctx = ctx
	s.mu.Unlock()

	stop := s.users.WatchUser(ctx, s.identity.UID, s.handleProfile, s.handleError)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		stop()
		return
	}
	s.stop = stop
	s.mu.Unlock()
}

// Close tears down the subscription. It is safe to call more than once.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	stop := s.stop
	s.stop = nil
	s.mu.Unlock()

	if stop != nil {
		stop()
	}
}

// State returns the current derived state
func (s *Session) State() models.SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	identity := s.identity
	return DeriveState(&identity, s.profile)
}

// Refresh re-reads the profile document right away, so a caller that just
// wrote its own profile observes the result without waiting for the
// subscription to deliver it.
func (s *Session) Refresh(ctx context.Context) (models.SessionState, error) {
	user, err := s.users.GetUser(ctx, s.identity.UID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		log.Printf("session %s: refresh failed: %v", s.id, err)
		return s.State(), err
	}

	s.mu.Lock()
	// The subscription may have delivered something newer meanwhile.
	if user == nil || s.profile == nil || !user.UpdatedAt.Before(s.profile.UpdatedAt) {
		s.profile = user
	}
	current := s.profile
	s.mu.Unlock()

	s.promote(ctx, current)
	return s.State(), nil
}

func (s *Session) handleProfile(user *models.User) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	// A snapshot older than what Refresh already loaded is stale.
	if user != nil && s.profile != nil && user.UpdatedAt.Before(s.profile.UpdatedAt) {
		s.mu.Unlock()
		return
	}
	s.profile = user
	ctx := s.ctx
	s.mu.Unlock()

	s.promote(ctx, user)
}

func (s *Session) handleError(err error) {
	log.Printf("session %s: profile subscription error: %v", s.id, err)
	s.mu.Lock()
	s.profile = nil
	s.mu.Unlock()
}

// promote writes role=superadmin for allow-listed callers that do not hold
// it yet. Running it again once the role is stored is a no-op.
func (s *Session) promote(ctx context.Context, user *models.User) {
	if user == nil || user.Role == models.RoleSuperAdmin || !s.superAdmins.Contains(s.identity.Email) {
		return
	}

	if err := s.users.UpdateRole(ctx, s.identity.UID, models.RoleSuperAdmin); err != nil {
		log.Printf("session %s: superadmin promotion failed: %v", s.id, err)
		return
	}
	log.Printf("session %s: promoted %s to superadmin", s.id, s.identity.Email)

	s.mu.Lock()
	if s.profile != nil && s.profile.Role != models.RoleSuperAdmin {
		p := *s.profile
		p.Role = models.RoleSuperAdmin
		s.profile = &p
	}
	s.mu.Unlock()
}
