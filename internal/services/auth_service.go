package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/yourusername/estate-service/internal/models"
	"github.com/yourusername/estate-service/internal/repository"
)

type AuthService struct {
	identity    IdentityVerifier
	userRepo    UserStore
	sessions    *SessionManager
	tokens      *TokenIssuer
	superAdmins SuperAdminList
}

func NewAuthService(identity IdentityVerifier, userRepo UserStore, sessions *SessionManager, tokens *TokenIssuer, superAdmins SuperAdminList) *AuthService {
	return &AuthService{
		identity:    identity,
		userRepo:    userRepo,
		sessions:    sessions,
		tokens:      tokens,
		superAdmins: superAdmins,
	}
}

// SignIn verifies the identity token, creates the user document on first
// sign-in and opens a session
func (s *AuthService) SignIn(ctx context.Context, idToken string) (*models.SignInResponse, error) {
	identity, err := s.identity.VerifyIDToken(ctx, idToken)
	if err != nil {
		log.Printf("sign-in: %v", err)
		return nil, ErrInvalidToken
	}

	if err := s.ensureUser(ctx, identity); err != nil {
		log.Printf("sign-in: ensure user %s: %v", identity.UID, err)
		return nil, err
	}

	session := s.sessions.Open(*identity)
	state, err := session.Refresh(ctx)
	if err != nil {
		s.sessions.Close(session.ID())
		return nil, err
	}

	token, err := s.tokens.Issue(session.ID(), identity.UID, session.ExpiresAt())
	if err != nil {
		s.sessions.Close(session.ID())
		return nil, err
	}

	return &models.SignInResponse{
		Token:     token,
		ExpiresAt: session.ExpiresAt(),
		State:     state,
	}, nil
}

// ensureUser creates the profile document for a first-time signer
func (s *AuthService) ensureUser(ctx context.Context, identity *models.Identity) error {
	_, err := s.userRepo.GetUser(ctx, identity.UID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	role := models.RoleUser
	if s.superAdmins.Contains(identity.Email) {
		role = models.RoleSuperAdmin
	}

	now := time.Now()
	return s.userRepo.CreateUser(ctx, &models.User{
		UserID:    identity.UID,
		Name:      identity.DisplayName,
		Email:     identity.Email,
		PhotoURL:  identity.PhotoURL,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

// Resolve maps a bearer token onto its live session
func (s *AuthService) Resolve(token string) (*Session, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSessionNotFound, err)
	}
	session, ok := s.sessions.Get(claims.SessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// RefreshToken extends the session and issues a token with the new expiry
func (s *AuthService) RefreshToken(sessionID string) (string, time.Time, error) {
	session, ok := s.sessions.Extend(sessionID)
	if !ok {
		return "", time.Time{}, ErrSessionNotFound
	}
	token, err := s.tokens.Issue(session.ID(), session.Identity().UID, session.ExpiresAt())
	if err != nil {
		return "", time.Time{}, err
	}
	return token, session.ExpiresAt(), nil
}

// SignOut closes the session and its profile subscription
func (s *AuthService) SignOut(sessionID string) {
	s.sessions.Close(sessionID)
}

// UpdateFCMToken updates the user's FCM token
func (s *AuthService) UpdateFCMToken(ctx context.Context, userID, fcmToken string) error {
	if fcmToken == "" {
		return &ValidationError{Fields: map[string]string{"fcmToken": "cannot be empty"}}
	}
	return s.userRepo.UpdateFCMToken(ctx, userID, fcmToken)
}
