package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/yourusername/estate-service/internal/models"
	"github.com/yourusername/estate-service/pkg/utils"
)

type UserService struct {
	userRepo    UserStore
	supportRepo SupportStore
}

func NewUserService(userRepo UserStore, supportRepo SupportStore) *UserService {
	return &UserService{
		userRepo:    userRepo,
		supportRepo: supportRepo,
	}
}

// SaveProfile writes the caller's profile and re-reads it through the
// session so the returned state already reflects the write
func (s *UserService) SaveProfile(ctx context.Context, session *Session, req *models.UpdateProfileRequest) (models.SessionState, error) {
	fields := map[string]string{}
	if err := utils.ValidateName(req.Name); err != nil {
		fields["name"] = err.Error()
	}
	if err := utils.ValidateMobile(req.Mobile); err != nil {
		fields["mobile"] = err.Error()
	}
	if len(fields) > 0 {
		return session.State(), &ValidationError{Fields: fields}
	}

	identity := session.Identity()
	user := &models.User{
		UserID:   identity.UID,
		Name:     strings.TrimSpace(req.Name),
		Email:    identity.Email,
		Mobile:   strings.TrimSpace(req.Mobile),
		PhotoURL: req.PhotoURL,
	}
	if user.PhotoURL == "" {
		user.PhotoURL = identity.PhotoURL
	}

	if err := s.userRepo.UpsertProfile(ctx, user); err != nil {
		log.Printf("save profile %s: %v", identity.UID, err)
		return session.State(), fmt.Errorf("save profile: %w", err)
	}

	return session.Refresh(ctx)
}

// ContactSupport records a support message; blocked callers may use it
func (s *UserService) ContactSupport(ctx context.Context, session *Session, message string) (*models.SupportRequest, error) {
	identity := session.Identity()
	req := &models.SupportRequest{
		UserID:    identity.UID,
		Email:     identity.Email,
		Message:   strings.TrimSpace(message),
		CreatedAt: time.Now(),
	}

	id, err := s.supportRepo.CreateSupportRequest(ctx, req)
	if err != nil {
		log.Printf("contact support %s: %v", identity.UID, err)
		return nil, fmt.Errorf("contact support: %w", err)
	}
	req.RequestID = id
	return req, nil
}
