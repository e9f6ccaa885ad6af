package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/yourusername/estate-service/internal/models"
	"github.com/yourusername/estate-service/internal/queue"
	"github.com/yourusername/estate-service/internal/repository"
)

// UnknownRequestUser is shown for requests whose user document is missing
var UnknownRequestUser = models.RequestUser{
	Name:  "Unknown User",
	Email: "unknown@example.com",
	Role:  models.RoleUser,
}

type RoleRequestService struct {
	requestRepo RoleRequestStore
	userRepo    UserStore
	publisher   EventPublisher
	now         func() time.Time
}

// NewRoleRequestService creates the service. publisher may be nil.
func NewRoleRequestService(requestRepo RoleRequestStore, userRepo UserStore, publisher EventPublisher) *RoleRequestService {
	return &RoleRequestService{
		requestRepo: requestRepo,
		userRepo:    userRepo,
		publisher:   publisher,
		now:         time.Now,
	}
}

// CheckExisting reports whether userID already has a pending request for role
func (s *RoleRequestService) CheckExisting(ctx context.Context, userID string, role models.Role) (bool, error) {
	existing, err := s.requestRepo.FindPending(ctx, userID, role)
	if err != nil {
		return false, err
	}
	return existing != nil, nil
}

// Submit files a pending request. The duplicate check is advisory: two
// concurrent submissions can both pass it.
func (s *RoleRequestService) Submit(ctx context.Context, actor Actor, role models.Role) (*models.RoleRequest, error) {
	if !role.Requestable() || role.Rank() <= actor.Role.Rank() {
		return nil, ErrInvalidRole
	}

	exists, err := s.CheckExisting(ctx, actor.UserID, role)
	if err != nil {
		log.Printf("check role request %s/%s: %v", actor.UserID, role, err)
		return nil, fmt.Errorf("check existing request: %w", err)
	}
	if exists {
		return nil, ErrDuplicateRequest
	}

	req := &models.RoleRequest{
		UserID:        actor.UserID,
		RequestedRole: role,
		Status:        models.StatusPending,
		CreatedAt:     s.now(),
	}
	id, err := s.requestRepo.CreateRoleRequest(ctx, req)
	if err != nil {
		log.Printf("create role request %s/%s: %v", actor.UserID, role, err)
		return nil, fmt.Errorf("create role request: %w", err)
	}
	req.RequestID = id
	return req, nil
}

// List returns requests (all when status is empty) joined with their
// requester, newest first
func (s *RoleRequestService) List(ctx context.Context, status models.RequestStatus) ([]models.RoleRequestView, error) {
	requests, err := s.requestRepo.ListRoleRequests(ctx, status)
	if err != nil {
		log.Printf("list role requests: %v", err)
		return nil, fmt.Errorf("list role requests: %w", err)
	}

	users := make(map[string]models.RequestUser)
	views := make([]models.RoleRequestView, 0, len(requests))
	for _, req := range requests {
		u, ok := users[req.UserID]
		if !ok {
			u = s.requestUser(ctx, req.UserID)
			users[req.UserID] = u
		}
		views = append(views, models.RoleRequestView{RoleRequest: *req, User: u})
	}
	return views, nil
}

func (s *RoleRequestService) requestUser(ctx context.Context, userID string) models.RequestUser {
	user, err := s.userRepo.GetUser(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			log.Printf("load requester %s: %v", userID, err)
		}
		return UnknownRequestUser
	}
	return models.RequestUser{Name: user.Name, Email: user.Email, Role: user.Role}
}

// ListMine returns the caller's own requests
func (s *RoleRequestService) ListMine(ctx context.Context, userID string) ([]*models.RoleRequest, error) {
	return s.requestRepo.ListByUser(ctx, userID)
}

// CountPending is used by the admin dashboard
func (s *RoleRequestService) CountPending(ctx context.Context) (int, error) {
	pending, err := s.requestRepo.ListRoleRequests(ctx, models.StatusPending)
	if err != nil {
		return 0, err
	}
	return len(pending), nil
}

// Process approves or rejects a pending request. Approval is two writes
// (request status, then user role) without a transaction. If the role write
// fails the request is put back to pending; if that fails too the caller
// gets a *PartialApplyError.
func (s *RoleRequestService) Process(ctx context.Context, actor Actor, requestID string, status models.RequestStatus) (*models.RoleRequest, error) {
	if status != models.StatusApproved && status != models.StatusRejected {
		return nil, &ValidationError{Fields: map[string]string{"status": "must be approved or rejected"}}
	}
	if !actor.IsAdmin() {
		return nil, ErrInsufficientRole
	}

	req, err := s.requestRepo.GetRoleRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != models.StatusPending {
		return nil, ErrNotPending
	}
	if status == models.StatusApproved && req.RequestedRole.Rank() > actor.Role.Rank() {
		return nil, ErrInsufficientRole
	}

	processedAt := s.now()
	if err := s.requestRepo.UpdateStatus(ctx, requestID, status, actor.UserID, &processedAt); err != nil {
		log.Printf("process role request %s: %v", requestID, err)
		return nil, fmt.Errorf("update request status: %w", err)
	}

	if status == models.StatusApproved {
		if err := s.applyRole(ctx, req); err != nil {
			return nil, s.compensate(ctx, requestID, err)
		}
	}

	req.Status = status
	req.ProcessedBy = actor.UserID
	req.ProcessedAt = &processedAt

	s.publish(ctx, req)
	return req, nil
}

// applyRole writes the requested role unless the user already holds it or
// something higher
func (s *RoleRequestService) applyRole(ctx context.Context, req *models.RoleRequest) error {
	user, err := s.userRepo.GetUser(ctx, req.UserID)
	if err != nil {
		return fmt.Errorf("load user %s: %w", req.UserID, err)
	}
	if user.Role.Rank() >= req.RequestedRole.Rank() {
		return nil
	}
	if err := s.userRepo.UpdateRole(ctx, req.UserID, req.RequestedRole); err != nil {
		return fmt.Errorf("update role of %s: %w", req.UserID, err)
	}
	return nil
}

func (s *RoleRequestService) compensate(ctx context.Context, requestID string, cause error) error {
	log.Printf("approve role request %s: %v; reverting to pending", requestID, cause)

	if err := s.requestRepo.UpdateStatus(ctx, requestID, models.StatusPending, "", nil); err != nil {
		log.Printf("❌ revert role request %s: %v", requestID, err)
		return &PartialApplyError{
			Operation: "approve role request " + requestID,
			Applied:   []string{"request status"},
			Err:       errors.Join(cause, err),
		}
	}
	return fmt.Errorf("approve role request: %w", cause)
}

func (s *RoleRequestService) publish(ctx context.Context, req *models.RoleRequest) {
	if s.publisher == nil {
		return
	}
	event := queue.RoleRequestProcessedEvent{
		RequestID:     req.RequestID,
		UserID:        req.UserID,
		RequestedRole: string(req.RequestedRole),
		Status:        string(req.Status),
		ProcessedBy:   req.ProcessedBy,
		ProcessedAt:   *req.ProcessedAt,
	}
	if err := s.publisher.PublishRoleRequestProcessed(ctx, event); err != nil {
		log.Printf("⚠️ publish role request %s: %v", req.RequestID, err)
	}
}
