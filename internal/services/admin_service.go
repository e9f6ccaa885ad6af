package services

import (
	"context"
	"fmt"
	"log"

	"github.com/yourusername/estate-service/internal/models"
)

type AdminService struct {
	userRepo     UserStore
	supportRepo  SupportStore
	roleRequests *RoleRequestService
	auctions     *AuctionService
	properties   *PropertyService
}

func NewAdminService(userRepo UserStore, supportRepo SupportStore, roleRequests *RoleRequestService, auctions *AuctionService, properties *PropertyService) *AdminService {
	return &AdminService{
		userRepo:     userRepo,
		supportRepo:  supportRepo,
		roleRequests: roleRequests,
		auctions:     auctions,
		properties:   properties,
	}
}

func (s *AdminService) ListUsers(ctx context.Context) ([]*models.User, error) {
	users, err := s.userRepo.ListUsers(ctx)
	if err != nil {
		log.Printf("list users: %v", err)
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// SetBlocked blocks or unblocks a user. Admins may only act on lower tiers;
// a superadmin may act on anyone but themselves.
func (s *AdminService) SetBlocked(ctx context.Context, actor Actor, userID string, blocked bool) (*models.User, error) {
	if !actor.IsAdmin() {
		return nil, ErrInsufficientRole
	}
	if actor.UserID == userID {
		return nil, ErrSelfAction
	}

	target, err := s.userRepo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if actor.Role != models.RoleSuperAdmin && target.Role.Rank() >= actor.Role.Rank() {
		return nil, ErrInsufficientRole
	}

	if err := s.userRepo.SetBlocked(ctx, userID, blocked); err != nil {
		log.Printf("set blocked %s=%v: %v", userID, blocked, err)
		return nil, fmt.Errorf("set blocked: %w", err)
	}
	log.Printf("🔒 %s set blocked=%v on %s", actor.UserID, blocked, userID)

	target.Blocked = blocked
	return target, nil
}

// Stats summarises the collections for the dashboard
func (s *AdminService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	users, err := s.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	stats := &models.DashboardStats{UsersByRole: make(map[models.Role]int)}
	for _, role := range models.Roles() {
		stats.UsersByRole[role] = 0
	}
	for _, u := range users {
		role := u.Role
		if !role.Valid() {
			role = models.RoleUser
		}
		stats.UsersByRole[role]++
		if u.Blocked {
			stats.BlockedUsers++
		}
	}

	if stats.PendingRoleRequests, err = s.roleRequests.CountPending(ctx); err != nil {
		return nil, fmt.Errorf("count pending requests: %w", err)
	}
	if stats.ActiveAuctions, err = s.auctions.CountActive(ctx); err != nil {
		return nil, fmt.Errorf("count auctions: %w", err)
	}
	if stats.ActiveProperties, err = s.properties.CountActive(ctx); err != nil {
		return nil, fmt.Errorf("count properties: %w", err)
	}
	return stats, nil
}

func (s *AdminService) ListSupportRequests(ctx context.Context, limit int) ([]*models.SupportRequest, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.supportRepo.ListSupportRequests(ctx, limit)
}
