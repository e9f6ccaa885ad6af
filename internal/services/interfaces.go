package services

import (
	"context"
	"time"

	"github.com/yourusername/estate-service/internal/models"
	"github.com/yourusername/estate-service/internal/queue"
)

// ProfileSource is what a Session needs from the users collection
type ProfileSource interface {
	GetUser(ctx context.Context, userID string) (*models.User, error)
	UpdateRole(ctx context.Context, userID string, role models.Role) error
	WatchUser(ctx context.Context, userID string, onNext func(*models.User), onError func(error)) (stop func())
}

type UserStore interface {
	ProfileSource
	CreateUser(ctx context.Context, user *models.User) error
	UpsertProfile(ctx context.Context, user *models.User) error
	SetBlocked(ctx context.Context, userID string, blocked bool) error
	UpdateFCMToken(ctx context.Context, userID, fcmToken string) error
	ListUsers(ctx context.Context) ([]*models.User, error)
}

type RoleRequestStore interface {
	CreateRoleRequest(ctx context.Context, req *models.RoleRequest) (string, error)
	GetRoleRequest(ctx context.Context, requestID string) (*models.RoleRequest, error)
	FindPending(ctx context.Context, userID string, role models.Role) (*models.RoleRequest, error)
	ListRoleRequests(ctx context.Context, status models.RequestStatus) ([]*models.RoleRequest, error)
	ListByUser(ctx context.Context, userID string) ([]*models.RoleRequest, error)
	UpdateStatus(ctx context.Context, requestID string, status models.RequestStatus, processedBy string, processedAt *time.Time) error
}

type AuctionStore interface {
	CreateAuction(ctx context.Context, ownerID string, in *models.AuctionInput) (string, error)
	GetAuction(ctx context.Context, auctionID string) (*models.Auction, error)
	UpdateAuction(ctx context.Context, auctionID string, in *models.AuctionInput) error
	ArchiveAuction(ctx context.Context, auctionID string) error
	ListByStatus(ctx context.Context, status models.AuctionStatus) ([]*models.Auction, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Auction, error)
}

type PropertyStore interface {
	CreateProperty(ctx context.Context, property *models.Property) (string, error)
	GetProperty(ctx context.Context, propertyID string) (*models.Property, error)
	GetProperties(ctx context.Context, ids []string) ([]*models.Property, error)
	UpdateProperty(ctx context.Context, propertyID string, in *models.PropertyInput) error
	SoftDeleteProperty(ctx context.Context, propertyID string) error
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Property, error)
	ListActive(ctx context.Context) ([]*models.Property, error)
}

type FavoriteStore interface {
	AddFavorite(ctx context.Context, userID, propertyID string) error
	RemoveFavorite(ctx context.Context, userID, propertyID string) error
	IsFavorite(ctx context.Context, userID, propertyID string) (bool, error)
	ListFavorites(ctx context.Context, userID string) ([]models.Favorite, error)
}

type SupportStore interface {
	CreateSupportRequest(ctx context.Context, req *models.SupportRequest) (string, error)
	ListSupportRequests(ctx context.Context, limit int) ([]*models.SupportRequest, error)
}

// IdentityVerifier checks an identity provider token and returns who it belongs to
type IdentityVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*models.Identity, error)
}

// AuctionCache holds the raw Active auction list. Classification still runs
// per request since it depends on the clock. Implementations may drop
// entries at any time.
type AuctionCache interface {
	GetActive(ctx context.Context) ([]*models.Auction, bool)
	SetActive(ctx context.Context, auctions []*models.Auction)
	Invalidate(ctx context.Context)
}

// EventPublisher delivers domain events to the message broker
type EventPublisher interface {
	PublishRoleRequestProcessed(ctx context.Context, event queue.RoleRequestProcessedEvent) error
}
