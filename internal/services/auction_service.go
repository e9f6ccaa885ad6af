package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/yourusername/estate-service/internal/models"
	"github.com/yourusername/estate-service/internal/repository"
	"github.com/yourusername/estate-service/pkg/utils"
)

type AuctionService struct {
	auctionRepo AuctionStore
	cache       AuctionCache
	loc         *time.Location
	now         func() time.Time
}

// NewAuctionService creates the service. cache may be nil; loc is the
// timezone that decides which calendar day "today" is.
func NewAuctionService(auctionRepo AuctionStore, cache AuctionCache, loc *time.Location) *AuctionService {
	if loc == nil {
		loc = time.UTC
	}
	return &AuctionService{
		auctionRepo: auctionRepo,
		cache:       cache,
		loc:         loc,
		now:         time.Now,
	}
}

func (s *AuctionService) validate(in *models.AuctionInput, requireFuture bool) error {
	fields := utils.ValidateStruct(in)
	if fields == nil {
		fields = map[string]string{}
	}

	if !in.AuctionDate.IsZero() {
		if requireFuture && !IsUpcoming(models.StoredDate{Time: in.AuctionDate.In(s.loc), FromString: true}, s.now(), s.loc) {
			fields["auctionDate"] = "must not be in the past"
		}
		if in.InspectionDate != nil && in.InspectionDate.After(in.AuctionDate) {
			fields["inspectionDate"] = "must not be after the auction date"
		}
		if in.EMDSubmissionDate != nil && in.EMDSubmissionDate.After(in.AuctionDate) {
			fields["emdSubmissionDate"] = "must not be after the auction date"
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Create inserts an Active auction owned by the caller
func (s *AuctionService) Create(ctx context.Context, actor Actor, in *models.AuctionInput) (*models.Auction, error) {
	if !actor.IsAdmin() {
		return nil, ErrInsufficientRole
	}
	if err := s.validate(in, true); err != nil {
		return nil, err
	}

	id, err := s.auctionRepo.CreateAuction(ctx, actor.UserID, in)
	if err != nil {
		log.Printf("create auction: %v", err)
		return nil, fmt.Errorf("create auction: %w", err)
	}
	s.invalidate(ctx)

	return s.auctionRepo.GetAuction(ctx, id)
}

// Update overwrites an auction's editable fields. The past-date check only
// applies when the auction date is being moved.
func (s *AuctionService) Update(ctx context.Context, actor Actor, auctionID string, in *models.AuctionInput) (*models.Auction, error) {
	if !actor.IsAdmin() {
		return nil, ErrInsufficientRole
	}

	existing, err := s.auctionRepo.GetAuction(ctx, auctionID)
	if err != nil {
		return nil, err
	}
	if existing.Status == models.AuctionArchived {
		return nil, repository.ErrNotFound
	}

	moved := !sameDay(existing.AuctionDate.Time, in.AuctionDate, s.loc)
	if err := s.validate(in, moved); err != nil {
		return nil, err
	}

	if err := s.auctionRepo.UpdateAuction(ctx, auctionID, in); err != nil {
		log.Printf("update auction %s: %v", auctionID, err)
		return nil, fmt.Errorf("update auction: %w", err)
	}
	s.invalidate(ctx)

	return s.auctionRepo.GetAuction(ctx, auctionID)
}

// Archive soft-deletes an auction
func (s *AuctionService) Archive(ctx context.Context, actor Actor, auctionID string) error {
	if !actor.IsAdmin() {
		return ErrInsufficientRole
	}
	if _, err := s.auctionRepo.GetAuction(ctx, auctionID); err != nil {
		return err
	}
	if err := s.auctionRepo.ArchiveAuction(ctx, auctionID); err != nil {
		log.Printf("archive auction %s: %v", auctionID, err)
		return fmt.Errorf("archive auction: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

// Get returns a single auction. Archived auctions are only visible to admins.
func (s *AuctionService) Get(ctx context.Context, actor Actor, auctionID string) (*models.Auction, error) {
	auction, err := s.auctionRepo.GetAuction(ctx, auctionID)
	if err != nil {
		return nil, err
	}
	if auction.Status == models.AuctionArchived && !actor.IsAdmin() {
		return nil, repository.ErrNotFound
	}
	return auction, nil
}

// ListAvailable returns Active upcoming auctions, soonest first
func (s *AuctionService) ListAvailable(ctx context.Context, filter models.AuctionFilter) ([]*models.Auction, error) {
	active, err := s.activeAuctions(ctx)
	if err != nil {
		return nil, err
	}
	return AvailableAuctions(active, filter, s.now(), s.loc), nil
}

// ListMine returns the caller's own auctions split into upcoming and past
func (s *AuctionService) ListMine(ctx context.Context, actor Actor) (models.MyAuctions, error) {
	if !actor.IsAdmin() {
		return models.MyAuctions{}, ErrInsufficientRole
	}
	owned, err := s.auctionRepo.ListByOwner(ctx, actor.UserID)
	if err != nil {
		log.Printf("list auctions of %s: %v", actor.UserID, err)
		return models.MyAuctions{}, fmt.Errorf("list my auctions: %w", err)
	}
	return SplitOwnerAuctions(owned, s.now(), s.loc), nil
}

// CountActive is used by the admin dashboard
func (s *AuctionService) CountActive(ctx context.Context) (int, error) {
	active, err := s.activeAuctions(ctx)
	if err != nil {
		return 0, err
	}
	return len(active), nil
}

func (s *AuctionService) activeAuctions(ctx context.Context) ([]*models.Auction, error) {
	if s.cache != nil {
		if cached, ok := s.cache.GetActive(ctx); ok {
			return cached, nil
		}
	}

	active, err := s.auctionRepo.ListByStatus(ctx, models.AuctionActive)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		log.Printf("list active auctions: %v", err)
		return nil, fmt.Errorf("list auctions: %w", err)
	}

	if s.cache != nil {
		s.cache.SetActive(ctx, active)
	}
	return active, nil
}

func (s *AuctionService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}

// sameDay compares calendar dates in loc; stored values come back in UTC
// while clients send their own offset
func sameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}
