package services

import (
	"context"
	"fmt"
	"log"

	"github.com/yourusername/estate-service/internal/models"
)

type FavoriteService struct {
	favoriteRepo FavoriteStore
	properties   *PropertyService
	propertyRepo PropertyStore
}

func NewFavoriteService(favoriteRepo FavoriteStore, propertyRepo PropertyStore) *FavoriteService {
	return &FavoriteService{
		favoriteRepo: favoriteRepo,
		properties:   NewPropertyService(propertyRepo),
		propertyRepo: propertyRepo,
	}
}

// Add favorites an active property. Adding twice is a no-op.
func (s *FavoriteService) Add(ctx context.Context, userID, propertyID string) error {
	if _, err := s.properties.Get(ctx, propertyID); err != nil {
		return err
	}
	if err := s.favoriteRepo.AddFavorite(ctx, userID, propertyID); err != nil {
		log.Printf("add favorite %s/%s: %v", userID, propertyID, err)
		return fmt.Errorf("add favorite: %w", err)
	}
	return nil
}

// Remove unfavorites a property. Removing a missing favorite is a no-op.
func (s *FavoriteService) Remove(ctx context.Context, userID, propertyID string) error {
	if err := s.favoriteRepo.RemoveFavorite(ctx, userID, propertyID); err != nil {
		log.Printf("remove favorite %s/%s: %v", userID, propertyID, err)
		return fmt.Errorf("remove favorite: %w", err)
	}
	return nil
}

// Toggle flips the favorite flag and returns the new state
func (s *FavoriteService) Toggle(ctx context.Context, userID, propertyID string) (*models.FavoriteStatus, error) {
	fav, err := s.favoriteRepo.IsFavorite(ctx, userID, propertyID)
	if err != nil {
		return nil, err
	}
	if fav {
		err = s.Remove(ctx, userID, propertyID)
	} else {
		err = s.Add(ctx, userID, propertyID)
	}
	if err != nil {
		return nil, err
	}
	return &models.FavoriteStatus{PropertyID: propertyID, Favorite: !fav}, nil
}

func (s *FavoriteService) IsFavorite(ctx context.Context, userID, propertyID string) (*models.FavoriteStatus, error) {
	fav, err := s.favoriteRepo.IsFavorite(ctx, userID, propertyID)
	if err != nil {
		return nil, err
	}
	return &models.FavoriteStatus{PropertyID: propertyID, Favorite: fav}, nil
}

// List returns the caller's favorited active properties, most recently
// favorited first
func (s *FavoriteService) List(ctx context.Context, userID string) ([]*models.Property, error) {
	favorites, err := s.favoriteRepo.ListFavorites(ctx, userID)
	if err != nil {
		log.Printf("list favorites %s: %v", userID, err)
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	if len(favorites) == 0 {
		return []*models.Property{}, nil
	}

	ids := make([]string, 0, len(favorites))
	for _, f := range favorites {
		ids = append(ids, f.PropertyID)
	}
	found, err := s.propertyRepo.GetProperties(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load favorite properties: %w", err)
	}

	byID := make(map[string]*models.Property, len(found))
	for _, p := range found {
		byID[p.PropertyID] = p
	}

	properties := make([]*models.Property, 0, len(favorites))
	for _, f := range favorites {
		if p, ok := byID[f.PropertyID]; ok && p.IsActive {
			properties = append(properties, p)
		}
	}
	return properties, nil
}
