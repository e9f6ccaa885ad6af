package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/yourusername/estate-service/internal/models"
	"github.com/yourusername/estate-service/internal/repository"
)

type PropertyService struct {
	propertyRepo PropertyStore
	now          func() time.Time
}

func NewPropertyService(propertyRepo PropertyStore) *PropertyService {
	return &PropertyService{
		propertyRepo: propertyRepo,
		now:          time.Now,
	}
}

// Create inserts an active property owned by the caller
func (s *PropertyService) Create(ctx context.Context, actor Actor, in *models.PropertyInput) (*models.Property, error) {
	now := s.now()
	property := &models.Property{
		Owner:        actor.UserID,
		Title:        strings.TrimSpace(in.Title),
		Description:  in.Description,
		PropertyType: in.PropertyType,
		ListingType:  in.ListingType,
		Price:        in.Price,
		City:         strings.TrimSpace(in.City),
		Address:      in.Address,
		IsActive:     true,
		Amenities:    nonNil(in.Amenities),
		Images:       nonNil(in.Images),
		Bedrooms:     in.Bedrooms,
		Bathrooms:    in.Bathrooms,
		Furnishing:   in.Furnishing,
		AreaSqFt:     in.AreaSqFt,
		Floor:        in.Floor,
		TotalFloors:  in.TotalFloors,
		PlotArea:     in.PlotArea,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	id, err := s.propertyRepo.CreateProperty(ctx, property)
	if err != nil {
		log.Printf("create property for %s: %v", actor.UserID, err)
		return nil, fmt.Errorf("create property: %w", err)
	}
	property.PropertyID = id
	return property, nil
}

// owned loads an active property the caller may modify
func (s *PropertyService) owned(ctx context.Context, actor Actor, propertyID string) (*models.Property, error) {
	property, err := s.propertyRepo.GetProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if !property.IsActive {
		return nil, repository.ErrNotFound
	}
	if property.Owner != actor.UserID && !actor.IsAdmin() {
		return nil, repository.ErrForbidden
	}
	return property, nil
}

// Update rewrites the editable fields of the caller's property
func (s *PropertyService) Update(ctx context.Context, actor Actor, propertyID string, in *models.PropertyInput) (*models.Property, error) {
	if _, err := s.owned(ctx, actor, propertyID); err != nil {
		return nil, err
	}
	if err := s.propertyRepo.UpdateProperty(ctx, propertyID, in); err != nil {
		log.Printf("update property %s: %v", propertyID, err)
		return nil, fmt.Errorf("update property: %w", err)
	}
	return s.propertyRepo.GetProperty(ctx, propertyID)
}

// Delete marks the property inactive; the document stays
func (s *PropertyService) Delete(ctx context.Context, actor Actor, propertyID string) error {
	if _, err := s.owned(ctx, actor, propertyID); err != nil {
		return err
	}
	if err := s.propertyRepo.SoftDeleteProperty(ctx, propertyID); err != nil {
		log.Printf("delete property %s: %v", propertyID, err)
		return fmt.Errorf("delete property: %w", err)
	}
	return nil
}

// Get returns an active property
func (s *PropertyService) Get(ctx context.Context, propertyID string) (*models.Property, error) {
	property, err := s.propertyRepo.GetProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if !property.IsActive {
		return nil, repository.ErrNotFound
	}
	return property, nil
}

// GetUserProperties returns the caller's active properties
func (s *PropertyService) GetUserProperties(ctx context.Context, userID string) ([]*models.Property, error) {
	return s.propertyRepo.ListByOwner(ctx, userID)
}

// List returns active properties matching filter, newest first
func (s *PropertyService) List(ctx context.Context, filter models.PropertyFilter) ([]*models.Property, error) {
	active, err := s.propertyRepo.ListActive(ctx)
	if err != nil {
		log.Printf("list properties: %v", err)
		return nil, fmt.Errorf("list properties: %w", err)
	}
	return FilterProperties(active, filter), nil
}

// CountActive is used by the admin dashboard
func (s *PropertyService) CountActive(ctx context.Context) (int, error) {
	active, err := s.propertyRepo.ListActive(ctx)
	if err != nil {
		return 0, err
	}
	return len(active), nil
}

// FilterProperties applies the listing filters. City matches
// case-insensitively; a zero price bound is ignored.
func FilterProperties(properties []*models.Property, filter models.PropertyFilter) []*models.Property {
	out := make([]*models.Property, 0, len(properties))
	for _, p := range properties {
		if filter.PropertyType != "" && p.PropertyType != filter.PropertyType {
			continue
		}
		if filter.ListingType != "" && p.ListingType != filter.ListingType {
			continue
		}
		if filter.City != "" && !strings.EqualFold(p.City, strings.TrimSpace(filter.City)) {
			continue
		}
		if filter.MinPrice > 0 && p.Price < filter.MinPrice {
			continue
		}
		if filter.MaxPrice > 0 && p.Price > filter.MaxPrice {
			continue
		}
		out = append(out, p)
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
