package repository

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/yourusername/estate-service/internal/models"
	"google.golang.org/api/iterator"
)

const propertiesCollection = "properties"

type PropertyRepository struct {
	client *firestore.Client
}

func NewPropertyRepository(client *firestore.Client) *PropertyRepository {
	return &PropertyRepository{
		client: client,
	}
}

// CreateProperty inserts a property and returns its generated ID
func (r *PropertyRepository) CreateProperty(ctx context.Context, property *models.Property) (string, error) {
	docRef, _, err := r.client.Collection(propertiesCollection).Add(ctx, property)
	if err != nil {
		return "", err
	}

	// Update with the generated ID
	_, err = docRef.Update(ctx, []firestore.Update{
		{Path: "propertyId", Value: docRef.ID},
	})
	if err != nil {
		return "", err
	}

	return docRef.ID, nil
}

// GetProperty retrieves a property by ID, active or not
func (r *PropertyRepository) GetProperty(ctx context.Context, propertyID string) (*models.Property, error) {
	doc, err := r.client.Collection(propertiesCollection).Doc(propertyID).Get(ctx)
	if err != nil {
		return nil, notFound(err)
	}

	var property models.Property
	if err := doc.DataTo(&property); err != nil {
		return nil, err
	}
	property.PropertyID = doc.Ref.ID

	return &property, nil
}

// UpdateProperty overwrites the editable fields of a property
func (r *PropertyRepository) UpdateProperty(ctx context.Context, propertyID string, in *models.PropertyInput) error {
	_, err := r.client.Collection(propertiesCollection).Doc(propertyID).Update(ctx, []firestore.Update{
		{Path: "title", Value: in.Title},
		{Path: "description", Value: in.Description},
		{Path: "propertyType", Value: in.PropertyType},
		{Path: "listingType", Value: in.ListingType},
		{Path: "price", Value: in.Price},
		{Path: "city", Value: in.City},
		{Path: "address", Value: in.Address},
		{Path: "amenities", Value: in.Amenities},
		{Path: "images", Value: in.Images},
		{Path: "bedrooms", Value: in.Bedrooms},
		{Path: "bathrooms", Value: in.Bathrooms},
		{Path: "furnishing", Value: in.Furnishing},
		{Path: "areaSqFt", Value: in.AreaSqFt},
		{Path: "floor", Value: in.Floor},
		{Path: "totalFloors", Value: in.TotalFloors},
		{Path: "plotArea", Value: in.PlotArea},
		{Path: "updatedAt", Value: time.Now()},
	})
	return notFound(err)
}

// SoftDeleteProperty marks a property inactive; the document is kept
func (r *PropertyRepository) SoftDeleteProperty(ctx context.Context, propertyID string) error {
	now := time.Now()
	_, err := r.client.Collection(propertiesCollection).Doc(propertyID).Update(ctx, []firestore.Update{
		{Path: "isActive", Value: false},
		{Path: "deletedAt", Value: now},
		{Path: "updatedAt", Value: now},
	})
	return notFound(err)
}

// ListByOwner returns the owner's active properties, newest first
func (r *PropertyRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Property, error) {
	q := r.client.Collection(propertiesCollection).
		Where("owner", "==", ownerID).
		Where("isActive", "==", true)
	return r.collect(ctx, q)
}

// ListActive returns every active property, newest first
func (r *PropertyRepository) ListActive(ctx context.Context) ([]*models.Property, error) {
	return r.collect(ctx, r.client.Collection(propertiesCollection).Where("isActive", "==", true))
}

// GetProperties fetches several properties by ID in one round trip.
// Missing documents are skipped.
func (r *PropertyRepository) GetProperties(ctx context.Context, ids []string) ([]*models.Property, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	refs := make([]*firestore.DocumentRef, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, r.client.Collection(propertiesCollection).Doc(id))
	}

	docs, err := r.client.GetAll(ctx, refs)
	if err != nil {
		return nil, err
	}

	properties := make([]*models.Property, 0, len(docs))
	for _, doc := range docs {
		if !doc.Exists() {
			continue
		}
		var property models.Property
		if err := doc.DataTo(&property); err != nil {
			continue
		}
		property.PropertyID = doc.Ref.ID
		properties = append(properties, &property)
	}
	return properties, nil
}

func (r *PropertyRepository) collect(ctx context.Context, q firestore.Query) ([]*models.Property, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	var properties []*models.Property
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var property models.Property
		if err := doc.DataTo(&property); err != nil {
			continue
		}
		property.PropertyID = doc.Ref.ID
		properties = append(properties, &property)
	}

	// Ordered here to avoid a composite index on (owner, isActive, createdAt)
	sort.Slice(properties, func(i, j int) bool {
		return properties[i].CreatedAt.After(properties[j].CreatedAt)
	})
	return properties, nil
}
