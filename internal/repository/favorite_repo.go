package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/yourusername/estate-service/internal/models"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const favoritesCollection = "favorites"

// FavoriteRepository stores favorites as users/{uid}/favorites/{propertyId}
type FavoriteRepository struct {
	client *firestore.Client
}

func NewFavoriteRepository(client *firestore.Client) *FavoriteRepository {
	return &FavoriteRepository{
		client: client,
	}
}

func (r *FavoriteRepository) favorites(userID string) *firestore.CollectionRef {
	return r.client.Collection(usersCollection).Doc(userID).Collection(favoritesCollection)
}

// AddFavorite marks propertyID as a favorite. Setting an existing favorite
// again only refreshes addedAt.
func (r *FavoriteRepository) AddFavorite(ctx context.Context, userID, propertyID string) error {
	_, err := r.favorites(userID).Doc(propertyID).Set(ctx, models.Favorite{
		PropertyID: propertyID,
		AddedAt:    time.Now(),
	})
	return err
}

// RemoveFavorite deletes the favorite; deleting a missing one is not an error
func (r *FavoriteRepository) RemoveFavorite(ctx context.Context, userID, propertyID string) error {
	_, err := r.favorites(userID).Doc(propertyID).Delete(ctx)
	return err
}

// IsFavorite reports whether the favorite document exists
func (r *FavoriteRepository) IsFavorite(ctx context.Context, userID, propertyID string) (bool, error) {
	_, err := r.favorites(userID).Doc(propertyID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListFavorites returns the user's favorites, most recently added first
func (r *FavoriteRepository) ListFavorites(ctx context.Context, userID string) ([]models.Favorite, error) {
	iter := r.favorites(userID).OrderBy("addedAt", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	var favorites []models.Favorite
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var fav models.Favorite
		if err := doc.DataTo(&fav); err != nil {
			continue
		}
		fav.PropertyID = doc.Ref.ID
		favorites = append(favorites, fav)
	}

	return favorites, nil
}
