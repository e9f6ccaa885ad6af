package repository

import (
	"context"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/yourusername/estate-service/internal/models"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const usersCollection = "users"

type UserRepository struct {
	client *firestore.Client
}

func NewUserRepository(client *firestore.Client) *UserRepository {
	return &UserRepository{
		client: client,
	}
}

// CreateUser creates a new user document keyed by the identity uid
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	_, err := r.client.Collection(usersCollection).Doc(user.UserID).Create(ctx, user)
	if status.Code(err) == codes.AlreadyExists {
		return nil
	}
	return err
}

// GetUser retrieves a user by their ID
func (r *UserRepository) GetUser(ctx context.Context, userID string) (*models.User, error) {
	doc, err := r.client.Collection(usersCollection).Doc(userID).Get(ctx)
	if err != nil {
		return nil, notFound(err)
	}

	var user models.User
	if err := doc.DataTo(&user); err != nil {
		return nil, err
	}
	user.UserID = doc.Ref.ID

	return &user, nil
}

// UpsertProfile writes the editable profile fields, creating the document
// when it does not exist yet
func (r *UserRepository) UpsertProfile(ctx context.Context, user *models.User) error {
	_, err := r.client.Collection(usersCollection).Doc(user.UserID).Set(ctx, map[string]interface{}{
		"userId":    user.UserID,
		"name":      user.Name,
		"email":     user.Email,
		"mobile":    user.Mobile,
		"photoURL":  user.PhotoURL,
		"updatedAt": time.Now(),
	}, firestore.MergeAll)
	return err
}

// UpdateRole updates the user's role field
func (r *UserRepository) UpdateRole(ctx context.Context, userID string, role models.Role) error {
	_, err := r.client.Collection(usersCollection).Doc(userID).Update(ctx, []firestore.Update{
		{Path: "role", Value: string(role)},
		{Path: "updatedAt", Value: time.Now()},
	})
	return notFound(err)
}

// SetBlocked updates the user's blocked flag
func (r *UserRepository) SetBlocked(ctx context.Context, userID string, blocked bool) error {
	_, err := r.client.Collection(usersCollection).Doc(userID).Update(ctx, []firestore.Update{
		{Path: "blocked", Value: blocked},
		{Path: "updatedAt", Value: time.Now()},
	})
	return notFound(err)
}

// UpdateFCMToken updates the user's FCM token
func (r *UserRepository) UpdateFCMToken(ctx context.Context, userID, fcmToken string) error {
	_, err := r.client.Collection(usersCollection).Doc(userID).Update(ctx, []firestore.Update{
		{Path: "fcmToken", Value: fcmToken},
	})
	return notFound(err)
}

// ListUsers returns every user document ordered by creation time
func (r *UserRepository) ListUsers(ctx context.Context) ([]*models.User, error) {
	iter := r.client.Collection(usersCollection).OrderBy("createdAt", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	var users []*models.User
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var user models.User
		if err := doc.DataTo(&user); err != nil {
			continue
		}
		user.UserID = doc.Ref.ID
		users = append(users, &user)
	}

	return users, nil
}

// WatchUser subscribes to live changes of one user document. onNext gets
// nil while the document does not exist. The subscription ends when ctx is
// done or the returned stop function is called; any other stream error is
// passed to onError and also ends it.
func (r *UserRepository) WatchUser(ctx context.Context, userID string, onNext func(*models.User), onError func(error)) func() {
	ctx, cancel := context.WithCancel(ctx)
	snaps := r.client.Collection(usersCollection).Doc(userID).Snapshots(ctx)

	go func() {
		defer snaps.Stop()
		for {
			snap, err := snaps.Next()
			if err != nil {
				if ctx.Err() != nil || status.Code(err) == codes.Canceled {
					return
				}
				log.Printf("user watch %s ended: %v", userID, err)
				onError(err)
				return
			}
			if !snap.Exists() {
				onNext(nil)
				continue
			}

			var user models.User
			if err := snap.DataTo(&user); err != nil {
				onError(err)
				continue
			}
			user.UserID = snap.Ref.ID
			onNext(&user)
		}
	}()

	return cancel
}
