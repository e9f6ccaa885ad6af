package services

import (
	"context"
	"fmt"

	"firebase.google.com/go/auth"
	"github.com/yourusername/estate-service/internal/models"
)

// FirebaseIdentity verifies ID tokens issued by Firebase Authentication
type FirebaseIdentity struct {
	client *auth.Client
}

func NewFirebaseIdentity(client *auth.Client) *FirebaseIdentity {
	return &FirebaseIdentity{client: client}
}

func (f *FirebaseIdentity) VerifyIDToken(ctx context.Context, idToken string) (*models.Identity, error) {
	token, err := f.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("verify id token: %w", err)
	}

	identity := &models.Identity{UID: token.UID}
	if v, ok := token.Claims["email"].(string); ok {
		identity.Email = v
	}
	if v, ok := token.Claims["name"].(string); ok {
		identity.DisplayName = v
	}
	if v, ok := token.Claims["picture"].(string); ok {
		identity.PhotoURL = v
	}
	return identity, nil
}
