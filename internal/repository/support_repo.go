package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/yourusername/estate-service/internal/models"
	"google.golang.org/api/iterator"
)

const supportCollection = "supportRequests"

type SupportRepository struct {
	client *firestore.Client
}

func NewSupportRepository(client *firestore.Client) *SupportRepository {
	return &SupportRepository{
		client: client,
	}
}

// CreateSupportRequest stores a contact-support message
func (r *SupportRepository) CreateSupportRequest(ctx context.Context, req *models.SupportRequest) (string, error) {
	docRef, _, err := r.client.Collection(supportCollection).Add(ctx, req)
	if err != nil {
		return "", err
	}

	_, err = docRef.Update(ctx, []firestore.Update{
		{Path: "requestId", Value: docRef.ID},
	})
	if err != nil {
		return "", err
	}

	return docRef.ID, nil
}

// ListSupportRequests returns the most recent support messages
func (r *SupportRepository) ListSupportRequests(ctx context.Context, limit int) ([]*models.SupportRequest, error) {
	iter := r.client.Collection(supportCollection).
		OrderBy("createdAt", firestore.Desc).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	var requests []*models.SupportRequest
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var req models.SupportRequest
		if err := doc.DataTo(&req); err != nil {
			continue
		}
		req.RequestID = doc.Ref.ID
		requests = append(requests, &req)
	}

	return requests, nil
}
