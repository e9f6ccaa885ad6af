package repository

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/yourusername/estate-service/internal/models"
	"google.golang.org/api/iterator"
)

const roleRequestsCollection = "roleRequests"

type RoleRequestRepository struct {
	client *firestore.Client
}

func NewRoleRequestRepository(client *firestore.Client) *RoleRequestRepository {
	return &RoleRequestRepository{
		client: client,
	}
}

// CreateRoleRequest inserts a request and returns its generated ID
func (r *RoleRequestRepository) CreateRoleRequest(ctx context.Context, req *models.RoleRequest) (string, error) {
	docRef, _, err := r.client.Collection(roleRequestsCollection).Add(ctx, req)
	if err != nil {
		return "", err
	}

	// Update with the generated ID
	_, err = docRef.Update(ctx, []firestore.Update{
		{Path: "requestId", Value: docRef.ID},
	})
	if err != nil {
		return "", err
	}

	return docRef.ID, nil
}

// GetRoleRequest retrieves a request by ID
func (r *RoleRequestRepository) GetRoleRequest(ctx context.Context, requestID string) (*models.RoleRequest, error) {
	doc, err := r.client.Collection(roleRequestsCollection).Doc(requestID).Get(ctx)
	if err != nil {
		return nil, notFound(err)
	}

	var req models.RoleRequest
	if err := doc.DataTo(&req); err != nil {
		return nil, err
	}
	req.RequestID = doc.Ref.ID

	return &req, nil
}

// FindPending returns the pending request for (userID, role), or nil when
// there is none
func (r *RoleRequestRepository) FindPending(ctx context.Context, userID string, role models.Role) (*models.RoleRequest, error) {
	iter := r.client.Collection(roleRequestsCollection).
		Where("userId", "==", userID).
		Where("requestedRole", "==", string(role)).
		Where("status", "==", string(models.StatusPending)).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var req models.RoleRequest
	if err := doc.DataTo(&req); err != nil {
		return nil, err
	}
	req.RequestID = doc.Ref.ID

	return &req, nil
}

// ListRoleRequests returns requests with the given status (all when empty),
// newest first. Sorting happens here so the query needs no composite index.
func (r *RoleRequestRepository) ListRoleRequests(ctx context.Context, status models.RequestStatus) ([]*models.RoleRequest, error) {
	q := r.client.Collection(roleRequestsCollection).Query
	if status != "" {
		q = q.Where("status", "==", string(status))
	}
	return r.collect(ctx, q)
}

// ListByUser returns one user's requests, newest first
func (r *RoleRequestRepository) ListByUser(ctx context.Context, userID string) ([]*models.RoleRequest, error) {
	q := r.client.Collection(roleRequestsCollection).Where("userId", "==", userID)
	return r.collect(ctx, q)
}

// UpdateStatus stamps a status transition. A nil processedAt clears the
// audit fields, which is how a rolled back approval returns to pending.
func (r *RoleRequestRepository) UpdateStatus(ctx context.Context, requestID string, status models.RequestStatus, processedBy string, processedAt *time.Time) error {
	updates := []firestore.Update{
		{Path: "status", Value: string(status)},
		{Path: "processedBy", Value: processedBy},
	}
	if processedAt != nil {
		updates = append(updates, firestore.Update{Path: "processedAt", Value: *processedAt})
	} else {
		updates = append(updates, firestore.Update{Path: "processedAt", Value: nil})
	}

	_, err := r.client.Collection(roleRequestsCollection).Doc(requestID).Update(ctx, updates)
	return notFound(err)
}

func (r *RoleRequestRepository) collect(ctx context.Context, q firestore.Query) ([]*models.RoleRequest, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	var requests []*models.RoleRequest
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var req models.RoleRequest
		if err := doc.DataTo(&req); err != nil {
			continue
		}
		req.RequestID = doc.Ref.ID
		requests = append(requests, &req)
	}

	sort.Slice(requests, func(i, j int) bool {
		return requests[i].CreatedAt.After(requests[j].CreatedAt)
	})
	return requests, nil
}
