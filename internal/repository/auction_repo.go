package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/yourusername/estate-service/internal/models"
	"google.golang.org/api/iterator"
)

const auctionsCollection = "auctions"

// auctionDocument is the stored shape of an auction. Date fields are left
// untyped because older documents hold ISO strings instead of timestamps.
type auctionDocument struct {
	AuctionID         string             `firestore:"auctionId"`
	OwnerID           string             `firestore:"ownerId"`
	Title             string             `firestore:"title"`
	PropertyType      string             `firestore:"propertyType"`
	City              string             `firestore:"city"`
	Address           string             `firestore:"address"`
	BankAgency        string             `firestore:"bankAgency"`
	ReservePrice      float64            `firestore:"reservePrice"`
	EMDAmount         float64            `firestore:"emdAmount"`
	AuctionDate       interface{}        `firestore:"auctionDate"`
	InspectionDate    interface{}        `firestore:"inspectionDate"`
	EMDSubmissionDate interface{}        `firestore:"emdSubmissionDate"`
	Status            string             `firestore:"status"`
	Boundaries        *models.Boundaries `firestore:"boundaries,omitempty"`
	RegistrationInfo  string             `firestore:"registrationInfo,omitempty"`
	ContactDetails    string             `firestore:"contactDetails,omitempty"`
	CreatedAt         time.Time          `firestore:"createdAt"`
	UpdatedAt         time.Time          `firestore:"updatedAt"`
}

// ParseStoredDate converts a raw date field into a StoredDate. Strings keep
// only their calendar date; timestamps keep full precision.
func ParseStoredDate(v interface{}) (models.StoredDate, error) {
	switch t := v.(type) {
	case nil:
		return models.StoredDate{}, nil
	case time.Time:
		return models.StoredDate{Time: t}, nil
	case string:
		if t == "" {
			return models.StoredDate{}, nil
		}
		if len(t) < len("2006-01-02") {
			return models.StoredDate{}, fmt.Errorf("invalid date %q", t)
		}
		day, err := time.Parse("2006-01-02", t[:10])
		if err != nil {
			return models.StoredDate{}, fmt.Errorf("invalid date %q: %w", t, err)
		}
		return models.StoredDate{Time: day, FromString: true}, nil
	default:
		return models.StoredDate{}, fmt.Errorf("unsupported date type %T", v)
	}
}

func (d *auctionDocument) toModel(id string) (*models.Auction, error) {
	auctionDate, err := ParseStoredDate(d.AuctionDate)
	if err != nil {
		return nil, fmt.Errorf("auction %s auctionDate: %w", id, err)
	}
	// Secondary dates are informational; a malformed one is dropped.
	inspection, _ := ParseStoredDate(d.InspectionDate)
	emdSubmission, _ := ParseStoredDate(d.EMDSubmissionDate)

	return &models.Auction{
		AuctionID:         id,
		OwnerID:           d.OwnerID,
		Title:             d.Title,
		PropertyType:      d.PropertyType,
		City:              d.City,
		Address:           d.Address,
		BankAgency:        d.BankAgency,
		ReservePrice:      d.ReservePrice,
		EMDAmount:         d.EMDAmount,
		AuctionDate:       auctionDate,
		InspectionDate:    inspection,
		EMDSubmissionDate: emdSubmission,
		Status:            models.AuctionStatus(d.Status),
		Boundaries:        d.Boundaries,
		RegistrationInfo:  d.RegistrationInfo,
		ContactDetails:    d.ContactDetails,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}, nil
}

// inputFields maps an AuctionInput onto document fields. Dates are always
// written as timestamps.
func inputFields(in *models.AuctionInput) map[string]interface{} {
	fields := map[string]interface{}{
		"title":             in.Title,
		"propertyType":      in.PropertyType,
		"city":              in.City,
		"address":           in.Address,
		"bankAgency":        in.BankAgency,
		"reservePrice":      in.ReservePrice,
		"emdAmount":         in.EMDAmount,
		"auctionDate":       in.AuctionDate,
		"inspectionDate":    nil,
		"emdSubmissionDate": nil,
		"registrationInfo":  in.RegistrationInfo,
		"contactDetails":    in.ContactDetails,
		"updatedAt":         time.Now(),
	}
	if in.InspectionDate != nil {
		fields["inspectionDate"] = *in.InspectionDate
	}
	if in.EMDSubmissionDate != nil {
		fields["emdSubmissionDate"] = *in.EMDSubmissionDate
	}
	if in.Boundaries != nil {
		fields["boundaries"] = in.Boundaries
	}
	return fields
}

type AuctionRepository struct {
	client *firestore.Client
}

func NewAuctionRepository(client *firestore.Client) *AuctionRepository {
	return &AuctionRepository{
		client: client,
	}
}

// CreateAuction inserts an Active auction owned by ownerID
func (r *AuctionRepository) CreateAuction(ctx context.Context, ownerID string, in *models.AuctionInput) (string, error) {
	fields := inputFields(in)
	now := time.Now()
	fields["ownerId"] = ownerID
	fields["status"] = string(models.AuctionActive)
	fields["createdAt"] = now
	fields["updatedAt"] = now

	docRef, _, err := r.client.Collection(auctionsCollection).Add(ctx, fields)
	if err != nil {
		return "", err
	}

	// Update with the generated ID
	_, err = docRef.Update(ctx, []firestore.Update{
		{Path: "auctionId", Value: docRef.ID},
	})
	if err != nil {
		return "", err
	}

	return docRef.ID, nil
}

// GetAuction retrieves an auction by ID
func (r *AuctionRepository) GetAuction(ctx context.Context, auctionID string) (*models.Auction, error) {
	doc, err := r.client.Collection(auctionsCollection).Doc(auctionID).Get(ctx)
	if err != nil {
		return nil, notFound(err)
	}

	var d auctionDocument
	if err := doc.DataTo(&d); err != nil {
		return nil, err
	}
	return d.toModel(doc.Ref.ID)
}

// UpdateAuction overwrites the editable fields of an auction
func (r *AuctionRepository) UpdateAuction(ctx context.Context, auctionID string, in *models.AuctionInput) error {
	_, err := r.client.Collection(auctionsCollection).Doc(auctionID).Set(ctx, inputFields(in), firestore.MergeAll)
	return notFound(err)
}

// ArchiveAuction marks an auction Archived; the document is kept
func (r *AuctionRepository) ArchiveAuction(ctx context.Context, auctionID string) error {
	_, err := r.client.Collection(auctionsCollection).Doc(auctionID).Update(ctx, []firestore.Update{
		{Path: "status", Value: string(models.AuctionArchived)},
		{Path: "updatedAt", Value: time.Now()},
	})
	return notFound(err)
}

// ListByStatus returns every auction with the given status. Date filtering
// and ordering are left to the caller so no (status, auctionDate) index is
// needed.
func (r *AuctionRepository) ListByStatus(ctx context.Context, status models.AuctionStatus) ([]*models.Auction, error) {
	return r.collect(ctx, r.client.Collection(auctionsCollection).Where("status", "==", string(status)))
}

// ListByOwner returns every auction created by ownerID
func (r *AuctionRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Auction, error) {
	return r.collect(ctx, r.client.Collection(auctionsCollection).Where("ownerId", "==", ownerID))
}

func (r *AuctionRepository) collect(ctx context.Context, q firestore.Query) ([]*models.Auction, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	var auctions []*models.Auction
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var d auctionDocument
		if err := doc.DataTo(&d); err != nil {
			continue
		}
		auction, err := d.toModel(doc.Ref.ID)
		if err != nil {
			continue
		}
		auctions = append(auctions, auction)
	}

	return auctions, nil
}
