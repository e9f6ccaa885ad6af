package models

import (
	"encoding/json"
	"time"
)

// AuctionStatus represents the lifecycle marker stored on an auction
type AuctionStatus string

const (
	AuctionActive   AuctionStatus = "Active"
	AuctionArchived AuctionStatus = "Archived"
)

// StoredDate is a date field as found in the store. Older documents carry
// ISO strings, newer ones native timestamps; FromString records which.
type StoredDate struct {
	Time       time.Time
	FromString bool
}

// IsZero reports whether no date was stored
func (d StoredDate) IsZero() bool {
	return d.Time.IsZero()
}

func (d StoredDate) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	if d.FromString {
		return json.Marshal(d.Time.Format("2006-01-02"))
	}
	return json.Marshal(d.Time)
}

func (d *StoredDate) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = StoredDate{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if len(s) == len("2006-01-02") {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return err
		}
		*d = StoredDate{Time: t, FromString: true}
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return err
	}
	*d = StoredDate{Time: t}
	return nil
}

// Auction represents a bank auction listing
type Auction struct {
	AuctionID         string        `json:"auctionId"`
	OwnerID           string        `json:"ownerId"`
	Title             string        `json:"title"`
	PropertyType      string        `json:"propertyType"`
	City              string        `json:"city"`
	Address           string        `json:"address"`
	BankAgency        string        `json:"bankAgency"`
	ReservePrice      float64       `json:"reservePrice"`
	EMDAmount         float64       `json:"emdAmount"`
	AuctionDate       StoredDate    `json:"auctionDate"`
	InspectionDate    StoredDate    `json:"inspectionDate"`
	EMDSubmissionDate StoredDate    `json:"emdSubmissionDate"`
	Status            AuctionStatus `json:"status"`
	Boundaries        *Boundaries   `json:"boundaries,omitempty"`
	RegistrationInfo  string        `json:"registrationInfo,omitempty"`
	ContactDetails    string        `json:"contactDetails,omitempty"`
	CreatedAt         time.Time     `json:"createdAt"`
	UpdatedAt         time.Time     `json:"updatedAt"`
}

// Boundaries describes the four sides of an auctioned plot
type Boundaries struct {
	North string `firestore:"north" json:"north"`
	South string `firestore:"south" json:"south"`
	East  string `firestore:"east" json:"east"`
	West  string `firestore:"west" json:"west"`
}

// AuctionInput represents the create/update body for an auction
type AuctionInput struct {
	Title             string      `json:"title" validate:"required,max=200"`
	PropertyType      string      `json:"propertyType" validate:"required,oneof=residential commercial industrial land"`
	City              string      `json:"city" validate:"required"`
	Address           string      `json:"address"`
	BankAgency        string      `json:"bankAgency" validate:"required"`
	ReservePrice      float64     `json:"reservePrice" validate:"gt=0"`
	EMDAmount         float64     `json:"emdAmount" validate:"gte=0"`
	AuctionDate       time.Time   `json:"auctionDate" validate:"required"`
	InspectionDate    *time.Time  `json:"inspectionDate"`
	EMDSubmissionDate *time.Time  `json:"emdSubmissionDate"`
	Boundaries        *Boundaries `json:"boundaries"`
	RegistrationInfo  string      `json:"registrationInfo"`
	ContactDetails    string      `json:"contactDetails"`
}

// AuctionFilter narrows a classified auction list
type AuctionFilter struct {
	City         string `form:"city"`
	PropertyType string `form:"propertyType"`
	BankAgency   string `form:"bankAgency"`
}

// MyAuctions splits an owner's auctions into the two dashboard tabs
type MyAuctions struct {
	Upcoming []*Auction `json:"upcoming"`
	Past     []*Auction `json:"past"`
}
