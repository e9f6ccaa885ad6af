package models

import "time"

// Property represents a listing in the properties collection
type Property struct {
	PropertyID   string     `firestore:"propertyId" json:"propertyId"`
	Owner        string     `firestore:"owner" json:"owner"`
	Title        string     `firestore:"title" json:"title"`
	Description  string     `firestore:"description" json:"description"`
	PropertyType string     `firestore:"propertyType" json:"propertyType"`
	ListingType  string     `firestore:"listingType" json:"listingType"`
	Price        float64    `firestore:"price" json:"price"`
	City         string     `firestore:"city" json:"city"`
	Address      string     `firestore:"address" json:"address"`
	IsActive     bool       `firestore:"isActive" json:"isActive"`
	Amenities    []string   `firestore:"amenities" json:"amenities"`
	Images       []string   `firestore:"images" json:"images"`
	Bedrooms     int        `firestore:"bedrooms,omitempty" json:"bedrooms,omitempty"`
	Bathrooms    int        `firestore:"bathrooms,omitempty" json:"bathrooms,omitempty"`
	Furnishing   string     `firestore:"furnishing,omitempty" json:"furnishing,omitempty"`
	AreaSqFt     float64    `firestore:"areaSqFt,omitempty" json:"areaSqFt,omitempty"`
	Floor        int        `firestore:"floor,omitempty" json:"floor,omitempty"`
	TotalFloors  int        `firestore:"totalFloors,omitempty" json:"totalFloors,omitempty"`
	PlotArea     float64    `firestore:"plotArea,omitempty" json:"plotArea,omitempty"`
	CreatedAt    time.Time  `firestore:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time  `firestore:"updatedAt" json:"updatedAt"`
	DeletedAt    *time.Time `firestore:"deletedAt,omitempty" json:"deletedAt,omitempty"`
}

// PropertyInput represents the create/update body for a property
type PropertyInput struct {
	Title        string   `json:"title" binding:"required,max=200"`
	Description  string   `json:"description" binding:"max=5000"`
	PropertyType string   `json:"propertyType" binding:"required,oneof=residential commercial industrial land"`
	ListingType  string   `json:"listingType" binding:"required,oneof=rent sale"`
	Price        float64  `json:"price" binding:"gt=0"`
	City         string   `json:"city" binding:"required"`
	Address      string   `json:"address"`
	Amenities    []string `json:"amenities"`
	Images       []string `json:"images" binding:"omitempty,dive,url"`
	Bedrooms     int      `json:"bedrooms" binding:"gte=0"`
	Bathrooms    int      `json:"bathrooms" binding:"gte=0"`
	Furnishing   string   `json:"furnishing" binding:"omitempty,oneof=furnished semi-furnished unfurnished"`
	AreaSqFt     float64  `json:"areaSqFt" binding:"gte=0"`
	Floor        int      `json:"floor"`
	TotalFloors  int      `json:"totalFloors" binding:"gte=0"`
	PlotArea     float64  `json:"plotArea" binding:"gte=0"`
}

// PropertyFilter narrows the public property listing
type PropertyFilter struct {
	PropertyType string  `form:"propertyType"`
	ListingType  string  `form:"listingType"`
	City         string  `form:"city"`
	MinPrice     float64 `form:"minPrice"`
	MaxPrice     float64 `form:"maxPrice"`
}

// Favorite marks a property as favorited by the parent user
type Favorite struct {
	PropertyID string    `firestore:"propertyId" json:"propertyId"`
	AddedAt    time.Time `firestore:"addedAt" json:"addedAt"`
}

// FavoriteStatus represents the favorite toggle response
type FavoriteStatus struct {
	PropertyID string `json:"propertyId"`
	Favorite   bool   `json:"favorite"`
}
