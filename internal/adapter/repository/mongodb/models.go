package mongodb

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/listing/domain"
)

// Documents mirror the domain entities for storage; the mapping stays in
// this package so the domain carries no bson tags.

type listingDocument struct {
	ID              primitive.ObjectID     `bson:"_id,omitempty"`
	UserID          string                 `bson:"user_id"`
	VendorType      domain.VendorType      `bson:"vendor_type"`
	BusinessName    string                 `bson:"business_name"`
	City            string                 `bson:"city"`
	State           string                 `bson:"state"`
	Description     string                 `bson:"description"`
	YearsExperience string                 `bson:"years_experience"`
	TravelRange     string                 `bson:"travel_range"`
	TravelsAnywhere bool                   `bson:"travels_anywhere"`
	DepositPercent  int                    `bson:"deposit_percent"`
	ServiceCategory domain.ServiceCategory `bson:"service_category,omitempty"`
	IsArchived      bool                   `bson:"is_archived"`
	CreatedAt       time.Time              `bson:"created_at"`
	UpdatedAt       time.Time              `bson:"updated_at"`
}

type specialtyDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	ListingID string             `bson:"listing_id"`
	Label     string             `bson:"label"`
	StyleType string             `bson:"style_type,omitempty"`
	IsCustom  bool               `bson:"is_custom"`
}

type serviceDocument struct {
	ID            primitive.ObjectID     `bson:"_id,omitempty"`
	ListingID     string                 `bson:"listing_id"`
	Kind          domain.ServiceKind     `bson:"kind"`
	Category      domain.ServiceCategory `bson:"category,omitempty"`
	Name          string                 `bson:"name"`
	Description   string                 `bson:"description,omitempty"`
	Price         float64                `bson:"price"`
	DurationHours float64                `bson:"duration_hours,omitempty"`
	IsCustom      bool                   `bson:"is_custom"`
}

type mediaDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	ListingID    string             `bson:"listing_id"`
	FilePath     string             `bson:"file_path"`
	DisplayOrder int                `bson:"display_order"`
	MediaType    string             `bson:"media_type"`
	CreatedAt    time.Time          `bson:"created_at"`
}

func objectIDFromHex(id, kind string) (primitive.ObjectID, error) {
	if id == "" {
		return primitive.NilObjectID, nil
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("invalid %s ID %q: %w", kind, id, err)
	}
	return oid, nil
}

func toListingDocument(l *domain.Listing) (*listingDocument, error) {
	oid, err := objectIDFromHex(l.ID, "listing")
	if err != nil {
		return nil, err
	}
	return &listingDocument{
		ID:              oid,
		UserID:          l.UserID,
		VendorType:      l.VendorType,
		BusinessName:    l.BusinessName,
		City:            l.City,
		State:           l.State,
		Description:     l.Description,
		YearsExperience: l.YearsExperience,
		TravelRange:     l.TravelRange,
		TravelsAnywhere: l.TravelsAnywhere,
		DepositPercent:  l.DepositPercent,
		ServiceCategory: l.ServiceCategory,
		IsArchived:      l.IsArchived,
		CreatedAt:       l.CreatedAt,
		UpdatedAt:       l.UpdatedAt,
	}, nil
}

func toDomainListing(d *listingDocument) *domain.Listing {
	return &domain.Listing{
		ID:              d.ID.Hex(),
		UserID:          d.UserID,
		VendorType:      d.VendorType,
		BusinessName:    d.BusinessName,
		City:            d.City,
		State:           d.State,
		Description:     d.Description,
		YearsExperience: d.YearsExperience,
		TravelRange:     d.TravelRange,
		TravelsAnywhere: d.TravelsAnywhere,
		DepositPercent:  d.DepositPercent,
		ServiceCategory: d.ServiceCategory,
		IsArchived:      d.IsArchived,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

func toDomainSpecialty(d *specialtyDocument) domain.Specialty {
	return domain.Specialty{
		ID:        d.ID.Hex(),
		ListingID: d.ListingID,
		Label:     d.Label,
		StyleType: d.StyleType,
		IsCustom:  d.IsCustom,
	}
}

func toDomainService(d *serviceDocument) domain.ServiceItem {
	return domain.ServiceItem{
		ID:            d.ID.Hex(),
		ListingID:     d.ListingID,
		Kind:          d.Kind,
		Category:      d.Category,
		Name:          d.Name,
		Description:   d.Description,
		Price:         d.Price,
		DurationHours: d.DurationHours,
		IsCustom:      d.IsCustom,
	}
}

func toDomainMedia(d *mediaDocument) domain.Media {
	return domain.Media{
		ID:           d.ID.Hex(),
		ListingID:    d.ListingID,
		FilePath:     d.FilePath,
		DisplayOrder: d.DisplayOrder,
		MediaType:    d.MediaType,
		CreatedAt:    d.CreatedAt,
	}
}
