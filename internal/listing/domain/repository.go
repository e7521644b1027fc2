package domain

import "context"

type ListingRepository interface {
	Create(ctx context.Context, listing *Listing) (string, error)
	Update(ctx context.Context, listing *Listing) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Listing, error)
	FindByFilter(ctx context.Context, filter Filter) ([]*Listing, int64, error)
}

// SpecialtyRepository manages the delete-all-reinsert style collection.
type SpecialtyRepository interface {
	FindByListingID(ctx context.Context, listingID string) ([]Specialty, error)
	DeleteByListingID(ctx context.Context, listingID string) error
	InsertMany(ctx context.Context, specialties []Specialty) error
}

// ServiceRepository manages services, add-ons and inclusions, which share
// one collection discriminated by ServiceKind.
type ServiceRepository interface {
	FindByListingID(ctx context.Context, listingID string) ([]ServiceItem, error)
	DeleteByListingID(ctx context.Context, listingID string) error
	InsertMany(ctx context.Context, items []ServiceItem) error
}

// MediaRepository supports the incremental reconciliation the media
// collection uses instead of delete-all-reinsert.
type MediaRepository interface {
	FindByListingID(ctx context.Context, listingID string) ([]Media, error)
	DeleteByIDs(ctx context.Context, ids []string) error
	DeleteByListingID(ctx context.Context, listingID string) error
	InsertMany(ctx context.Context, media []Media) error
}
