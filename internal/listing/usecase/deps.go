package usecase

import (
	"context"

	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/listing/domain"
)

// MediaStorage is the blob store behind portfolio media.
type MediaStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	Remove(ctx context.Context, keys []string) error
	PublicURL(key string) string
}

// ListingCache is the read-through cache for listing rows, invalidated on
// every submit.
type ListingCache interface {
	GetListing(ctx context.Context, id string) (*domain.Listing, error)
	SetListing(ctx context.Context, listing *domain.Listing) error
	DeleteListing(ctx context.Context, id string) error
}
