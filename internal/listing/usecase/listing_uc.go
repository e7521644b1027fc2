package usecase

import (
	"context"
	"fmt"
	"time"

	natsadapter "github.com/Merey-A/WeddingMarketplace/listing-service/internal/adapter/messaging/nats"
	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/listing/domain"
	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/platform/logger"
)

// ListingUsecase serves the read and lifecycle operations around
// listings: cached reads, search, archiving and deletion.
type ListingUsecase struct {
	listings    domain.ListingRepository
	specialties domain.SpecialtyRepository
	services    domain.ServiceRepository
	media       domain.MediaRepository
	storage     MediaStorage
	cache       ListingCache
	publisher   natsadapter.MessagePublisher
	logger      logger.Logger
}

func NewListingUsecase(
	listings domain.ListingRepository,
	specialties domain.SpecialtyRepository,
	services domain.ServiceRepository,
	media domain.MediaRepository,
	storage MediaStorage,
	cache ListingCache,
	publisher natsadapter.MessagePublisher,
	log logger.Logger,
) *ListingUsecase {
	return &ListingUsecase{
		listings:    listings,
		specialties: specialties,
		services:    services,
		media:       media,
		storage:     storage,
		cache:       cache,
		publisher:   publisher,
		logger:      log,
	}
}

// GetListing reads through the cache.
func (uc *ListingUsecase) GetListing(ctx context.Context, id string) (*domain.Listing, error) {
	if cached, err := uc.cache.GetListing(ctx, id); err == nil && cached != nil {
		return cached, nil
	} else if err != nil {
		uc.logger.Warnf("Cache read failed for listing %s: %v", id, err)
	}

	listing, err := uc.listings.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load listing %s: %w", id, err)
	}
	if err := uc.cache.SetListing(ctx, listing); err != nil {
		uc.logger.Warnf("Cache write failed for listing %s: %v", id, err)
	}
	return listing, nil
}

// SearchListings runs a filtered search and returns the page plus the
// total match count.
func (uc *ListingUsecase) SearchListings(ctx context.Context, filter domain.Filter) ([]*domain.Listing, int64, error) {
	listings, total, err := uc.listings.FindByFilter(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search listings: %w", err)
	}
	return listings, total, nil
}

// SetArchived flips the archived flag. Only the owner may do this.
func (uc *ListingUsecase) SetArchived(ctx context.Context, actorID, id string, archived bool) (*domain.Listing, error) {
	if actorID == "" {
		return nil, domain.ErrUnauthenticated
	}
	listing, err := uc.listings.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load listing %s: %w", id, err)
	}
	if listing.UserID != actorID {
		uc.logger.Warnf("User %s attempted to archive listing %s owned by %s", actorID, id, listing.UserID)
		return nil, domain.ErrForbidden
	}

	listing.IsArchived = archived
	listing.UpdatedAt = time.Now().UTC()
	if err := uc.listings.Update(ctx, listing); err != nil {
		return nil, fmt.Errorf("failed to update listing %s: %w", id, err)
	}
	if err := uc.cache.DeleteListing(ctx, id); err != nil {
		uc.logger.Warnf("Failed to invalidate cache for listing %s: %v", id, err)
	}
	return listing, nil
}

// DeleteListing removes the listing, its child rows and its stored media
// blobs. Only the owner may delete.
func (uc *ListingUsecase) DeleteListing(ctx context.Context, actorID, id string) error {
	if actorID == "" {
		return domain.ErrUnauthenticated
	}
	listing, err := uc.listings.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load listing %s: %w", id, err)
	}
	if listing.UserID != actorID {
		uc.logger.Warnf("User %s attempted to delete listing %s owned by %s", actorID, id, listing.UserID)
		return domain.ErrForbidden
	}

	media, err := uc.media.FindByListingID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load media for listing %s: %w", id, err)
	}
	if len(media) > 0 {
		keys := make([]string, len(media))
		for i, m := range media {
			keys[i] = m.FilePath
		}
		if err := uc.storage.Remove(ctx, keys); err != nil {
			return fmt.Errorf("failed to remove media files for listing %s: %w", id, err)
		}
		if err := uc.media.DeleteByListingID(ctx, id); err != nil {
			return fmt.Errorf("failed to delete media records for listing %s: %w", id, err)
		}
	}

	if err := uc.specialties.DeleteByListingID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete specialties for listing %s: %w", id, err)
	}
	if err := uc.services.DeleteByListingID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete services for listing %s: %w", id, err)
	}
	if err := uc.listings.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete listing %s: %w", id, err)
	}

	if err := uc.cache.DeleteListing(ctx, id); err != nil {
		uc.logger.Warnf("Failed to invalidate cache for listing %s: %v", id, err)
	}
	if uc.publisher != nil {
		if err := uc.publisher.Publish(ctx, "listing.deleted", map[string]string{"listing_id": id}); err != nil {
			uc.logger.Warnf("Failed to publish listing.deleted event: %v", err)
		}
	}
	uc.logger.Infof("Listing %s deleted by user %s", id, actorID)
	return nil
}
