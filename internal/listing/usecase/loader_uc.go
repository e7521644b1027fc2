package usecase

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/listing/domain"
	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/listing/wizard"
	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/platform/logger"
)

// DraftLoader populates a wizard draft for an edit session from the
// listing row and its child collections.
type DraftLoader struct {
	listings    domain.ListingRepository
	specialties domain.SpecialtyRepository
	services    domain.ServiceRepository
	media       domain.MediaRepository
	storage     MediaStorage
	logger      logger.Logger
}

func NewDraftLoader(
	listings domain.ListingRepository,
	specialties domain.SpecialtyRepository,
	services domain.ServiceRepository,
	media domain.MediaRepository,
	storage MediaStorage,
	log logger.Logger,
) *DraftLoader {
	return &DraftLoader{
		listings:    listings,
		specialties: specialties,
		services:    services,
		media:       media,
		storage:     storage,
		logger:      log,
	}
}

// LoadedDraft bundles the reconstructed draft with the listing it came
// from and the navigation target a subsequent update should use.
type LoadedDraft struct {
	Draft        *wizard.Draft
	Listing      *domain.Listing
	RedirectPath string
}

// Load fetches the parent and child rows and flattens them into draft
// shape. Each child collection is partitioned into catalog vs custom by
// allow-list membership; media file paths are resolved to public URLs and
// tagged as persisted so the reconciler will not re-upload them.
func (l *DraftLoader) Load(ctx context.Context, listingID string) (*LoadedDraft, error) {
	listing, err := l.listings.FindByID(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load listing %s: %w", listingID, err)
	}

	specialties, err := l.specialties.FindByListingID(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load specialties for listing %s: %w", listingID, err)
	}
	services, err := l.services.FindByListingID(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load services for listing %s: %w", listingID, err)
	}
	media, err := l.media.FindByListingID(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load media for listing %s: %w", listingID, err)
	}

	draft := &wizard.Draft{
		VendorType:      listing.VendorType,
		BusinessName:    listing.BusinessName,
		City:            listing.City,
		State:           listing.State,
		YearsExperience: listing.YearsExperience,
		TravelRange:     listing.TravelRange,
		TravelsAnywhere: listing.TravelsAnywhere,
		Description:     listing.Description,
		DepositPercent:  strconv.Itoa(listing.DepositPercent),
		ServiceCategory: listing.ServiceCategory,
	}

	for _, s := range specialties {
		if domain.IsCatalogSpecialty(listing.VendorType, s.Label) {
			draft.CatalogSpecialties = append(draft.CatalogSpecialties, s.Label)
		} else {
			draft.CustomSpecialties = append(draft.CustomSpecialties, s.Label)
		}
	}

	for _, item := range services {
		switch item.Kind {
		case domain.KindInclusion:
			draft.Inclusions = append(draft.Inclusions, item.Name)
		case domain.KindAddOn:
			draft.AddOns = append(draft.AddOns, serviceEntryFromItem(item))
		default:
			entry := serviceEntryFromItem(item)
			if domain.IsCatalogService(listing.VendorType, item.Name) {
				entry.Custom = false
				draft.Services = append(draft.Services, entry)
			} else {
				entry.Custom = true
				draft.CustomServices = append(draft.CustomServices, entry)
			}
		}
	}

	for _, m := range media {
		draft.Media = append(draft.Media, wizard.MediaItem{
			ID:        m.ID,
			FilePath:  m.FilePath,
			URL:       l.storage.PublicURL(m.FilePath),
			MediaType: m.MediaType,
		})
	}

	l.logger.Debugf("Loaded draft for listing %s: %d specialties, %d services, %d media",
		listingID, len(specialties), len(services), len(media))

	return &LoadedDraft{
		Draft:        draft,
		Listing:      listing,
		RedirectPath: listing.DetailPath(),
	}, nil
}

func serviceEntryFromItem(item domain.ServiceItem) wizard.ServiceEntry {
	entry := wizard.ServiceEntry{
		Name:        item.Name,
		Description: item.Description,
		Price:       strconv.FormatFloat(item.Price, 'f', -1, 64),
		Category:    item.Category,
		Custom:      item.IsCustom,
	}
	if item.DurationHours > 0 {
		entry.Duration = strconv.FormatFloat(item.DurationHours, 'f', -1, 64)
	}
	return entry
}
