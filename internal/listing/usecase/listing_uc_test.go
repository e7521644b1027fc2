package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/listing/domain"
	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/platform/logger"
)

type listingFixture struct {
	listings    *MockListingRepository
	specialties *MockSpecialtyRepository
	services    *MockServiceRepository
	media       *MockMediaRepository
	storage     *MockMediaStorage
	cache       *MockListingCache
	uc          *ListingUsecase
}

func newListingFixture() *listingFixture {
	f := &listingFixture{
		listings:    new(MockListingRepository),
		specialties: new(MockSpecialtyRepository),
		services:    new(MockServiceRepository),
		media:       new(MockMediaRepository),
		storage:     new(MockMediaStorage),
		cache:       new(MockListingCache),
	}
	f.uc = NewListingUsecase(f.listings, f.specialties, f.services, f.media,
		f.storage, f.cache, nil, logger.NewNop())
	return f
}

func TestGetListing_CacheHitSkipsRepository(t *testing.T) {
	f := newListingFixture()
	cached := &domain.Listing{ID: "listing-1", BusinessName: "Cached"}
	f.cache.On("GetListing", mock.Anything, "listing-1").Return(cached, nil)

	got, err := f.uc.GetListing(context.Background(), "listing-1")
	require.NoError(t, err)
	assert.Equal(t, "Cached", got.BusinessName)
	f.listings.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestGetListing_CacheMissFallsThroughAndBackfills(t *testing.T) {
	f := newListingFixture()
	f.cache.On("GetListing", mock.Anything, "listing-1").Return(nil, nil)

	listing := &domain.Listing{ID: "listing-1", BusinessName: "Fresh"}
	f.listings.On("FindByID", mock.Anything, "listing-1").Return(listing, nil)
	f.cache.On("SetListing", mock.Anything, listing).Return(nil)

	got, err := f.uc.GetListing(context.Background(), "listing-1")
	require.NoError(t, err)
	assert.Equal(t, "Fresh", got.BusinessName)
	f.cache.AssertCalled(t, "SetListing", mock.Anything, listing)
}

func TestGetListing_CacheErrorIsNonFatal(t *testing.T) {
	f := newListingFixture()
	f.cache.On("GetListing", mock.Anything, "listing-1").Return(nil, errors.New("redis down"))

	listing := &domain.Listing{ID: "listing-1"}
	f.listings.On("FindByID", mock.Anything, "listing-1").Return(listing, nil)
	f.cache.On("SetListing", mock.Anything, listing).Return(errors.New("redis down"))

	got, err := f.uc.GetListing(context.Background(), "listing-1")
	require.NoError(t, err)
	assert.Equal(t, "listing-1", got.ID)
}

func TestSearchListings(t *testing.T) {
	f := newListingFixture()
	filter := domain.Filter{VendorType: domain.VendorDJ, Limit: 10}
	f.listings.On("FindByFilter", mock.Anything, filter).
		Return([]*domain.Listing{{ID: "listing-1"}}, int64(1), nil)

	items, total, err := f.uc.SearchListings(context.Background(), filter)
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, int64(1), total)
}

func TestSetArchived(t *testing.T) {
	f := newListingFixture()
	f.listings.On("FindByID", mock.Anything, "listing-1").
		Return(&domain.Listing{ID: "listing-1", UserID: "user-1"}, nil)

	var updated *domain.Listing
	f.listings.On("Update", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		updated = args.Get(1).(*domain.Listing)
	}).Return(nil)
	f.cache.On("DeleteListing", mock.Anything, "listing-1").Return(nil)

	got, err := f.uc.SetArchived(context.Background(), "user-1", "listing-1", true)
	require.NoError(t, err)
	assert.True(t, got.IsArchived)
	assert.True(t, updated.IsArchived)
}

func TestSetArchived_ForbiddenForNonOwner(t *testing.T) {
	f := newListingFixture()
	f.listings.On("FindByID", mock.Anything, "listing-1").
		Return(&domain.Listing{ID: "listing-1", UserID: "someone-else"}, nil)

	_, err := f.uc.SetArchived(context.Background(), "user-1", "listing-1", true)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDeleteListing_RemovesBlobsAndRows(t *testing.T) {
	f := newListingFixture()
	f.listings.On("FindByID", mock.Anything, "listing-1").
		Return(&domain.Listing{ID: "listing-1", UserID: "user-1"}, nil)
	f.media.On("FindByListingID", mock.Anything, "listing-1").Return([]domain.Media{
		{ID: "m1", FilePath: "dj/listing-1/0-1.jpg"},
	}, nil)
	f.storage.On("Remove", mock.Anything, []string{"dj/listing-1/0-1.jpg"}).Return(nil)
	f.media.On("DeleteByListingID", mock.Anything, "listing-1").Return(nil)
	f.specialties.On("DeleteByListingID", mock.Anything, "listing-1").Return(nil)
	f.services.On("DeleteByListingID", mock.Anything, "listing-1").Return(nil)
	f.listings.On("Delete", mock.Anything, "listing-1").Return(nil)
	f.cache.On("DeleteListing", mock.Anything, "listing-1").Return(nil)

	err := f.uc.DeleteListing(context.Background(), "user-1", "listing-1")
	require.NoError(t, err)

	f.storage.AssertExpectations(t)
	f.listings.AssertExpectations(t)
}

func TestDeleteListing_StorageFailureKeepsRows(t *testing.T) {
	f := newListingFixture()
	f.listings.On("FindByID", mock.Anything, "listing-1").
		Return(&domain.Listing{ID: "listing-1", UserID: "user-1"}, nil)
	f.media.On("FindByListingID", mock.Anything, "listing-1").Return([]domain.Media{
		{ID: "m1", FilePath: "dj/listing-1/0-1.jpg"},
	}, nil)
	f.storage.On("Remove", mock.Anything, mock.Anything).Return(errors.New("bucket unreachable"))

	err := f.uc.DeleteListing(context.Background(), "user-1", "listing-1")
	require.Error(t, err)
	f.listings.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
