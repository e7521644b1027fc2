package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/adapter/payment"
	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/listing/domain"
)

type MockListingRepository struct{ mock.Mock }

func (m *MockListingRepository) Create(ctx context.Context, listing *domain.Listing) (string, error) {
	args := m.Called(ctx, listing)
	return args.String(0), args.Error(1)
}
func (m *MockListingRepository) Update(ctx context.Context, listing *domain.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}
func (m *MockListingRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockListingRepository) FindByID(ctx context.Context, id string) (*domain.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}
func (m *MockListingRepository) FindByFilter(ctx context.Context, filter domain.Filter) ([]*domain.Listing, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*domain.Listing), args.Get(1).(int64), args.Error(2)
}

type MockSpecialtyRepository struct{ mock.Mock }

func (m *MockSpecialtyRepository) FindByListingID(ctx context.Context, listingID string) ([]domain.Specialty, error) {
	args := m.Called(ctx, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Specialty), args.Error(1)
}
func (m *MockSpecialtyRepository) DeleteByListingID(ctx context.Context, listingID string) error {
	args := m.Called(ctx, listingID)
	return args.Error(0)
}
func (m *MockSpecialtyRepository) InsertMany(ctx context.Context, specialties []domain.Specialty) error {
	args := m.Called(ctx, specialties)
	return args.Error(0)
}

type MockServiceRepository struct{ mock.Mock }

func (m *MockServiceRepository) FindByListingID(ctx context.Context, listingID string) ([]domain.ServiceItem, error) {
	args := m.Called(ctx, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ServiceItem), args.Error(1)
}
func (m *MockServiceRepository) DeleteByListingID(ctx context.Context, listingID string) error {
	args := m.Called(ctx, listingID)
	return args.Error(0)
}
func (m *MockServiceRepository) InsertMany(ctx context.Context, items []domain.ServiceItem) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}

type MockMediaRepository struct{ mock.Mock }

func (m *MockMediaRepository) FindByListingID(ctx context.Context, listingID string) ([]domain.Media, error) {
	args := m.Called(ctx, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Media), args.Error(1)
}
func (m *MockMediaRepository) DeleteByIDs(ctx context.Context, ids []string) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}
func (m *MockMediaRepository) DeleteByListingID(ctx context.Context, listingID string) error {
	args := m.Called(ctx, listingID)
	return args.Error(0)
}
func (m *MockMediaRepository) InsertMany(ctx context.Context, media []domain.Media) error {
	args := m.Called(ctx, media)
	return args.Error(0)
}

type MockMediaStorage struct{ mock.Mock }

func (m *MockMediaStorage) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	args := m.Called(ctx, key, data, contentType)
	return args.Error(0)
}
func (m *MockMediaStorage) Remove(ctx context.Context, keys []string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}
func (m *MockMediaStorage) PublicURL(key string) string {
	args := m.Called(key)
	return args.String(0)
}

type MockListingCache struct{ mock.Mock }

func (m *MockListingCache) GetListing(ctx context.Context, id string) (*domain.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}
func (m *MockListingCache) SetListing(ctx context.Context, listing *domain.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}
func (m *MockListingCache) DeleteListing(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPaymentProvider struct{ mock.Mock }

func (m *MockPaymentProvider) HasPaymentMethod(ctx context.Context, userID string) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}
func (m *MockPaymentProvider) CreateSetupIntent(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}
func (m *MockPaymentProvider) CreateSubscription(ctx context.Context, params payment.SubscriptionParams) (*payment.SubscriptionResult, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.SubscriptionResult), args.Error(1)
}
func (m *MockPaymentProvider) CreateCheckoutSession(ctx context.Context, params payment.CheckoutParams) (string, error) {
	args := m.Called(ctx, params)
	return args.String(0), args.Error(1)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, subject string, message interface{}) error {
	args := m.Called(ctx, subject, message)
	return args.Error(0)
}
func (m *MockPublisher) PublishRaw(ctx context.Context, subject string, data []byte) error {
	args := m.Called(ctx, subject, data)
	return args.Error(0)
}

type MockMailer struct{ mock.Mock }

func (m *MockMailer) SendListingCreated(toEmail, businessName string) error {
	args := m.Called(toEmail, businessName)
	return args.Error(0)
}
