package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/listing/domain"
)

const (
	listingKeyPrefix = "listing:"
	dialTimeout      = 5 * time.Second
	defaultTTL       = time.Hour
)

type Config struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

func NewClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	dialCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()

	if _, err := client.Ping(dialCtx).Result(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

// ListingCache holds listing rows for read-through caching.
type ListingCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewListingCache(client *redis.Client, ttl time.Duration) *ListingCache {
	if ttl == 0 {
		ttl = defaultTTL
	}
	return &ListingCache{client: client, ttl: ttl}
}

// GetListing returns nil without an error on a cache miss.
func (c *ListingCache) GetListing(ctx context.Context, id string) (*domain.Listing, error) {
	data, err := c.client.Get(ctx, listingKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get listing %s from cache: %w", id, err)
	}
	var listing domain.Listing
	if err := json.Unmarshal(data, &listing); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached listing %s: %w", id, err)
	}
	return &listing, nil
}

func (c *ListingCache) SetListing(ctx context.Context, listing *domain.Listing) error {
	data, err := json.Marshal(listing)
	if err != nil {
		return fmt.Errorf("failed to marshal listing %s for cache: %w", listing.ID, err)
	}
	if err := c.client.Set(ctx, listingKeyPrefix+listing.ID, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache listing %s: %w", listing.ID, err)
	}
	return nil
}

func (c *ListingCache) DeleteListing(ctx context.Context, id string) error {
	if err := c.client.Del(ctx, listingKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("failed to evict listing %s from cache: %w", id, err)
	}
	return nil
}
