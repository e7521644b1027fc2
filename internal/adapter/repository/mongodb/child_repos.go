package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/listing/domain"
)

const (
	specialtyCollection = "listing_specialties"
	serviceCollection   = "listing_services"
	mediaCollection     = "listing_media"
)

// SpecialtyRepository stores the delete-all-reinsert specialty rows.
type SpecialtyRepository struct {
	collection *mongo.Collection
}

func NewSpecialtyRepository(db *mongo.Database) *SpecialtyRepository {
	return &SpecialtyRepository{collection: db.Collection(specialtyCollection)}
}

func (r *SpecialtyRepository) FindByListingID(ctx context.Context, listingID string) ([]domain.Specialty, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"listing_id": listingID})
	if err != nil {
		return nil, fmt.Errorf("failed to find specialties for listing %s: %w", listingID, err)
	}
	defer cursor.Close(ctx)

	var docs []*specialtyDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode specialties: %w", err)
	}
	rows := make([]domain.Specialty, 0, len(docs))
	for _, doc := range docs {
		rows = append(rows, toDomainSpecialty(doc))
	}
	return rows, nil
}

func (r *SpecialtyRepository) DeleteByListingID(ctx context.Context, listingID string) error {
	if _, err := r.collection.DeleteMany(ctx, bson.M{"listing_id": listingID}); err != nil {
		return fmt.Errorf("failed to delete specialties for listing %s: %w", listingID, err)
	}
	return nil
}

func (r *SpecialtyRepository) InsertMany(ctx context.Context, specialties []domain.Specialty) error {
	if len(specialties) == 0 {
		return nil
	}
	docs := make([]interface{}, len(specialties))
	for i, s := range specialties {
		docs[i] = &specialtyDocument{
			ListingID: s.ListingID,
			Label:     s.Label,
			StyleType: s.StyleType,
			IsCustom:  s.IsCustom,
		}
	}
	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert specialties: %w", err)
	}
	return nil
}

// ServiceRepository stores services, add-ons and inclusions in one
// collection discriminated by kind.
type ServiceRepository struct {
	collection *mongo.Collection
}

func NewServiceRepository(db *mongo.Database) *ServiceRepository {
	return &ServiceRepository{collection: db.Collection(serviceCollection)}
}

func (r *ServiceRepository) FindByListingID(ctx context.Context, listingID string) ([]domain.ServiceItem, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"listing_id": listingID})
	if err != nil {
		return nil, fmt.Errorf("failed to find services for listing %s: %w", listingID, err)
	}
	defer cursor.Close(ctx)

	var docs []*serviceDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode services: %w", err)
	}
	items := make([]domain.ServiceItem, 0, len(docs))
	for _, doc := range docs {
		items = append(items, toDomainService(doc))
	}
	return items, nil
}

func (r *ServiceRepository) DeleteByListingID(ctx context.Context, listingID string) error {
	if _, err := r.collection.DeleteMany(ctx, bson.M{"listing_id": listingID}); err != nil {
		return fmt.Errorf("failed to delete services for listing %s: %w", listingID, err)
	}
	return nil
}

func (r *ServiceRepository) InsertMany(ctx context.Context, items []domain.ServiceItem) error {
	if len(items) == 0 {
		return nil
	}
	docs := make([]interface{}, len(items))
	for i, item := range items {
		docs[i] = &serviceDocument{
			ListingID:     item.ListingID,
			Kind:          item.Kind,
			Category:      item.Category,
			Name:          item.Name,
			Description:   item.Description,
			Price:         item.Price,
			DurationHours: item.DurationHours,
			IsCustom:      item.IsCustom,
		}
	}
	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert services: %w", err)
	}
	return nil
}

// MediaRepository stores portfolio rows, kept in display order.
type MediaRepository struct {
	collection *mongo.Collection
}

func NewMediaRepository(db *mongo.Database) *MediaRepository {
	return &MediaRepository{collection: db.Collection(mediaCollection)}
}

func (r *MediaRepository) FindByListingID(ctx context.Context, listingID string) ([]domain.Media, error) {
	opts := options.Find().SetSort(bson.D{{Key: "display_order", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"listing_id": listingID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find media for listing %s: %w", listingID, err)
	}
	defer cursor.Close(ctx)

	var docs []*mediaDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode media: %w", err)
	}
	rows := make([]domain.Media, 0, len(docs))
	for _, doc := range docs {
		rows = append(rows, toDomainMedia(doc))
	}
	return rows, nil
}

func (r *MediaRepository) DeleteByIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := objectIDFromHex(id, "media")
		if err != nil {
			return err
		}
		oids = append(oids, oid)
	}
	if _, err := r.collection.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": oids}}); err != nil {
		return fmt.Errorf("failed to delete media rows: %w", err)
	}
	return nil
}

func (r *MediaRepository) DeleteByListingID(ctx context.Context, listingID string) error {
	if _, err := r.collection.DeleteMany(ctx, bson.M{"listing_id": listingID}); err != nil {
		return fmt.Errorf("failed to delete media for listing %s: %w", listingID, err)
	}
	return nil
}

func (r *MediaRepository) InsertMany(ctx context.Context, media []domain.Media) error {
	if len(media) == 0 {
		return nil
	}
	docs := make([]interface{}, len(media))
	for i, m := range media {
		created := m.CreatedAt
		if created.IsZero() {
			created = time.Now().UTC()
		}
		docs[i] = &mediaDocument{
			ListingID:    m.ListingID,
			FilePath:     m.FilePath,
			DisplayOrder: m.DisplayOrder,
			MediaType:    m.MediaType,
			CreatedAt:    created,
		}
	}
	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert media rows: %w", err)
	}
	return nil
}
