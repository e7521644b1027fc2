package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/listing/domain"
)

const listingCollection = "listings"

type ListingRepository struct {
	collection *mongo.Collection
}

func NewListingRepository(db *mongo.Database) *ListingRepository {
	return &ListingRepository{collection: db.Collection(listingCollection)}
}

func (r *ListingRepository) Create(ctx context.Context, listing *domain.Listing) (string, error) {
	doc, err := toListingDocument(listing)
	if err != nil {
		return "", err
	}
	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("failed to insert listing: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("failed to convert inserted ID to ObjectID")
	}
	return oid.Hex(), nil
}

// Update replaces every mutable field of the parent row; edit submits are
// wholesale updates, not partial patches.
func (r *ListingRepository) Update(ctx context.Context, listing *domain.Listing) error {
	oid, err := objectIDFromHex(listing.ID, "listing")
	if err != nil {
		return err
	}
	doc, err := toListingDocument(listing)
	if err != nil {
		return err
	}

	update := bson.M{"$set": bson.M{
		"business_name":    doc.BusinessName,
		"city":             doc.City,
		"state":            doc.State,
		"description":      doc.Description,
		"years_experience": doc.YearsExperience,
		"travel_range":     doc.TravelRange,
		"travels_anywhere": doc.TravelsAnywhere,
		"deposit_percent":  doc.DepositPercent,
		"service_category": doc.ServiceCategory,
		"is_archived":      doc.IsArchived,
		"updated_at":       doc.UpdatedAt,
	}}

	res, err := r.collection.UpdateByID(ctx, oid, update)
	if err != nil {
		return fmt.Errorf("failed to update listing %s: %w", listing.ID, err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

func (r *ListingRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectIDFromHex(id, "listing")
	if err != nil {
		return err
	}
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete listing %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

func (r *ListingRepository) FindByID(ctx context.Context, id string) (*domain.Listing, error) {
	oid, err := objectIDFromHex(id, "listing")
	if err != nil {
		return nil, domain.ErrListingNotFound
	}
	var doc listingDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrListingNotFound
		}
		return nil, fmt.Errorf("failed to find listing %s: %w", id, err)
	}
	return toDomainListing(&doc), nil
}

func (r *ListingRepository) FindByFilter(ctx context.Context, filter domain.Filter) ([]*domain.Listing, int64, error) {
	query := bson.M{}
	if filter.Query != "" {
		query["$text"] = bson.M{"$search": filter.Query}
	}
	if filter.VendorType != "" {
		query["vendor_type"] = filter.VendorType
	}
	if filter.UserID != "" {
		query["user_id"] = filter.UserID
	}
	if filter.Archived != nil {
		query["is_archived"] = *filter.Archived
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count listings: %w", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if filter.Limit > 0 {
		opts.SetLimit(filter.Limit)
		if filter.Page > 1 {
			opts.SetSkip((filter.Page - 1) * filter.Limit)
		}
	}

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find listings: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []*listingDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("failed to decode listings: %w", err)
	}

	listings := make([]*domain.Listing, 0, len(docs))
	for _, doc := range docs {
		listings = append(listings, toDomainListing(doc))
	}
	return listings, total, nil
}
