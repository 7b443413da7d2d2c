package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"carrylink/internal/domain/entity"
	"carrylink/internal/domain/repository"
	"carrylink/pkg/errors"
)

type firestoreListingRepository struct {
	client *firestore.Client
}

func NewFirestoreListingRepository(client *firestore.Client) repository.ListingRepository {
	return &firestoreListingRepository{
		client: client,
	}
}

func (r *firestoreListingRepository) Create(ctx context.Context, listing *entity.Listing) error {
	if listing.ID == "" {
		doc := r.client.Collection("listings").NewDoc()
		listing.ID = doc.ID
	}

	now := time.Now()
	listing.CreatedAt = now
	listing.UpdatedAt = now
	listing.Views = 0
	listing.Matches = 0
	listing.Status = entity.ListingStatusActive

	_, err := r.client.Collection("listings").Doc(listing.ID).Set(ctx, listing)
	if err != nil {
		return errors.Internal("Failed to create listing", err)
	}

	return nil
}

func (r *firestoreListingRepository) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	doc, err := r.client.Collection("listings").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Listing", err)
		}
		return nil, errors.Internal("Failed to get listing", err)
	}

	var listing entity.Listing
	if err := doc.DataTo(&listing); err != nil {
		return nil, errors.Internal("Failed to parse listing data", err)
	}
	listing.ID = doc.Ref.ID

	return &listing, nil
}

func (r *firestoreListingRepository) ListByOwner(ctx context.Context, userID string) ([]*entity.Listing, error) {
	query := r.client.Collection("listings").
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc)

	return r.collect(ctx, query.Documents(ctx))
}

func (r *firestoreListingRepository) ListActive(ctx context.Context, listingType string, limit int) ([]*entity.Listing, error) {
	query := r.client.Collection("listings").Query.
		Where("status", "==", entity.ListingStatusActive)

	if listingType != "" {
		query = query.Where("type", "==", listingType)
	}

	query = query.OrderBy("createdAt", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}

	return r.collect(ctx, query.Documents(ctx))
}

func (r *firestoreListingRepository) ListActiveByRoute(ctx context.Context, listingType, origin, destination string, limit int) ([]*entity.Listing, error) {
	query := r.client.Collection("listings").Query.
		Where("type", "==", listingType).
		Where("status", "==", entity.ListingStatusActive).
		Where("origin", "==", origin).
		Where("destination", "==", destination).
		OrderBy("createdAt", firestore.Desc)

	if limit > 0 {
		query = query.Limit(limit)
	}

	return r.collect(ctx, query.Documents(ctx))
}

func (r *firestoreListingRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	updates := make([]firestore.Update, 0, len(fields)+1)
	for path, value := range fields {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}
	updates = append(updates, firestore.Update{Path: "updatedAt", Value: time.Now()})

	_, err := r.client.Collection("listings").Doc(id).Update(ctx, updates)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Listing", err)
		}
		return errors.Internal("Failed to update listing", err)
	}

	return nil
}

func (r *firestoreListingRepository) SoftDelete(ctx context.Context, id string) error {
	_, err := r.client.Collection("listings").Doc(id).Update(ctx, []firestore.Update{
		{Path: "status", Value: entity.ListingStatusCancelled},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Listing", err)
		}
		return errors.Internal("Failed to cancel listing", err)
	}

	return nil
}

func (r *firestoreListingRepository) IncrementViews(ctx context.Context, id string) error {
	_, err := r.client.Collection("listings").Doc(id).Update(ctx, []firestore.Update{
		{Path: "views", Value: firestore.Increment(1)},
	})
	if err != nil {
		return errors.Internal("Failed to increment listing views", err)
	}

	return nil
}

func (r *firestoreListingRepository) MarkMatched(ctx context.Context, id string) error {
	_, err := r.client.Collection("listings").Doc(id).Update(ctx, []firestore.Update{
		{Path: "status", Value: entity.ListingStatusMatched},
		{Path: "matches", Value: firestore.Increment(1)},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Listing", err)
		}
		return errors.Internal("Failed to mark listing as matched", err)
	}

	return nil
}

func (r *firestoreListingRepository) collect(ctx context.Context, iter *firestore.DocumentIterator) ([]*entity.Listing, error) {
	var listings []*entity.Listing

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate listings", err)
		}

		var listing entity.Listing
		if err := doc.DataTo(&listing); err != nil {
			return nil, errors.Internal("Failed to parse listing data", err)
		}
		listing.ID = doc.Ref.ID

		listings = append(listings, &listing)
	}

	return listings, nil
}
