package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"staygo/internal/domain/entity"
	"staygo/internal/domain/repository"
	"staygo/pkg/errors"
)

type firestoreReviewRepository struct {
	client *firestore.Client
}

func NewFirestoreReviewRepository(client *firestore.Client) repository.ReviewRepository {
	return &firestoreReviewRepository{
		client: client,
	}
}

// CreateIfAbsent checks for an existing review of the same reservation and
// inserts inside one Firestore transaction. Concurrent creates serialize on
// the transaction, so the reservation-id uniqueness holds without a separate
// index.
func (r *firestoreReviewRepository) CreateIfAbsent(ctx context.Context, review *entity.Review) error {
	if review.ID == "" {
		review.ID = uuid.New().String()
	}

	now := time.Now()
	review.CreatedAt = now
	review.UpdatedAt = now

	docRef := r.client.Collection("reviews").Doc(review.ID)
	existing := r.client.Collection("reviews").
		Where("reservationId", "==", review.ReservationID).
		Limit(1)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		iter := tx.Documents(existing)
		_, err := iter.Next()
		if err == nil {
			return errors.Conflict("Review for this reservation already exists", nil)
		}
		if err != iterator.Done {
			return err
		}
		return tx.Set(docRef, review)
	})

	if err != nil {
		if errors.Is(err, "CONFLICT") {
			return err
		}
		return errors.Internal("Failed to create review", err)
	}
	return nil
}

func (r *firestoreReviewRepository) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	doc, err := r.client.Collection("reviews").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Review", err)
		}
		return nil, errors.Internal("Failed to get review", err)
	}

	var review entity.Review
	if err := doc.DataTo(&review); err != nil {
		return nil, errors.Internal("Failed to parse review data", err)
	}

	return &review, nil
}

func (r *firestoreReviewRepository) GetByReservationID(ctx context.Context, reservationID string) (*entity.Review, error) {
	query := r.client.Collection("reviews").Where("reservationId", "==", reservationID).Limit(1)
	iter := query.Documents(ctx)
	doc, err := iter.Next()
	if err != nil {
		if err == iterator.Done {
			return nil, errors.NotFound("Review for reservation", nil)
		}
		return nil, errors.Internal("Failed to query review", err)
	}

	var review entity.Review
	if err := doc.DataTo(&review); err != nil {
		return nil, errors.Internal("Failed to parse review data", err)
	}

	return &review, nil
}

func (r *firestoreReviewRepository) Update(ctx context.Context, review *entity.Review) error {
	review.UpdatedAt = time.Now()

	_, err := r.client.Collection("reviews").Doc(review.ID).Set(ctx, review)
	if err != nil {
		return errors.Internal("Failed to update review", err)
	}
	return nil
}

func (r *firestoreReviewRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("reviews").Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete review", err)
	}
	return nil
}

func (r *firestoreReviewRepository) ListByPropertyID(ctx context.Context, propertyID string) ([]*entity.Review, error) {
	query := r.client.Collection("reviews").
		Where("propertyId", "==", propertyID).
		OrderBy("createdAt", firestore.Desc)
	return r.collect(query.Documents(ctx))
}

func (r *firestoreReviewRepository) ListByUserID(ctx context.Context, userID string) ([]*entity.Review, error) {
	query := r.client.Collection("reviews").
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc)
	return r.collect(query.Documents(ctx))
}

func (r *firestoreReviewRepository) ListAll(ctx context.Context, limit, offset int) ([]*entity.Review, int64, error) {
	query := r.client.Collection("reviews").OrderBy("createdAt", firestore.Desc)

	countDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count reviews", err)
	}
	total := int64(len(countDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	reviews, err := r.collect(query.Documents(ctx))
	if err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

func (r *firestoreReviewRepository) collect(iter *firestore.DocumentIterator) ([]*entity.Review, error) {
	var reviews []*entity.Review
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate reviews", err)
		}

		var review entity.Review
		if err := doc.DataTo(&review); err != nil {
			return nil, errors.Internal("Failed to parse review data", err)
		}
		reviews = append(reviews, &review)
	}
	return reviews, nil
}
