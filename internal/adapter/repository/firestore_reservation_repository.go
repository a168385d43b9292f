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

type firestoreReservationRepository struct {
	client *firestore.Client
}

func NewFirestoreReservationRepository(client *firestore.Client) repository.ReservationRepository {
	return &firestoreReservationRepository{
		client: client,
	}
}

func (r *firestoreReservationRepository) Create(ctx context.Context, reservation *entity.Reservation) error {
	if reservation.ID == "" {
		reservation.ID = uuid.New().String()
	}

	now := time.Now()
	reservation.CreatedAt = now
	reservation.UpdatedAt = now

	_, err := r.client.Collection("reservations").Doc(reservation.ID).Set(ctx, reservation)
	if err != nil {
		return errors.Internal("Failed to create reservation", err)
	}
	return nil
}

func (r *firestoreReservationRepository) GetByID(ctx context.Context, id string) (*entity.Reservation, error) {
	doc, err := r.client.Collection("reservations").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Reservation", err)
		}
		return nil, errors.Internal("Failed to get reservation", err)
	}

	var reservation entity.Reservation
	if err := doc.DataTo(&reservation); err != nil {
		return nil, errors.Internal("Failed to parse reservation data", err)
	}

	return &reservation, nil
}

func (r *firestoreReservationRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("reservations").Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete reservation", err)
	}
	return nil
}

func (r *firestoreReservationRepository) ListByUserID(ctx context.Context, userID string) ([]*entity.Reservation, error) {
	return r.listByField(ctx, "userId", userID)
}

func (r *firestoreReservationRepository) ListByHostID(ctx context.Context, hostID string) ([]*entity.Reservation, error) {
	return r.listByField(ctx, "hostId", hostID)
}

func (r *firestoreReservationRepository) listByField(ctx context.Context, field, value string) ([]*entity.Reservation, error) {
	iter := r.client.Collection("reservations").Where(field, "==", value).Documents(ctx)

	var reservations []*entity.Reservation
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate reservations", err)
		}

		var reservation entity.Reservation
		if err := doc.DataTo(&reservation); err != nil {
			return nil, errors.Internal("Failed to parse reservation data", err)
		}
		reservations = append(reservations, &reservation)
	}

	return reservations, nil
}

func (r *firestoreReservationRepository) ListAll(ctx context.Context, limit, offset int) ([]*entity.Reservation, int64, error) {
	query := r.client.Collection("reservations").OrderBy("createdAt", firestore.Desc)

	countDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count reservations", err)
	}
	total := int64(len(countDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var reservations []*entity.Reservation
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate reservations", err)
		}

		var reservation entity.Reservation
		if err := doc.DataTo(&reservation); err != nil {
			return nil, 0, errors.Internal("Failed to parse reservation data", err)
		}
		reservations = append(reservations, &reservation)
	}

	return reservations, total, nil
}

func (r *firestoreReservationRepository) UpdateStatus(ctx context.Context, id, newStatus string) error {
	_, err := r.client.Collection("reservations").Doc(id).Update(ctx, []firestore.Update{
		{Path: "status", Value: newStatus},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Reservation", err)
		}
		return errors.Internal("Failed to update reservation status", err)
	}
	return nil
}

func (r *firestoreReservationRepository) TransitionStatus(ctx context.Context, id string, from []string, to string) error {
	docRef := r.client.Collection("reservations").Doc(id)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			return err
		}

		var reservation entity.Reservation
		if err := doc.DataTo(&reservation); err != nil {
			return err
		}

		eligible := false
		for _, s := range from {
			if reservation.Status == s {
				eligible = true
				break
			}
		}
		if !eligible {
			return errors.Conflict("Reservation is no longer in an eligible state", nil)
		}

		reservation.Status = to
		reservation.UpdatedAt = time.Now()
		return tx.Set(docRef, &reservation)
	})

	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Reservation", err)
		}
		if errors.Is(err, "CONFLICT") {
			return err
		}
		return errors.Internal("Failed to transition reservation status", err)
	}
	return nil
}

func (r *firestoreReservationRepository) LinkBetween(ctx context.Context, userA, userB string) (bool, error) {
	pairs := [][2]string{{userA, userB}, {userB, userA}}
	for _, pair := range pairs {
		iter := r.client.Collection("reservations").
			Where("userId", "==", pair[0]).
			Where("hostId", "==", pair[1]).
			Limit(1).
			Documents(ctx)

		_, err := iter.Next()
		if err == nil {
			return true, nil
		}
		if err != iterator.Done {
			return false, errors.Internal("Failed to query reservation link", err)
		}
	}
	return false, nil
}
