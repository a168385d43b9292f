package usecase

import (
	"context"
	"regexp"

	"staygo/internal/domain/entity"
	"staygo/internal/domain/repository"
	"staygo/pkg/errors"
	"staygo/pkg/logger"
	"staygo/pkg/utils"
)

var dateFormat = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// StatusListener is notified after a reservation transition commits.
// Satellite consumers (indexing, review unlocking) hang off this hook.
type StatusListener func(reservationID, from, to string)

// reservationTransitions is the declarative edge table of the reservation
// lifecycle: current status -> allowed next statuses and the roles that may
// drive each edge. Admin passes every role check.
var reservationTransitions = map[string]map[string][]string{
	entity.ReservationStatusUnpaid: {
		entity.ReservationStatusUpcoming: {"guest", "host"}, // guest payment or host accept
		entity.ReservationStatusDeclined: {"host"},
		entity.ReservationStatusCanceled: {"guest", "host"},
	},
	entity.ReservationStatusPending: {
		entity.ReservationStatusUpcoming: {"host", "guest"}, // host accept or guest payment
		entity.ReservationStatusDeclined: {"host"},
		entity.ReservationStatusCanceled: {"guest", "host"},
	},
	entity.ReservationStatusUpcoming: {
		entity.ReservationStatusPast:     {"system"},
		entity.ReservationStatusCanceled: {"guest", "host"},
	},
}

// CanTransition reports whether the edge from -> to exists for the role.
func CanTransition(from, to, role string) bool {
	edges, ok := reservationTransitions[from]
	if !ok {
		return false
	}
	roles, ok := edges[to]
	if !ok {
		return false
	}
	if role == "admin" {
		return true
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

type ReservationUseCase struct {
	reservationRepo repository.ReservationRepository
	listingRepo     repository.ListingRepository
	userRepo        repository.UserRepository
	listener        StatusListener
}

func NewReservationUseCase(
	reservationRepo repository.ReservationRepository,
	listingRepo repository.ListingRepository,
	userRepo repository.UserRepository,
) *ReservationUseCase {
	return &ReservationUseCase{
		reservationRepo: reservationRepo,
		listingRepo:     listingRepo,
		userRepo:        userRepo,
	}
}

// SetStatusListener registers the transition hook. Call before serving.
func (uc *ReservationUseCase) SetStatusListener(l StatusListener) {
	uc.listener = l
}

func (uc *ReservationUseCase) notify(id, from, to string) {
	if uc.listener != nil {
		uc.listener(id, from, to)
	}
}

type CreateReservationInput struct {
	ListingID  string
	StartDate  string
	EndDate    string
	Guests     int
	TotalPrice float64
}

// CreateReservation validates everything before any write: date shape and
// order, guest count, price and the listing reference. The host id is
// derived from the listing owner. Availability overlap against other
// reservations is deliberately not checked.
func (uc *ReservationUseCase) CreateReservation(ctx context.Context, guestID string, input CreateReservationInput) (*entity.Reservation, error) {
	if !utils.ValidRef(input.ListingID) {
		return nil, errors.BadRequest("Invalid listing ID", nil)
	}
	if !dateFormat.MatchString(input.StartDate) || !dateFormat.MatchString(input.EndDate) {
		return nil, errors.BadRequest("Dates must be in YYYY-MM-DD format", nil)
	}
	if input.StartDate > input.EndDate {
		return nil, errors.BadRequest("Start date must not be after end date", nil)
	}
	if input.Guests < 1 {
		return nil, errors.BadRequest("Guest count must be at least 1", nil)
	}
	if input.TotalPrice < 0 {
		return nil, errors.BadRequest("Total price must not be negative", nil)
	}

	listing, err := uc.listingRepo.GetByID(ctx, input.ListingID)
	if err != nil {
		return nil, err
	}

	reservation := &entity.Reservation{
		UserID:     guestID,
		HostID:     listing.HostID,
		ListingID:  listing.ID,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		Guests:     input.Guests,
		TotalPrice: input.TotalPrice,
		Status:     entity.ReservationStatusUnpaid,
	}

	if err := uc.reservationRepo.Create(ctx, reservation); err != nil {
		return nil, err
	}

	logger.Info("Reservation %s created for listing %s by guest %s", reservation.ID, listing.ID, guestID)
	return reservation, nil
}

func (uc *ReservationUseCase) GetReservation(ctx context.Context, callerID, reservationID string) (*entity.Reservation, error) {
	reservation, err := uc.getByRef(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	caller, err := uc.userRepo.GetByID(ctx, callerID)
	if err != nil {
		return nil, err
	}

	if reservation.UserID != callerID && reservation.HostID != callerID && !caller.IsAdmin() {
		return nil, errors.Forbidden("You don't have permission to view this reservation", nil)
	}

	return reservation, nil
}

// Accept moves a reservation awaiting host approval to upcoming. Only the
// host tied to this reservation may accept.
func (uc *ReservationUseCase) Accept(ctx context.Context, callerID, reservationID string) (*entity.Reservation, error) {
	return uc.hostTransition(ctx, callerID, reservationID, entity.ReservationStatusUpcoming)
}

// Decline moves a reservation awaiting host approval to declined.
func (uc *ReservationUseCase) Decline(ctx context.Context, callerID, reservationID string) (*entity.Reservation, error) {
	return uc.hostTransition(ctx, callerID, reservationID, entity.ReservationStatusDeclined)
}

func (uc *ReservationUseCase) hostTransition(ctx context.Context, callerID, reservationID, to string) (*entity.Reservation, error) {
	reservation, err := uc.getByRef(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	caller, err := uc.userRepo.GetByID(ctx, callerID)
	if err != nil {
		return nil, err
	}

	if !caller.IsHost() {
		return nil, errors.Forbidden("Host privileges required", nil)
	}
	if reservation.HostID != callerID && !caller.IsAdmin() {
		return nil, errors.Forbidden("You are not the host of this reservation", nil)
	}

	if !CanTransition(reservation.Status, to, "host") {
		return nil, errors.BadRequest("Reservation cannot be "+transitionVerb(to)+" in its current state", nil)
	}

	from := []string{entity.ReservationStatusPending, entity.ReservationStatusUnpaid}
	if err := uc.reservationRepo.TransitionStatus(ctx, reservationID, from, to); err != nil {
		return nil, err
	}

	uc.notify(reservationID, reservation.Status, to)
	reservation.Status = to
	return reservation, nil
}

// Cancel moves any non-terminal reservation to canceled. Canceling an
// already-canceled reservation succeeds without touching the store.
func (uc *ReservationUseCase) Cancel(ctx context.Context, callerID, reservationID string) (*entity.Reservation, error) {
	reservation, err := uc.getByRef(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	caller, err := uc.userRepo.GetByID(ctx, callerID)
	if err != nil {
		return nil, err
	}

	if reservation.UserID != callerID && reservation.HostID != callerID && !caller.IsAdmin() {
		return nil, errors.Forbidden("You don't have permission to cancel this reservation", nil)
	}

	if reservation.Status == entity.ReservationStatusCanceled {
		return reservation, nil
	}
	if entity.TerminalReservationStatus(reservation.Status) {
		return nil, errors.BadRequest("Reservation can no longer be canceled", nil)
	}

	from := []string{
		entity.ReservationStatusUnpaid,
		entity.ReservationStatusPending,
		entity.ReservationStatusUpcoming,
	}
	err = uc.reservationRepo.TransitionStatus(ctx, reservationID, from, entity.ReservationStatusCanceled)
	if err != nil {
		// A concurrent cancel landing first still leaves the reservation
		// canceled, which is the outcome the caller asked for.
		if errors.Is(err, "CONFLICT") {
			current, getErr := uc.reservationRepo.GetByID(ctx, reservationID)
			if getErr == nil && current.Status == entity.ReservationStatusCanceled {
				return current, nil
			}
		}
		return nil, err
	}

	uc.notify(reservationID, reservation.Status, entity.ReservationStatusCanceled)
	reservation.Status = entity.ReservationStatusCanceled
	return reservation, nil
}

type UpdateReservationInput struct {
	Status string
}

// UpdateReservation is the admin/host field patch. Only the status field is
// writable and it must stay inside the enum.
func (uc *ReservationUseCase) UpdateReservation(ctx context.Context, callerID, reservationID string, input UpdateReservationInput) (*entity.Reservation, error) {
	reservation, err := uc.getByRef(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	caller, err := uc.userRepo.GetByID(ctx, callerID)
	if err != nil {
		return nil, err
	}

	if !caller.IsAdmin() && reservation.HostID != callerID {
		return nil, errors.Forbidden("You don't have permission to update this reservation", nil)
	}

	if !entity.ValidReservationStatus(input.Status) {
		return nil, errors.BadRequest("Invalid reservation status", nil)
	}

	if err := uc.reservationRepo.UpdateStatus(ctx, reservationID, input.Status); err != nil {
		return nil, err
	}

	uc.notify(reservationID, reservation.Status, input.Status)
	reservation.Status = input.Status
	return reservation, nil
}

func (uc *ReservationUseCase) ListByUser(ctx context.Context, callerID, userID string) ([]*entity.Reservation, error) {
	if !utils.ValidRef(userID) {
		return nil, errors.BadRequest("Invalid user ID", nil)
	}

	caller, err := uc.userRepo.GetByID(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if callerID != userID && !caller.IsAdmin() {
		return nil, errors.Forbidden("You can only list your own reservations", nil)
	}

	return uc.reservationRepo.ListByUserID(ctx, userID)
}

func (uc *ReservationUseCase) ListByHost(ctx context.Context, callerID, hostID string) ([]*entity.Reservation, error) {
	if !utils.ValidRef(hostID) {
		return nil, errors.BadRequest("Invalid host ID", nil)
	}

	caller, err := uc.userRepo.GetByID(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if !caller.IsHost() {
		return nil, errors.Forbidden("Host privileges required", nil)
	}
	if callerID != hostID && !caller.IsAdmin() {
		return nil, errors.Forbidden("You can only list your own hosted reservations", nil)
	}

	return uc.reservationRepo.ListByHostID(ctx, hostID)
}

func (uc *ReservationUseCase) ListAll(ctx context.Context, callerID string, page, limit int) ([]*entity.Reservation, int64, error) {
	caller, err := uc.userRepo.GetByID(ctx, callerID)
	if err != nil {
		return nil, 0, err
	}
	if !caller.IsAdmin() {
		return nil, 0, errors.Forbidden("Admin privileges required", nil)
	}

	pagination := utils.NewPaginationParams(page, limit)
	return uc.reservationRepo.ListAll(ctx, pagination.PageSize, pagination.Offset)
}

// DeleteReservation is admin-only and irreversible.
func (uc *ReservationUseCase) DeleteReservation(ctx context.Context, callerID, reservationID string) error {
	caller, err := uc.userRepo.GetByID(ctx, callerID)
	if err != nil {
		return err
	}
	if !caller.IsAdmin() {
		return errors.Forbidden("Admin privileges required", nil)
	}

	if _, err := uc.getByRef(ctx, reservationID); err != nil {
		return err
	}

	return uc.reservationRepo.Delete(ctx, reservationID)
}

func (uc *ReservationUseCase) getByRef(ctx context.Context, reservationID string) (*entity.Reservation, error) {
	if !utils.ValidRef(reservationID) {
		return nil, errors.BadRequest("Invalid reservation ID", nil)
	}
	return uc.reservationRepo.GetByID(ctx, reservationID)
}

func transitionVerb(to string) string {
	switch to {
	case entity.ReservationStatusUpcoming:
		return "accepted"
	case entity.ReservationStatusDeclined:
		return "declined"
	case entity.ReservationStatusCanceled:
		return "canceled"
	}
	return "updated"
}
