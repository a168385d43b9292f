package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"staygo/internal/domain/entity"
	"staygo/internal/domain/repository"
	"staygo/pkg/errors"
)

// In-memory repositories backing the usecase tests. Each one guards its map
// with a mutex and mirrors the conditional-write semantics of the Firestore
// adapters, so the concurrency tests below exercise the same guarantees the
// real store provides.

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*entity.User)}
}

func (r *memUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, errors.NotFound("User", nil)
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, errors.NotFound("User", nil)
}

func (r *memUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return errors.NotFound("User", nil)
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *memUserRepo) UpdateRole(ctx context.Context, id, role string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return errors.NotFound("User", nil)
	}
	u.Role = role
	return nil
}

func (r *memUserRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return errors.NotFound("User", nil)
	}
	delete(r.users, id)
	return nil
}

func (r *memUserRepo) List(ctx context.Context, limit, offset int) ([]*entity.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*entity.User
	for _, u := range r.users {
		cp := *u
		all = append(all, &cp)
	}
	return paginate(all, limit, offset), int64(len(r.users)), nil
}

type memListingRepo struct {
	mu       sync.Mutex
	listings map[string]*entity.Listing
}

func newMemListingRepo() *memListingRepo {
	return &memListingRepo{listings: make(map[string]*entity.Listing)}
}

func (r *memListingRepo) Create(ctx context.Context, listing *entity.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if listing.ID == "" {
		listing.ID = uuid.New().String()
	}
	cp := *listing
	r.listings[listing.ID] = &cp
	return nil
}

func (r *memListingRepo) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.listings[id]
	if !ok {
		return nil, errors.NotFound("Listing", nil)
	}
	cp := *l
	return &cp, nil
}

func (r *memListingRepo) Update(ctx context.Context, listing *entity.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.listings[listing.ID]; !ok {
		return errors.NotFound("Listing", nil)
	}
	cp := *listing
	r.listings[listing.ID] = &cp
	return nil
}

func (r *memListingRepo) UpdateStatus(ctx context.Context, id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.listings[id]
	if !ok {
		return errors.NotFound("Listing", nil)
	}
	l.Status = status
	return nil
}

func (r *memListingRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.listings[id]; !ok {
		return errors.NotFound("Listing", nil)
	}
	delete(r.listings, id)
	return nil
}

func (r *memListingRepo) List(ctx context.Context, filter repository.ListingFilter, limit, offset int) ([]*entity.Listing, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*entity.Listing
	for _, l := range r.listings {
		if filter.City != "" && l.City != filter.City {
			continue
		}
		if filter.Status != "" && l.Status != filter.Status {
			continue
		}
		if filter.PropertyType != "" && l.PropertyType != filter.PropertyType {
			continue
		}
		cp := *l
		matched = append(matched, &cp)
	}
	total := int64(len(matched))
	return paginate(matched, limit, offset), total, nil
}

func (r *memListingRepo) ListByHostID(ctx context.Context, hostID string) ([]*entity.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*entity.Listing
	for _, l := range r.listings {
		if l.HostID == hostID {
			cp := *l
			matched = append(matched, &cp)
		}
	}
	return matched, nil
}

type memReservationRepo struct {
	mu           sync.Mutex
	reservations map[string]*entity.Reservation
}

func newMemReservationRepo() *memReservationRepo {
	return &memReservationRepo{reservations: make(map[string]*entity.Reservation)}
}

func (r *memReservationRepo) Create(ctx context.Context, reservation *entity.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if reservation.ID == "" {
		reservation.ID = uuid.New().String()
	}
	now := time.Now()
	reservation.CreatedAt = now
	reservation.UpdatedAt = now
	cp := *reservation
	r.reservations[reservation.ID] = &cp
	return nil
}

func (r *memReservationRepo) GetByID(ctx context.Context, id string) (*entity.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.reservations[id]
	if !ok {
		return nil, errors.NotFound("Reservation", nil)
	}
	cp := *res
	return &cp, nil
}

func (r *memReservationRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reservations[id]; !ok {
		return errors.NotFound("Reservation", nil)
	}
	delete(r.reservations, id)
	return nil
}

func (r *memReservationRepo) ListByUserID(ctx context.Context, userID string) ([]*entity.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*entity.Reservation
	for _, res := range r.reservations {
		if res.UserID == userID {
			cp := *res
			matched = append(matched, &cp)
		}
	}
	return matched, nil
}

func (r *memReservationRepo) ListByHostID(ctx context.Context, hostID string) ([]*entity.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*entity.Reservation
	for _, res := range r.reservations {
		if res.HostID == hostID {
			cp := *res
			matched = append(matched, &cp)
		}
	}
	return matched, nil
}

func (r *memReservationRepo) ListAll(ctx context.Context, limit, offset int) ([]*entity.Reservation, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*entity.Reservation
	for _, res := range r.reservations {
		cp := *res
		all = append(all, &cp)
	}
	return paginate(all, limit, offset), int64(len(r.reservations)), nil
}

func (r *memReservationRepo) UpdateStatus(ctx context.Context, id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.reservations[id]
	if !ok {
		return errors.NotFound("Reservation", nil)
	}
	res.Status = status
	res.UpdatedAt = time.Now()
	return nil
}

func (r *memReservationRepo) TransitionStatus(ctx context.Context, id string, from []string, to string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.reservations[id]
	if !ok {
		return errors.NotFound("Reservation", nil)
	}
	if !contains(from, res.Status) {
		return errors.Conflict("Reservation is no longer in an eligible state", nil)
	}
	res.Status = to
	res.UpdatedAt = time.Now()
	return nil
}

func (r *memReservationRepo) LinkBetween(ctx context.Context, userA, userB string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, res := range r.reservations {
		if (res.UserID == userA && res.HostID == userB) || (res.UserID == userB && res.HostID == userA) {
			return true, nil
		}
	}
	return false, nil
}

type memPaymentRepo struct {
	mu           sync.Mutex
	payments     map[string]*entity.Payment
	reservations *memReservationRepo
}

func newMemPaymentRepo(reservations *memReservationRepo) *memPaymentRepo {
	return &memPaymentRepo{
		payments:     make(map[string]*entity.Payment),
		reservations: reservations,
	}
}

func (r *memPaymentRepo) GetByID(ctx context.Context, id string) (*entity.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[id]
	if !ok {
		return nil, errors.NotFound("Payment", nil)
	}
	cp := *p
	return &cp, nil
}

func (r *memPaymentRepo) GetByReservationID(ctx context.Context, reservationID string) (*entity.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.payments {
		if p.ReservationID == reservationID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, errors.NotFound("Payment", nil)
}

func (r *memPaymentRepo) CreateWithReservationTransition(ctx context.Context, payment *entity.Payment, from []string, to string) error {
	// Lock ordering: payment repo first, then reservation repo, always.
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reservations.mu.Lock()
	defer r.reservations.mu.Unlock()

	res, ok := r.reservations.reservations[payment.ReservationID]
	if !ok {
		return errors.NotFound("Reservation", nil)
	}
	if !contains(from, res.Status) {
		return errors.Conflict("Reservation is no longer in an eligible state", nil)
	}

	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	payment.CreatedAt = time.Now()
	cp := *payment
	r.payments[payment.ID] = &cp

	res.Status = to
	res.PaymentID = payment.ID
	res.UpdatedAt = payment.CreatedAt
	return nil
}

type memReviewRepo struct {
	mu      sync.Mutex
	reviews map[string]*entity.Review
}

func newMemReviewRepo() *memReviewRepo {
	return &memReviewRepo{reviews: make(map[string]*entity.Review)}
}

func (r *memReviewRepo) CreateIfAbsent(ctx context.Context, review *entity.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.reviews {
		if existing.ReservationID == review.ReservationID {
			return errors.Conflict("Review for this reservation already exists", nil)
		}
	}
	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	now := time.Now()
	review.CreatedAt = now
	review.UpdatedAt = now
	cp := *review
	r.reviews[review.ID] = &cp
	return nil
}

func (r *memReviewRepo) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rev, ok := r.reviews[id]
	if !ok {
		return nil, errors.NotFound("Review", nil)
	}
	cp := *rev
	return &cp, nil
}

func (r *memReviewRepo) GetByReservationID(ctx context.Context, reservationID string) (*entity.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rev := range r.reviews {
		if rev.ReservationID == reservationID {
			cp := *rev
			return &cp, nil
		}
	}
	return nil, errors.NotFound("Review", nil)
}

func (r *memReviewRepo) Update(ctx context.Context, review *entity.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reviews[review.ID]; !ok {
		return errors.NotFound("Review", nil)
	}
	review.UpdatedAt = time.Now()
	cp := *review
	r.reviews[review.ID] = &cp
	return nil
}

func (r *memReviewRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reviews[id]; !ok {
		return errors.NotFound("Review", nil)
	}
	delete(r.reviews, id)
	return nil
}

func (r *memReviewRepo) ListByPropertyID(ctx context.Context, propertyID string) ([]*entity.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*entity.Review
	for _, rev := range r.reviews {
		if rev.PropertyID == propertyID {
			cp := *rev
			matched = append(matched, &cp)
		}
	}
	return matched, nil
}

func (r *memReviewRepo) ListByUserID(ctx context.Context, userID string) ([]*entity.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*entity.Review
	for _, rev := range r.reviews {
		if rev.UserID == userID {
			cp := *rev
			matched = append(matched, &cp)
		}
	}
	return matched, nil
}

func (r *memReviewRepo) ListAll(ctx context.Context, limit, offset int) ([]*entity.Review, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*entity.Review
	for _, rev := range r.reviews {
		cp := *rev
		all = append(all, &cp)
	}
	return paginate(all, limit, offset), int64(len(r.reviews)), nil
}

type memMessageRepo struct {
	mu       sync.Mutex
	messages []*entity.Message
}

func newMemMessageRepo() *memMessageRepo {
	return &memMessageRepo{}
}

func (r *memMessageRepo) Create(ctx context.Context, message *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	message.CreatedAt = time.Now()
	cp := *message
	r.messages = append(r.messages, &cp)
	return nil
}

func (r *memMessageRepo) GetByID(ctx context.Context, id string) (*entity.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.messages {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, errors.NotFound("Message", nil)
}

func (r *memMessageRepo) Update(ctx context.Context, message *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, m := range r.messages {
		if m.ID == message.ID {
			cp := *message
			r.messages[i] = &cp
			return nil
		}
	}
	return errors.NotFound("Message", nil)
}

func (r *memMessageRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, m := range r.messages {
		if m.ID == id {
			r.messages = append(r.messages[:i], r.messages[i+1:]...)
			return nil
		}
	}
	return errors.NotFound("Message", nil)
}

func (r *memMessageRepo) ListByConversation(ctx context.Context, conversationID string) ([]*entity.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*entity.Message
	for _, m := range r.messages {
		if m.ConversationID == conversationID {
			cp := *m
			matched = append(matched, &cp)
		}
	}
	return matched, nil
}

func (r *memMessageRepo) LatestByConversation(ctx context.Context, conversationID string) (*entity.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *entity.Message
	for _, m := range r.messages {
		if m.ConversationID != conversationID {
			continue
		}
		if latest == nil || m.CreatedAt.After(latest.CreatedAt) {
			latest = m
		}
	}
	if latest == nil {
		return nil, errors.NotFound("Message", nil)
	}
	cp := *latest
	return &cp, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func paginate[T any](items []*T, limit, offset int) []*T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
