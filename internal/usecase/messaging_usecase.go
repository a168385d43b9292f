package usecase

import (
	"context"
	"sort"

	"staygo/internal/domain/entity"
	"staygo/internal/domain/repository"
	"staygo/pkg/errors"
	"staygo/pkg/utils"
)

type MessagingUseCase struct {
	messageRepo     repository.MessageRepository
	reservationRepo repository.ReservationRepository
	userRepo        repository.UserRepository
}

func NewMessagingUseCase(
	messageRepo repository.MessageRepository,
	reservationRepo repository.ReservationRepository,
	userRepo repository.UserRepository,
) *MessagingUseCase {
	return &MessagingUseCase{
		messageRepo:     messageRepo,
		reservationRepo: reservationRepo,
		userRepo:        userRepo,
	}
}

type SendMessageInput struct {
	ReceiverUsername string
	Content          string
}

// SendMessage appends a message to the sender/receiver conversation. The
// conversation id is derived from the sorted username pair, so no
// conversation row is created or looked up. A reservation must link the two
// users in either guest/host direction; without one the resource exists but
// access is denied, hence Forbidden rather than NotFound.
func (uc *MessagingUseCase) SendMessage(ctx context.Context, senderID string, input SendMessageInput) (*entity.Message, error) {
	if input.Content == "" {
		return nil, errors.BadRequest("Message content is required", nil)
	}

	sender, err := uc.userRepo.GetByID(ctx, senderID)
	if err != nil {
		return nil, err
	}

	if sender.Username == input.ReceiverUsername {
		return nil, errors.BadRequest("You cannot message yourself", nil)
	}

	receiver, err := uc.userRepo.GetByUsername(ctx, input.ReceiverUsername)
	if err != nil {
		return nil, err
	}

	linked, err := uc.reservationRepo.LinkBetween(ctx, sender.ID, receiver.ID)
	if err != nil {
		return nil, err
	}
	if !linked {
		return nil, errors.Forbidden("You can only message hosts of your reservations or guests of your listings", nil)
	}

	message := &entity.Message{
		ConversationID:   entity.ConversationID(sender.Username, receiver.Username),
		SenderUsername:   sender.Username,
		ReceiverUsername: receiver.Username,
		Content:          input.Content,
	}

	if err := uc.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	return message, nil
}

// ListConversations derives the caller's counterpart set from reservation
// linkage and pairs each counterpart with the latest message of the derived
// conversation. Sorted by last-message time descending; conversations with
// no messages yet sort last.
func (uc *MessagingUseCase) ListConversations(ctx context.Context, callerID string) ([]*entity.ConversationSummary, error) {
	caller, err := uc.userRepo.GetByID(ctx, callerID)
	if err != nil {
		return nil, err
	}

	counterpartIDs, err := uc.counterparts(ctx, callerID)
	if err != nil {
		return nil, err
	}

	summaries := make([]*entity.ConversationSummary, 0, len(counterpartIDs))
	for _, id := range counterpartIDs {
		other, err := uc.userRepo.GetByID(ctx, id)
		if err != nil {
			// A counterpart deleted by an admin leaves dangling
			// reservations; skip rather than fail the whole listing.
			continue
		}

		conversationID := entity.ConversationID(caller.Username, other.Username)
		summary := &entity.ConversationSummary{
			ConversationID: conversationID,
			Username:       other.Username,
			Name:           displayName(other),
		}

		latest, err := uc.messageRepo.LatestByConversation(ctx, conversationID)
		if err == nil {
			summary.LastMessage = latest
		} else if !errors.Is(err, "NOT_FOUND") {
			return nil, err
		}

		summaries = append(summaries, summary)
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		a, b := summaries[i].LastMessage, summaries[j].LastMessage
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return a.CreatedAt.After(b.CreatedAt)
	})

	return summaries, nil
}

// History returns a conversation's messages in chat order. The caller must
// be one of the participants encoded in the id.
func (uc *MessagingUseCase) History(ctx context.Context, callerID, conversationID string) ([]*entity.Message, error) {
	a, b, ok := entity.ConversationParticipants(conversationID)
	if !ok {
		return nil, errors.BadRequest("Invalid conversation ID", nil)
	}

	caller, err := uc.userRepo.GetByID(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if caller.Username != a && caller.Username != b {
		return nil, errors.Forbidden("You are not a participant of this conversation", nil)
	}

	return uc.messageRepo.ListByConversation(ctx, conversationID)
}

type EditMessageInput struct {
	Content string
}

// EditMessage rewrites a message's content. Any authenticated user who can
// name the message id may edit it; there is no ownership check here, which
// mirrors the legacy behavior.
func (uc *MessagingUseCase) EditMessage(ctx context.Context, callerID, messageID string, input EditMessageInput) (*entity.Message, error) {
	if !utils.ValidRef(messageID) {
		return nil, errors.BadRequest("Invalid message ID", nil)
	}
	if input.Content == "" {
		return nil, errors.BadRequest("Message content is required", nil)
	}

	message, err := uc.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return nil, err
	}

	message.Content = input.Content
	if err := uc.messageRepo.Update(ctx, message); err != nil {
		return nil, err
	}

	return message, nil
}

func (uc *MessagingUseCase) DeleteMessage(ctx context.Context, callerID, messageID string) error {
	if !utils.ValidRef(messageID) {
		return errors.BadRequest("Invalid message ID", nil)
	}

	if _, err := uc.messageRepo.GetByID(ctx, messageID); err != nil {
		return err
	}

	return uc.messageRepo.Delete(ctx, messageID)
}

// counterparts collects the distinct user ids reservation-linked to userID,
// as guest or as host.
func (uc *MessagingUseCase) counterparts(ctx context.Context, userID string) ([]string, error) {
	seen := make(map[string]bool)
	var result []string

	asGuest, err := uc.reservationRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, reservation := range asGuest {
		if reservation.HostID != "" && !seen[reservation.HostID] {
			seen[reservation.HostID] = true
			result = append(result, reservation.HostID)
		}
	}

	asHost, err := uc.reservationRepo.ListByHostID(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, reservation := range asHost {
		if reservation.UserID != "" && !seen[reservation.UserID] {
			seen[reservation.UserID] = true
			result = append(result, reservation.UserID)
		}
	}

	return result, nil
}

func displayName(u *entity.User) string {
	if u.Name != "" {
		return u.Name
	}
	return u.Username
}
