package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staygo/internal/domain/entity"
	"staygo/pkg/errors"
)

type messagingFixture struct {
	*reservationFixture
	messages *memMessageRepo
	uc       *MessagingUseCase
}

func newMessagingFixture(t *testing.T) *messagingFixture {
	t.Helper()
	base := newReservationFixture(t)
	messages := newMemMessageRepo()
	return &messagingFixture{
		reservationFixture: base,
		messages:           messages,
		uc:                 NewMessagingUseCase(messages, base.reservations, base.users),
	}
}

func TestConversationIDSymmetric(t *testing.T) {
	assert.Equal(t, entity.ConversationID("alice", "bob"), entity.ConversationID("bob", "alice"))
	assert.Equal(t, "dm:alice|bob", entity.ConversationID("bob", "alice"))
}

func TestConversationParticipants(t *testing.T) {
	a, b, ok := entity.ConversationParticipants("dm:alice|bob")
	require.True(t, ok)
	assert.Equal(t, "alice", a)
	assert.Equal(t, "bob", b)

	for _, bad := range []string{"alice|bob", "dm:alice", "dm:|bob", "dm:alice|", ""} {
		_, _, ok := entity.ConversationParticipants(bad)
		assert.False(t, ok, "id %q", bad)
	}
}

func TestSendMessageRequiresReservationLink(t *testing.T) {
	f := newMessagingFixture(t)

	// No reservation between guest and host yet.
	_, err := f.uc.SendMessage(context.Background(), f.guest.ID, SendMessageInput{
		ReceiverUsername: f.host.Username,
		Content:          "hello",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestSendMessageBetweenLinkedUsers(t *testing.T) {
	f := newMessagingFixture(t)
	f.createReservation(t)
	ctx := context.Background()

	// Guest to host.
	sent, err := f.uc.SendMessage(ctx, f.guest.ID, SendMessageInput{
		ReceiverUsername: f.host.Username,
		Content:          "hello",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ConversationID(f.guest.Username, f.host.Username), sent.ConversationID)
	assert.Equal(t, f.guest.Username, sent.SenderUsername)
	assert.Equal(t, f.host.Username, sent.ReceiverUsername)

	// And back: the link works in both directions and lands in the same
	// conversation.
	reply, err := f.uc.SendMessage(ctx, f.host.ID, SendMessageInput{
		ReceiverUsername: f.guest.Username,
		Content:          "hi there",
	})
	require.NoError(t, err)
	assert.Equal(t, sent.ConversationID, reply.ConversationID)
}

func TestSendMessageValidation(t *testing.T) {
	f := newMessagingFixture(t)
	f.createReservation(t)
	ctx := context.Background()

	_, err := f.uc.SendMessage(ctx, f.guest.ID, SendMessageInput{
		ReceiverUsername: f.host.Username,
		Content:          "",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	_, err = f.uc.SendMessage(ctx, f.guest.ID, SendMessageInput{
		ReceiverUsername: f.guest.Username,
		Content:          "note to self",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	_, err = f.uc.SendMessage(ctx, f.guest.ID, SendMessageInput{
		ReceiverUsername: "nobody",
		Content:          "hello?",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestHistory(t *testing.T) {
	f := newMessagingFixture(t)
	f.createReservation(t)
	ctx := context.Background()

	for _, content := range []string{"first", "second", "third"} {
		_, err := f.uc.SendMessage(ctx, f.guest.ID, SendMessageInput{
			ReceiverUsername: f.host.Username,
			Content:          content,
		})
		require.NoError(t, err)
	}

	conversationID := entity.ConversationID(f.guest.Username, f.host.Username)

	history, err := f.uc.History(ctx, f.guest.ID, conversationID)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "first", history[0].Content)
	assert.Equal(t, "third", history[2].Content)

	// Both participants may read it.
	_, err = f.uc.History(ctx, f.host.ID, conversationID)
	assert.NoError(t, err)
}

func TestHistoryOutsiderForbidden(t *testing.T) {
	f := newMessagingFixture(t)
	f.createReservation(t)
	ctx := context.Background()

	_, err := f.uc.SendMessage(ctx, f.guest.ID, SendMessageInput{
		ReceiverUsername: f.host.Username,
		Content:          "private",
	})
	require.NoError(t, err)

	conversationID := entity.ConversationID(f.guest.Username, f.host.Username)
	_, err = f.uc.History(ctx, f.stranger.ID, conversationID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestHistoryMalformedID(t *testing.T) {
	f := newMessagingFixture(t)

	_, err := f.uc.History(context.Background(), f.guest.ID, "not-a-conversation")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestListConversations(t *testing.T) {
	f := newMessagingFixture(t)
	f.createReservation(t)
	ctx := context.Background()

	// A second counterpart via a listing hosted by the stranger.
	otherListing := &entity.Listing{
		ID:     "listing-2",
		HostID: f.stranger.ID,
		Title:  "City Flat",
		City:   "porto",
		Status: entity.ListingStatusApproved,
	}
	require.NoError(t, f.listings.Create(ctx, otherListing))
	_, err := f.reservationFixture.uc.CreateReservation(ctx, f.guest.ID, CreateReservationInput{
		ListingID:  otherListing.ID,
		StartDate:  "2025-07-01",
		EndDate:    "2025-07-03",
		Guests:     1,
		TotalPrice: 200,
	})
	require.NoError(t, err)

	_, err = f.uc.SendMessage(ctx, f.guest.ID, SendMessageInput{
		ReceiverUsername: f.stranger.Username,
		Content:          "is the flat available?",
	})
	require.NoError(t, err)

	conversations, err := f.uc.ListConversations(ctx, f.guest.ID)
	require.NoError(t, err)
	require.Len(t, conversations, 2)

	// The conversation with a message sorts before the silent one.
	assert.Equal(t, f.stranger.Username, conversations[0].Username)
	require.NotNil(t, conversations[0].LastMessage)
	assert.Equal(t, "is the flat available?", conversations[0].LastMessage.Content)

	assert.Equal(t, f.host.Username, conversations[1].Username)
	assert.Nil(t, conversations[1].LastMessage)
}

func TestEditAndDeleteMessage(t *testing.T) {
	f := newMessagingFixture(t)
	f.createReservation(t)
	ctx := context.Background()

	sent, err := f.uc.SendMessage(ctx, f.guest.ID, SendMessageInput{
		ReceiverUsername: f.host.Username,
		Content:          "typo here",
	})
	require.NoError(t, err)

	edited, err := f.uc.EditMessage(ctx, f.guest.ID, sent.ID, EditMessageInput{Content: "fixed"})
	require.NoError(t, err)
	assert.Equal(t, "fixed", edited.Content)

	_, err = f.uc.EditMessage(ctx, f.guest.ID, sent.ID, EditMessageInput{Content: ""})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	require.NoError(t, f.uc.DeleteMessage(ctx, f.guest.ID, sent.ID))

	err = f.uc.DeleteMessage(ctx, f.guest.ID, sent.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}
