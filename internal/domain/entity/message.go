package entity

import (
	"strings"
	"time"
)

type Message struct {
	ID               string    `json:"id" firestore:"id"`
	ConversationID   string    `json:"conversation_id" firestore:"conversationId"`
	SenderUsername   string    `json:"sender_username" firestore:"senderUsername"`
	ReceiverUsername string    `json:"receiver_username" firestore:"receiverUsername"`
	Content          string    `json:"content" firestore:"content"`
	CreatedAt        time.Time `json:"created_at" firestore:"createdAt"`
}

// ConversationSummary is one row of a user's conversation list: the
// counterpart plus the latest message, if any.
type ConversationSummary struct {
	ConversationID string   `json:"conversation_id"`
	Username       string   `json:"username"`
	Name           string   `json:"name"`
	LastMessage    *Message `json:"last_message,omitempty"`
}

// ConversationID derives the identity of a direct conversation from its two
// participant usernames. The id is the same regardless of who initiates, so
// conversations never need a stored row or a lookup-before-create.
func ConversationID(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return "dm:" + a + "|" + b
}

// ConversationParticipants inverts ConversationID. ok is false when the id
// is not a well-formed direct-conversation id.
func ConversationParticipants(id string) (string, string, bool) {
	rest, found := strings.CutPrefix(id, "dm:")
	if !found {
		return "", "", false
	}
	a, b, found := strings.Cut(rest, "|")
	if !found || a == "" || b == "" {
		return "", "", false
	}
	return a, b, true
}
