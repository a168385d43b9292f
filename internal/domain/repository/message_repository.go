package repository

import (
	"context"

	"staygo/internal/domain/entity"
)

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	GetByID(ctx context.Context, id string) (*entity.Message, error)
	Update(ctx context.Context, message *entity.Message) error
	Delete(ctx context.Context, id string) error

	// ListByConversation returns the conversation's messages in chat order
	// (creation time ascending).
	ListByConversation(ctx context.Context, conversationID string) ([]*entity.Message, error)

	// LatestByConversation returns the newest message of the conversation,
	// or a NOT_FOUND AppError when the conversation has no messages yet.
	LatestByConversation(ctx context.Context, conversationID string) (*entity.Message, error)
}
