package message

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Repository defines data access for messages.
type Repository interface {
	// Insert persists a message.
	Insert(ctx context.Context, m *Message) error

	// ListConversation returns every message between the two users in either
	// direction, oldest first.
	ListConversation(ctx context.Context, a, b primitive.ObjectID) ([]*Message, error)

	// ListInbox returns the messages addressed to a user, newest first.
	ListInbox(ctx context.Context, userID primitive.ObjectID) ([]*Message, error)
}
