package message

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Service defines messaging business logic.
type Service interface {
	// Send delivers a message from sender to the recipient named in req.
	Send(ctx context.Context, senderID string, req SendRequest) (*Message, error)

	// ListConversation returns the full exchange between two users, oldest
	// first.
	ListConversation(ctx context.Context, userID, otherID string) ([]*Message, error)

	// ListInbox returns the messages addressed to a user, newest first.
	ListInbox(ctx context.Context, userID string) ([]*Message, error)
}

type service struct {
	repo Repository
}

// NewService creates a new message service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Send(ctx context.Context, senderID string, req SendRequest) (*Message, error) {
	sender, err := primitive.ObjectIDFromHex(senderID)
	if err != nil {
		return nil, fmt.Errorf("invalid sender id")
	}
	recipient, err := primitive.ObjectIDFromHex(req.Recipient)
	if err != nil {
		return nil, fmt.Errorf("invalid recipient id")
	}
	body := strings.TrimSpace(req.Body)
	if body == "" {
		return nil, fmt.Errorf("message body is required")
	}
	if sender == recipient {
		return nil, fmt.Errorf("invalid recipient: cannot message yourself")
	}

	m := &Message{Sender: sender, Recipient: recipient, Body: body}
	if err := s.repo.Insert(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *service) ListConversation(ctx context.Context, userID, otherID string) ([]*Message, error) {
	a, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id")
	}
	b, err := primitive.ObjectIDFromHex(otherID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id")
	}
	return s.repo.ListConversation(ctx, a, b)
}

func (s *service) ListInbox(ctx context.Context, userID string) ([]*Message, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id")
	}
	return s.repo.ListInbox(ctx, uid)
}
