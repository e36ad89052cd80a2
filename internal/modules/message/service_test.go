package message

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeRepo struct {
	messages []*Message
}

func (f *fakeRepo) Insert(_ context.Context, m *Message) error {
	m.ID = primitive.NewObjectID()
	f.messages = append(f.messages, m)
	return nil
}

func (f *fakeRepo) ListConversation(_ context.Context, a, b primitive.ObjectID) ([]*Message, error) {
	var out []*Message
	for _, m := range f.messages {
		if (m.Sender == a && m.Recipient == b) || (m.Sender == b && m.Recipient == a) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListInbox(_ context.Context, userID primitive.ObjectID) ([]*Message, error) {
	var out []*Message
	for _, m := range f.messages {
		if m.Recipient == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func TestSend(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)
	sender := primitive.NewObjectID()
	recipient := primitive.NewObjectID()

	m, err := svc.Send(context.Background(), sender.Hex(), SendRequest{
		Recipient: recipient.Hex(),
		Body:      "  hola, sigue disponible?  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "hola, sigue disponible?", m.Body)
	assert.Equal(t, sender, m.Sender)
	assert.Len(t, repo.messages, 1)
}

func TestSendValidation(t *testing.T) {
	svc := NewService(&fakeRepo{})
	sender := primitive.NewObjectID()

	_, err := svc.Send(context.Background(), sender.Hex(), SendRequest{Recipient: "bad", Body: "x"})
	require.Error(t, err)

	_, err = svc.Send(context.Background(), sender.Hex(), SendRequest{
		Recipient: primitive.NewObjectID().Hex(), Body: "   ",
	})
	require.Error(t, err)

	_, err = svc.Send(context.Background(), sender.Hex(), SendRequest{
		Recipient: sender.Hex(), Body: "hola",
	})
	require.Error(t, err, "self-messaging is rejected")
}

func TestListConversationBothDirections(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	c := primitive.NewObjectID()

	_, err := svc.Send(context.Background(), a.Hex(), SendRequest{Recipient: b.Hex(), Body: "hola"})
	require.NoError(t, err)
	_, err = svc.Send(context.Background(), b.Hex(), SendRequest{Recipient: a.Hex(), Body: "buenas"})
	require.NoError(t, err)
	_, err = svc.Send(context.Background(), c.Hex(), SendRequest{Recipient: a.Hex(), Body: "otra cosa"})
	require.NoError(t, err)

	msgs, err := svc.ListConversation(context.Background(), a.Hex(), b.Hex())
	require.NoError(t, err)
	assert.Len(t, msgs, 2)

	inbox, err := svc.ListInbox(context.Background(), a.Hex())
	require.NoError(t, err)
	assert.Len(t, inbox, 2)
}
