package message

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message is one buyer/seller chat message.
type Message struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Sender    primitive.ObjectID `bson:"sender" json:"sender"`
	Recipient primitive.ObjectID `bson:"recipient" json:"recipient"`
	Body      string             `bson:"body" json:"body"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// SendRequest is the JSON payload of a send.
type SendRequest struct {
	Recipient string `json:"recipient"`
	Body      string `json:"body"`
}
