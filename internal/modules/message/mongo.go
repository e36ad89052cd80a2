package message

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoRepository struct {
	col *mongo.Collection
}

// NewMongoRepository creates a new MongoDB message repository.
func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{col: db.Collection("messages")}
}

func (r *mongoRepository) Insert(ctx context.Context, m *Message) error {
	m.CreatedAt = time.Now().UTC()
	res, err := r.col.InsertOne(ctx, m)
	if err != nil {
		return err
	}
	m.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *mongoRepository) ListConversation(ctx context.Context, a, b primitive.ObjectID) ([]*Message, error) {
	filter := bson.M{"$or": []bson.M{
		{"sender": a, "recipient": b},
		{"sender": b, "recipient": a},
	}}
	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var msgs []*Message
	if err := cur.All(ctx, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

func (r *mongoRepository) ListInbox(ctx context.Context, userID primitive.ObjectID) ([]*Message, error) {
	cur, err := r.col.Find(ctx, bson.M{"recipient": userID}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var msgs []*Message
	if err := cur.All(ctx, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}
