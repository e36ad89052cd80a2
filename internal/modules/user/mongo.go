package user

import (
	"context"
	"time"

	"github.com/mboloapp/mbolo-backend/internal/platform/storage"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type mongoRepository struct {
	col *mongo.Collection
}

// NewMongoRepository creates a new MongoDB user repository.
func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{col: db.Collection("users")}
}

func (r *mongoRepository) CreateUser(ctx context.Context, u *User) error {
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	res, err := r.col.InsertOne(ctx, u)
	if err != nil {
		return err
	}
	u.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *mongoRepository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	u := &User{}
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(u); err != nil {
		return nil, err
	}
	return u, nil
}

func (r *mongoRepository) GetUserByID(ctx context.Context, id string) (*User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	u := &User{}
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(u); err != nil {
		return nil, err
	}
	return u, nil
}

func (r *mongoRepository) UpdateProfile(ctx context.Context, id primitive.ObjectID, userName, mobile, location string) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"userName":  userName,
		"mobile":    mobile,
		"location":  location,
		"updatedAt": time.Now().UTC(),
	}})
	return err
}

func (r *mongoRepository) SetImage(ctx context.Context, id primitive.ObjectID, image storage.Asset) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"image":     image,
		"updatedAt": time.Now().UTC(),
	}})
	return err
}

func (r *mongoRepository) SetStore(ctx context.Context, userID primitive.ObjectID, storeID *primitive.ObjectID) error {
	update := bson.M{"$set": bson.M{"tienda": storeID, "updatedAt": time.Now().UTC()}}
	if storeID == nil {
		update = bson.M{
			"$unset": bson.M{"tienda": ""},
			"$set":   bson.M{"updatedAt": time.Now().UTC()},
		}
	}
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": userID}, update)
	return err
}
