package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type mongoRepository struct {
	col *mongo.Collection
}

// NewMongoRepository creates a new MongoDB store repository.
func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{col: db.Collection("tiendas")}
}

func (r *mongoRepository) CreateStore(ctx context.Context, s *Store) error {
	now := time.Now().UTC()
	s.CreatedAt = now
	s.UpdatedAt = now
	if s.Products == nil {
		s.Products = []primitive.ObjectID{}
	}
	res, err := r.col.InsertOne(ctx, s)
	if err != nil {
		return err
	}
	s.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *mongoRepository) GetStoreByID(ctx context.Context, id string) (*Store, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	s := &Store{}
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(s); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *mongoRepository) GetStoreByOwner(ctx context.Context, ownerID primitive.ObjectID) (*Store, error) {
	s := &Store{}
	if err := r.col.FindOne(ctx, bson.M{"owner": ownerID}).Decode(s); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *mongoRepository) ListStores(ctx context.Context) ([]*Store, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var stores []*Store
	if err := cur.All(ctx, &stores); err != nil {
		return nil, err
	}
	return stores, nil
}

func (r *mongoRepository) UpdateStore(ctx context.Context, s *Store) error {
	s.UpdatedAt = time.Now().UTC()
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": s.ID}, bson.M{"$set": bson.M{
		"name":              s.Name,
		"description":       s.Description,
		"logo":              s.Logo,
		"banner":            s.Banner,
		"phone_number":      s.PhoneNumber,
		"address":           s.Address,
		"specific_location": s.SpecificLocation,
		"updatedAt":         s.UpdatedAt,
	}})
	return err
}

func (r *mongoRepository) DeleteStore(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *mongoRepository) AddPaymentMethod(ctx context.Context, storeID primitive.ObjectID, pm PaymentMethod) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": storeID}, bson.M{
		"$push": bson.M{"paymentMethods": pm},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoRepository) RemovePaymentMethod(ctx context.Context, storeID primitive.ObjectID, name, accountNumber string) (*PaymentMethod, error) {
	s := &Store{}
	if err := r.col.FindOne(ctx, bson.M{"_id": storeID}).Decode(s); err != nil {
		return nil, err
	}
	var removed *PaymentMethod
	for i := range s.PaymentMethods {
		if s.PaymentMethods[i].Name == name && s.PaymentMethods[i].AccountNumber == accountNumber {
			removed = &s.PaymentMethods[i]
			break
		}
	}
	if removed == nil {
		return nil, fmt.Errorf("payment method not registered")
	}
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": storeID}, bson.M{
		"$pull": bson.M{"paymentMethods": bson.M{"name": name, "accountNumber": accountNumber}},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

func (r *mongoRepository) AppendProduct(ctx context.Context, storeID, productID primitive.ObjectID) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": storeID}, bson.M{
		"$addToSet": bson.M{"products": productID},
		"$set":      bson.M{"updatedAt": time.Now().UTC()},
	})
	return err
}

func (r *mongoRepository) RemoveProduct(ctx context.Context, storeID, productID primitive.ObjectID) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": storeID}, bson.M{
		"$pull": bson.M{"products": productID},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	})
	return err
}
