package order

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/mboloapp/mbolo-backend/internal/modules/product"
	"github.com/mboloapp/mbolo-backend/internal/modules/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoRepository struct {
	client   *mongo.Client
	orders   *mongo.Collection
	products *mongo.Collection
	stores   *mongo.Collection
	users    *mongo.Collection
}

// NewMongoRepository creates a new MongoDB order repository. The client is
// needed alongside the database handle because transactions are started on a
// client session.
func NewMongoRepository(client *mongo.Client, db *mongo.Database) Repository {
	return &mongoRepository{
		client:   client,
		orders:   db.Collection("orders"),
		products: db.Collection("products"),
		stores:   db.Collection("tiendas"),
		users:    db.Collection("users"),
	}
}

// WithTransaction runs fn inside a single session transaction. There is no
// retry loop: a write conflict aborts and surfaces to the caller, which maps
// it to a validation failure.
func (r *mongoRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	sess, err := r.client.StartSession()
	if err != nil {
		return err
	}
	defer sess.EndSession(ctx)

	return mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sess.StartTransaction(); err != nil {
			return err
		}
		if err := fn(sc); err != nil {
			if abortErr := sess.AbortTransaction(sc); abortErr != nil {
				log.Printf("order tx: abort: %v", abortErr)
			}
			return err
		}
		return sess.CommitTransaction(sc)
	})
}

func (r *mongoRepository) FindProduct(ctx context.Context, id primitive.ObjectID) (*product.Product, error) {
	p := &product.Product{}
	if err := r.products.FindOne(ctx, bson.M{"_id": id}).Decode(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *mongoRepository) DecrementStock(ctx context.Context, id primitive.ObjectID, qty int) error {
	res, err := r.products.UpdateOne(ctx,
		bson.M{"_id": id, "stock": bson.M{"$gte": qty}},
		bson.M{"$inc": bson.M{"stock": -qty}},
	)
	if err != nil {
		// The losing side of two concurrent decrements sees a write conflict
		// from the server rather than a zero match against its snapshot.
		if isWriteConflict(err) {
			return ErrStockConflict
		}
		return err
	}
	if res.MatchedCount == 0 {
		return ErrStockConflict
	}
	return nil
}

// isWriteConflict reports whether err is the server aborting a transaction
// because another transaction wrote the same document first. Code 112 is
// WriteConflict; the transient label covers the remaining abort variants.
func isWriteConflict(err error) bool {
	var se mongo.ServerError
	if !errors.As(err, &se) {
		return false
	}
	return se.HasErrorCode(112) || se.HasErrorLabel("TransientTransactionError")
}

func (r *mongoRepository) FindStore(ctx context.Context, id primitive.ObjectID) (*store.Store, error) {
	s := &store.Store{}
	if err := r.stores.FindOne(ctx, bson.M{"_id": id}).Decode(s); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *mongoRepository) UserExists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	err := r.users.FindOne(ctx, bson.M{"_id": id}, options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *mongoRepository) InsertOrder(ctx context.Context, o *Order) error {
	res, err := r.orders.InsertOne(ctx, o)
	if err != nil {
		return err
	}
	o.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *mongoRepository) AppendOrderToStore(ctx context.Context, storeID, orderID primitive.ObjectID) error {
	_, err := r.stores.UpdateOne(ctx, bson.M{"_id": storeID}, bson.M{
		"$push": bson.M{"orders": orderID},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	})
	return err
}

func (r *mongoRepository) AppendOrderToUser(ctx context.Context, userID, orderID primitive.ObjectID) error {
	_, err := r.users.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$push": bson.M{"orders": orderID},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	})
	return err
}

func (r *mongoRepository) GetOrderByID(ctx context.Context, id string) (*Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	o := &Order{}
	if err := r.orders.FindOne(ctx, bson.M{"_id": oid}).Decode(o); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *mongoRepository) ListOrdersByUser(ctx context.Context, userID primitive.ObjectID) ([]*Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.orders.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var orders []*Order
	if err := cur.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
