package favorites

import (
	"context"
	"time"

	"github.com/mboloapp/mbolo-backend/internal/modules/product"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoRepository struct {
	favorites *mongo.Collection
	products  *mongo.Collection
}

// NewMongoRepository creates a new MongoDB favorites repository.
func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{
		favorites: db.Collection("favorites"),
		products:  db.Collection("products"),
	}
}

func (r *mongoRepository) Add(ctx context.Context, userID, productID primitive.ObjectID) error {
	_, err := r.favorites.UpdateOne(ctx,
		bson.M{"user": userID},
		bson.M{
			"$addToSet": bson.M{"products": productID},
			"$set":      bson.M{"updatedAt": time.Now().UTC()},
		},
		options.Update().SetUpsert(true),
	)
	return err
}

func (r *mongoRepository) Remove(ctx context.Context, userID, productID primitive.ObjectID) error {
	_, err := r.favorites.UpdateOne(ctx,
		bson.M{"user": userID},
		bson.M{
			"$pull": bson.M{"products": productID},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	return err
}

func (r *mongoRepository) List(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	f := &Favorites{}
	err := r.favorites.FindOne(ctx, bson.M{"user": userID}).Decode(f)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return f.Products, nil
}

func (r *mongoRepository) LoadProducts(ctx context.Context, ids []primitive.ObjectID) ([]*product.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := r.products.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var products []*product.Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}
