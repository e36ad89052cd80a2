package catalog

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoRepository struct {
	categories    *mongo.Collection
	subcategories *mongo.Collection
	locations     *mongo.Collection
}

// NewMongoRepository creates a new MongoDB catalog repository.
func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{
		categories:    db.Collection("categories"),
		subcategories: db.Collection("subcategories"),
		locations:     db.Collection("locations"),
	}
}

func (r *mongoRepository) CreateCategory(ctx context.Context, c *Category) error {
	c.CreatedAt = time.Now().UTC()
	res, err := r.categories.InsertOne(ctx, c)
	if err != nil {
		return err
	}
	c.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *mongoRepository) ListCategories(ctx context.Context) ([]*Category, error) {
	cur, err := r.categories.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var cats []*Category
	if err := cur.All(ctx, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

func (r *mongoRepository) GetCategory(ctx context.Context, id primitive.ObjectID) (*Category, error) {
	c := &Category{}
	if err := r.categories.FindOne(ctx, bson.M{"_id": id}).Decode(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *mongoRepository) DeleteCategory(ctx context.Context, id primitive.ObjectID) error {
	if _, err := r.subcategories.DeleteMany(ctx, bson.M{"category": id}); err != nil {
		return err
	}
	_, err := r.categories.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *mongoRepository) CreateSubcategory(ctx context.Context, s *Subcategory) error {
	s.CreatedAt = time.Now().UTC()
	res, err := r.subcategories.InsertOne(ctx, s)
	if err != nil {
		return err
	}
	s.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *mongoRepository) ListSubcategories(ctx context.Context, categoryID primitive.ObjectID) ([]*Subcategory, error) {
	filter := bson.M{}
	if !categoryID.IsZero() {
		filter["category"] = categoryID
	}
	cur, err := r.subcategories.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var subs []*Subcategory
	if err := cur.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *mongoRepository) DeleteSubcategory(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.subcategories.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *mongoRepository) CreateLocation(ctx context.Context, l *Location) error {
	l.CreatedAt = time.Now().UTC()
	res, err := r.locations.InsertOne(ctx, l)
	if err != nil {
		return err
	}
	l.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *mongoRepository) ListLocations(ctx context.Context) ([]*Location, error) {
	cur, err := r.locations.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var locs []*Location
	if err := cur.All(ctx, &locs); err != nil {
		return nil, err
	}
	return locs, nil
}

func (r *mongoRepository) LocationExists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	err := r.locations.FindOne(ctx, bson.M{"_id": id}, options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *mongoRepository) DeleteLocation(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.locations.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
