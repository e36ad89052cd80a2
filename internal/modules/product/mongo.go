package product

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

// NewMongoRepository creates a new MongoDB product repository. Text search
// relies on an index over title, supplier and description.
func NewMongoRepository(db *mongo.Database) Repository {
	col := db.Collection("products")

	idx := mongo.IndexModel{Keys: bson.D{
		{Key: "title", Value: "text"},
		{Key: "supplier", Value: "text"},
		{Key: "description", Value: "text"},
	}}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	// Index creation is idempotent; a failure here only degrades search.
	col.Indexes().CreateOne(ctx, idx)

	return &mongoRepository{col: col}
}

func (r *mongoRepository) CreateProduct(ctx context.Context, p *Product) error {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	res, err := r.col.InsertOne(ctx, p)
	if err != nil {
		return err
	}
	p.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *mongoRepository) GetProductByID(ctx context.Context, id string) (*Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	p := &Product{}
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *mongoRepository) ListProductsByStore(ctx context.Context, storeID primitive.ObjectID) ([]*Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return r.find(ctx, bson.M{"tienda": storeID}, opts)
}

func (r *mongoRepository) ListProductsByCategory(ctx context.Context, categoryID primitive.ObjectID) ([]*Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return r.find(ctx, bson.M{"category": categoryID}, opts)
}

func (r *mongoRepository) SearchProducts(ctx context.Context, query string) ([]*Product, error) {
	return r.find(ctx, bson.M{"$text": bson.M{"$search": query}}, options.Find())
}

func (r *mongoRepository) UpdateProduct(ctx context.Context, p *Product) error {
	p.UpdatedAt = time.Now().UTC()
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": p.ID}, bson.M{"$set": bson.M{
		"title":           p.Title,
		"supplier":        p.Supplier,
		"price":           p.Price,
		"stock":           p.Stock,
		"description":     p.Description,
		"colores":         p.Colors,
		"tallas":          p.Sizes,
		"numeros_calzado": p.ShoeSizes,
		"updatedAt":       p.UpdatedAt,
	}})
	return err
}

func (r *mongoRepository) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *mongoRepository) AddComment(ctx context.Context, productID primitive.ObjectID, c Comment) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": productID}, bson.M{
		"$push": bson.M{"comentarios": c},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*Product, error) {
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var products []*Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}
