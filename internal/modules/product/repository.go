package product

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Repository defines data access for products.
type Repository interface {
	// CreateProduct persists a new product.
	CreateProduct(ctx context.Context, p *Product) error

	// GetProductByID retrieves a product by hex id.
	GetProductByID(ctx context.Context, id string) (*Product, error)

	// ListProductsByStore returns a store's listings, newest first.
	ListProductsByStore(ctx context.Context, storeID primitive.ObjectID) ([]*Product, error)

	// ListProductsByCategory returns all listings in a category.
	ListProductsByCategory(ctx context.Context, categoryID primitive.ObjectID) ([]*Product, error)

	// SearchProducts runs a text search over title, supplier and description.
	SearchProducts(ctx context.Context, query string) ([]*Product, error)

	// UpdateProduct replaces the mutable listing fields.
	UpdateProduct(ctx context.Context, p *Product) error

	// DeleteProduct removes the product document.
	DeleteProduct(ctx context.Context, id primitive.ObjectID) error

	// AddComment appends a buyer comment.
	AddComment(ctx context.Context, productID primitive.ObjectID, c Comment) error
}
