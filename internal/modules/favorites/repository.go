package favorites

import (
	"context"

	"github.com/mboloapp/mbolo-backend/internal/modules/product"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Repository defines data access for per-user favorites.
type Repository interface {
	// Add saves the product on the user's list, creating the list if needed.
	// Adding a product twice is a no-op.
	Add(ctx context.Context, userID, productID primitive.ObjectID) error

	// Remove drops the product from the user's list.
	Remove(ctx context.Context, userID, productID primitive.ObjectID) error

	// List returns the ids on the user's list, empty if none were ever saved.
	List(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error)

	// LoadProducts resolves ids to product documents, skipping dangling refs.
	LoadProducts(ctx context.Context, ids []primitive.ObjectID) ([]*product.Product, error)
}
