package order

import (
	"context"

	"github.com/mboloapp/mbolo-backend/internal/modules/product"
	"github.com/mboloapp/mbolo-backend/internal/modules/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Repository defines data access for the order workflow. All methods accept
// the context they are given; inside WithTransaction that context carries the
// session, so reads and writes share one consistent snapshot.
type Repository interface {
	// WithTransaction runs fn inside a single transaction. fn's context must
	// be passed to every repository call that should join the transaction.
	// Any error from fn aborts; a nil return commits.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// FindProduct loads the authoritative product record.
	FindProduct(ctx context.Context, id primitive.ObjectID) (*product.Product, error)

	// DecrementStock atomically subtracts qty from the product's stock,
	// failing with ErrStockConflict if fewer than qty units remain or a
	// concurrent transaction already took them.
	DecrementStock(ctx context.Context, id primitive.ObjectID, qty int) error

	// FindStore loads a store with its registered payment methods.
	FindStore(ctx context.Context, id primitive.ObjectID) (*store.Store, error)

	// UserExists reports whether the placing user exists.
	UserExists(ctx context.Context, id primitive.ObjectID) (bool, error)

	// InsertOrder persists the order document.
	InsertOrder(ctx context.Context, o *Order) error

	// AppendOrderToStore adds the order reference to the store's order list.
	AppendOrderToStore(ctx context.Context, storeID, orderID primitive.ObjectID) error

	// AppendOrderToUser adds the order reference to the user's order list.
	AppendOrderToUser(ctx context.Context, userID, orderID primitive.ObjectID) error

	// GetOrderByID retrieves an order by hex id.
	GetOrderByID(ctx context.Context, id string) (*Order, error)

	// ListOrdersByUser returns a user's orders, newest first.
	ListOrdersByUser(ctx context.Context, userID primitive.ObjectID) ([]*Order, error)
}
