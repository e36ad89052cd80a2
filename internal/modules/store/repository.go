package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Repository defines data access for stores.
type Repository interface {
	// CreateStore persists a new store.
	CreateStore(ctx context.Context, s *Store) error

	// GetStoreByID retrieves a store by hex id.
	GetStoreByID(ctx context.Context, id string) (*Store, error)

	// GetStoreByOwner retrieves the store owned by the given user, if any.
	GetStoreByOwner(ctx context.Context, ownerID primitive.ObjectID) (*Store, error)

	// ListStores returns all stores.
	ListStores(ctx context.Context) ([]*Store, error)

	// UpdateStore replaces the mutable store fields.
	UpdateStore(ctx context.Context, s *Store) error

	// DeleteStore removes the store document.
	DeleteStore(ctx context.Context, id primitive.ObjectID) error

	// AddPaymentMethod appends a payout method to the store's registry.
	AddPaymentMethod(ctx context.Context, storeID primitive.ObjectID, pm PaymentMethod) error

	// RemovePaymentMethod removes the method matching both name and account
	// number, returning it so its image asset can be cleaned up.
	RemovePaymentMethod(ctx context.Context, storeID primitive.ObjectID, name, accountNumber string) (*PaymentMethod, error)

	// AppendProduct adds a product reference to the store's product list.
	AppendProduct(ctx context.Context, storeID, productID primitive.ObjectID) error

	// RemoveProduct pulls a product reference from the store's product list.
	RemoveProduct(ctx context.Context, storeID, productID primitive.ObjectID) error
}
