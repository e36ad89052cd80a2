package catalog

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Repository defines data access for the reference catalog.
type Repository interface {
	CreateCategory(ctx context.Context, c *Category) error
	ListCategories(ctx context.Context) ([]*Category, error)
	GetCategory(ctx context.Context, id primitive.ObjectID) (*Category, error)
	DeleteCategory(ctx context.Context, id primitive.ObjectID) error

	CreateSubcategory(ctx context.Context, s *Subcategory) error
	ListSubcategories(ctx context.Context, categoryID primitive.ObjectID) ([]*Subcategory, error)
	DeleteSubcategory(ctx context.Context, id primitive.ObjectID) error

	CreateLocation(ctx context.Context, l *Location) error
	ListLocations(ctx context.Context) ([]*Location, error)
	LocationExists(ctx context.Context, id primitive.ObjectID) (bool, error)
	DeleteLocation(ctx context.Context, id primitive.ObjectID) error
}
