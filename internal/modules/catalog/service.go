package catalog

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Service defines catalog business logic. It also backs the store module's
// location check.
type Service interface {
	CreateCategory(ctx context.Context, name string) (*Category, error)
	ListCategories(ctx context.Context) ([]*Category, error)
	GetCategory(ctx context.Context, id string) (*Category, error)
	DeleteCategory(ctx context.Context, id string) error

	CreateSubcategory(ctx context.Context, name, categoryID string) (*Subcategory, error)
	ListSubcategories(ctx context.Context, categoryID string) ([]*Subcategory, error)
	DeleteSubcategory(ctx context.Context, id string) error

	CreateLocation(ctx context.Context, name string) (*Location, error)
	ListLocations(ctx context.Context) ([]*Location, error)
	DeleteLocation(ctx context.Context, id string) error

	// LocationExists satisfies store.LocationChecker.
	LocationExists(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type service struct {
	repo Repository
}

// NewService creates a new catalog service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateCategory(ctx context.Context, name string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	c := &Category{Name: name}
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) ListCategories(ctx context.Context) ([]*Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *service) GetCategory(ctx context.Context, id string) (*Category, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid category id")
	}
	return s.repo.GetCategory(ctx, oid)
}

func (s *service) DeleteCategory(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid category id")
	}
	return s.repo.DeleteCategory(ctx, oid)
}

func (s *service) CreateSubcategory(ctx context.Context, name, categoryID string) (*Subcategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	catID, err := primitive.ObjectIDFromHex(categoryID)
	if err != nil {
		return nil, fmt.Errorf("invalid category id")
	}
	if _, err := s.repo.GetCategory(ctx, catID); err != nil {
		return nil, fmt.Errorf("category does not exist")
	}
	sub := &Subcategory{Name: name, Category: catID}
	if err := s.repo.CreateSubcategory(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *service) ListSubcategories(ctx context.Context, categoryID string) ([]*Subcategory, error) {
	var catID primitive.ObjectID
	if categoryID != "" {
		var err error
		catID, err = primitive.ObjectIDFromHex(categoryID)
		if err != nil {
			return nil, fmt.Errorf("invalid category id")
		}
	}
	return s.repo.ListSubcategories(ctx, catID)
}

func (s *service) DeleteSubcategory(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid subcategory id")
	}
	return s.repo.DeleteSubcategory(ctx, oid)
}

func (s *service) CreateLocation(ctx context.Context, name string) (*Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	l := &Location{Name: name}
	if err := s.repo.CreateLocation(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *service) ListLocations(ctx context.Context) ([]*Location, error) {
	return s.repo.ListLocations(ctx)
}

func (s *service) DeleteLocation(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid location id")
	}
	return s.repo.DeleteLocation(ctx, oid)
}

func (s *service) LocationExists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return s.repo.LocationExists(ctx, id)
}
