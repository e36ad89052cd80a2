package favorites

import (
	"context"
	"fmt"

	"github.com/mboloapp/mbolo-backend/internal/modules/product"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Service defines favorites business logic.
type Service interface {
	// Add saves a product on the user's favorites. Idempotent.
	Add(ctx context.Context, userID, productID string) error

	// Remove drops a product from the user's favorites.
	Remove(ctx context.Context, userID, productID string) error

	// List returns the user's favorite products, resolved to full listings.
	List(ctx context.Context, userID string) ([]*product.Product, error)
}

type service struct {
	repo Repository
}

// NewService creates a new favorites service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Add(ctx context.Context, userID, productID string) error {
	uid, pid, err := parseIDs(userID, productID)
	if err != nil {
		return err
	}
	return s.repo.Add(ctx, uid, pid)
}

func (s *service) Remove(ctx context.Context, userID, productID string) error {
	uid, pid, err := parseIDs(userID, productID)
	if err != nil {
		return err
	}
	return s.repo.Remove(ctx, uid, pid)
}

func (s *service) List(ctx context.Context, userID string) ([]*product.Product, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id")
	}
	ids, err := s.repo.List(ctx, uid)
	if err != nil {
		return nil, err
	}
	return s.repo.LoadProducts(ctx, ids)
}

func parseIDs(userID, productID string) (primitive.ObjectID, primitive.ObjectID, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, fmt.Errorf("invalid user id")
	}
	pid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, fmt.Errorf("invalid product id")
	}
	return uid, pid, nil
}
