package user

import (
	"context"

	"github.com/mboloapp/mbolo-backend/internal/platform/storage"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Repository defines data access for users.
type Repository interface {
	// CreateUser persists a new user.
	CreateUser(ctx context.Context, u *User) error

	// GetUserByEmail retrieves a user by email address.
	GetUserByEmail(ctx context.Context, email string) (*User, error)

	// GetUserByID retrieves a user by hex id.
	GetUserByID(ctx context.Context, id string) (*User, error)

	// UpdateProfile replaces the mutable profile fields.
	UpdateProfile(ctx context.Context, id primitive.ObjectID, userName, mobile, location string) error

	// SetImage replaces the avatar asset.
	SetImage(ctx context.Context, id primitive.ObjectID, image storage.Asset) error

	// SetStore points the user at their store document, or clears it when nil.
	SetStore(ctx context.Context, userID primitive.ObjectID, storeID *primitive.ObjectID) error
}
