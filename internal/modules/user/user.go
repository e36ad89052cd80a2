package user

import (
	"time"

	"github.com/mboloapp/mbolo-backend/internal/platform/storage"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an account on the marketplace. A user may own at most one
// store, referenced by StoreID once it exists.
type User struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	UserName     string               `bson:"userName" json:"userName"`
	Email        string               `bson:"email" json:"email"`
	PasswordHash string               `bson:"password" json:"-"`
	Image        *storage.Asset       `bson:"image,omitempty" json:"image,omitempty"`
	Mobile       string               `bson:"mobile,omitempty" json:"mobile,omitempty"`
	Location     string               `bson:"location,omitempty" json:"location,omitempty"`
	StoreID      *primitive.ObjectID  `bson:"tienda,omitempty" json:"tienda,omitempty"`
	Orders       []primitive.ObjectID `bson:"orders,omitempty" json:"orders,omitempty"`
	CreatedAt    time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time            `bson:"updatedAt" json:"updatedAt"`
}
