package favorites

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Favorites is a user's saved product list, one document per user.
type Favorites struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	User      primitive.ObjectID   `bson:"user" json:"user"`
	Products  []primitive.ObjectID `bson:"products" json:"products"`
	UpdatedAt time.Time            `bson:"updatedAt" json:"updatedAt"`
}
