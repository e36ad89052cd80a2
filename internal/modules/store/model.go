package store

import (
	"time"

	"github.com/mboloapp/mbolo-backend/internal/platform/storage"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentMethod is a payout method registered on a store. Orders copy the
// matched method into their own document at commit time, so editing or
// removing a method here never rewrites history.
type PaymentMethod struct {
	Name          string         `bson:"name" json:"name"`
	AccountNumber string         `bson:"accountNumber" json:"accountNumber"`
	Image         *storage.Asset `bson:"image,omitempty" json:"image,omitempty"`
}

// Store represents a seller's storefront (tienda). Products is append-only
// from the order workflow's perspective; only product creation grows it.
type Store struct {
	ID               primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name             string               `bson:"name" json:"name"`
	Description      string               `bson:"description" json:"description"`
	Logo             storage.Asset        `bson:"logo" json:"logo"`
	Banner           storage.Asset        `bson:"banner" json:"banner"`
	PhoneNumber      string               `bson:"phone_number" json:"phone_number"`
	Address          primitive.ObjectID   `bson:"address" json:"address"`
	SpecificLocation string               `bson:"specific_location,omitempty" json:"specific_location,omitempty"`
	Owner            primitive.ObjectID   `bson:"owner" json:"owner"`
	Products         []primitive.ObjectID `bson:"products" json:"products"`
	Orders           []primitive.ObjectID `bson:"orders,omitempty" json:"orders,omitempty"`
	PaymentMethods   []PaymentMethod      `bson:"paymentMethods,omitempty" json:"paymentMethods,omitempty"`
	CreatedAt        time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// CreateStoreRequest is the JSON payload accompanying the logo/banner files.
type CreateStoreRequest struct {
	Name             string `json:"name"`
	Description      string `json:"description"`
	PhoneNumber      string `json:"phone_number"`
	Address          string `json:"address"`
	Owner            string `json:"owner"`
	SpecificLocation string `json:"specific_location"`
}

// UpdateStoreRequest carries the mutable store fields.
type UpdateStoreRequest struct {
	Name             string `json:"name"`
	Description      string `json:"description"`
	PhoneNumber      string `json:"phone_number"`
	Address          string `json:"address"`
	SpecificLocation string `json:"specific_location"`
}

// AddPaymentMethodRequest registers a payout method on a store.
type AddPaymentMethodRequest struct {
	Name          string `json:"name"`
	AccountNumber string `json:"accountNumber"`
}
