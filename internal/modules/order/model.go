package order

import (
	"time"

	"github.com/mboloapp/mbolo-backend/internal/platform/storage"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentStatus is the lifecycle state of an order's payment.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// PaymentMethodSnapshot is the store's registered method as it was at order
// time. It is copied, not referenced: later edits to the store's registry do
// not touch committed orders.
type PaymentMethodSnapshot struct {
	Name          string         `bson:"name" json:"name"`
	AccountNumber string         `bson:"accountNumber" json:"accountNumber"`
	Image         *storage.Asset `bson:"image,omitempty" json:"image,omitempty"`
}

// LineItem is one validated product entry within an order. Title, Supplier,
// UnitPrice and ImageURL are snapshotted from the product at validation time.
type LineItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Title     string             `bson:"title" json:"title"`
	Supplier  string             `bson:"supplier" json:"supplier"`
	UnitPrice float64            `bson:"unitPrice" json:"unitPrice"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Subtotal  float64            `bson:"subtotal" json:"subtotal"`
	Color     string             `bson:"color,omitempty" json:"color,omitempty"`
	Size      string             `bson:"talla,omitempty" json:"talla,omitempty"`
	ImageURL  string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
}

// Order is the persisted order document. Created exactly once per successful
// commit and never mutated by this workflow.
type Order struct {
	ID            primitive.ObjectID    `bson:"_id,omitempty" json:"id"`
	Number        string                `bson:"number" json:"number"`
	UserID        primitive.ObjectID    `bson:"userId" json:"userId"`
	Name          string                `bson:"name" json:"name"`
	Contact       string                `bson:"contact" json:"contact"`
	Items         []LineItem            `bson:"products" json:"products"`
	Total         float64               `bson:"total" json:"total"`
	PaymentMethod PaymentMethodSnapshot `bson:"paymentMethod" json:"paymentMethod"`
	Receipt       *storage.Asset        `bson:"paymentReceipt,omitempty" json:"paymentReceipt,omitempty"`
	PaymentStatus PaymentStatus         `bson:"payment_status" json:"payment_status"`
	StoreID       primitive.ObjectID    `bson:"tienda" json:"tienda"`
	CreatedAt     time.Time             `bson:"createdAt" json:"createdAt"`
}

// RequestedItem is one cart entry as submitted by the client. Subtotal is
// optional; when present it is cross-checked against price × quantity.
type RequestedItem struct {
	ProductID string   `json:"productId"`
	Quantity  int      `json:"quantity"`
	Subtotal  *float64 `json:"subtotal,omitempty"`
	Color     string   `json:"color,omitempty"`
	Size      string   `json:"talla,omitempty"`
}

// ClaimedMethod is the payment method the buyer claims to have used. It must
// match a method registered on the store by both name and account number.
type ClaimedMethod struct {
	Name          string `json:"name"`
	AccountNumber string `json:"accountNumber"`
}

// CreateOrderRequest is the JSON payload of the multipart create-order body.
type CreateOrderRequest struct {
	UserID        string          `json:"userId"`
	Name          string          `json:"name"`
	Contact       string          `json:"contact"`
	Products      []RequestedItem `json:"products"`
	PaymentMethod ClaimedMethod   `json:"paymentMethod"`
	Total         *float64        `json:"total,omitempty"`
}
