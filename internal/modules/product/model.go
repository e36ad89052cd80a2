package product

import (
	"time"

	"github.com/mboloapp/mbolo-backend/internal/platform/storage"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is a buyer comment embedded on a product.
type Comment struct {
	User      primitive.ObjectID `bson:"user" json:"user"`
	Comment   string             `bson:"comment" json:"comment"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Product is a listing owned by a store. Colors, Sizes and ShoeSizes are the
// option domains an order's line items are validated against; Sizes covers
// apparel, ShoeSizes footwear, and a product declares at most one of the two.
type Product struct {
	ID           primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	Title        string                 `bson:"title" json:"title"`
	Supplier     string                 `bson:"supplier" json:"supplier"`
	Price        float64                `bson:"price" json:"price"`
	Stock        int                    `bson:"stock" json:"stock"`
	Description  string                 `bson:"description" json:"description"`
	Images       []storage.Asset        `bson:"images,omitempty" json:"images,omitempty"`
	Videos       []storage.Asset        `bson:"videos,omitempty" json:"videos,omitempty"`
	Category     primitive.ObjectID     `bson:"category" json:"category"`
	Subcategory  primitive.ObjectID     `bson:"subcategory" json:"subcategory"`
	StoreID      primitive.ObjectID     `bson:"tienda" json:"tienda"`
	Colors       []string               `bson:"colores,omitempty" json:"colores,omitempty"`
	Sizes        []string               `bson:"tallas,omitempty" json:"tallas,omitempty"`
	ShoeSizes    []string               `bson:"numeros_calzado,omitempty" json:"numeros_calzado,omitempty"`
	CustomFields map[string]interface{} `bson:"customFields,omitempty" json:"customFields,omitempty"`
	Comments     []Comment              `bson:"comentarios,omitempty" json:"comentarios,omitempty"`
	CreatedAt    time.Time              `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time              `bson:"updatedAt" json:"updatedAt"`
}

// CreateProductRequest is the JSON payload accompanying the media files.
type CreateProductRequest struct {
	Title        string                 `json:"title"`
	Supplier     string                 `json:"supplier"`
	Price        float64                `json:"price"`
	Stock        int                    `json:"stock"`
	Description  string                 `json:"description"`
	Category     string                 `json:"category"`
	Subcategory  string                 `json:"subcategory"`
	Colors       []string               `json:"colores,omitempty"`
	Sizes        []string               `json:"tallas,omitempty"`
	ShoeSizes    []string               `json:"numeros_calzado,omitempty"`
	CustomFields map[string]interface{} `json:"customFields,omitempty"`
}

// UpdateProductRequest carries the mutable listing fields. Pointer fields
// distinguish "leave unchanged" from explicit zero values.
type UpdateProductRequest struct {
	Title       string   `json:"title,omitempty"`
	Supplier    string   `json:"supplier,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Stock       *int     `json:"stock,omitempty"`
	Description string   `json:"description,omitempty"`
	Colors      []string `json:"colores,omitempty"`
	Sizes       []string `json:"tallas,omitempty"`
	ShoeSizes   []string `json:"numeros_calzado,omitempty"`
}
