package order

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/mboloapp/mbolo-backend/internal/modules/product"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// priceTolerance bounds the accepted drift between a caller-supplied subtotal
// and price × quantity.
const priceTolerance = 0.01

// ProductFinder is the slice of Repository the validator needs.
type ProductFinder interface {
	FindProduct(ctx context.Context, id primitive.ObjectID) (*product.Product, error)
}

// validateItems checks every requested item, in input order, against the
// authoritative product records read through ctx (the transaction's session
// context when called from the committer). The first failing item rejects the
// whole order. It returns the validated line items, the grand total and the
// owning store; stock is not modified here.
func validateItems(ctx context.Context, finder ProductFinder, items []RequestedItem) ([]LineItem, float64, primitive.ObjectID, error) {
	var (
		lines   []LineItem
		total   float64
		storeID primitive.ObjectID
	)

	for i, item := range items {
		pid, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			return nil, 0, storeID, &ValidationError{Kind: KindInvalidReference, ProductID: item.ProductID, Message: "not a well-formed product id"}
		}
		if item.Quantity < 1 {
			return nil, 0, storeID, &ValidationError{Kind: KindInvalidQuantity, ProductID: item.ProductID, Message: fmt.Sprintf("quantity %d is not a positive integer", item.Quantity)}
		}

		p, err := finder.FindProduct(ctx, pid)
		if err == mongo.ErrNoDocuments {
			return nil, 0, storeID, &ValidationError{Kind: KindNotFound, ProductID: item.ProductID, Message: "product does not exist"}
		}
		if err != nil {
			return nil, 0, storeID, fmt.Errorf("load product %s: %w", item.ProductID, err)
		}

		if i == 0 {
			storeID = p.StoreID
		} else if p.StoreID != storeID {
			return nil, 0, storeID, &ValidationError{Kind: KindInvalidReference, ProductID: item.ProductID, Message: "all products in an order must belong to the same store"}
		}

		if p.Stock < item.Quantity {
			return nil, 0, storeID, &ValidationError{Kind: KindInsufficientStock, ProductID: item.ProductID, Message: fmt.Sprintf("requested %d, %d in stock", item.Quantity, p.Stock)}
		}

		// A supplied color must always be a member of the product's color
		// set; a supplied size is only checked when the product declares a
		// size domain at all.
		color, ok := matchOption(item.Color, p.Colors, false)
		if !ok {
			return nil, 0, storeID, &ValidationError{Kind: KindInvalidOption, ProductID: item.ProductID, Message: fmt.Sprintf("color %q is not offered", item.Color)}
		}

		size, ok := matchOption(item.Size, sizeDomain(p), true)
		if !ok {
			return nil, 0, storeID, &ValidationError{Kind: KindInvalidOption, ProductID: item.ProductID, Message: fmt.Sprintf("size %q is not offered", item.Size)}
		}

		expected := p.Price * float64(item.Quantity)
		if item.Subtotal != nil && math.Abs(*item.Subtotal-expected) > priceTolerance {
			return nil, 0, storeID, &ValidationError{Kind: KindPriceMismatch, ProductID: item.ProductID, Message: fmt.Sprintf("subtotal %.2f does not match price %.2f × %d", *item.Subtotal, p.Price, item.Quantity)}
		}

		imageURL := ""
		if len(p.Images) > 0 {
			imageURL = p.Images[0].URL
		}
		lines = append(lines, LineItem{
			ProductID: p.ID,
			Title:     p.Title,
			Supplier:  p.Supplier,
			UnitPrice: p.Price,
			Quantity:  item.Quantity,
			Subtotal:  expected,
			Color:     color,
			Size:      size,
			ImageURL:  imageURL,
		})
		total += expected
	}

	return lines, total, storeID, nil
}

// sizeDomain picks the applicable size domain: apparel sizes when declared,
// otherwise shoe sizes. A product declares at most one of the two.
func sizeDomain(p *product.Product) []string {
	if len(p.Sizes) > 0 {
		return p.Sizes
	}
	return p.ShoeSizes
}

// matchOption matches a requested option against the product's domain,
// ignoring case and surrounding whitespace, and returns the domain's canonical
// spelling. An empty request always passes. When passThroughEmptyDomain is
// set, a request against a product with no declared domain passes unchanged;
// otherwise it is rejected.
func matchOption(requested string, domain []string, passThroughEmptyDomain bool) (string, bool) {
	requested = strings.TrimSpace(requested)
	if requested == "" {
		return "", true
	}
	if len(domain) == 0 {
		if passThroughEmptyDomain {
			return requested, true
		}
		return "", false
	}
	for _, opt := range domain {
		if strings.EqualFold(requested, opt) {
			return opt, true
		}
	}
	return "", false
}
