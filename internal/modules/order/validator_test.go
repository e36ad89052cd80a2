package order

import (
	"context"
	"testing"

	"github.com/mboloapp/mbolo-backend/internal/modules/product"
	"github.com/mboloapp/mbolo-backend/internal/platform/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeFinder struct {
	products map[primitive.ObjectID]*product.Product
}

func (f *fakeFinder) FindProduct(_ context.Context, id primitive.ObjectID) (*product.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return p, nil
}

func newFinder(products ...*product.Product) *fakeFinder {
	f := &fakeFinder{products: map[primitive.ObjectID]*product.Product{}}
	for _, p := range products {
		f.products[p.ID] = p
	}
	return f
}

func testProduct(storeID primitive.ObjectID) *product.Product {
	return &product.Product{
		ID:       primitive.NewObjectID(),
		Title:    "Camiseta basica",
		Supplier: "Textiles GE",
		Price:    10.00,
		Stock:    5,
		StoreID:  storeID,
		Colors:   []string{"Rojo", "Azul"},
		Sizes:    []string{"S", "M", "L"},
		Images:   []storage.Asset{{URL: "https://cdn.example/camiseta.jpg", PublicID: "productos_mbolo/abc"}},
	}
}

func TestValidateItemsHappyPath(t *testing.T) {
	storeID := primitive.NewObjectID()
	p1 := testProduct(storeID)
	p2 := testProduct(storeID)
	p2.Price = 4.50
	p2.Colors = nil
	p2.Sizes = nil

	items := []RequestedItem{
		{ProductID: p1.ID.Hex(), Quantity: 2, Color: "rojo ", Size: "m"},
		{ProductID: p2.ID.Hex(), Quantity: 1},
	}

	lines, total, gotStore, err := validateItems(context.Background(), newFinder(p1, p2), items)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, storeID, gotStore)
	assert.InDelta(t, 24.50, total, 0.001)

	assert.Equal(t, "Rojo", lines[0].Color, "canonical spelling from the product's domain")
	assert.Equal(t, "M", lines[0].Size)
	assert.Equal(t, 20.00, lines[0].Subtotal)
	assert.Equal(t, p1.Title, lines[0].Title)
	assert.Equal(t, p1.Supplier, lines[0].Supplier)
	assert.Equal(t, "https://cdn.example/camiseta.jpg", lines[0].ImageURL)
}

func TestValidateItemsMalformedID(t *testing.T) {
	_, _, _, err := validateItems(context.Background(), newFinder(), []RequestedItem{
		{ProductID: "not-an-oid", Quantity: 1},
	})
	ve, ok := AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, KindInvalidReference, ve.Kind)
	assert.Equal(t, "not-an-oid", ve.ProductID)
}

func TestValidateItemsQuantity(t *testing.T) {
	p := testProduct(primitive.NewObjectID())
	for _, qty := range []int{0, -3} {
		_, _, _, err := validateItems(context.Background(), newFinder(p), []RequestedItem{
			{ProductID: p.ID.Hex(), Quantity: qty},
		})
		ve, ok := AsValidation(err)
		require.True(t, ok)
		assert.Equal(t, KindInvalidQuantity, ve.Kind)
	}
}

func TestValidateItemsUnknownProduct(t *testing.T) {
	missing := primitive.NewObjectID()
	_, _, _, err := validateItems(context.Background(), newFinder(), []RequestedItem{
		{ProductID: missing.Hex(), Quantity: 1},
	})
	ve, ok := AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, KindNotFound, ve.Kind)
	assert.Equal(t, missing.Hex(), ve.ProductID)
}

func TestValidateItemsCrossStoreCart(t *testing.T) {
	p1 := testProduct(primitive.NewObjectID())
	p2 := testProduct(primitive.NewObjectID())
	_, _, _, err := validateItems(context.Background(), newFinder(p1, p2), []RequestedItem{
		{ProductID: p1.ID.Hex(), Quantity: 1},
		{ProductID: p2.ID.Hex(), Quantity: 1},
	})
	ve, ok := AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, KindInvalidReference, ve.Kind)
	assert.Equal(t, p2.ID.Hex(), ve.ProductID)
}

func TestValidateItemsInsufficientStock(t *testing.T) {
	p := testProduct(primitive.NewObjectID())
	p.Stock = 1
	_, _, _, err := validateItems(context.Background(), newFinder(p), []RequestedItem{
		{ProductID: p.ID.Hex(), Quantity: 2, Color: "Rojo"},
	})
	ve, ok := AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, KindInsufficientStock, ve.Kind)
}

func TestValidateItemsColorMustBeOffered(t *testing.T) {
	p := testProduct(primitive.NewObjectID())

	_, _, _, err := validateItems(context.Background(), newFinder(p), []RequestedItem{
		{ProductID: p.ID.Hex(), Quantity: 1, Color: "Verde"},
	})
	ve, ok := AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, KindInvalidOption, ve.Kind)

	// A color claim against a product with no color set at all is rejected too.
	p.Colors = nil
	_, _, _, err = validateItems(context.Background(), newFinder(p), []RequestedItem{
		{ProductID: p.ID.Hex(), Quantity: 1, Color: "Rojo"},
	})
	ve, ok = AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, KindInvalidOption, ve.Kind)
}

func TestValidateItemsSizeDomains(t *testing.T) {
	// Declared apparel sizes bind the size claim.
	p := testProduct(primitive.NewObjectID())
	_, _, _, err := validateItems(context.Background(), newFinder(p), []RequestedItem{
		{ProductID: p.ID.Hex(), Quantity: 1, Size: "XXL"},
	})
	ve, ok := AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, KindInvalidOption, ve.Kind)

	// Footwear products validate against shoe sizes instead.
	shoe := testProduct(primitive.NewObjectID())
	shoe.Sizes = nil
	shoe.ShoeSizes = []string{"40", "41", "42"}
	lines, _, _, err := validateItems(context.Background(), newFinder(shoe), []RequestedItem{
		{ProductID: shoe.ID.Hex(), Quantity: 1, Size: "41"},
	})
	require.NoError(t, err)
	assert.Equal(t, "41", lines[0].Size)

	// With no size domain declared at all the claim passes through unchanged.
	free := testProduct(primitive.NewObjectID())
	free.Sizes = nil
	lines, _, _, err = validateItems(context.Background(), newFinder(free), []RequestedItem{
		{ProductID: free.ID.Hex(), Quantity: 1, Size: "unica"},
	})
	require.NoError(t, err)
	assert.Equal(t, "unica", lines[0].Size)
}

func TestValidateItemsSubtotalTolerance(t *testing.T) {
	p := testProduct(primitive.NewObjectID())

	within := 20.005
	_, _, _, err := validateItems(context.Background(), newFinder(p), []RequestedItem{
		{ProductID: p.ID.Hex(), Quantity: 2, Subtotal: &within},
	})
	require.NoError(t, err)

	off := 21.00
	_, _, _, err = validateItems(context.Background(), newFinder(p), []RequestedItem{
		{ProductID: p.ID.Hex(), Quantity: 2, Subtotal: &off},
	})
	ve, ok := AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, KindPriceMismatch, ve.Kind)
}

func TestValidateItemsFirstFailureWins(t *testing.T) {
	p := testProduct(primitive.NewObjectID())
	_, _, _, err := validateItems(context.Background(), newFinder(p), []RequestedItem{
		{ProductID: p.ID.Hex(), Quantity: 0},
		{ProductID: primitive.NewObjectID().Hex(), Quantity: 1},
	})
	ve, ok := AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, KindInvalidQuantity, ve.Kind, "items are checked in input order")
	assert.Equal(t, p.ID.Hex(), ve.ProductID)
}
