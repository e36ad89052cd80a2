package order

import (
	"context"
	"errors"
	"testing"

	"github.com/mboloapp/mbolo-backend/internal/modules/product"
	"github.com/mboloapp/mbolo-backend/internal/modules/store"
	"github.com/mboloapp/mbolo-backend/internal/platform/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeRepo struct {
	products map[primitive.ObjectID]*product.Product
	store    *store.Store
	userOK   bool

	inserted     []*Order
	decrements   map[primitive.ObjectID]int
	storeOrders  []primitive.ObjectID
	userOrders   []primitive.ObjectID
	insertErr    error
	decrementErr error
}

func (f *fakeRepo) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (f *fakeRepo) FindProduct(_ context.Context, id primitive.ObjectID) (*product.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return p, nil
}

func (f *fakeRepo) DecrementStock(_ context.Context, id primitive.ObjectID, qty int) error {
	if f.decrementErr != nil {
		return f.decrementErr
	}
	if f.decrements == nil {
		f.decrements = map[primitive.ObjectID]int{}
	}
	f.decrements[id] += qty
	f.products[id].Stock -= qty
	return nil
}

func (f *fakeRepo) FindStore(_ context.Context, id primitive.ObjectID) (*store.Store, error) {
	if f.store == nil || f.store.ID != id {
		return nil, mongo.ErrNoDocuments
	}
	return f.store, nil
}

func (f *fakeRepo) UserExists(_ context.Context, _ primitive.ObjectID) (bool, error) {
	return f.userOK, nil
}

func (f *fakeRepo) InsertOrder(_ context.Context, o *Order) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	o.ID = primitive.NewObjectID()
	f.inserted = append(f.inserted, o)
	return nil
}

func (f *fakeRepo) AppendOrderToStore(_ context.Context, _, orderID primitive.ObjectID) error {
	f.storeOrders = append(f.storeOrders, orderID)
	return nil
}

func (f *fakeRepo) AppendOrderToUser(_ context.Context, _, orderID primitive.ObjectID) error {
	f.userOrders = append(f.userOrders, orderID)
	return nil
}

func (f *fakeRepo) GetOrderByID(_ context.Context, _ string) (*Order, error) {
	return nil, mongo.ErrNoDocuments
}

func (f *fakeRepo) ListOrdersByUser(_ context.Context, _ primitive.ObjectID) ([]*Order, error) {
	return nil, nil
}

type fakeUploader struct {
	uploads   []string
	deleted   []string
	uploadErr error
}

func (f *fakeUploader) Upload(_ context.Context, localPath, folder string) (storage.Asset, error) {
	if f.uploadErr != nil {
		return storage.Asset{}, f.uploadErr
	}
	f.uploads = append(f.uploads, localPath)
	return storage.Asset{URL: "https://cdn.example/" + folder + "/receipt.jpg", PublicID: folder + "/receipt-1"}, nil
}

func (f *fakeUploader) UploadRaw(ctx context.Context, localPath, folder string) (storage.Asset, error) {
	return f.Upload(ctx, localPath, folder)
}

func (f *fakeUploader) Update(_ context.Context, _, _, _ string) (storage.Asset, error) {
	return storage.Asset{}, nil
}

func (f *fakeUploader) Delete(_ context.Context, publicID string) error {
	f.deleted = append(f.deleted, publicID)
	return nil
}

func orderFixture() (*fakeRepo, CreateOrderRequest, *product.Product) {
	storeID := primitive.NewObjectID()
	p := testProduct(storeID)
	repo := &fakeRepo{
		products: map[primitive.ObjectID]*product.Product{p.ID: p},
		store: &store.Store{
			ID: storeID,
			PaymentMethods: []store.PaymentMethod{
				{Name: "BANGE", AccountNumber: "100200300"},
			},
		},
		userOK: true,
	}
	req := CreateOrderRequest{
		UserID:        primitive.NewObjectID().Hex(),
		Name:          "Maria Ondo",
		Contact:       "+240222111333",
		Products:      []RequestedItem{{ProductID: p.ID.Hex(), Quantity: 2, Color: "Rojo", Size: "M"}},
		PaymentMethod: ClaimedMethod{Name: "BANGE", AccountNumber: "100200300"},
	}
	return repo, req, p
}

func TestCreateOrderCommits(t *testing.T) {
	repo, req, p := orderFixture()
	up := &fakeUploader{}
	svc := NewService(repo, up)

	o, err := svc.CreateOrder(context.Background(), req, "/tmp/receipt.jpg")
	require.NoError(t, err)
	require.NotNil(t, o)

	assert.InDelta(t, 20.00, o.Total, 0.001)
	assert.NotEmpty(t, o.Number)
	assert.Equal(t, PaymentPending, o.PaymentStatus)
	assert.Equal(t, repo.store.ID, o.StoreID)
	assert.Equal(t, "BANGE", o.PaymentMethod.Name)
	require.NotNil(t, o.Receipt)
	assert.Equal(t, "comprobantes/receipt-1", o.Receipt.PublicID)

	assert.Equal(t, 3, p.Stock)
	assert.Equal(t, 2, repo.decrements[p.ID])
	require.Len(t, repo.inserted, 1)
	assert.Equal(t, []primitive.ObjectID{o.ID}, repo.storeOrders)
	assert.Equal(t, []primitive.ObjectID{o.ID}, repo.userOrders)
	assert.Empty(t, up.deleted)
}

func TestCreateOrderWithoutReceipt(t *testing.T) {
	repo, req, _ := orderFixture()
	up := &fakeUploader{}
	svc := NewService(repo, up)

	o, err := svc.CreateOrder(context.Background(), req, "")
	require.NoError(t, err)
	assert.Nil(t, o.Receipt)
	assert.Empty(t, up.uploads)
}

func TestCreateOrderShape(t *testing.T) {
	repo, req, _ := orderFixture()
	svc := NewService(repo, &fakeUploader{})

	for _, mutate := range []func(*CreateOrderRequest){
		func(r *CreateOrderRequest) { r.UserID = "" },
		func(r *CreateOrderRequest) { r.Name = "" },
		func(r *CreateOrderRequest) { r.Contact = "" },
		func(r *CreateOrderRequest) { r.Products = nil },
		func(r *CreateOrderRequest) { r.PaymentMethod.AccountNumber = "" },
	} {
		broken := req
		mutate(&broken)
		_, err := svc.CreateOrder(context.Background(), broken, "")
		require.Error(t, err)
	}
	assert.Empty(t, repo.inserted)
}

func TestCreateOrderMalformedUser(t *testing.T) {
	repo, req, _ := orderFixture()
	req.UserID = "zzz"
	_, err := NewService(repo, &fakeUploader{}).CreateOrder(context.Background(), req, "")
	ve, ok := AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, KindInvalidReference, ve.Kind)
}

func TestCreateOrderUnknownUser(t *testing.T) {
	repo, req, _ := orderFixture()
	repo.userOK = false
	_, err := NewService(repo, &fakeUploader{}).CreateOrder(context.Background(), req, "")
	ve, ok := AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, KindNotFound, ve.Kind)
}

func TestCreateOrderRejectsWholeCart(t *testing.T) {
	repo, req, p := orderFixture()
	req.Products = append(req.Products, RequestedItem{ProductID: primitive.NewObjectID().Hex(), Quantity: 1})
	up := &fakeUploader{}

	_, err := NewService(repo, up).CreateOrder(context.Background(), req, "/tmp/receipt.jpg")
	ve, ok := AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, KindNotFound, ve.Kind)

	// One bad line item leaves no trace: nothing uploaded, inserted or decremented.
	assert.Empty(t, up.uploads)
	assert.Empty(t, repo.inserted)
	assert.Empty(t, repo.decrements)
	assert.Equal(t, 5, p.Stock)
}

func TestCreateOrderTotalMismatch(t *testing.T) {
	repo, req, _ := orderFixture()
	wrong := 25.00
	req.Total = &wrong
	_, err := NewService(repo, &fakeUploader{}).CreateOrder(context.Background(), req, "")
	ve, ok := AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, KindPriceMismatch, ve.Kind)
}

func TestCreateOrderUnregisteredPaymentMethod(t *testing.T) {
	repo, req, _ := orderFixture()
	req.PaymentMethod = ClaimedMethod{Name: "EcoBank", AccountNumber: "999"}
	up := &fakeUploader{}

	_, err := NewService(repo, up).CreateOrder(context.Background(), req, "/tmp/receipt.jpg")
	ve, ok := AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, KindInvalidPaymentMethod, ve.Kind)
	assert.Empty(t, up.uploads, "the method is resolved before the receipt is uploaded")
	assert.Empty(t, repo.inserted)
}

func TestCreateOrderCompensatesReceiptOnCommitFailure(t *testing.T) {
	repo, req, _ := orderFixture()
	repo.insertErr = errors.New("write conflict")
	up := &fakeUploader{}

	_, err := NewService(repo, up).CreateOrder(context.Background(), req, "/tmp/receipt.jpg")
	require.Error(t, err)
	require.Len(t, up.uploads, 1)
	assert.Equal(t, []string{"comprobantes/receipt-1"}, up.deleted, "the orphaned receipt is deleted exactly once")
}

func TestCreateOrderConcurrentStockConflict(t *testing.T) {
	repo, req, _ := orderFixture()
	repo.decrementErr = ErrStockConflict
	up := &fakeUploader{}

	_, err := NewService(repo, up).CreateOrder(context.Background(), req, "/tmp/receipt.jpg")
	ve, ok := AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, KindInsufficientStock, ve.Kind)
	assert.Equal(t, []string{"comprobantes/receipt-1"}, up.deleted)
	assert.Empty(t, repo.inserted)
}

func TestCreateOrderUploadFailureAborts(t *testing.T) {
	repo, req, _ := orderFixture()
	up := &fakeUploader{uploadErr: storage.ErrFileTooLarge}

	_, err := NewService(repo, up).CreateOrder(context.Background(), req, "/tmp/receipt.jpg")
	require.ErrorIs(t, err, storage.ErrFileTooLarge)
	assert.Empty(t, repo.inserted)
	assert.Empty(t, up.deleted, "nothing was uploaded, nothing to compensate")
}

func TestGetOrderMalformedID(t *testing.T) {
	repo, _, _ := orderFixture()
	_, err := NewService(repo, &fakeUploader{}).GetOrder(context.Background(), "nope")
	ve, ok := AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, KindInvalidReference, ve.Kind)
}

func TestListUserOrdersMalformedID(t *testing.T) {
	repo, _, _ := orderFixture()
	_, err := NewService(repo, &fakeUploader{}).ListUserOrders(context.Background(), "bad")
	ve, ok := AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, KindInvalidReference, ve.Kind)
}
