package order

import (
	"testing"

	"github.com/mboloapp/mbolo-backend/internal/modules/store"
	"github.com/mboloapp/mbolo-backend/internal/platform/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePaymentMethod(t *testing.T) {
	registered := []store.PaymentMethod{
		{Name: "BANGE", AccountNumber: "100200300", Image: &storage.Asset{URL: "https://cdn.example/bange.png", PublicID: "metodos/bange"}},
		{Name: "EcoBank", AccountNumber: "555"},
	}

	snap, err := resolvePaymentMethod(registered, ClaimedMethod{Name: "BANGE", AccountNumber: "100200300"})
	require.NoError(t, err)
	assert.Equal(t, "BANGE", snap.Name)
	assert.Equal(t, "100200300", snap.AccountNumber)
	require.NotNil(t, snap.Image)
	assert.Equal(t, "metodos/bange", snap.Image.PublicID)
}

func TestResolvePaymentMethodRequiresBothFields(t *testing.T) {
	registered := []store.PaymentMethod{{Name: "EcoBank", AccountNumber: "555"}}

	_, err := resolvePaymentMethod(registered, ClaimedMethod{Name: "EcoBank", AccountNumber: "999"})
	ve, ok := AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, KindInvalidPaymentMethod, ve.Kind)

	_, err = resolvePaymentMethod(registered, ClaimedMethod{Name: "BANGE", AccountNumber: "555"})
	_, ok = AsValidation(err)
	require.True(t, ok)
}

func TestResolvePaymentMethodSameNameDifferentAccounts(t *testing.T) {
	registered := []store.PaymentMethod{
		{Name: "Muni", AccountNumber: "111"},
		{Name: "Muni", AccountNumber: "222"},
	}
	snap, err := resolvePaymentMethod(registered, ClaimedMethod{Name: "Muni", AccountNumber: "222"})
	require.NoError(t, err)
	assert.Equal(t, "222", snap.AccountNumber)
}

func TestResolvePaymentMethodEmptyRegistry(t *testing.T) {
	_, err := resolvePaymentMethod(nil, ClaimedMethod{Name: "BANGE", AccountNumber: "1"})
	ve, ok := AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, KindInvalidPaymentMethod, ve.Kind)
}

func TestResolvePaymentMethodSnapshotIsACopy(t *testing.T) {
	img := &storage.Asset{URL: "u", PublicID: "p"}
	registered := []store.PaymentMethod{{Name: "BANGE", AccountNumber: "1", Image: img}}

	snap, err := resolvePaymentMethod(registered, ClaimedMethod{Name: "BANGE", AccountNumber: "1"})
	require.NoError(t, err)

	img.PublicID = "changed"
	assert.Equal(t, "p", snap.Image.PublicID, "later registry edits must not reach the snapshot")
}
