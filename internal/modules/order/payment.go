package order

import (
	"github.com/mboloapp/mbolo-backend/internal/modules/store"
)

// resolvePaymentMethod finds the registered method matching the claim on both
// name and account number, and returns it as the snapshot to embed on the
// order. Name alone never matches: a store may register the same method name
// twice with different accounts, and picking by name would be ambiguous.
func resolvePaymentMethod(registered []store.PaymentMethod, claimed ClaimedMethod) (PaymentMethodSnapshot, error) {
	for _, m := range registered {
		if m.Name == claimed.Name && m.AccountNumber == claimed.AccountNumber {
			snapshot := PaymentMethodSnapshot{
				Name:          m.Name,
				AccountNumber: m.AccountNumber,
			}
			if m.Image != nil {
				img := *m.Image
				snapshot.Image = &img
			}
			return snapshot, nil
		}
	}
	return PaymentMethodSnapshot{}, &ValidationError{
		Kind:    KindInvalidPaymentMethod,
		Message: "payment method is not registered on this store",
	}
}
