package order

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a rejected order request.
type Kind string

const (
	KindInvalidReference     Kind = "InvalidReference"
	KindInvalidQuantity      Kind = "InvalidQuantity"
	KindNotFound             Kind = "NotFound"
	KindInsufficientStock    Kind = "InsufficientStock"
	KindInvalidOption        Kind = "InvalidOption"
	KindPriceMismatch        Kind = "PriceMismatch"
	KindInvalidPaymentMethod Kind = "InvalidPaymentMethod"
)

// ValidationError is the tagged rejection produced by the inventory validator,
// the payment method resolver and the committer. One failing line item fails
// the whole order.
type ValidationError struct {
	Kind      Kind
	ProductID string
	Message   string
}

func (e *ValidationError) Error() string {
	if e.ProductID != "" {
		return fmt.Sprintf("%s: product %s: %s", e.Kind, e.ProductID, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// HTTPStatus maps the rejection to its response code.
func (e *ValidationError) HTTPStatus() int {
	if e.Kind == KindNotFound {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}

// AsValidation unwraps err into a ValidationError, if it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// ErrStockConflict is returned by the repository when a conditional stock
// decrement matched no document: either a concurrent order took the remaining
// units after validation, or the product vanished. The committer maps it to
// KindInsufficientStock.
var ErrStockConflict = errors.New("stock changed concurrently")
