package order

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/mboloapp/mbolo-backend/internal/platform/storage"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Service defines the order workflow business logic.
type Service interface {
	// CreateOrder runs the full commit workflow: validate the cart and the
	// claimed payment method inside one transaction, upload the receipt at
	// receiptPath (if any), then insert the order and decrement stock
	// atomically. On any failure after the receipt was uploaded, the blob is
	// deleted again.
	CreateOrder(ctx context.Context, req CreateOrderRequest, receiptPath string) (*Order, error)

	// GetOrder retrieves an order by hex id.
	GetOrder(ctx context.Context, id string) (*Order, error)

	// ListUserOrders returns all orders placed by a user.
	ListUserOrders(ctx context.Context, userID string) ([]*Order, error)
}

type service struct {
	repo     Repository
	uploader storage.Uploader
}

// NewService creates a new order service.
func NewService(repo Repository, uploader storage.Uploader) Service {
	return &service{repo: repo, uploader: uploader}
}

const receiptFolder = "comprobantes"

func (s *service) CreateOrder(ctx context.Context, req CreateOrderRequest, receiptPath string) (*Order, error) {
	if err := checkShape(req); err != nil {
		return nil, err
	}
	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		return nil, &ValidationError{Kind: KindInvalidReference, Message: "userId is not well-formed"}
	}

	// receipt tracks the uploaded blob so a failed commit can undo it.
	var (
		receipt *storage.Asset
		created *Order
	)

	txErr := s.repo.WithTransaction(ctx, func(txCtx context.Context) error {
		if ok, err := s.repo.UserExists(txCtx, userID); err != nil {
			return fmt.Errorf("load user: %w", err)
		} else if !ok {
			return &ValidationError{Kind: KindNotFound, Message: "user does not exist"}
		}

		items, total, storeID, err := validateItems(txCtx, s.repo, req.Products)
		if err != nil {
			return err
		}
		if req.Total != nil && math.Abs(*req.Total-total) > priceTolerance {
			return &ValidationError{Kind: KindPriceMismatch, Message: fmt.Sprintf("total %.2f does not match the sum of subtotals %.2f", *req.Total, total)}
		}

		st, err := s.repo.FindStore(txCtx, storeID)
		if err != nil {
			return &ValidationError{Kind: KindNotFound, Message: "store does not exist"}
		}
		method, err := resolvePaymentMethod(st.PaymentMethods, req.PaymentMethod)
		if err != nil {
			return err
		}

		// The blob store is not transactional, so the upload deliberately
		// uses the request context rather than the session context.
		if receiptPath != "" {
			asset, err := s.uploader.Upload(ctx, receiptPath, receiptFolder)
			if err != nil {
				return fmt.Errorf("upload receipt: %w", err)
			}
			receipt = &asset
		}

		o := &Order{
			Number:        uuid.NewString(),
			UserID:        userID,
			Name:          req.Name,
			Contact:       req.Contact,
			Items:         items,
			Total:         total,
			PaymentMethod: method,
			Receipt:       receipt,
			PaymentStatus: PaymentPending,
			StoreID:       st.ID,
			CreatedAt:     time.Now().UTC(),
		}

		for _, item := range items {
			if err := s.repo.DecrementStock(txCtx, item.ProductID, item.Quantity); err != nil {
				if errors.Is(err, ErrStockConflict) {
					return &ValidationError{Kind: KindInsufficientStock, ProductID: item.ProductID.Hex(), Message: "stock changed while committing"}
				}
				return fmt.Errorf("decrement stock: %w", err)
			}
		}
		if err := s.repo.InsertOrder(txCtx, o); err != nil {
			return fmt.Errorf("insert order: %w", err)
		}
		if err := s.repo.AppendOrderToStore(txCtx, st.ID, o.ID); err != nil {
			return fmt.Errorf("link order to store: %w", err)
		}
		if err := s.repo.AppendOrderToUser(txCtx, userID, o.ID); err != nil {
			return fmt.Errorf("link order to user: %w", err)
		}

		created = o
		return nil
	})
	if txErr != nil {
		if receipt != nil {
			// Best effort: the order did not commit, so the receipt must not
			// survive. A failed delete is logged, never surfaced.
			if err := s.uploader.Delete(ctx, receipt.PublicID); err != nil {
				log.Printf("order create: compensation delete %s: %v", receipt.PublicID, err)
			}
		}
		return nil, txErr
	}
	return created, nil
}

func (s *service) GetOrder(ctx context.Context, id string) (*Order, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, &ValidationError{Kind: KindInvalidReference, Message: "order id is not well-formed"}
	}
	return s.repo.GetOrderByID(ctx, id)
}

func (s *service) ListUserOrders(ctx context.Context, userID string) ([]*Order, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, &ValidationError{Kind: KindInvalidReference, Message: "userId is not well-formed"}
	}
	return s.repo.ListOrdersByUser(ctx, uid)
}

// checkShape rejects structurally incomplete requests before any transaction
// is opened.
func checkShape(req CreateOrderRequest) error {
	switch {
	case req.UserID == "":
		return fmt.Errorf("userId is required")
	case req.Name == "":
		return fmt.Errorf("name is required")
	case req.Contact == "":
		return fmt.Errorf("contact is required")
	case len(req.Products) == 0:
		return fmt.Errorf("order must contain at least one product")
	case req.PaymentMethod.Name == "" || req.PaymentMethod.AccountNumber == "":
		return fmt.Errorf("paymentMethod name and accountNumber are required")
	}
	return nil
}
