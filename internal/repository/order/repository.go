package order

import (
	"context"

	"github.com/shopspring/decimal"

	"soldout-pos/internal/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)

	// CreateCompleted inserts a completed order and decrements stock for
	// every item in one transaction. A missing product aborts the whole
	// transaction: no order row and no stock mutation survive.
	CreateCompleted(ctx context.Context, items []domain.OrderItem, paymentChannelID string, total decimal.Decimal) (*domain.Order, error)

	// Cancel flips a completed order to cancelled and adds every item's
	// quantity back to stock in one transaction, the exact inverse of
	// CreateCompleted. A non-completed order is rejected with
	// domain.ErrIllegalTransition.
	Cancel(ctx context.Context, id string) (*domain.Order, error)
}
