package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// OrderItem is a cart line snapshot stripped of its cart key, frozen into
// the order at checkout.
type OrderItem struct {
	ProductID   string          `json:"productId"`
	VariantName string          `json:"variantName,omitempty"`
	Name        string          `json:"name"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Quantity    int             `json:"quantity"`
	IsGift      bool            `json:"isGift"`
}

// Order is immutable once written except for Status, which moves
// completed -> cancelled exactly once.
type Order struct {
	ID               string          `json:"id"`
	Items            []OrderItem     `json:"items"`
	PaymentChannelID string          `json:"paymentChannelId"`
	TotalAmount      decimal.Decimal `json:"totalAmount"`
	Status           string          `json:"status"`
	CreatedAt        time.Time       `json:"createdAt"`
}
