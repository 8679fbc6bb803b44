package checkout

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/shopspring/decimal"

	"soldout-pos/internal/domain"
)

type cartAggregator interface {
	Lines() []domain.CartLine
	Clear()
}

type productReader interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

type channelReader interface {
	GetByID(ctx context.Context, id string) (*domain.PaymentChannel, error)
	GetByName(ctx context.Context, name string) (*domain.PaymentChannel, error)
}

type orderCommitter interface {
	CreateCompleted(ctx context.Context, items []domain.OrderItem, paymentChannelID string, total decimal.Decimal) (*domain.Order, error)
}

// Service converts the current cart plus a payment selection into a
// committed order with a coordinated stock decrement. Stock validation is
// soft: a shortage is returned as data and the operator re-commits with an
// explicit override.
type Service struct {
	cart     cartAggregator
	products productReader
	channels channelReader
	orders   orderCommitter
	logger   *log.Logger
}

func New(cart cartAggregator, products productReader, channels channelReader, orders orderCommitter, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{cart: cart, products: products, channels: channels, orders: orders, logger: logger}
}

// Result carries either the committed order or the shortage report that
// stopped the commit.
type Result struct {
	Order    *domain.Order     `json:"order,omitempty"`
	Shortage []domain.Shortage `json:"shortage,omitempty"`
}

// Attempt validates the current cart against the selected channel without
// committing anything.
func (s *Service) Attempt(ctx context.Context, paymentChannelID string) (*Result, error) {
	lines, _, _, err := s.prepare(ctx, paymentChannelID)
	if err != nil {
		return nil, err
	}
	shortages, err := s.shortages(ctx, lines)
	if err != nil {
		return nil, err
	}
	return &Result{Shortage: shortages}, nil
}

// Commit runs the full checkout. Without override it stops short of the
// transaction when any line exceeds available stock and returns the
// shortage report; with override it commits regardless, allowing stock to
// go negative. On success the cart is cleared.
func (s *Service) Commit(ctx context.Context, paymentChannelID string, override bool) (*Result, error) {
	lines, channelID, total, err := s.prepare(ctx, paymentChannelID)
	if err != nil {
		return nil, err
	}

	if !override {
		shortages, err := s.shortages(ctx, lines)
		if err != nil {
			return nil, err
		}
		if len(shortages) > 0 {
			return &Result{Shortage: shortages}, nil
		}
	}

	items := make([]domain.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, domain.OrderItem{
			ProductID:   line.ProductID,
			VariantName: line.VariantName,
			Name:        line.Name,
			UnitPrice:   line.UnitPrice,
			Quantity:    line.Quantity,
			IsGift:      line.IsGift,
		})
	}

	order, err := s.orders.CreateCompleted(ctx, items, channelID, total)
	if err != nil {
		s.logger.Printf("checkout: commit failed: %v", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrCheckoutFailed, err)
	}

	s.cart.Clear()
	s.logger.Printf("checkout: order %s committed, total=%s", order.ID, total.String())
	return &Result{Order: order}, nil
}

// prepare resolves the effective payment channel and total for the current
// cart. When every line is a gift the whole-order gift channel takes over
// and the per-line flags are cleared; when the effective channel is the
// gift channel the total is zero regardless of line prices.
func (s *Service) prepare(ctx context.Context, paymentChannelID string) ([]domain.CartLine, string, decimal.Decimal, error) {
	lines := s.cart.Lines()
	if len(lines) == 0 {
		return nil, "", decimal.Zero, &domain.ValidationError{Field: "cart", Reason: "empty"}
	}

	allGift := true
	for _, line := range lines {
		if !line.IsGift {
			allGift = false
			break
		}
	}

	channelID := paymentChannelID
	if allGift {
		gift, err := s.channels.GetByName(ctx, domain.GiftChannelName)
		switch {
		case err == nil:
			channelID = gift.ID
		case errors.Is(err, domain.ErrNotFound):
			// Gift channel was never seeded; keep the operator's pick.
		default:
			return nil, "", decimal.Zero, err
		}
	}

	channel, err := s.channels.GetByID(ctx, channelID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", decimal.Zero, &domain.ValidationError{Field: "paymentChannelId", Reason: "unknown channel"}
		}
		return nil, "", decimal.Zero, err
	}

	if channel.Name == domain.GiftChannelName {
		for i := range lines {
			lines[i].IsGift = false
		}
		return lines, channelID, decimal.Zero, nil
	}

	total := decimal.Zero
	for _, line := range lines {
		if line.IsGift {
			continue
		}
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return lines, channelID, total, nil
}

// shortages resolves available stock per line: the variant counter when a
// variant is named, the product counter otherwise. A product that vanished
// since it was added to the cart is not a shortage; commit decides its
// fate.
func (s *Service) shortages(ctx context.Context, lines []domain.CartLine) ([]domain.Shortage, error) {
	var result []domain.Shortage
	for _, line := range lines {
		p, err := s.products.GetByID(ctx, line.ProductID)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		available := p.AvailableStock(line.VariantName)
		if line.Quantity > available {
			name := line.Name
			if line.VariantName != "" {
				name = line.Name + " " + line.VariantName
			}
			result = append(result, domain.Shortage{Name: name, Quantity: line.Quantity, Available: available})
		}
	}
	return result, nil
}
