package cart

import (
	"context"

	"soldout-pos/internal/domain"
)

// Repository persists the cart snapshot for crash recovery. Replace is
// replace-all: the previous snapshot is dropped and the new lines written
// in one transaction, mirroring how the in-memory aggregator always holds
// the whole cart.
type Repository interface {
	Load(ctx context.Context) ([]domain.CartLine, error)
	Replace(ctx context.Context, lines []domain.CartLine) error
}
