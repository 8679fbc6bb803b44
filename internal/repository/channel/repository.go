package channel

import (
	"context"

	"soldout-pos/internal/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.PaymentChannel, error)
	GetByID(ctx context.Context, id string) (*domain.PaymentChannel, error)
	GetByName(ctx context.Context, name string) (*domain.PaymentChannel, error)
	Create(ctx context.Context, name string) (*domain.PaymentChannel, error)
	Delete(ctx context.Context, id string) error
}
