package order

import (
	"context"

	"soldout-pos/internal/domain"
)

type orderRepo interface {
	List(ctx context.Context) ([]domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	Cancel(ctx context.Context, id string) (*domain.Order, error)
}

// Service manages the order lifecycle. The only transition is
// completed -> cancelled; everything else is rejected.
type Service struct {
	repo orderRepo
}

func New(repo orderRepo) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]domain.Order, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Order, error) {
	return s.repo.GetByID(ctx, id)
}

// Cancel flips a completed order to cancelled and restores the stock its
// items consumed. A cancelled order cannot be cancelled again; the
// repository rejects the transition atomically with the restock, so the
// idempotency guard and the stock mutation cannot diverge.
func (s *Service) Cancel(ctx context.Context, id string) (*domain.Order, error) {
	return s.repo.Cancel(ctx, id)
}
