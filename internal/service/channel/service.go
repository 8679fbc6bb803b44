package channel

import (
	"context"
	"errors"
	"strings"

	"soldout-pos/internal/domain"
)

type channelRepo interface {
	List(ctx context.Context) ([]domain.PaymentChannel, error)
	GetByName(ctx context.Context, name string) (*domain.PaymentChannel, error)
	Create(ctx context.Context, name string) (*domain.PaymentChannel, error)
	Delete(ctx context.Context, id string) error
}

// Service manages payment channels. Operator-added channels can be
// removed; the seeded system channels cannot.
type Service struct {
	repo channelRepo
}

func New(repo channelRepo) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]domain.PaymentChannel, error) {
	return s.repo.List(ctx)
}

func (s *Service) Create(ctx context.Context, name string) (*domain.PaymentChannel, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &domain.ValidationError{Field: "name", Reason: "required"}
	}
	if _, err := s.repo.GetByName(ctx, name); err == nil {
		return nil, &domain.ValidationError{Field: "name", Reason: "a channel with this name exists"}
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	return s.repo.Create(ctx, name)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
