package category

import (
	"context"
	"errors"
	"strings"

	"soldout-pos/internal/domain"
)

type categoryRepo interface {
	List(ctx context.Context) ([]domain.Category, error)
	GetByName(ctx context.Context, name string) (*domain.Category, error)
	Create(ctx context.Context, name string) (*domain.Category, error)
	Delete(ctx context.Context, id string) error
}

// Service manages product categories. Bad input is rejected here so the
// unique index is never what the operator hears about.
type Service struct {
	repo categoryRepo
}

func New(repo categoryRepo) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]domain.Category, error) {
	return s.repo.List(ctx)
}

func (s *Service) Create(ctx context.Context, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &domain.ValidationError{Field: "name", Reason: "required"}
	}
	if _, err := s.repo.GetByName(ctx, name); err == nil {
		return nil, &domain.ValidationError{Field: "name", Reason: "a category with this name exists"}
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	return s.repo.Create(ctx, name)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
