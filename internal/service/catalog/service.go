package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"soldout-pos/internal/domain"
)

type productRepo interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetByName(ctx context.Context, name string) (*domain.Product, error)
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	Update(ctx context.Context, p domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

// Service owns product and category records, including the
// variant/attribute sub-model. All validation happens before any
// mutation reaches storage.
type Service struct {
	repo productRepo
}

func New(repo productRepo) *Service {
	return &Service{repo: repo}
}

// AttributeInput is one attribute dimension as entered by the operator:
// a key plus its value set as space-delimited text.
type AttributeInput struct {
	Key    string `json:"key"`
	Values string `json:"values"`
}

// ProductInput carries a product create or edit. When Attributes is
// non-empty the variant list is regenerated from it and Stock is derived;
// otherwise Stock is the product's sole counter.
type ProductInput struct {
	Name        string           `json:"name"`
	Price       decimal.Decimal  `json:"price"`
	Description string           `json:"description"`
	CategoryID  *string          `json:"categoryId"`
	Attributes  []AttributeInput `json:"attributes"`
	Variants    []domain.Variant `json:"variants"`
	Stock       int              `json:"stock"`
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, in ProductInput) (*domain.Product, error) {
	p, err := s.build(ctx, "", in, nil)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, *p)
}

// Update re-derives the variant list when attributes are present, so an
// attribute edit invalidates stale variants while variants whose
// composite name survived keep their stock.
func (s *Service) Update(ctx context.Context, id string, in ProductInput) (*domain.Product, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p, err := s.build(ctx, id, in, existing.Variants)
	if err != nil {
		return nil, err
	}
	p.ID = id
	return s.repo.Update(ctx, *p)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// build validates the input and assembles the product to store.
func (s *Service) build(ctx context.Context, selfID string, in ProductInput, priorVariants []domain.Variant) (*domain.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, &domain.ValidationError{Field: "name", Reason: "required"}
	}
	if in.Price.IsNegative() {
		return nil, &domain.ValidationError{Field: "price", Reason: "must not be negative"}
	}

	// Name uniqueness is case-insensitive.
	if other, err := s.repo.GetByName(ctx, name); err == nil {
		if other.ID != selfID {
			return nil, &domain.ValidationError{Field: "name", Reason: "a product with this name exists"}
		}
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	attrs, err := ParseAttributes(in.Attributes)
	if err != nil {
		return nil, err
	}

	p := domain.Product{
		Name:        name,
		Price:       in.Price,
		Description: strings.TrimSpace(in.Description),
		CategoryID:  in.CategoryID,
	}

	if len(attrs) > 0 {
		// Stock carried over by name: the submitted variants first, the
		// stored ones as fallback for names the submission omitted.
		merged := append(append([]domain.Variant{}, priorVariants...), in.Variants...)
		variants, err := GenerateVariants(attrs, merged)
		if err != nil {
			return nil, err
		}
		for i := range variants {
			if variants[i].Stock < 0 {
				return nil, &domain.ValidationError{Field: "variants", Reason: "stock must not be negative"}
			}
		}
		p.Attributes = attrs
		p.Variants = variants
		p.Stock = domain.SumVariantStock(variants)
		return &p, nil
	}

	if in.Stock < 0 {
		return nil, &domain.ValidationError{Field: "stock", Reason: "must not be negative"}
	}
	p.Stock = in.Stock
	return &p, nil
}
