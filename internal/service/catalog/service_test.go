package catalog

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"soldout-pos/internal/domain"
)

type fakeProductRepo struct {
	products map[string]domain.Product
	nextID   int
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[string]domain.Product{}}
}

func (f *fakeProductRepo) List(_ context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (f *fakeProductRepo) GetByName(_ context.Context, name string) (*domain.Product, error) {
	for _, p := range f.products {
		if strings.EqualFold(p.Name, name) {
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeProductRepo) Create(_ context.Context, p domain.Product) (*domain.Product, error) {
	f.nextID++
	p.ID = "p" + strconv.Itoa(f.nextID)
	f.products[p.ID] = p
	return &p, nil
}

func (f *fakeProductRepo) Update(_ context.Context, p domain.Product) (*domain.Product, error) {
	if _, ok := f.products[p.ID]; !ok {
		return nil, domain.ErrNotFound
	}
	f.products[p.ID] = p
	return &p, nil
}

func (f *fakeProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.products, id)
	return nil
}

func TestCreateSimpleProduct(t *testing.T) {
	svc := New(newFakeProductRepo())

	p, err := svc.Create(context.Background(), ProductInput{
		Name:  "T恤",
		Price: decimal.RequireFromString("99.00"),
		Stock: 10,
	})
	require.NoError(t, err)
	require.Equal(t, 10, p.Stock)
	require.Empty(t, p.Variants)
}

func TestCreateRejectsDuplicateNameCaseInsensitive(t *testing.T) {
	repo := newFakeProductRepo()
	svc := New(repo)

	_, err := svc.Create(context.Background(), ProductInput{Name: "Mug", Price: decimal.NewFromInt(10)})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), ProductInput{Name: "mug", Price: decimal.NewFromInt(10)})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, repo.products, 1)
}

func TestCreateRejectsNegativePriceAndStock(t *testing.T) {
	svc := New(newFakeProductRepo())
	var verr *domain.ValidationError

	_, err := svc.Create(context.Background(), ProductInput{Name: "X", Price: decimal.NewFromInt(-1)})
	require.ErrorAs(t, err, &verr)

	_, err = svc.Create(context.Background(), ProductInput{Name: "X", Price: decimal.NewFromInt(1), Stock: -2})
	require.ErrorAs(t, err, &verr)
}

func TestCreateWithAttributesDerivesVariantsAndStock(t *testing.T) {
	svc := New(newFakeProductRepo())

	p, err := svc.Create(context.Background(), ProductInput{
		Name:       "T恤",
		Price:      decimal.NewFromInt(99),
		Attributes: []AttributeInput{{Key: "尺码", Values: "S M"}},
		Variants: []domain.Variant{
			{Name: "尺码:S", Stock: 5},
			{Name: "尺码:M", Stock: 3},
		},
	})
	require.NoError(t, err)
	require.Len(t, p.Variants, 2)
	require.Equal(t, 8, p.Stock)
	require.Equal(t, domain.SumVariantStock(p.Variants), p.Stock)
}

func TestUpdateAttributeEditPreservesMatchingVariantStock(t *testing.T) {
	repo := newFakeProductRepo()
	svc := New(repo)

	created, err := svc.Create(context.Background(), ProductInput{
		Name:       "T恤",
		Price:      decimal.NewFromInt(99),
		Attributes: []AttributeInput{{Key: "尺码", Values: "S M"}},
		Variants: []domain.Variant{
			{Name: "尺码:S", Stock: 5},
			{Name: "尺码:M", Stock: 3},
		},
	})
	require.NoError(t, err)

	// Add a value: S and M keep their stock, L starts at zero.
	updated, err := svc.Update(context.Background(), created.ID, ProductInput{
		Name:       "T恤",
		Price:      decimal.NewFromInt(99),
		Attributes: []AttributeInput{{Key: "尺码", Values: "S M L"}},
	})
	require.NoError(t, err)
	require.Len(t, updated.Variants, 3)
	require.Equal(t, 5, updated.FindVariant("尺码:S").Stock)
	require.Equal(t, 3, updated.FindVariant("尺码:M").Stock)
	require.Equal(t, 0, updated.FindVariant("尺码:L").Stock)
	require.Equal(t, 8, updated.Stock)
}

func TestUpdateSubmittedStockWinsOverStored(t *testing.T) {
	repo := newFakeProductRepo()
	svc := New(repo)

	created, err := svc.Create(context.Background(), ProductInput{
		Name:       "T恤",
		Price:      decimal.NewFromInt(99),
		Attributes: []AttributeInput{{Key: "尺码", Values: "S"}},
		Variants:   []domain.Variant{{Name: "尺码:S", Stock: 5}},
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, ProductInput{
		Name:       "T恤",
		Price:      decimal.NewFromInt(99),
		Attributes: []AttributeInput{{Key: "尺码", Values: "S"}},
		Variants:   []domain.Variant{{Name: "尺码:S", Stock: 9}},
	})
	require.NoError(t, err)
	require.Equal(t, 9, updated.FindVariant("尺码:S").Stock)
	require.Equal(t, 9, updated.Stock)
}

func TestUpdateKeepingOwnNameIsNotDuplicate(t *testing.T) {
	repo := newFakeProductRepo()
	svc := New(repo)

	created, err := svc.Create(context.Background(), ProductInput{Name: "Mug", Price: decimal.NewFromInt(10), Stock: 1})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), created.ID, ProductInput{Name: "MUG", Price: decimal.NewFromInt(12), Stock: 1})
	require.NoError(t, err)
}
