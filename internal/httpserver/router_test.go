package httpserver

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"soldout-pos/internal/domain"
	"soldout-pos/internal/service/catalog"
	"soldout-pos/internal/service/checkout"
)

func logDiscard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

type stubCatalogSvc struct {
	products []domain.Product
	err      error
}

func (s *stubCatalogSvc) List(_ context.Context) ([]domain.Product, error) {
	return s.products, s.err
}

func (s *stubCatalogSvc) Get(_ context.Context, id string) (*domain.Product, error) {
	for i := range s.products {
		if s.products[i].ID == id {
			return &s.products[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubCatalogSvc) Create(_ context.Context, _ catalog.ProductInput) (*domain.Product, error) {
	return nil, s.err
}

func (s *stubCatalogSvc) Update(_ context.Context, _ string, _ catalog.ProductInput) (*domain.Product, error) {
	return nil, s.err
}

func (s *stubCatalogSvc) Delete(_ context.Context, _ string) error { return s.err }

type stubCategorySvc struct {
	createErr error
}

func (s *stubCategorySvc) List(_ context.Context) ([]domain.Category, error) { return nil, nil }
func (s *stubCategorySvc) Create(_ context.Context, name string) (*domain.Category, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &domain.Category{ID: "cat1", Name: name}, nil
}
func (s *stubCategorySvc) Delete(_ context.Context, _ string) error { return nil }

type stubChannelSvc struct {
	deleteErr error
}

func (s *stubChannelSvc) List(_ context.Context) ([]domain.PaymentChannel, error) { return nil, nil }
func (s *stubChannelSvc) Create(_ context.Context, name string) (*domain.PaymentChannel, error) {
	return &domain.PaymentChannel{ID: "ch1", Name: name}, nil
}
func (s *stubChannelSvc) Delete(_ context.Context, _ string) error { return s.deleteErr }

type stubCartSvc struct {
	lines   []domain.CartLine
	cleared bool
}

func (s *stubCartSvc) Lines() []domain.CartLine { return s.lines }

func (s *stubCartSvc) AddLine(product domain.Product, variant *domain.Variant) []domain.CartLine {
	key := domain.LineKey{ProductID: product.ID}
	if variant != nil {
		key.VariantName = variant.Name
	}
	s.lines = append(s.lines, domain.CartLine{LineKey: key, Name: product.Name, UnitPrice: product.Price, Quantity: 1})
	return s.lines
}

func (s *stubCartSvc) SetQuantity(key domain.LineKey, quantity int) []domain.CartLine {
	for i := range s.lines {
		if s.lines[i].LineKey == key {
			s.lines[i].Quantity = quantity
		}
	}
	return s.lines
}

func (s *stubCartSvc) ToggleGift(key domain.LineKey, isGift bool) []domain.CartLine {
	for i := range s.lines {
		if s.lines[i].LineKey == key {
			s.lines[i].IsGift = isGift
		}
	}
	return s.lines
}

func (s *stubCartSvc) Clear() { s.cleared = true }

type stubCheckoutSvc struct {
	result *checkout.Result
	err    error
}

func (s *stubCheckoutSvc) Attempt(_ context.Context, _ string) (*checkout.Result, error) {
	return s.result, s.err
}

func (s *stubCheckoutSvc) Commit(_ context.Context, _ string, _ bool) (*checkout.Result, error) {
	return s.result, s.err
}

type stubOrderSvc struct {
	orders    []domain.Order
	cancelErr error
}

func (s *stubOrderSvc) List(_ context.Context) ([]domain.Order, error) { return s.orders, nil }

func (s *stubOrderSvc) Get(_ context.Context, id string) (*domain.Order, error) {
	for i := range s.orders {
		if s.orders[i].ID == id {
			return &s.orders[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubOrderSvc) Cancel(_ context.Context, id string) (*domain.Order, error) {
	if s.cancelErr != nil {
		return nil, s.cancelErr
	}
	return &domain.Order{ID: id, Status: domain.OrderStatusCancelled}, nil
}

func testDeps() Deps {
	return Deps{
		CatalogSvc:  &stubCatalogSvc{},
		CategorySvc: &stubCategorySvc{},
		ChannelSvc:  &stubChannelSvc{},
		CartSvc:     &stubCartSvc{},
		CheckoutSvc: &stubCheckoutSvc{},
		OrderSvc:    &stubOrderSvc{},
	}
}

func serve(t *testing.T, deps Deps, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router, err := buildRouter(logDiscard(), nil, deps)
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	rec := serve(t, testDeps(), http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestBuildRouter_MissingDependency(t *testing.T) {
	deps := testDeps()
	deps.CheckoutSvc = nil
	if _, err := buildRouter(logDiscard(), nil, deps); err == nil {
		t.Fatal("expected error for missing dependency")
	}
}

func TestCheckoutHandler_Committed(t *testing.T) {
	deps := testDeps()
	deps.CheckoutSvc = &stubCheckoutSvc{
		result: &checkout.Result{Order: &domain.Order{ID: "o1", Status: domain.OrderStatusCompleted}},
	}
	rec := serve(t, deps, http.MethodPost, "/api/checkout", `{"paymentChannelId":"ch1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"id":"o1"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestCheckoutHandler_Shortage(t *testing.T) {
	deps := testDeps()
	deps.CheckoutSvc = &stubCheckoutSvc{
		result: &checkout.Result{Shortage: []domain.Shortage{{Name: "T恤", Quantity: 3, Available: 1}}},
	}
	rec := serve(t, deps, http.MethodPost, "/api/checkout", `{"paymentChannelId":"ch1"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"shortage"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestCheckoutHandler_EmptyCart(t *testing.T) {
	deps := testDeps()
	deps.CheckoutSvc = &stubCheckoutSvc{
		err: &domain.ValidationError{Field: "cart", Reason: "cart is empty"},
	}
	rec := serve(t, deps, http.MethodPost, "/api/checkout", `{"paymentChannelId":"ch1"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestCheckoutAttemptHandler_ReportsShortage(t *testing.T) {
	deps := testDeps()
	deps.CheckoutSvc = &stubCheckoutSvc{
		result: &checkout.Result{Shortage: []domain.Shortage{{Name: "T恤", Quantity: 3, Available: 1}}},
	}
	rec := serve(t, deps, http.MethodPost, "/api/checkout/attempt", `{"paymentChannelId":"ch1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"available":1`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestCheckoutAttemptHandler_CleanCart(t *testing.T) {
	deps := testDeps()
	deps.CheckoutSvc = &stubCheckoutSvc{result: &checkout.Result{}}
	rec := serve(t, deps, http.MethodPost, "/api/checkout/attempt", `{"paymentChannelId":"ch1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"shortage":[]`) {
		t.Fatalf("expected empty shortage list, got %s", rec.Body.String())
	}
}

func TestCheckoutHandler_TransactionFailure(t *testing.T) {
	deps := testDeps()
	deps.CheckoutSvc = &stubCheckoutSvc{
		err: fmt.Errorf("%w: tx aborted", domain.ErrCheckoutFailed),
	}
	rec := serve(t, deps, http.MethodPost, "/api/checkout", `{"paymentChannelId":"ch1"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "checkout transaction failed") {
		t.Fatalf("expected distinct checkout failure payload, got %s", rec.Body.String())
	}
}

func TestCancelOrderHandler_IllegalTransition(t *testing.T) {
	deps := testDeps()
	deps.OrderSvc = &stubOrderSvc{cancelErr: domain.ErrIllegalTransition}
	rec := serve(t, deps, http.MethodPost, "/api/orders/o1/cancel", "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"rejected"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestDeleteChannelHandler_Protected(t *testing.T) {
	deps := testDeps()
	deps.ChannelSvc = &stubChannelSvc{deleteErr: domain.ErrChannelProtected}
	rec := serve(t, deps, http.MethodDelete, "/api/channels/ch1", "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestCreateCategoryHandler_DuplicateName(t *testing.T) {
	deps := testDeps()
	deps.CategorySvc = &stubCategorySvc{
		createErr: &domain.ValidationError{Field: "name", Reason: "a category with this name exists"},
	}
	rec := serve(t, deps, http.MethodPost, "/api/categories", `{"name":"服装"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestAddCartLineHandler_UnknownVariant(t *testing.T) {
	deps := testDeps()
	deps.CatalogSvc = &stubCatalogSvc{products: []domain.Product{{
		ID:    "p1",
		Name:  "T恤",
		Price: decimal.NewFromInt(99),
		Variants: []domain.Variant{
			{Name: "尺码:S", Stock: 2},
		},
	}}}
	rec := serve(t, deps, http.MethodPost, "/api/cart/lines", `{"productId":"p1","variantName":"尺码:XL"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestAddCartLineHandler_MissingProduct(t *testing.T) {
	rec := serve(t, testDeps(), http.MethodPost, "/api/cart/lines", `{"productId":"nope"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestPreviewVariantsHandler(t *testing.T) {
	body := `{"attributes":[{"key":"颜色","values":"红 蓝"}]}`
	rec := serve(t, testDeps(), http.MethodPost, "/api/products/variants/preview", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "颜色:红") || !strings.Contains(rec.Body.String(), "颜色:蓝") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}
