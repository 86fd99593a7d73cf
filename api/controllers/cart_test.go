package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/chocovilla/chocovilla-backend/internal/cart"
	"github.com/chocovilla/chocovilla-backend/internal/promo"
	pkgerrors "github.com/chocovilla/chocovilla-backend/pkg/errors"
	"github.com/chocovilla/chocovilla-backend/pkg/whatsapp"
)

type memoryCartStore struct {
	snapshots map[string]cart.Snapshot
}

func (m *memoryCartStore) Load(_ context.Context, token string) cart.Snapshot {
	return m.snapshots[token]
}

func (m *memoryCartStore) Save(_ context.Context, token string, snapshot cart.Snapshot) error {
	if m.snapshots == nil {
		m.snapshots = map[string]cart.Snapshot{}
	}
	m.snapshots[token] = snapshot
	return nil
}

func (m *memoryCartStore) Delete(_ context.Context, token string) error {
	delete(m.snapshots, token)
	return nil
}

type alwaysValidPromos struct{}

func (alwaysValidPromos) Validate(context.Context, string, float64) promo.Result {
	return promo.Result{
		Valid:     true,
		Discount:  50,
		PromoCode: &promo.PromoCode{Code: "SAVE10", DiscountPercent: 10},
	}
}

func newCartService(t *testing.T) cart.Service {
	t.Helper()
	svc, err := cart.NewService(&memoryCartStore{}, alwaysValidPromos{}, whatsapp.NewComposer("919825947680"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return svc
}

func decodeCartView(t *testing.T, rec *httptest.ResponseRecorder) cart.View {
	t.Helper()
	var envelope struct {
		Data cart.View `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return envelope.Data
}

func TestCartFetchMintsToken(t *testing.T) {
	t.Parallel()

	svc := newCartService(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	rec := httptest.NewRecorder()
	CartFetch(svc, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Header().Get("X-Cart-Token") == "" {
		t.Fatal("fetch without a token must mint and echo one")
	}

	view := decodeCartView(t, rec)
	if view.Items == nil || len(view.Items) != 0 {
		t.Fatalf("fresh cart items = %v, want empty slice", view.Items)
	}
}

func TestCartFetchEchoesExistingToken(t *testing.T) {
	t.Parallel()

	svc := newCartService(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("X-Cart-Token", "existing-token")
	rec := httptest.NewRecorder()
	CartFetch(svc, nil).ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Cart-Token"); got != "existing-token" {
		t.Fatalf("token = %q, want existing-token", got)
	}
}

func TestCartAddItemRoundTrip(t *testing.T) {
	t.Parallel()

	svc := newCartService(t)
	body := `{"id":"choc-1","name":"Dark Truffle","ourPrice":499}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body))
	req.Header.Set("X-Cart-Token", "tok")
	rec := httptest.NewRecorder()
	CartAddItem(svc, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	view := decodeCartView(t, rec)
	if len(view.Items) != 1 || view.Items[0].Quantity != 1 {
		t.Fatalf("view = %+v", view)
	}
	if view.Subtotal != 499 {
		t.Fatalf("subtotal = %v, want 499", view.Subtotal)
	}
}

func TestCartAddItemRejectsMissingFields(t *testing.T) {
	t.Parallel()

	svc := newCartService(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"ourPrice":499}`))
	rec := httptest.NewRecorder()
	CartAddItem(svc, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Error.Code != string(pkgerrors.CodeValidation) {
		t.Fatalf("error code = %q", envelope.Error.Code)
	}
}

func TestCartUpdateQuantityRemovesAtZero(t *testing.T) {
	t.Parallel()

	svc := newCartService(t)
	ctx := context.Background()
	if _, err := svc.AddItem(ctx, "tok", cart.ItemInput{ID: "choc-1", Name: "Dark Truffle", OurPrice: 499}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/cart/items/choc-1", strings.NewReader(`{"quantity":0}`))
	req.Header.Set("X-Cart-Token", "tok")
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "choc-1")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	rec := httptest.NewRecorder()
	CartUpdateQuantity(svc, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	view := decodeCartView(t, rec)
	if len(view.Items) != 0 {
		t.Fatalf("items = %+v, want empty", view.Items)
	}
}

func TestCartCheckoutLinkEmptyCart(t *testing.T) {
	t.Parallel()

	svc := newCartService(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart/checkout-link", nil)
	rec := httptest.NewRecorder()
	CartCheckoutLink(svc, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
}

func TestCartCheckoutLink(t *testing.T) {
	t.Parallel()

	svc := newCartService(t)
	ctx := context.Background()
	if _, err := svc.AddItem(ctx, "tok", cart.ItemInput{ID: "choc-1", Name: "Dark Truffle", OurPrice: 499}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart/checkout-link", nil)
	req.Header.Set("X-Cart-Token", "tok")
	rec := httptest.NewRecorder()
	CartCheckoutLink(svc, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var envelope struct {
		Data map[string]string `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.HasPrefix(envelope.Data["url"], "https://wa.me/") {
		t.Fatalf("url = %q", envelope.Data["url"])
	}
}
