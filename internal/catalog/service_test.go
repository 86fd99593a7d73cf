package catalog

import (
	"context"
	"errors"
	"fmt"
	"testing"

	pkgerrors "github.com/chocovilla/chocovilla-backend/pkg/errors"
	"github.com/chocovilla/chocovilla-backend/pkg/sheets"
)

// stubReader serves canned rows per range and rejects every other range the
// way the upstream does when the sheet is narrower than asked for.
type stubReader struct {
	tables map[string][][]string
	err    error
	calls  []string
}

func (s *stubReader) ReadRange(_ context.Context, sheetRange string) ([][]string, error) {
	s.calls = append(s.calls, sheetRange)
	if s.err != nil {
		return nil, s.err
	}
	rows, ok := s.tables[sheetRange]
	if !ok {
		return nil, fmt.Errorf("%w: %s", sheets.ErrBadRange, sheetRange)
	}
	return rows, nil
}

func fullRow(id, name, price, order, show string) []string {
	return []string{id, name, "desc " + name, "599", price, "", "Bars", "no", "no", "yes", order, show}
}

func TestListProductsFullSchema(t *testing.T) {
	t.Parallel()

	reader := &stubReader{tables: map[string][][]string{
		"Products!A:L": {
			{"id", "name", "description", "market_price", "our_price", "image", "category", "best_seller", "limited_stock", "in_stock", "display_order", "show_on_home"},
			fullRow("choc-2", "Hazelnut Bar", "249", "2", "no"),
			fullRow("choc-1", "Dark Truffle", "499", "1", "yes"),
			fullRow("choc-3", "Mint Slab", "199", "", "yes"),
		},
	}}
	svc, err := NewService(reader, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	products, err := svc.ListProducts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 3 {
		t.Fatalf("products = %d, want 3", len(products))
	}

	// Sorted by display order; blank order sinks to the default 999.
	if products[0].ID != "choc-1" || products[1].ID != "choc-2" || products[2].ID != "choc-3" {
		t.Fatalf("unexpected order: %s, %s, %s", products[0].ID, products[1].ID, products[2].ID)
	}
	if products[2].DisplayOrder != 999 {
		t.Fatalf("blank display order = %d, want 999", products[2].DisplayOrder)
	}
	if !products[0].InStock || !products[0].ShowOnHome {
		t.Fatalf("full-schema flags not mapped: %+v", products[0])
	}
}

func TestListProductsStableSortOnTies(t *testing.T) {
	t.Parallel()

	reader := &stubReader{tables: map[string][][]string{
		"Products!A:L": {
			{"header"},
			fullRow("choc-b", "Almond Bark", "299", "7", "no"),
			fullRow("choc-a", "Dark Truffle", "499", "5", "no"),
			fullRow("choc-c", "Mint Slab", "199", "7", "no"),
			fullRow("choc-d", "Hazelnut Bar", "249", "7", "no"),
		},
	}}
	svc, err := NewService(reader, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	products, err := svc.ListProducts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Equal display orders keep their sheet order behind the lower one.
	want := []string{"choc-a", "choc-b", "choc-c", "choc-d"}
	if len(products) != len(want) {
		t.Fatalf("products = %d, want %d", len(products), len(want))
	}
	for i, id := range want {
		if products[i].ID != id {
			t.Fatalf("position %d = %s, want %s", i, products[i].ID, id)
		}
	}
}

func TestListProductsRangeFallback(t *testing.T) {
	t.Parallel()

	reader := &stubReader{tables: map[string][][]string{
		"Products!A:I": {
			{"id", "name", "description", "market_price", "our_price", "image", "category", "best_seller", "in_stock"},
			{"choc-1", "Dark Truffle", "", "599", "499", "", "Bars", "yes", "yes"},
		},
	}}
	svc, err := NewService(reader, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	products, err := svc.ListProducts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("products = %d, want 1", len(products))
	}

	want := []string{"Products!A:L", "Products!A:K", "Products!A:J", "Products!A:I"}
	if len(reader.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", reader.calls, want)
	}
	for i := range want {
		if reader.calls[i] != want[i] {
			t.Fatalf("calls = %v, want %v", reader.calls, want)
		}
	}

	// Legacy column 8 is in_stock, and the unsent flags keep their defaults.
	p := products[0]
	if !p.InStock || p.LimitedStock || p.ShowOnHome {
		t.Fatalf("legacy flags mis-mapped: %+v", p)
	}
	if p.DisplayOrder != 999 {
		t.Fatalf("display order = %d, want 999", p.DisplayOrder)
	}
}

func TestListProductsTransportErrorStopsProbe(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("connection refused")
	reader := &stubReader{err: wantErr}
	svc, err := NewService(reader, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = svc.ListProducts(context.Background())
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if len(reader.calls) != 1 {
		t.Fatalf("probe continued past a transport error: %v", reader.calls)
	}
}

func TestListProductsSkipsInvalidRows(t *testing.T) {
	t.Parallel()

	reader := &stubReader{tables: map[string][][]string{
		"Products!A:L": {
			{"id", "name", "description", "market_price", "our_price"},
			{"", "No ID", "", "", "100"},
			{"choc-1", "", "", "", "100"},
			{"choc-2", "Bad Price", "", "", "not-a-number"},
			{"choc-3", "Kept", "", "", "100"},
		},
	}}
	svc, err := NewService(reader, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	products, err := svc.ListProducts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 1 || products[0].ID != "choc-3" {
		t.Fatalf("products = %+v, want only choc-3", products)
	}
}

func TestSearchProducts(t *testing.T) {
	t.Parallel()

	reader := &stubReader{tables: map[string][][]string{
		"Products!A:L": {
			{"header"},
			{"choc-1", "Dark Truffle", "rich ganache", "", "499", "", "Truffles", "no", "no", "yes", "1", "no"},
			{"choc-2", "Hazelnut Bar", "roasted hazelnut", "", "249", "", "Bars", "no", "no", "yes", "2", "no"},
			{"choc-3", "Milk Bar", "classic milk", "", "199", "", "Bars", "no", "no", "yes", "3", "no"},
		},
	}}
	svc, err := NewService(reader, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := svc.SearchProducts(context.Background(), "TRUFFLE", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "choc-1" {
		t.Fatalf("query match = %+v, want choc-1", got)
	}

	got, err = svc.SearchProducts(context.Background(), "", "Bars")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("category match = %d, want 2", len(got))
	}

	got, err = svc.SearchProducts(context.Background(), "hazelnut", "Bars")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "choc-2" {
		t.Fatalf("combined match = %+v, want choc-2", got)
	}
}

func TestFeaturedProductsCapped(t *testing.T) {
	t.Parallel()

	rows := [][]string{{"header"}}
	for i := 1; i <= 5; i++ {
		rows = append(rows, fullRow(fmt.Sprintf("choc-%d", i), fmt.Sprintf("Product %d", i), "100", fmt.Sprint(i), "yes"))
	}
	reader := &stubReader{tables: map[string][][]string{"Products!A:L": rows}}
	svc, err := NewService(reader, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	featured, err := svc.FeaturedProducts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(featured) != 3 {
		t.Fatalf("featured = %d, want 3", len(featured))
	}
	if featured[0].ID != "choc-1" || featured[2].ID != "choc-3" {
		t.Fatalf("featured must follow display order: %+v", featured)
	}
}

func TestCategories(t *testing.T) {
	t.Parallel()

	reader := &stubReader{tables: map[string][][]string{
		"Products!A:L": {
			{"header"},
			{"choc-1", "Dark Truffle", "", "", "499", "", "Truffles"},
			{"choc-2", "Hazelnut Bar", "", "", "249", "", "Bars"},
			{"choc-3", "Milk Bar", "", "", "199", "", "Bars"},
			{"choc-4", "Mystery", "", "", "99"},
		},
	}}
	svc, err := NewService(reader, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	categories, err := svc.Categories(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"Bars", "Truffles", "Uncategorized"}
	if len(categories) != len(want) {
		t.Fatalf("categories = %v, want %v", categories, want)
	}
	for i := range want {
		if categories[i] != want[i] {
			t.Fatalf("categories = %v, want %v", categories, want)
		}
	}
}

func TestGetProduct(t *testing.T) {
	t.Parallel()

	reader := &stubReader{tables: map[string][][]string{
		"Products!A:L": {
			{"header"},
			fullRow("choc-1", "Dark Truffle", "499", "1", "yes"),
		},
	}}
	svc, err := NewService(reader, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p, err := svc.GetProduct(context.Background(), "choc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name != "Dark Truffle" {
		t.Fatalf("name = %q", p.Name)
	}

	_, err = svc.GetProduct(context.Background(), "missing")
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found error, got %v", err)
	}
}
