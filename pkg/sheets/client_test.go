package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

func TestNewClientRequiresConfig(t *testing.T) {
	t.Parallel()

	if _, err := NewClient("", "sheet-id"); err == nil {
		t.Fatal("expected error for missing api key")
	}
	if _, err := NewClient("key", "  "); err == nil {
		t.Fatal("expected error for missing sheet id")
	}
}

func TestReadRangeSuccess(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("key"); got != "test-key" {
			t.Errorf("key query = %q", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"values": [][]any{
				{"id", "name"},
				{"choc-1", "Dark Truffle", 499, 1000000},
			},
		})
	}))
	defer srv.Close()

	client, err := NewClient("test-key", "sheet-id", WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows, err := client.ReadRange(context.Background(), "Products!A:L")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	// Non-string cells are stringified, not dropped; large numbers must not
	// come back in scientific notation.
	if rows[1][2] != "499" {
		t.Fatalf("numeric cell = %q, want \"499\"", rows[1][2])
	}
	if rows[1][3] != "1000000" {
		t.Fatalf("large numeric cell = %q, want \"1000000\"", rows[1][3])
	}
}

func TestReadRangeBadRange(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Unable to parse range", http.StatusBadRequest)
	}))
	defer srv.Close()

	client, err := NewClient("key", "sheet-id", WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = client.ReadRange(context.Background(), "Products!A:L")
	if !errors.Is(err, ErrBadRange) {
		t.Fatalf("expected ErrBadRange, got %v", err)
	}
}

func TestReadRangeServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client, err := NewClient("key", "sheet-id", WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = client.ReadRange(context.Background(), "Products!A:L")
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, ErrBadRange) {
		t.Fatal("server error must not read as a rejected range")
	}
}

type memoryCache struct {
	mu    sync.Mutex
	items map[string]string
}

func (c *memoryCache) Get(_ context.Context, sheetRange string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	payload, ok := c.items[sheetRange]
	return payload, ok, nil
}

func (c *memoryCache) Set(_ context.Context, sheetRange, payload string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.items == nil {
		c.items = map[string]string{}
	}
	c.items[sheetRange] = payload
	return nil
}

func TestReadRangeUsesCache(t *testing.T) {
	t.Parallel()

	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_ = json.NewEncoder(w).Encode(map[string]any{
			"values": [][]any{{"header"}, {"row"}},
		})
	}))
	defer srv.Close()

	client, err := NewClient("key", "sheet-id", WithBaseURL(srv.URL), WithCache(&memoryCache{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 0; i < 3; i++ {
		rows, err := client.ReadRange(context.Background(), "Statistics!A:C")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(rows) != 2 {
			t.Fatalf("rows = %d, want 2", len(rows))
		}
	}

	if hits != 1 {
		t.Fatalf("upstream hits = %d, want 1", hits)
	}
}
