package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	pkgerrors "github.com/chocovilla/chocovilla-backend/pkg/errors"
	"github.com/chocovilla/chocovilla-backend/pkg/metrics"
)

const (
	defaultBaseURL             = "https://sheets.googleapis.com/v4"
	errorBodyReadLimit   int64 = 1024
	accessDeniedGuidance       = "ensure the Sheets API is enabled, the spreadsheet is link-shared, and the API key may call it"
)

var (
	errAPIKeyRequired  = errors.New("GOOGLE_API_KEY is not set")
	errSheetIDRequired = errors.New("GOOGLE_SHEET_ID is not set")

	// ErrBadRange reports that the upstream rejected the requested range,
	// typically because the sheet has fewer columns than asked for. Callers
	// probing historical column layouts branch on it with errors.Is.
	ErrBadRange = errors.New("sheet range rejected")
)

// Cache holds raw range payloads for the short revalidation window.
type Cache interface {
	Get(ctx context.Context, sheetRange string) (string, bool, error)
	Set(ctx context.Context, sheetRange, payload string) error
}

// Client reads ranges from a single Google spreadsheet via the values API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	sheetID    string
	cache      Cache
	metrics    *metrics.SheetFetchMetrics
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the values API base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// WithCache enables the revalidation cache.
func WithCache(cache Cache) Option {
	return func(c *Client) {
		c.cache = cache
	}
}

// WithMetrics enables fetch instrumentation.
func WithMetrics(m *metrics.SheetFetchMetrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient builds the spreadsheet client. Both the API key and the sheet id
// are mandatory; their absence is a configuration error, not a fetch error.
func NewClient(apiKey, sheetID string, opts ...Option) (*Client, error) {
	trimmedKey := strings.TrimSpace(apiKey)
	if trimmedKey == "" {
		return nil, errAPIKeyRequired
	}
	trimmedID := strings.TrimSpace(sheetID)
	if trimmedID == "" {
		return nil, errSheetIDRequired
	}

	client := &Client{
		apiKey:     trimmedKey,
		sheetID:    trimmedID,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if client.baseURL == "" {
		client.baseURL = defaultBaseURL
	}

	return client, nil
}

// ReadRange fetches a rectangular cell block such as "Products!A:L". Rows are
// returned as strings exactly as rendered by the sheet; trailing empty cells
// may be absent, so positional access must go through Cell.
func (c *Client) ReadRange(ctx context.Context, sheetRange string) ([][]string, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "sheets client not configured")
	}
	table := tableLabel(sheetRange)

	if c.cache != nil {
		if payload, ok, err := c.cache.Get(ctx, sheetRange); err == nil && ok {
			var rows [][]string
			if err := json.Unmarshal([]byte(payload), &rows); err == nil {
				c.metrics.IncCacheHit(table)
				return rows, nil
			}
		}
	}

	start := time.Now()
	rows, err := c.fetchRange(ctx, sheetRange)
	c.metrics.ObserveDuration(table, time.Since(start))
	if err != nil {
		if errors.Is(err, ErrBadRange) {
			c.metrics.IncFetch(table, "bad_range")
		} else {
			c.metrics.IncFetch(table, "error")
		}
		return nil, err
	}
	c.metrics.IncFetch(table, "success")

	if c.cache != nil {
		if payload, err := json.Marshal(rows); err == nil {
			_ = c.cache.Set(ctx, sheetRange, string(payload))
		}
	}

	return rows, nil
}

func (c *Client) fetchRange(ctx context.Context, sheetRange string) ([][]string, error) {
	endpoint := fmt.Sprintf("%s/spreadsheets/%s/values/%s?key=%s",
		strings.TrimRight(c.baseURL, "/"),
		url.PathEscape(c.sheetID),
		url.PathEscape(sheetRange),
		url.QueryEscape(c.apiKey),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build sheet request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute sheet request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
		detail := strings.TrimSpace(string(msg))
		switch resp.StatusCode {
		case http.StatusBadRequest:
			return nil, fmt.Errorf("%w: range %q: %s", ErrBadRange, sheetRange, detail)
		case http.StatusForbidden:
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency,
				fmt.Errorf("status 403: %s", detail),
				"sheets access denied: "+accessDeniedGuidance)
		default:
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency,
				fmt.Errorf("status %d: %s", resp.StatusCode, detail),
				"sheet request failed")
		}
	}

	var apiResp struct {
		Values [][]any `json:"values"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode sheet response")
	}

	rows := make([][]string, 0, len(apiResp.Values))
	for _, raw := range apiResp.Values {
		row := make([]string, 0, len(raw))
		for _, cell := range raw {
			row = append(row, stringifyCell(cell))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func stringifyCell(cell any) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		// fmt.Sprint renders large floats in scientific notation, which the
		// numeric cell parsers reject.
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func tableLabel(sheetRange string) string {
	if idx := strings.Index(sheetRange, "!"); idx > 0 {
		return sheetRange[:idx]
	}
	return sheetRange
}
