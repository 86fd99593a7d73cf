package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	pkgerrors "github.com/chocovilla/chocovilla-backend/pkg/errors"
	"github.com/chocovilla/chocovilla-backend/pkg/logger"
	"github.com/chocovilla/chocovilla-backend/pkg/sheets"
)

const featuredLimit = 3

// Service exposes the product catalog and its derived views.
type Service interface {
	ListProducts(ctx context.Context) ([]Product, error)
	SearchProducts(ctx context.Context, query, category string) ([]Product, error)
	FeaturedProducts(ctx context.Context) ([]Product, error)
	Categories(ctx context.Context) ([]string, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
}

type rangeReader interface {
	ReadRange(ctx context.Context, sheetRange string) ([][]string, error)
}

type service struct {
	reader rangeReader
	logg   *logger.Logger
}

// NewService constructs the catalog service over a spreadsheet reader.
func NewService(reader rangeReader, logg *logger.Logger) (Service, error) {
	if reader == nil {
		return nil, fmt.Errorf("range reader required")
	}
	return &service{reader: reader, logg: logg}, nil
}

// ListProducts fetches the Products table, probing historical column layouts
// widest-first, and returns validated rows stably sorted by display order.
func (s *service) ListProducts(ctx context.Context) ([]Product, error) {
	rows, tableSchema, err := s.resolveTable(ctx)
	if err != nil {
		return nil, err
	}

	if len(rows) <= 1 {
		s.warn(ctx, "products sheet is empty or has only headers")
		return []Product{}, nil
	}

	products := make([]Product, 0, len(rows)-1)
	for i, row := range rows[1:] {
		product, diags, ok := parseProductRow(row, tableSchema, i+2)
		for _, d := range diags {
			s.warn(s.withRow(ctx, d.rowNum), "products: "+d.reason)
		}
		if ok {
			products = append(products, product)
		}
	}

	// Stable: equal display orders keep their sheet order.
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].DisplayOrder < products[j].DisplayOrder
	})

	return products, nil
}

// resolveTable walks the known ranges until one is accepted. Only a rejected
// range advances the probe; transport or auth failures surface immediately.
func (s *service) resolveTable(ctx context.Context) ([][]string, schemaVersion, error) {
	var lastErr error
	for i, sheetRange := range productRanges {
		rows, err := s.reader.ReadRange(ctx, sheetRange)
		if err == nil {
			return rows, schemaForRange(sheetRange), nil
		}
		if !errors.Is(err, sheets.ErrBadRange) {
			return nil, schemaLegacy, err
		}
		lastErr = err
		if i < len(productRanges)-1 {
			probeCtx := ctx
			if s.logg != nil {
				probeCtx = s.logg.WithSheetRange(ctx, sheetRange)
			}
			s.warn(probeCtx, "products range rejected, trying "+productRanges[i+1])
		}
	}
	return nil, schemaLegacy, pkgerrors.Wrap(pkgerrors.CodeDependency, lastErr, "no known products layout accepted")
}

func schemaForRange(sheetRange string) schemaVersion {
	switch sheetRange {
	case rangeFull:
		return schemaFull
	case rangeDisplay, rangeFlags:
		return schemaFlags
	default:
		return schemaLegacy
	}
}

// SearchProducts filters the catalog by exact category and a case-insensitive
// substring match on name or description. Empty arguments skip their filter.
func (s *service) SearchProducts(ctx context.Context, query, category string) ([]Product, error) {
	products, err := s.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	if category != "" {
		filtered := products[:0:0]
		for _, p := range products {
			if p.Category == category {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}

	if q := strings.ToLower(strings.TrimSpace(query)); q != "" {
		filtered := products[:0:0]
		for _, p := range products {
			if strings.Contains(strings.ToLower(p.Name), q) ||
				strings.Contains(strings.ToLower(p.Description), q) {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}

	return products, nil
}

// FeaturedProducts returns the first three home-flagged products in display
// order.
func (s *service) FeaturedProducts(ctx context.Context) ([]Product, error) {
	products, err := s.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	featured := make([]Product, 0, featuredLimit)
	for _, p := range products {
		if !p.ShowOnHome {
			continue
		}
		featured = append(featured, p)
		if len(featured) == featuredLimit {
			break
		}
	}
	return featured, nil
}

// Categories lists the distinct product categories in sorted order.
func (s *service) Categories(ctx context.Context) ([]string, error) {
	products, err := s.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	seen := map[string]struct{}{}
	categories := []string{}
	for _, p := range products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}
	sort.Strings(categories)
	return categories, nil
}

// GetProduct finds a product by id.
func (s *service) GetProduct(ctx context.Context, id string) (*Product, error) {
	products, err := s.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

func (s *service) warn(ctx context.Context, msg string) {
	if s.logg != nil {
		s.logg.Warn(ctx, msg)
	}
}

func (s *service) withRow(ctx context.Context, rowNum int) context.Context {
	if s.logg == nil {
		return ctx
	}
	return s.logg.WithField(ctx, "sheet_row", rowNum)
}
