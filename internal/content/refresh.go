// Package content warms and verifies the spreadsheet-backed tables as a
// group, for readiness checks and cache pre-fill at boot.
package content

import (
	"context"
	"fmt"

	"github.com/chocovilla/chocovilla-backend/internal/catalog"
	"github.com/chocovilla/chocovilla-backend/internal/promo"
	"github.com/chocovilla/chocovilla-backend/internal/stats"
	"github.com/chocovilla/chocovilla-backend/internal/testimonials"
	"github.com/chocovilla/chocovilla-backend/pkg/logger"
	"go.uber.org/multierr"
)

type Refresher struct {
	catalog      catalog.Service
	promos       promo.Service
	testimonials testimonials.Service
	stats        stats.Service
	logg         *logger.Logger
}

func NewRefresher(
	catalogSvc catalog.Service,
	promoSvc promo.Service,
	testimonialSvc testimonials.Service,
	statsSvc stats.Service,
	logg *logger.Logger,
) (*Refresher, error) {
	if catalogSvc == nil || promoSvc == nil || testimonialSvc == nil || statsSvc == nil {
		return nil, fmt.Errorf("all content services required")
	}
	return &Refresher{
		catalog:      catalogSvc,
		promos:       promoSvc,
		testimonials: testimonialSvc,
		stats:        statsSvc,
		logg:         logg,
	}, nil
}

// Refresh fetches every table once, combining per-table failures. Statistics
// never contribute an error; they fall back to defaults on any failure.
func (r *Refresher) Refresh(ctx context.Context) error {
	var errs []error

	if _, err := r.catalog.ListProducts(ctx); err != nil {
		errs = append(errs, fmt.Errorf("products: %w", err))
	}
	if _, err := r.promos.ListPromoCodes(ctx); err != nil {
		errs = append(errs, fmt.Errorf("promo codes: %w", err))
	}
	if _, err := r.testimonials.ListTestimonials(ctx); err != nil {
		errs = append(errs, fmt.Errorf("testimonials: %w", err))
	}
	r.stats.GetStatistics(ctx)

	if combined := multierr.Combine(errs...); combined != nil {
		if r.logg != nil {
			r.logg.Error(ctx, "content refresh incomplete", combined)
		}
		return combined
	}
	return nil
}
