package controllers

import (
	"net/http"

	"github.com/chocovilla/chocovilla-backend/api/responses"
	"github.com/chocovilla/chocovilla-backend/internal/stats"
	"github.com/chocovilla/chocovilla-backend/internal/testimonials"
	pkgerrors "github.com/chocovilla/chocovilla-backend/pkg/errors"
	"github.com/chocovilla/chocovilla-backend/pkg/logger"
)

// TestimonialsList serves the featured reviews.
func TestimonialsList(svc testimonials.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "testimonials service unavailable"))
			return
		}

		items, err := svc.ListTestimonials(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, items)
	}
}

// StatisticsGet serves the landing-page counters. Fetch problems have
// already collapsed into defaults, so this handler cannot fail.
func StatisticsGet(svc stats.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "statistics service unavailable"))
			return
		}

		responses.WriteSuccess(w, svc.GetStatistics(r.Context()))
	}
}
