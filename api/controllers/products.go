package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chocovilla/chocovilla-backend/api/responses"
	"github.com/chocovilla/chocovilla-backend/internal/catalog"
	pkgerrors "github.com/chocovilla/chocovilla-backend/pkg/errors"
	"github.com/chocovilla/chocovilla-backend/pkg/logger"
	"github.com/chocovilla/chocovilla-backend/pkg/whatsapp"
)

// ProductsList serves the catalog, optionally narrowed by ?search= and
// ?category=.
func ProductsList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		query := r.URL.Query().Get("search")
		category := r.URL.Query().Get("category")

		products, err := svc.SearchProducts(r.Context(), query, category)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, products)
	}
}

// ProductsFeatured serves the landing-page picks.
func ProductsFeatured(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		products, err := svc.FeaturedProducts(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, products)
	}
}

// ProductCategories serves the distinct category list for the filter bar.
func ProductCategories(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		categories, err := svc.Categories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, categories)
	}
}

// ProductInquiryLink serves the per-product WhatsApp handoff URL.
func ProductInquiryLink(svc catalog.Service, composer *whatsapp.Composer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || composer == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		product, err := svc.GetProduct(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{
			"url": composer.InquiryLink(product.Name, product.OurPrice),
		})
	}
}
