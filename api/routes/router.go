package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/chocovilla/chocovilla-backend/api/controllers"
	"github.com/chocovilla/chocovilla-backend/api/middleware"
	cartsvc "github.com/chocovilla/chocovilla-backend/internal/cart"
	"github.com/chocovilla/chocovilla-backend/internal/catalog"
	"github.com/chocovilla/chocovilla-backend/internal/promo"
	"github.com/chocovilla/chocovilla-backend/internal/stats"
	"github.com/chocovilla/chocovilla-backend/internal/testimonials"
	"github.com/chocovilla/chocovilla-backend/pkg/config"
	"github.com/chocovilla/chocovilla-backend/pkg/logger"
	"github.com/chocovilla/chocovilla-backend/pkg/redis"
	"github.com/chocovilla/chocovilla-backend/pkg/whatsapp"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	redisClient redis.Pinger,
	registry *prometheus.Registry,
	catalogService catalog.Service,
	promoService promo.Service,
	testimonialService testimonials.Service,
	statsService stats.Service,
	cartService cartsvc.Service,
	composer *whatsapp.Composer,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, redisClient))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductsList(catalogService, logg))
			r.Get("/featured", controllers.ProductsFeatured(catalogService, logg))
			r.Get("/categories", controllers.ProductCategories(catalogService, logg))
			r.Get("/{id}/inquiry-link", controllers.ProductInquiryLink(catalogService, composer, logg))
		})

		r.Get("/testimonials", controllers.TestimonialsList(testimonialService, logg))
		r.Get("/statistics", controllers.StatisticsGet(statsService, logg))

		r.Post("/validate-promo", controllers.ValidatePromo(promoService, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(cartService, logg))
			r.Delete("/", controllers.CartClear(cartService, logg))
			r.Post("/items", controllers.CartAddItem(cartService, logg))
			r.Patch("/items/{id}", controllers.CartUpdateQuantity(cartService, logg))
			r.Delete("/items/{id}", controllers.CartRemoveItem(cartService, logg))
			r.Post("/promo", controllers.CartApplyPromo(cartService, logg))
			r.Delete("/promo", controllers.CartRemovePromo(cartService, logg))
			r.Get("/checkout-link", controllers.CartCheckoutLink(cartService, logg))
		})
	})

	return r
}
