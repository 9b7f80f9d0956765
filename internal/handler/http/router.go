package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rosewoodpk/storefront/internal/service"
	"github.com/rosewoodpk/storefront/pkg/health"
	"github.com/rosewoodpk/storefront/pkg/middleware"
)

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(
	catalogService *service.CatalogService,
	storeService *service.StoreService,
	healthHandler *health.Handler,
	logger *slog.Logger,
	corsCfg middleware.CORSConfig,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("storefront"))
	r.Use(middleware.Tracing("storefront"))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(corsCfg))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	catalogHandler := NewCatalogHandler(catalogService, logger)
	searchHandler := NewSearchHandler(catalogService, logger)
	storeHandler := NewStoreHandler(storeService, logger)

	// Legacy search route; the storefront client calls it without the v1 prefix.
	r.Get("/api/search", searchHandler.Search)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", catalogHandler.ListProducts)
		r.Get("/products/{id}", catalogHandler.GetProduct)
		r.Get("/shop", catalogHandler.BrowseShop)

		r.Group(func(r chi.Router) {
			r.Use(ContentTypeJSON)
			r.Use(ProfileIDFromHeader)

			r.Get("/cart", storeHandler.GetCart)
			r.Post("/cart/items", storeHandler.AddCartItem)

			r.Get("/wishlist", storeHandler.GetWishlist)
			r.Post("/wishlist/toggle", storeHandler.ToggleWishlist)
		})
	})

	return r
}
