package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rosewoodpk/storefront/internal/domain"
	"github.com/rosewoodpk/storefront/internal/service"
	"github.com/rosewoodpk/storefront/pkg/httputil"
)

const defaultPageSize = 16

// CatalogHandler handles HTTP requests for the catalog read endpoints.
type CatalogHandler struct {
	service *service.CatalogService
	logger  *slog.Logger
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(svc *service.CatalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: svc,
		logger:  logger,
	}
}

// ListProducts handles GET /api/v1/products
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProducts(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	if products == nil {
		products = []domain.Product{}
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: products})
}

// BrowseShop handles GET /api/v1/shop
//
// Query parameters mirror the shop grid controls: sort is one of default,
// priceLowHigh, or priceHighLow (anything else keeps catalog order), page is
// 1-indexed, and per_page defaults to 16. Unparseable or non-positive values
// fall back to the defaults rather than erroring.
func (h *CatalogHandler) BrowseShop(w http.ResponseWriter, r *http.Request) {
	sortMode := r.URL.Query().Get("sort")
	if sortMode == "" {
		sortMode = domain.SortDefault
	}

	page := 1
	if v := r.URL.Query().Get("page"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			page = p
		}
	}

	perPage := defaultPageSize
	if v := r.URL.Query().Get("per_page"); v != "" {
		if pp, err := strconv.Atoi(v); err == nil && pp > 0 {
			perPage = pp
		}
	}

	result, err := h.service.BrowseProducts(r.Context(), sortMode, page, perPage)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.NewPaginatedResponse(result.Products, result.Total, result.Page, result.PageSize))
}

// GetProduct handles GET /api/v1/products/{id}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	detail, err := h.service.GetProduct(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	related := detail.Related
	if related == nil {
		related = []domain.Product{}
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: productDetailResponse{
		Product: detail.Product,
		Related: related,
	}})
}

type productDetailResponse struct {
	Product domain.Product   `json:"product"`
	Related []domain.Product `json:"related"`
}
