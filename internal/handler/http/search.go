package http

import (
	"log/slog"
	"net/http"

	"github.com/rosewoodpk/storefront/internal/domain"
	"github.com/rosewoodpk/storefront/internal/service"
	"github.com/rosewoodpk/storefront/pkg/httputil"
)

// SearchHandler handles HTTP requests for the search endpoint.
//
// The response shape predates the standard envelope and is kept as-is
// because the storefront client binds to it directly: 200 with
// {"results": [...]} on success, 500 with {"error": "Failed to fetch
// products"} on any failure.
type SearchHandler struct {
	service *service.CatalogService
	logger  *slog.Logger
}

// NewSearchHandler creates a new search HTTP handler.
func NewSearchHandler(svc *service.CatalogService, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{
		service: svc,
		logger:  logger,
	}
}

type searchResponse struct {
	Results []domain.Product `json:"results"`
}

type searchErrorResponse struct {
	Error string `json:"error"`
}

// Search handles GET /api/search
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	results, err := h.service.SearchProducts(r.Context(), query)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "search failed",
			slog.String("query", query),
			slog.String("error", err.Error()),
		)
		httputil.WriteJSON(w, http.StatusInternalServerError, searchErrorResponse{Error: "Failed to fetch products"})
		return
	}

	if results == nil {
		results = []domain.Product{}
	}
	httputil.WriteJSON(w, http.StatusOK, searchResponse{Results: results})
}
