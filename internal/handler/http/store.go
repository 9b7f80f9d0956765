package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rosewoodpk/storefront/internal/domain"
	"github.com/rosewoodpk/storefront/internal/service"
	"github.com/rosewoodpk/storefront/pkg/httputil"
	"github.com/rosewoodpk/storefront/pkg/validator"
)

// StoreHandler handles HTTP requests for the profile-scoped cart and
// wishlist endpoints.
type StoreHandler struct {
	service *service.StoreService
	logger  *slog.Logger
}

// NewStoreHandler creates a new store HTTP handler.
func NewStoreHandler(svc *service.StoreService, logger *slog.Logger) *StoreHandler {
	return &StoreHandler{
		service: svc,
		logger:  logger,
	}
}

// --- Request DTOs ---

// AddCartItemRequest is the JSON request body for adding a product to the
// cart. The product is sent whole; cart lines carry a full catalog snapshot
// rather than a reference.
type AddCartItemRequest struct {
	Product  domain.Product `json:"product"`
	Quantity int            `json:"quantity" validate:"gte=0"`
}

// ToggleWishlistRequest is the JSON request body for toggling a product's
// wishlist membership.
type ToggleWishlistRequest struct {
	Product domain.Product `json:"product"`
}

// --- Response DTOs ---

type cartResponse struct {
	Items     domain.Cart `json:"items"`
	ItemCount int         `json:"item_count"`
	Subtotal  float64     `json:"subtotal"`
}

type addItemResponse struct {
	cartResponse
	AddedNewLine bool `json:"added_new_line"`
}

type wishlistResponse struct {
	Items domain.Wishlist `json:"items"`
}

func newCartResponse(cart domain.Cart) cartResponse {
	if cart == nil {
		cart = domain.Cart{}
	}
	return cartResponse{
		Items:     cart,
		ItemCount: cart.ItemCount(),
		Subtotal:  cart.Subtotal(),
	}
}

// --- Handlers ---

// GetCart handles GET /api/v1/cart
func (h *StoreHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	profileID, ok := profileIDFromContext(r.Context())
	if !ok {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "X-Profile-ID header is required"},
		})
		return
	}

	cart, err := h.service.GetCart(r.Context(), profileID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: newCartResponse(cart)})
}

// AddCartItem handles POST /api/v1/cart/items
func (h *StoreHandler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	profileID, ok := profileIDFromContext(r.Context())
	if !ok {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "X-Profile-ID header is required"},
		})
		return
	}

	var req AddCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	if req.Product.ID == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "product._id is required"},
		})
		return
	}

	cart, addedNewLine, err := h.service.AddToCart(r.Context(), profileID, req.Product, req.Quantity)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: addItemResponse{
		cartResponse: newCartResponse(cart),
		AddedNewLine: addedNewLine,
	}})
}

// GetWishlist handles GET /api/v1/wishlist
func (h *StoreHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	profileID, ok := profileIDFromContext(r.Context())
	if !ok {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "X-Profile-ID header is required"},
		})
		return
	}

	wishlist, err := h.service.GetWishlist(r.Context(), profileID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	if wishlist == nil {
		wishlist = domain.Wishlist{}
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: wishlistResponse{Items: wishlist}})
}

// ToggleWishlist handles POST /api/v1/wishlist/toggle
func (h *StoreHandler) ToggleWishlist(w http.ResponseWriter, r *http.Request) {
	profileID, ok := profileIDFromContext(r.Context())
	if !ok {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "X-Profile-ID header is required"},
		})
		return
	}

	var req ToggleWishlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if req.Product.ID == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "product._id is required"},
		})
		return
	}

	wishlist, err := h.service.ToggleWishlist(r.Context(), profileID, req.Product)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	if wishlist == nil {
		wishlist = domain.Wishlist{}
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: wishlistResponse{Items: wishlist}})
}
