package handlers

import (
	"log/slog"
	"net/http"

	"github.com/retrogameshop/storefront-platform/internal/cart"
	"github.com/retrogameshop/storefront-platform/internal/catalog"
	"github.com/retrogameshop/storefront-platform/internal/errors"
	"github.com/retrogameshop/storefront-platform/internal/models"
	"github.com/retrogameshop/storefront-platform/internal/utils"
	"github.com/retrogameshop/storefront-platform/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CartHandler struct {
	cartManager *cart.Manager
	catalog     *catalog.Catalog
	validator   *validator.Validate
}

func NewCartHandler(manager *cart.Manager, cat *catalog.Catalog) *CartHandler {
	return &CartHandler{
		cartManager: manager,
		catalog:     cat,
		validator:   validator.New(),
	}
}

func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		view := h.cartManager.View(r.Context(), sessionID(w, r))

		response.Success(w, http.StatusOK, view)
	}
}

func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.AddItemRequest

		// Validate Input
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		product, ok := h.catalog.BySKU(req.SKU)
		if !ok {
			response.Error(w, errors.NotFoundError("Product not found"))
			return
		}

		view, err := h.cartManager.AddItem(r.Context(), sessionID(w, r), product, req.Variant)
		if err != nil {
			slog.Warn("Failed to add cart item", slog.String("sku", req.SKU), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		key := r.PathValue("key")

		if key == "" {
			response.Error(w, errors.BadRequestError("Item key is required"))
			return
		}

		var req models.UpdateQuantityRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		view := h.cartManager.UpdateQuantity(r.Context(), sessionID(w, r), key, req.Quantity)

		response.Success(w, http.StatusOK, view)
	}
}

func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		key := r.PathValue("key")

		if key == "" {
			response.Error(w, errors.BadRequestError("Item key is required"))
			return
		}

		view := h.cartManager.RemoveItem(r.Context(), sessionID(w, r), key)

		response.Success(w, http.StatusOK, view)
	}
}

func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		view := h.cartManager.Clear(r.Context(), sessionID(w, r))

		response.Success(w, http.StatusOK, view)
	}
}

func (h *CartHandler) ApplyDiscount() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.ApplyDiscountRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		session := sessionID(w, r)

		message, err := h.cartManager.ApplyDiscount(r.Context(), session, req.Code)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]any{
			"message": message,
			"cart":    h.cartManager.View(r.Context(), session),
		})
	}
}

func (h *CartHandler) RemoveDiscount() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		view := h.cartManager.RemoveDiscount(r.Context(), sessionID(w, r))

		response.Success(w, http.StatusOK, view)
	}
}
