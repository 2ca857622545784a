package handlers

import (
	"net/http"

	"github.com/retrogameshop/storefront-platform/internal/catalog"
	"github.com/retrogameshop/storefront-platform/internal/errors"
	"github.com/retrogameshop/storefront-platform/internal/utils/response"
)

type ProductHandler struct {
	catalog *catalog.Catalog
}

func NewProductHandler(cat *catalog.Catalog) *ProductHandler {
	return &ProductHandler{catalog: cat}
}

// ListProducts serves the full catalog, optionally narrowed by ?platform= or
// ?search=.
func (h *ProductHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		if query := r.URL.Query().Get("search"); query != "" {
			response.Success(w, http.StatusOK, h.catalog.Search(query))
			return
		}

		if platform := r.URL.Query().Get("platform"); platform != "" {
			response.Success(w, http.StatusOK, h.catalog.ByPlatform(platform))
			return
		}

		response.Success(w, http.StatusOK, h.catalog.All())
	}
}

func (h *ProductHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sku := r.PathValue("sku")

		product, ok := h.catalog.BySKU(sku)
		if !ok {
			response.Error(w, errors.NotFoundError("Product not found"))
			return
		}

		response.Success(w, http.StatusOK, product)
	}
}

func (h *ProductHandler) ListPlatforms() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, http.StatusOK, h.catalog.Platforms())
	}
}

func (h *ProductHandler) ListGenres() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, http.StatusOK, h.catalog.Genres())
	}
}
