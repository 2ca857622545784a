package handlers

import (
	"net/http"

	"github.com/retrogameshop/storefront-platform/internal/discount"
	"github.com/retrogameshop/storefront-platform/internal/models"
	"github.com/retrogameshop/storefront-platform/internal/utils"
	"github.com/retrogameshop/storefront-platform/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type DiscountHandler struct {
	engine    *discount.Engine
	validator *validator.Validate
}

func NewDiscountHandler(engine *discount.Engine) *DiscountHandler {
	return &DiscountHandler{engine: engine, validator: validator.New()}
}

// Validate quotes a code against a subtotal. Rejections come back as a 200
// with valid=false and the user-facing reason, so the storefront can show
// them inline instead of treating them as request failures.
func (h *DiscountHandler) Validate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.ValidateDiscountRequest

		// Validate Input
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		quote, err := h.engine.Quote(r.Context(), req.Code, req.Subtotal)
		if err != nil {
			response.Success(w, http.StatusOK, map[string]any{
				"valid": false,
				"error": userMessage(err),
			})
			return
		}

		response.Success(w, http.StatusOK, quote)
	}
}

// Check is a lightweight existence probe used before the subtotal is known.
func (h *DiscountHandler) Check() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		code := r.URL.Query().Get("code")

		response.Success(w, http.StatusOK, models.DiscountCheckResponse{
			Code:    discount.Normalize(code),
			IsValid: h.engine.Exists(r.Context(), code),
		})
	}
}
