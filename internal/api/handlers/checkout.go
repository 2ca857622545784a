package handlers

import (
	"log/slog"
	"net/http"

	"github.com/retrogameshop/storefront-platform/internal/errors"
	"github.com/retrogameshop/storefront-platform/internal/models"
	service "github.com/retrogameshop/storefront-platform/internal/services"
	"github.com/retrogameshop/storefront-platform/internal/utils"
	"github.com/retrogameshop/storefront-platform/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CheckoutHandler struct {
	checkoutService *service.CheckoutService
	validator       *validator.Validate
}

func NewCheckoutHandler(checkoutService *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService, validator: validator.New()}
}

func (h *CheckoutHandler) CreateOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.CheckoutRequest

		// Validate Input
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		resp, err := h.checkoutService.CreateOrder(r.Context(), sessionID(w, r), &req)
		if err != nil {
			slog.Error("Order creation failed", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusCreated, resp)
	}
}

// Webhook receives the provider's asynchronous status pushes. The payload
// only identifies the order; the current status is always re-fetched from
// the provider rather than trusted from the request.
func (h *CheckoutHandler) Webhook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		orderNumber := r.FormValue("order")
		if orderNumber == "" {
			orderNumber = r.FormValue("id")
		}

		if orderNumber == "" {
			response.Error(w, errors.BadRequestError("Order reference is required"))
			return
		}

		status, err := h.checkoutService.HandlePaymentUpdate(r.Context(), orderNumber)
		if err != nil {
			slog.Error("Webhook processing failed",
				slog.String("orderNumber", orderNumber),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		slog.Info("Webhook processed",
			slog.String("orderNumber", orderNumber),
			slog.String("status", string(status)))

		w.WriteHeader(http.StatusOK)
	}
}
