package handlers

import (
	"context"
	"net/http"

	"github.com/retrogameshop/storefront-platform/internal/cart"
	"github.com/retrogameshop/storefront-platform/internal/models"
	"github.com/retrogameshop/storefront-platform/internal/reconciler"
	"github.com/retrogameshop/storefront-platform/internal/utils/response"
)

type StatusHandler struct {
	reconciler  *reconciler.Reconciler
	cartManager *cart.Manager
	appCtx      context.Context
}

// NewStatusHandler takes the application context so payment polling keeps
// running after the request that started it has returned.
func NewStatusHandler(appCtx context.Context, recon *reconciler.Reconciler, manager *cart.Manager) *StatusHandler {
	return &StatusHandler{reconciler: recon, cartManager: manager, appCtx: appCtx}
}

// GetStatus reports where an order's payment stands. The first call for an
// order starts a background watcher; follow-up polls read its latest state.
// Once payment succeeds the session cart is cleared, exactly once.
func (h *StatusHandler) GetStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		orderNumber := r.URL.Query().Get("order")
		session := sessionID(w, r)

		watcher := h.reconciler.Watch(h.appCtx, orderNumber, func() {
			h.cartManager.Clear(context.Background(), session)
		})

		status := watcher.Status()

		response.Success(w, http.StatusOK, models.StatusResponse{
			OrderNumber: orderNumber,
			Status:      status,
			Message:     reconciler.Message(status),
		})
	}
}
