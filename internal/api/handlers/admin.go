package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/retrogameshop/storefront-platform/internal/errors"
	"github.com/retrogameshop/storefront-platform/internal/models"
	service "github.com/retrogameshop/storefront-platform/internal/services"
	"github.com/retrogameshop/storefront-platform/internal/utils"
	"github.com/retrogameshop/storefront-platform/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type AdminHandler struct {
	dashboardService *service.DashboardService
	validator        *validator.Validate
}

func NewAdminHandler(dashboardService *service.DashboardService) *AdminHandler {
	return &AdminHandler{dashboardService: dashboardService, validator: validator.New()}
}

func (h *AdminHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.AdminLoginRequest

		// Validate Input
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		resp, err := h.dashboardService.Login(r.Context(), &req)
		if err != nil {
			slog.Warn("Admin login rejected", slog.String("remote_addr", r.RemoteAddr))
			response.Error(w, err)
			return
		}

		slog.Info("Admin logged in")
		response.Success(w, http.StatusOK, resp)
	}
}

func (h *AdminHandler) Dashboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		summary, err := h.dashboardService.Summary(r.Context())
		if err != nil {
			slog.Error("Dashboard aggregation failed", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, summary)
	}
}

func (h *AdminHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		size, _ := strconv.Atoi(r.URL.Query().Get("size"))

		if page < 1 {
			page = 1
		}

		if size < 1 || size > 50 {
			size = 20
		}

		orders, total, err := h.dashboardService.ListOrders(r.Context(), page, size)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, models.PaginatedResponse{
			Data:     orders,
			Total:    total,
			Page:     page,
			PageSize: size,
		})
	}
}

func (h *AdminHandler) UpdateOrderStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		orderNumber := r.PathValue("orderNumber")

		if orderNumber == "" {
			response.Error(w, errors.BadRequestError("Order number is required"))
			return
		}

		var req models.UpdateOrderStatusRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		order, err := h.dashboardService.UpdateOrderStatus(r.Context(), orderNumber, req.Status)
		if err != nil {
			slog.Error("Order status update failed",
				slog.String("orderNumber", orderNumber),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		slog.Info("Order status updated",
			slog.String("orderNumber", orderNumber),
			slog.String("status", string(req.Status)))
		response.Success(w, http.StatusOK, order)
	}
}
