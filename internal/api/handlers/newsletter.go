package handlers

import (
	"log/slog"
	"net/http"

	"github.com/retrogameshop/storefront-platform/internal/models"
	service "github.com/retrogameshop/storefront-platform/internal/services"
	"github.com/retrogameshop/storefront-platform/internal/utils"
	"github.com/retrogameshop/storefront-platform/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type NewsletterHandler struct {
	newsletterService *service.NewsletterService
	validator         *validator.Validate
}

func NewNewsletterHandler(newsletterService *service.NewsletterService) *NewsletterHandler {
	return &NewsletterHandler{newsletterService: newsletterService, validator: validator.New()}
}

func (h *NewsletterHandler) Subscribe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.NewsletterRequest

		// Validate Input
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		resp, err := h.newsletterService.Subscribe(r.Context(), &req)
		if err != nil {
			slog.Error("Newsletter signup failed", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		slog.Info("Newsletter signup", slog.String("email", req.Email))
		response.Success(w, http.StatusCreated, resp)
	}
}
