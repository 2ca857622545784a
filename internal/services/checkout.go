package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/retrogameshop/storefront-platform/internal/cart"
	"github.com/retrogameshop/storefront-platform/internal/config"
	"github.com/retrogameshop/storefront-platform/internal/discount"
	"github.com/retrogameshop/storefront-platform/internal/errors"
	"github.com/retrogameshop/storefront-platform/internal/models"
	repository "github.com/retrogameshop/storefront-platform/internal/repositories"
	"github.com/retrogameshop/storefront-platform/pkg/payment"
	"github.com/retrogameshop/storefront-platform/pkg/sendgrid"

	"github.com/microcosm-cc/bluemonday"
)

type CheckoutService struct {
	orderRepo      repository.OrderRepository
	stockRepo      repository.StockRepository
	subscriberRepo repository.SubscriberRepository
	cartManager    *cart.Manager
	provider       payment.Provider
	email          sendgrid.EmailService
	checkoutCfg    *config.Checkout
	paymentCfg     *config.Payment
	sanitizer      *bluemonday.Policy
	now            func() time.Time
}

func NewCheckoutService(
	orderRepo repository.OrderRepository,
	stockRepo repository.StockRepository,
	subscriberRepo repository.SubscriberRepository,
	cartManager *cart.Manager,
	provider payment.Provider,
	email sendgrid.EmailService,
	checkoutCfg *config.Checkout,
	paymentCfg *config.Payment,
) *CheckoutService {
	return &CheckoutService{
		orderRepo:      orderRepo,
		stockRepo:      stockRepo,
		subscriberRepo: subscriberRepo,
		cartManager:    cartManager,
		provider:       provider,
		email:          email,
		checkoutCfg:    checkoutCfg,
		paymentCfg:     paymentCfg,
		sanitizer:      bluemonday.StrictPolicy(),
		now:            time.Now,
	}
}

// CreateOrder snapshots the session cart into an order, registers a payment
// with the provider and returns the provider checkout URL. The cart stays
// intact until payment succeeds.
func (s *CheckoutService) CreateOrder(ctx context.Context, sessionID string, req *models.CheckoutRequest) (*models.CheckoutResponse, error) {

	view := s.cartManager.View(ctx, sessionID)

	if len(view.Items) == 0 {
		return nil, errors.BadRequestError("Cannot create order with empty cart")
	}

	var lines []models.OrderLine

	for _, item := range view.Items {
		lines = append(lines, models.OrderLine{
			SKU:      item.Product.SKU,
			Name:     s.sanitizer.Sanitize(item.Product.Name),
			Quantity: item.Quantity,
			Price:    cart.UnitPrice(item),
			Variant:  item.Variant,
		})
	}

	shipping := s.checkoutCfg.ShippingCost
	if view.Subtotal >= s.checkoutCfg.FreeShippingThreshold {
		shipping = 0
	}

	order := &models.Order{
		OrderNumber:   s.generateOrderNumber(),
		CustomerName:  s.sanitizer.Sanitize(strings.TrimSpace(req.FirstName + " " + req.LastName)),
		CustomerEmail: req.Email,
		Items:         lines,
		Subtotal:      view.Subtotal,
		Shipping:      shipping,
		Discount:      view.DiscountAmount,
		Total:         roundCents(math.Max(0, view.Subtotal-view.DiscountAmount) + shipping),
		Street:        s.sanitizer.Sanitize(req.Street),
		HouseNumber:   s.sanitizer.Sanitize(req.HouseNumber),
		PostalCode:    s.sanitizer.Sanitize(req.PostalCode),
		City:          s.sanitizer.Sanitize(req.City),
		Notes:         s.sanitizer.Sanitize(req.Notes),
		PaymentMethod: req.PaymentMethod,
		Status:        models.OrderStatusProcessing,
		PaymentStatus: models.CheckoutStatusPending,
	}

	if view.Discount != nil {
		order.DiscountCode = view.Discount.Code
	}

	if err := s.orderRepo.CreateOrder(ctx, order); err != nil {
		return nil, errors.DatabaseError("Failed to create order").WithError(err)
	}

	pay, err := s.provider.CreatePayment(ctx, &payment.CreatePaymentRequest{
		OrderNumber: order.OrderNumber,
		Amount:      order.Total,
		Currency:    "EUR",
		Description: "Bestelling " + order.OrderNumber,
		Method:      order.PaymentMethod,
		RedirectURL: s.paymentCfg.RedirectBaseURL + "/afrekenen/status?order=" + order.OrderNumber,
		WebhookURL:  s.paymentCfg.WebhookURL,
	})
	if err != nil {
		return nil, errors.ThirdPartyError("Failed to register payment").WithError(err)
	}

	for _, line := range lines {
		if err := s.stockRepo.DecrementStock(ctx, line.SKU, line.Quantity); err != nil {
			slog.Warn("Failed to decrement stock",
				slog.String("sku", line.SKU),
				slog.String("error", err.Error()))
		}
	}

	if discount.IsNewsletterCode(order.DiscountCode) {
		if err := s.subscriberRepo.MarkCodeUsed(ctx, order.DiscountCode); err != nil {
			slog.Warn("Failed to mark newsletter code used",
				slog.String("code", order.DiscountCode),
				slog.String("error", err.Error()))
		}
	}

	slog.Info("✅ Order created",
		slog.String("orderNumber", order.OrderNumber),
		slog.Float64("total", order.Total))

	return &models.CheckoutResponse{
		OrderNumber: order.OrderNumber,
		CheckoutURL: pay.CheckoutURL,
	}, nil
}

// HandlePaymentUpdate re-checks the payment status with the provider and
// persists it. Safe to call repeatedly for the same order; the confirmation
// email only goes out on the transition into a success state.
func (s *CheckoutService) HandlePaymentUpdate(ctx context.Context, orderNumber string) (models.CheckoutStatus, error) {

	order, err := s.orderRepo.GetOrderByNumber(ctx, orderNumber)
	if err != nil {
		return "", errors.NotFoundError("Order not found").WithError(err)
	}

	status, err := s.provider.GetPaymentStatus(ctx, orderNumber)
	if err != nil {
		return "", errors.ThirdPartyError("Failed to fetch payment status").WithError(err)
	}

	if status == order.PaymentStatus {
		return status, nil
	}

	if err := s.orderRepo.UpdatePaymentStatus(ctx, orderNumber, status); err != nil {
		return "", errors.DatabaseError("Failed to update payment status").WithError(err)
	}

	if status.IsSuccess() && !order.PaymentStatus.IsSuccess() {
		s.sendConfirmation(ctx, order)
	}

	return status, nil
}

func (s *CheckoutService) sendConfirmation(ctx context.Context, order *models.Order) {

	var sb strings.Builder

	fmt.Fprintf(&sb, "Bedankt voor je bestelling %s!\n\n", order.OrderNumber)

	for _, line := range order.Items {
		fmt.Fprintf(&sb, "%dx %s - €%.2f\n", line.Quantity, line.Name, line.Price)
	}

	fmt.Fprintf(&sb, "\nVerzendkosten: €%.2f\nTotaal: €%.2f\n", order.Shipping, order.Total)

	err := s.email.Send(ctx, &sendgrid.Email{
		To:      order.CustomerEmail,
		Subject: "Orderbevestiging " + order.OrderNumber,
		Content: sb.String(),
	})
	if err != nil {
		slog.Warn("Failed to send order confirmation",
			slog.String("orderNumber", order.OrderNumber),
			slog.String("error", err.Error()))
	}
}

func (s *CheckoutService) generateOrderNumber() string {
	return fmt.Sprintf("GS-%d", s.now().UnixMilli())
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
