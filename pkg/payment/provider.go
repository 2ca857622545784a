package payment

import (
	"context"
	"errors"

	"github.com/retrogameshop/storefront-platform/internal/models"
)

// ErrPaymentNotFound means the provider has no payment for the order yet.
// Callers treat this as "pending", never as a payment failure: right after
// checkout the provider may simply not have registered the payment.
var ErrPaymentNotFound = errors.New("payment not found")

type CreatePaymentRequest struct {
	OrderNumber string
	Amount      float64
	Currency    string
	Description string
	Method      string
	RedirectURL string
	WebhookURL  string
}

type Payment struct {
	ID          string
	OrderNumber string
	Status      models.CheckoutStatus
	CheckoutURL string
	Amount      float64
	Currency    string
}

// Provider is the contract the cart/order core needs from a payment backend.
// Implementations translate their native status vocabulary into
// models.CheckoutStatus.
type Provider interface {
	CreatePayment(ctx context.Context, req *CreatePaymentRequest) (*Payment, error)
	GetPaymentStatus(ctx context.Context, orderNumber string) (models.CheckoutStatus, error)
}
