package stripe

import (
	"context"
	"fmt"

	"github.com/retrogameshop/storefront-platform/internal/models"
	"github.com/retrogameshop/storefront-platform/pkg/payment"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/paymentintent"
)

// Client is the Stripe rendition of the payment contract. Orders correlate
// through the orderNumber metadata key on the payment intent, queried back
// via the search API.
type Client struct{}

func NewClient(apiKey string) *Client {
	stripe.Key = apiKey

	return &Client{}
}

func (c *Client) CreatePayment(ctx context.Context, req *payment.CreatePaymentRequest) (*payment.Payment, error) {

	params := &stripe.PaymentIntentParams{
		Params: stripe.Params{
			Context: ctx,
		},
		// Stripe amounts are in the smallest currency unit.
		Amount:      stripe.Int64(int64(req.Amount * 100)),
		Currency:    stripe.String(req.Currency),
		Description: stripe.String(req.Description),
	}

	params.AddMetadata("orderNumber", req.OrderNumber)

	intent, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	return &payment.Payment{
		ID:          intent.ID,
		OrderNumber: req.OrderNumber,
		Status:      mapStatus(intent.Status),
		CheckoutURL: req.RedirectURL,
		Amount:      req.Amount,
		Currency:    req.Currency,
	}, nil
}

func (c *Client) GetPaymentStatus(ctx context.Context, orderNumber string) (models.CheckoutStatus, error) {

	params := &stripe.PaymentIntentSearchParams{
		SearchParams: stripe.SearchParams{
			Context: ctx,
			Query:   fmt.Sprintf("metadata['orderNumber']:'%s'", orderNumber),
		},
	}

	iter := paymentintent.Search(params)

	for iter.Next() {
		return mapStatus(iter.PaymentIntent().Status), nil
	}

	if err := iter.Err(); err != nil {
		return "", fmt.Errorf("failed to search payment intents: %w", err)
	}

	return "", payment.ErrPaymentNotFound
}

// mapStatus folds Stripe's intent lifecycle into the storefront vocabulary.
// The requires_* states all mean the customer is still mid-flow.
func mapStatus(status stripe.PaymentIntentStatus) models.CheckoutStatus {
	switch status {
	case stripe.PaymentIntentStatusSucceeded:
		return models.CheckoutStatusPaid
	case stripe.PaymentIntentStatusCanceled:
		return models.CheckoutStatusCanceled
	case stripe.PaymentIntentStatusProcessing,
		stripe.PaymentIntentStatusRequiresAction,
		stripe.PaymentIntentStatusRequiresCapture,
		stripe.PaymentIntentStatusRequiresConfirmation,
		stripe.PaymentIntentStatusRequiresPaymentMethod:
		return models.CheckoutStatusPending
	}

	return models.CheckoutStatusPending
}
