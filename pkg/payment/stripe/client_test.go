package stripe

import (
	"testing"

	"github.com/retrogameshop/storefront-platform/internal/models"
	"github.com/stripe/stripe-go/v81"
	"github.com/stretchr/testify/assert"
)

func TestMapStatus(t *testing.T) {
	tests := []struct {
		name     string
		status   stripe.PaymentIntentStatus
		expected models.CheckoutStatus
	}{
		{"Succeeded", stripe.PaymentIntentStatusSucceeded, models.CheckoutStatusPaid},
		{"Canceled", stripe.PaymentIntentStatusCanceled, models.CheckoutStatusCanceled},
		{"Processing", stripe.PaymentIntentStatusProcessing, models.CheckoutStatusPending},
		{"Requires Action", stripe.PaymentIntentStatusRequiresAction, models.CheckoutStatusPending},
		{"Requires Payment Method", stripe.PaymentIntentStatusRequiresPaymentMethod, models.CheckoutStatusPending},
		{"Unknown", stripe.PaymentIntentStatus("something_new"), models.CheckoutStatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, mapStatus(tt.status))
		})
	}
}
