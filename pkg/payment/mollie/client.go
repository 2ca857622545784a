package mollie

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/retrogameshop/storefront-platform/internal/models"
	"github.com/retrogameshop/storefront-platform/pkg/payment"
)

// Client talks to the Mollie v2 payments API. Payments carry the order number
// in their metadata, which is how status lookups correlate back to an order.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type amount struct {
	Currency string `json:"currency"`
	Value    string `json:"value"`
}

type metadata struct {
	OrderNumber string `json:"orderNumber"`
}

type molliePayment struct {
	ID       string    `json:"id"`
	Status   string    `json:"status"`
	Amount   amount    `json:"amount"`
	Metadata *metadata `json:"metadata"`
	Links    struct {
		Checkout *struct {
			Href string `json:"href"`
		} `json:"checkout"`
	} `json:"_links"`
}

type paymentList struct {
	Embedded struct {
		Payments []molliePayment `json:"payments"`
	} `json:"_embedded"`
}

func (c *Client) CreatePayment(ctx context.Context, req *payment.CreatePaymentRequest) (*payment.Payment, error) {

	body := map[string]any{
		"amount": amount{
			Currency: req.Currency,
			Value:    fmt.Sprintf("%.2f", req.Amount),
		},
		"description": req.Description,
		"redirectUrl": req.RedirectURL,
		"metadata":    metadata{OrderNumber: req.OrderNumber},
	}

	if req.WebhookURL != "" {
		body["webhookUrl"] = req.WebhookURL
	}

	if req.Method != "" {
		body["method"] = req.Method
	}

	var created molliePayment
	if err := c.do(ctx, http.MethodPost, "/payments", body, &created); err != nil {
		return nil, fmt.Errorf("failed to create mollie payment: %w", err)
	}

	result := &payment.Payment{
		ID:          created.ID,
		OrderNumber: req.OrderNumber,
		Status:      mapStatus(created.Status),
		Amount:      req.Amount,
		Currency:    req.Currency,
	}

	if created.Links.Checkout != nil {
		result.CheckoutURL = created.Links.Checkout.Href
	}

	return result, nil
}

// GetPaymentStatus finds the payment whose metadata carries the order number.
func (c *Client) GetPaymentStatus(ctx context.Context, orderNumber string) (models.CheckoutStatus, error) {

	var list paymentList
	if err := c.do(ctx, http.MethodGet, "/payments?limit=250", nil, &list); err != nil {
		return "", fmt.Errorf("failed to list mollie payments: %w", err)
	}

	for _, p := range list.Embedded.Payments {
		if p.Metadata != nil && p.Metadata.OrderNumber == orderNumber {
			return mapStatus(p.Status), nil
		}
	}

	return "", payment.ErrPaymentNotFound
}

func (c *Client) do(ctx context.Context, method, path string, body any, dest any) error {

	var reader *bytes.Reader

	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}

		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("mollie API returned status %d", resp.StatusCode)
	}

	if dest != nil {
		if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// mapStatus translates Mollie's vocabulary. "open" means the customer has not
// finished the payment flow yet, which the storefront treats as pending.
func mapStatus(status string) models.CheckoutStatus {
	switch status {
	case "paid":
		return models.CheckoutStatusPaid
	case "authorized":
		return models.CheckoutStatusAuthorized
	case "canceled":
		return models.CheckoutStatusCanceled
	case "expired":
		return models.CheckoutStatusExpired
	case "failed":
		return models.CheckoutStatusFailed
	case "open", "pending":
		return models.CheckoutStatusPending
	}

	return models.CheckoutStatusPending
}
