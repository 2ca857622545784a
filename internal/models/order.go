package models

import "time"

// CheckoutStatus is the client-observed payment status vocabulary. It mirrors
// the provider statuses one to one; "loading" and "error" are local states the
// provider never reports.
type CheckoutStatus string

const (
	CheckoutStatusLoading    CheckoutStatus = "loading"
	CheckoutStatusPaid       CheckoutStatus = "paid"
	CheckoutStatusAuthorized CheckoutStatus = "authorized"
	CheckoutStatusPending    CheckoutStatus = "pending"
	CheckoutStatusCanceled   CheckoutStatus = "canceled"
	CheckoutStatusExpired    CheckoutStatus = "expired"
	CheckoutStatusFailed     CheckoutStatus = "failed"
	CheckoutStatusError      CheckoutStatus = "error"
)

// IsTerminal reports whether polling should stop at this status.
func (s CheckoutStatus) IsTerminal() bool {
	switch s {
	case CheckoutStatusPaid, CheckoutStatusAuthorized,
		CheckoutStatusCanceled, CheckoutStatusExpired,
		CheckoutStatusFailed, CheckoutStatusError:
		return true
	}

	return false
}

// IsSuccess reports a terminal-success outcome (payment settled or approved).
func (s CheckoutStatus) IsSuccess() bool {
	return s == CheckoutStatusPaid || s == CheckoutStatusAuthorized
}

type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

type OrderLine struct {
	SKU      string  `json:"sku"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Variant  string  `json:"variant,omitempty"`
}

type Order struct {
	OrderNumber   string         `json:"order_number"`
	CustomerName  string         `json:"customer_name"`
	CustomerEmail string         `json:"customer_email"`
	Items         []OrderLine    `json:"items"`
	Subtotal      float64        `json:"subtotal"`
	Shipping      float64        `json:"shipping"`
	Discount      float64        `json:"discount"`
	Total         float64        `json:"total"`
	DiscountCode  string         `json:"discount_code,omitempty"`
	Street        string         `json:"street"`
	HouseNumber   string         `json:"house_number"`
	PostalCode    string         `json:"postal_code"`
	City          string         `json:"city"`
	Notes         string         `json:"notes,omitempty"`
	PaymentMethod string         `json:"payment_method"`
	Status        OrderStatus    `json:"status"`
	PaymentStatus CheckoutStatus `json:"payment_status"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

type CheckoutRequest struct {
	FirstName     string `json:"voornaam" validate:"required,max=100"`
	LastName      string `json:"achternaam" validate:"required,max=100"`
	Email         string `json:"email" validate:"required,email"`
	Street        string `json:"straat" validate:"required,max=200"`
	HouseNumber   string `json:"huisnummer" validate:"required,max=20"`
	PostalCode    string `json:"postcode" validate:"required,max=10"`
	City          string `json:"plaats" validate:"required,max=100"`
	Notes         string `json:"opmerkingen,omitempty" validate:"max=1000"`
	PaymentMethod string `json:"betaalmethode" validate:"required,oneof=ideal creditcard banktransfer"`
}

type CheckoutResponse struct {
	OrderNumber string `json:"order_number"`
	CheckoutURL string `json:"checkout_url"`
}

type StatusResponse struct {
	OrderNumber string         `json:"orderNumber"`
	Status      CheckoutStatus `json:"status"`
	Message     string         `json:"message,omitempty"`
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required,oneof=processing shipped delivered cancelled"`
}
