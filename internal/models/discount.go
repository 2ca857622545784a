package models

const (
	DiscountTypePercentage = "percentage"
	DiscountTypeFixed      = "fixed"
)

// DiscountCode is a registry entry. Value holds percentage points for
// percentage codes and a currency amount for fixed ones. MinOrder of 0 means
// no minimum.
type DiscountCode struct {
	Code        string  `json:"code"`
	Type        string  `json:"type"`
	Value       float64 `json:"value"`
	MinOrder    float64 `json:"min_order,omitempty"`
	Description string  `json:"description"`
}

// AppliedDiscount is the cart's reference to its single active code. The
// amount is never frozen here; it is requoted from the live subtotal on every
// read.
type AppliedDiscount struct {
	Code        string  `json:"code"`
	Type        string  `json:"type"`
	Value       float64 `json:"value"`
	MinOrder    float64 `json:"min_order,omitempty"`
	Description string  `json:"description"`
}

type ValidateDiscountRequest struct {
	Code     string  `json:"code" validate:"required"`
	Subtotal float64 `json:"subtotal" validate:"gte=0"`
}

type DiscountQuote struct {
	Valid              bool    `json:"valid"`
	Code               string  `json:"code"`
	DiscountPercentage float64 `json:"discountPercentage"`
	DiscountAmount     float64 `json:"discountAmount"`
	Description        string  `json:"description"`
	MaxUses            int     `json:"maxUses"`
}

type DiscountCheckResponse struct {
	Code    string `json:"code"`
	IsValid bool   `json:"isValid"`
}
