package models

// VariantCIB marks the "complete in box" variant of a line item. It is the only
// variant the shop sells; anything else in persisted state is dropped on load.
const VariantCIB = "cib"

const MaxQuantity = 10

type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
	Variant  string  `json:"variant,omitempty"`
}

// CartView is the derived, read-only projection of a session cart. Totals are
// recomputed on every read, never stored.
type CartView struct {
	Items          []CartItem       `json:"items"`
	Subtotal       float64          `json:"subtotal"`
	Discount       *AppliedDiscount `json:"discount,omitempty"`
	DiscountAmount float64          `json:"discount_amount"`
	Total          float64          `json:"total"`
	ItemCount      int              `json:"item_count"`
}

type AddItemRequest struct {
	SKU     string `json:"sku" validate:"required"`
	Variant string `json:"variant,omitempty" validate:"omitempty,oneof=cib"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"gte=0"`
}

type ApplyDiscountRequest struct {
	Code string `json:"code" validate:"required"`
}
