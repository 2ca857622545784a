package models

// Product is a catalog record. The collection is loaded once at startup and is
// immutable at runtime; carts snapshot the product into their line items.
type Product struct {
	SKU          string   `json:"sku"`
	Name         string   `json:"name"`
	Platform     string   `json:"platform"`
	Genre        string   `json:"genre"`
	Condition    string   `json:"condition"`
	Completeness string   `json:"completeness"`
	Price        float64  `json:"price"`
	SalePrice    *float64 `json:"salePrice,omitempty"`
	CibPrice     *float64 `json:"cibPrice,omitempty"`
	CibImage     *string  `json:"cibImage,omitempty"`
	Image        *string  `json:"image,omitempty"`
	IsPremium    bool     `json:"isPremium"`
	IsConsole    bool     `json:"isConsole"`
}

type PlatformCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}
