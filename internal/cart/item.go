package cart

import (
	"encoding/json"
	"fmt"

	"github.com/retrogameshop/storefront-platform/internal/catalog"
	"github.com/retrogameshop/storefront-platform/internal/models"
)

// Key identifies a line item. Items with the same (sku, variant) pair merge
// into one line; the plain and cib variants of a product are distinct lines.
func Key(item models.CartItem) string {
	return KeyFor(item.Product.SKU, item.Variant)
}

func KeyFor(sku, variant string) string {

	if variant != "" {
		return fmt.Sprintf("%s:%s", sku, variant)
	}

	return sku
}

// UnitPrice applies the cib price override when the item is the cib variant
// and the product carries one.
func UnitPrice(item models.CartItem) float64 {

	if item.Variant == models.VariantCIB && item.Product.CibPrice != nil && *item.Product.CibPrice > 0 {
		return *item.Product.CibPrice
	}

	return catalog.EffectivePrice(item.Product)
}

// ItemImage prefers the cib artwork for cib variants. A nil result is a valid
// state, not an error.
func ItemImage(item models.CartItem) *string {

	if item.Variant == models.VariantCIB && item.Product.CibImage != nil {
		return item.Product.CibImage
	}

	return item.Product.Image
}

// ParseItems decodes a persisted cart payload defensively: entries that fail
// the shape or range checks are dropped one by one, and an unparseable
// payload yields an empty cart rather than an error. A reload must never
// crash the session over stale or corrupt storage.
func ParseItems(data []byte) []models.CartItem {

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}

	items := make([]models.CartItem, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))

	for _, entry := range raw {

		var item models.CartItem
		if err := json.Unmarshal(entry, &item); err != nil {
			continue
		}

		if !validItem(item) {
			continue
		}

		key := Key(item)
		if _, dup := seen[key]; dup {
			continue
		}

		seen[key] = struct{}{}
		items = append(items, item)
	}

	return items
}

func validItem(item models.CartItem) bool {
	return item.Product.SKU != "" &&
		item.Product.Name != "" &&
		item.Product.Price >= 0 &&
		item.Quantity >= 1 &&
		item.Quantity <= models.MaxQuantity &&
		(item.Variant == "" || item.Variant == models.VariantCIB)
}
