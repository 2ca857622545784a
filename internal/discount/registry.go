package discount

import "github.com/retrogameshop/storefront-platform/internal/models"

// Static promo codes. Newsletter codes (GE-XXXXXX) are issued per subscriber
// and resolved through the CodeSource instead.
var defaultRegistry = []models.DiscountCode{
	{
		Code:        "RETRO5",
		Type:        models.DiscountTypeFixed,
		Value:       5,
		MinOrder:    30,
		Description: "€5 korting",
	},
	{
		Code:        "GAMESHOP20",
		Type:        models.DiscountTypePercentage,
		Value:       20,
		MinOrder:    100,
		Description: "20% korting",
	},
	{
		Code:        "WELKOM10",
		Type:        models.DiscountTypePercentage,
		Value:       10,
		Description: "10% korting",
	},
}
