// Package pricing resolves the effective unit price of a cart line item.
//
// A product may carry a wholesale tier: a lower unit price that unlocks once
// the line quantity reaches the wholesale threshold. The tier only exists
// when both wholesale fields are set; a missing threshold or price disables
// it entirely, regardless of quantity.
package pricing

import "rightyway-storefront/models"

// EffectiveUnitPrice returns the unit price to charge for a line item,
// applying the wholesale tier when the item qualifies.
func EffectiveUnitPrice(item models.CartItem) int64 {
	if wholesaleApplies(item) {
		return item.WholesalePriceNGN
	}
	return item.PriceNGN
}

// LineTotal returns the effective unit price times the quantity.
func LineTotal(item models.CartItem) int64 {
	return EffectiveUnitPrice(item) * int64(item.Quantity)
}

// Total sums the line totals of all items.
func Total(items []models.CartItem) int64 {
	var total int64
	for _, item := range items {
		total += LineTotal(item)
	}
	return total
}

// wholesaleApplies reports whether the wholesale tier is active for the item.
// Both wholesale fields must be positive; quantity must reach the threshold.
func wholesaleApplies(item models.CartItem) bool {
	if item.WholesaleThreshold <= 0 || item.WholesalePriceNGN <= 0 {
		return false
	}
	return item.Quantity >= item.WholesaleThreshold
}
