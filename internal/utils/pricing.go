package utils

import (
	"math"

	"partsphere-backend/internal/domain"
)

// PlatformFeeRate is the fixed surcharge applied to the owner's base price
// and credited to the platform account.
const PlatformFeeRate = 0.02

// OrderPricing is the server-computed amount breakdown for an order.
// Total = Base + Fee always holds.
type OrderPricing struct {
	Base  int32 // owner amount
	Fee   int32 // platform fee
	Total int32 // what the buyer pays
}

// ComputeOrderPricing derives the order amounts from the item's authoritative
// price. Sales charge the flat day price; rentals multiply by the duration,
// with a one-day minimum. Client-submitted totals are never consulted.
func ComputeOrderPricing(item *domain.Item, durationDays int32) OrderPricing {
	base := item.PriceDay
	if item.ListingType != domain.ListingTypeSell {
		if durationDays < 1 {
			durationDays = 1
		}
		base = item.PriceDay * durationDays
	}

	fee := int32(math.Round(float64(base) * PlatformFeeRate))
	return OrderPricing{
		Base:  base,
		Fee:   fee,
		Total: base + fee,
	}
}
