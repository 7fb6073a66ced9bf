package checkout

import (
	"github.com/pineneuron/meatstore-api/config"
	"github.com/pineneuron/meatstore-api/coupon"
)

// Summary is the computed price breakdown of a checkout.
type Summary struct {
	Subtotal       float64 `json:"subtotal"`
	DeliveryFee    float64 `json:"delivery_fee"`
	DiscountAmount float64 `json:"discount_amount"`
	TaxAmount      float64 `json:"tax_amount"`
	Total          float64 `json:"total"`
	BelowMinimum   bool    `json:"below_minimum"`
}

// ComputeSummary applies the minimum-order policy: an order whose discounted
// goods total is under the configured minimum still goes through, but carries
// the flat delivery fee. Tax is charged on the subtotal.
func ComputeSummary(cfg *config.Config, subtotal, discount float64) Summary {
	s := Summary{
		Subtotal:       coupon.Round2(subtotal),
		DiscountAmount: coupon.Round2(discount),
		TaxAmount:      coupon.Round2(subtotal * cfg.TaxRate),
	}
	if subtotal-discount < cfg.MinOrderAmount {
		s.BelowMinimum = true
		s.DeliveryFee = cfg.DeliveryFee
	}
	s.Total = coupon.Round2(s.Subtotal + s.DeliveryFee - s.DiscountAmount + s.TaxAmount)
	return s
}
