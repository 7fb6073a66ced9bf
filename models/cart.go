package models

import "time"

// CartLineItem is one entry of the session cart. Two line items never share the
// same (ProductID, Variation) pair.
type CartLineItem struct {
	ProductID       uint    `json:"product_id"`
	Name            string  `json:"name"`
	UnitPrice       float64 `json:"unit_price"`
	Unit            string  `json:"unit"`
	DiscountPercent float64 `json:"discount_percent"`
	Image           string  `json:"image"`
	Variation       string  `json:"variation,omitempty"`
	Quantity        int     `json:"quantity"`
}

// AppliedCoupon is the session-held result of a successful coupon validation.
// It is never persisted server-side until the order is created.
type AppliedCoupon struct {
	Coupon         Coupon  `json:"coupon"`
	DiscountAmount float64 `json:"discount_amount"`
}

// CartSnapshot is the serialized cart state written to durable storage under a
// single session key after every mutation.
type CartSnapshot struct {
	Items         []CartLineItem `json:"items"`
	AppliedCoupon *AppliedCoupon `json:"applied_coupon,omitempty"`
}

// CartRecord is the stored row backing one session's cart snapshot.
type CartRecord struct {
	SessionKey string    `gorm:"primaryKey" json:"session_key"`
	Snapshot   []byte    `gorm:"type:jsonb" json:"snapshot"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
