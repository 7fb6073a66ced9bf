package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFlat       DiscountType = "flat"
)

type Coupon struct {
	ID                uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Code              string         `gorm:"uniqueIndex;not null" json:"code"` // stored uppercase
	Name              string         `json:"name"`
	Description       string         `json:"description"`
	DiscountType      DiscountType   `gorm:"type:VARCHAR(20);not null" json:"discount_type"`
	Value             float64        `gorm:"not null" json:"value"`
	MinOrderAmount    float64        `json:"min_order_amount"`
	MaxDiscountAmount float64        `json:"max_discount_amount"` // 0 = uncapped
	StartDate         time.Time      `json:"start_date"`
	EndDate           time.Time      `json:"end_date"`
	IsActive          bool           `gorm:"default:true" json:"is_active"`
	UsageLimit        int            `json:"usage_limit"` // 0 = unlimited
	UsedCount         int            `json:"used_count"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

// CanonicalCouponCode maps user input to the stored form of a coupon code.
func CanonicalCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
