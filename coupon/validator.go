package coupon

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/pineneuron/meatstore-api/models"
	"gorm.io/gorm"
)

// ErrNotFound is returned by a Finder when no coupon matches the code.
var ErrNotFound = errors.New("coupon not found")

// Finder resolves a canonical coupon code to its stored record.
type Finder interface {
	FindByCode(code string) (*models.Coupon, error)
}

// Result is the outcome of a validation. Message is human-readable and shown
// to the customer verbatim.
type Result struct {
	Success        bool           `json:"success"`
	Message        string         `json:"message"`
	DiscountAmount float64        `json:"discount_amount"`
	Coupon         *models.Coupon `json:"coupon,omitempty"`
}

// Validator checks whether a code is redeemable against an order amount. It is
// stateless; the same check runs client-initiated on "Apply" and again at order
// submission, because the cached discount can go stale in between.
type Validator struct {
	finder Finder
	now    func() time.Time
}

func NewValidator(finder Finder) *Validator {
	return &Validator{finder: finder, now: time.Now}
}

// Validate runs the eligibility rules in order; the first failure wins.
func (v *Validator) Validate(code string, orderAmount float64) Result {
	canonical := models.CanonicalCouponCode(code)
	if canonical == "" {
		return Result{Message: "Please enter a coupon code"}
	}

	c, err := v.finder.FindByCode(canonical)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Result{Message: fmt.Sprintf("Coupon %q not found", canonical)}
		}
		return Result{Message: "Could not look up coupon, please try again"}
	}

	if !c.IsActive {
		return Result{Message: fmt.Sprintf("Coupon %s is no longer active", c.Code)}
	}

	now := v.now()
	if now.Before(c.StartDate) {
		return Result{Message: fmt.Sprintf("Coupon %s is not valid yet", c.Code)}
	}
	if now.After(c.EndDate) {
		return Result{Message: fmt.Sprintf("Coupon %s has expired", c.Code)}
	}

	if c.UsageLimit > 0 && c.UsedCount >= c.UsageLimit {
		return Result{Message: fmt.Sprintf("Coupon %s has reached its usage limit", c.Code)}
	}

	if orderAmount < c.MinOrderAmount {
		shortfall := Round2(c.MinOrderAmount - orderAmount)
		return Result{Message: fmt.Sprintf(
			"Minimum order amount for %s is %.2f; add %.2f more to use it",
			c.Code, c.MinOrderAmount, shortfall,
		)}
	}

	discount := ComputeDiscount(c, orderAmount)
	return Result{
		Success:        true,
		Message:        fmt.Sprintf("Coupon %s applied, you save %.2f", c.Code, discount),
		DiscountAmount: discount,
		Coupon:         c,
	}
}

// ComputeDiscount returns the discount a coupon yields on the given order
// amount: percentage of the amount or a flat value, never more than the amount
// itself, then clamped to the coupon's cap when one is set.
func ComputeDiscount(c *models.Coupon, orderAmount float64) float64 {
	var discount float64
	switch c.DiscountType {
	case models.DiscountTypePercentage:
		discount = orderAmount * c.Value / 100
	case models.DiscountTypeFlat:
		discount = c.Value
	default:
		return 0
	}
	if discount > orderAmount {
		discount = orderAmount
	}
	if c.MaxDiscountAmount > 0 && discount > c.MaxDiscountAmount {
		discount = c.MaxDiscountAmount
	}
	return Round2(discount)
}

// Round2 rounds a currency amount to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// GormFinder looks coupons up in the database by canonical code.
type GormFinder struct {
	DB *gorm.DB
}

func (f GormFinder) FindByCode(code string) (*models.Coupon, error) {
	var c models.Coupon
	if err := f.DB.Where("code = ?", models.CanonicalCouponCode(code)).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Redeem increments a coupon's used count, guarded so a usage-limited coupon
// can never be oversold by concurrent checkouts. The conditional UPDATE is the
// atomic arbiter; losing the race is reported as ErrUsageExhausted.
var ErrUsageExhausted = errors.New("coupon usage limit reached")

func Redeem(tx *gorm.DB, couponID uint) error {
	res := tx.Model(&models.Coupon{}).
		Where("id = ? AND (usage_limit = 0 OR used_count < usage_limit)", couponID).
		Update("used_count", gorm.Expr("used_count + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUsageExhausted
	}
	return nil
}
